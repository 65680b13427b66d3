package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
}

type LLMConfig struct {
	// Provider selects the backing model API: "gemini" or "openai".
	Provider string `envconfig:"LLM_PROVIDER" default:"gemini"`

	// APIKey may be empty at startup; calls will fail until it is set.
	APIKey      string `envconfig:"LLM_API_KEY"`
	APIEndpoint string `envconfig:"LLM_ENDPOINT" default:"https://api.openai.com/v1"`

	// AuditModel handles the deal audit, LocationModel the lighter
	// location-intelligence flow.
	AuditModel    string `envconfig:"LLM_AUDIT_MODEL" default:"gemini-1.5-pro-latest"`
	LocationModel string `envconfig:"LLM_LOCATION_MODEL" default:"gemini-1.5-flash"`

	MaxTokens int64         `envconfig:"LLM_MAX_TOKENS" default:"2048"`
	Timeout   time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func LoadConfig() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully", "provider", cfg.LLM.Provider)
	return &cfg, nil
}
