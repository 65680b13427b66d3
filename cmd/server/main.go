// cmd/server/main.go
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/franchisepro/audit-core/internal/auditor"
	"github.com/franchisepro/audit-core/internal/config"
	"github.com/franchisepro/audit-core/internal/llm"
	"github.com/franchisepro/audit-core/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.LLM.APIKey == "" {
		// Startup still succeeds; audit calls will fail until a key is set.
		slog.Warn("LLM_API_KEY not set; audit endpoints will return provider errors")
	}

	provider, err := newProvider(cfg)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	aud := auditor.New(provider, cfg.LLM)

	srv := server.New(*cfg, aud)
	slog.Info("starting FranchisePro audit core", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func newProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return llm.NewOpenAI(&cfg.LLM)
	default: // "gemini"
		return llm.NewGemini(context.Background(), &cfg.LLM)
	}
}
