package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/franchisepro/audit-core/internal/config"
)

// Gemini client implementation over the Google GenAI API.
type Gemini struct {
	client *genai.Client
	cfg    *config.LLMConfig
}

func NewGemini(ctx context.Context, cfg *config.LLMConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		cfg:    cfg,
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, systemPrompt, userPrompt string, opts ...Option) (*Response, error) {
	options := &Options{
		Model:       g.cfg.AuditModel,
		Temperature: 0,
		MaxTokens:   g.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(options.Temperature)),
		MaxOutputTokens:   int32(options.MaxTokens),
	}
	if options.JSONOutput {
		genCfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, options.Model, genai.Text(userPrompt), genCfg)
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned no content")
	}

	out := &Response{
		Content: text,
		Model:   options.Model,
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}
