package llm

import "context"

// Provider is the external model capability: given a persona and a prompt,
// return text that should (but may not) conform to the requested shape.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64

	// JSONOutput asks the provider for its JSON-only decoding mode where the
	// API supports one. The reply is still validated either way.
	JSONOutput bool
}

// WithModel overrides the provider's default model for one call.
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithJSONOutput requests the provider's structured JSON decoding mode.
func WithJSONOutput() Option {
	return func(o *Options) { o.JSONOutput = true }
}

// Response is the raw provider reply before any contract validation.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}
