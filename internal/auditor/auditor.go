// Package auditor runs the audit pipeline: build the prompt, dispatch it to
// the model provider, then validate the reply against the requested shape.
// Each request moves Building -> Dispatched -> Parsing and ends Succeeded or
// Failed; terminal states are final, there is no retry beyond the bounded
// provider retry below.
package auditor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/franchisepro/audit-core/api/models"
	"github.com/franchisepro/audit-core/apimodels"
	"github.com/franchisepro/audit-core/internal/config"
	"github.com/franchisepro/audit-core/internal/llm"
	"github.com/franchisepro/audit-core/internal/prompt"
	"github.com/franchisepro/audit-core/internal/schema"
)

// maxProviderAttempts bounds retries of the external call. Only provider
// failures are retried; a shape violation is deterministic enough that
// retrying it blindly just burns tokens.
const maxProviderAttempts = 2

// ProviderError means the external model call itself failed (network, auth,
// quota, provider fault) as opposed to the model replying badly.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider call failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type Auditor struct {
	provider llm.Provider
	cfg      config.LLMConfig
}

func New(provider llm.Provider, cfg config.LLMConfig) *Auditor {
	return &Auditor{
		provider: provider,
		cfg:      cfg,
	}
}

// AuditFinancials runs the deal-audit flow end to end.
func (a *Auditor) AuditFinancials(ctx context.Context, req models.AuditRequest) (*apimodels.AuditResponse, error) {
	slog.Info("starting financial audit", "industry", req.Industry, "location", req.Location)
	startTime := time.Now()

	userPrompt := prompt.BuildDealAudit(req)

	resp, attempts, err := a.dispatch(ctx, prompt.BankerSystemPrompt, userPrompt, a.cfg.AuditModel)
	if err != nil {
		return nil, err
	}

	audit, err := schema.ParseBankerAudit(resp.Content)
	if err != nil {
		slog.Error("banker audit violated response contract", "error", err)
		return nil, err
	}

	slog.Info("financial audit complete", "verdict", audit.Verdict, "duration", time.Since(startTime))
	return &apimodels.AuditResponse{
		BankerAudit: *audit,
		Metadata:    a.metadata(startTime, resp, attempts),
	}, nil
}

// AnalyzeLocation runs the location-intelligence flow end to end.
func (a *Auditor) AnalyzeLocation(ctx context.Context, req models.LocationRequest) (*apimodels.LocationResponse, error) {
	slog.Info("starting location analysis", "query", req.Query, "industry", req.Industry)
	startTime := time.Now()

	userPrompt := prompt.BuildLocation(req)

	resp, attempts, err := a.dispatch(ctx, prompt.LocationSystemPrompt, userPrompt, a.cfg.LocationModel)
	if err != nil {
		return nil, err
	}

	analysis, err := schema.ParseLocationAnalysis(resp.Content)
	if err != nil {
		slog.Error("location analysis violated response contract", "error", err)
		return nil, err
	}

	slog.Info("location analysis complete", "sources", len(analysis.MapSources), "duration", time.Since(startTime))
	return &apimodels.LocationResponse{
		LocationAnalysis: *analysis,
		Metadata:         a.metadata(startTime, resp, attempts),
	}, nil
}

// dispatch performs the bounded external call. This is the single blocking
// point of the pipeline, so the configured timeout applies here.
func (a *Auditor) dispatch(ctx context.Context, systemPrompt, userPrompt, model string) (*llm.Response, int, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= maxProviderAttempts; attempt++ {
		slog.Debug("dispatching prompt to provider", "model", model, "attempt", attempt)
		resp, err := a.provider.Generate(ctx, systemPrompt, userPrompt,
			llm.WithModel(model),
			llm.WithJSONOutput(),
		)
		if err == nil {
			return resp, attempt, nil
		}
		lastErr = err
		slog.Warn("provider call failed", "model", model, "attempt", attempt, "error", err)

		// A dead context will not recover on retry.
		if ctx.Err() != nil {
			break
		}
	}
	return nil, maxProviderAttempts, &ProviderError{Err: lastErr}
}

func (a *Auditor) metadata(startTime time.Time, resp *llm.Response, attempts int) apimodels.AuditMetadata {
	return apimodels.AuditMetadata{
		AuditID:    uuid.NewString(),
		Duration:   time.Since(startTime).String(),
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
		Attempts:   attempts,
	}
}

// IsContractViolation reports whether err is a model-misbehaved failure as
// opposed to a provider-unreachable one.
func IsContractViolation(err error) bool {
	var cv *schema.ContractViolation
	return errors.As(err, &cv)
}
