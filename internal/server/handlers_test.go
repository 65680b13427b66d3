package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisepro/audit-core/apimodels"
	"github.com/franchisepro/audit-core/internal/auditor"
	"github.com/franchisepro/audit-core/internal/config"
	"github.com/franchisepro/audit-core/internal/llm"
)

type stubProvider struct {
	content string
	err     error
	calls   int
}

func (s *stubProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, opts ...llm.Option) (*llm.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content, Model: "test-model"}, nil
}

func newTestServer(provider llm.Provider) *Server {
	cfg := config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		LLM: config.LLMConfig{
			AuditModel:    "audit-model",
			LocationModel: "location-model",
			Timeout:       5 * time.Second,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	return New(cfg, auditor.New(provider, cfg.LLM))
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubProvider{})

	rec := doJSON(t, s.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health apimodels.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "online", health.Status)
	assert.Equal(t, "FranchisePro AI Core", health.System)
}

func TestCalculateMetrics(t *testing.T) {
	s := newTestServer(&stubProvider{})

	body := `{
		"franchiseFee": 50000, "buildOut": 100000, "equipment": 50000, "workingCapital": 50000,
		"avgTicket": 12.50, "dailyCust": 80, "daysOpen": 360,
		"rentMonthly": 4000, "salariesMonthly": 9000, "miscMonthly": 1000,
		"cogsPercent": 28, "laborPercent": 22, "royaltyPercent": 6, "marketingPercent": 2
	}`
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/calculate-metrics", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary apimodels.MetricsSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.InDelta(t, 250000, summary.TotalInvestment, 1e-9)
	assert.InDelta(t, 360000, summary.AnnualRevenue, 1e-9)
	assert.InDelta(t, -16800, summary.NetProfit, 1e-9)
	assert.InDelta(t, -4.6667, summary.Margin, 1e-3)
	assert.False(t, summary.IsViable)
}

func TestCalculateMetricsRejectsMalformedBody(t *testing.T) {
	s := newTestServer(&stubProvider{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/calculate-metrics", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const stubAudit = `{
	"verdict": "Red Light",
	"realityCheck": "r", "stressTest": "s", "insiderIntel": "i",
	"recommendations": ["Renegotiate rent"], "pitch": "p", "closer": "c"
}`

const auditBody = `{
	"industry": "Coffee",
	"location": "Austin, TX",
	"metrics": {
		"totalInvestment": 250000, "annualRevenue": 500000, "netProfit": 50000,
		"margin": 10, "breakEvenMonths": 36, "roiYears": 5
	},
	"detailedInputs": {"rentMonthly": 4000}
}`

func TestAuditFinancials(t *testing.T) {
	stub := &stubProvider{content: stubAudit}
	s := newTestServer(stub)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/audit-financials", auditBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apimodels.AuditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apimodels.VerdictRedLight, resp.Verdict)
	assert.Equal(t, []string{"Renegotiate rent"}, resp.Recommendations)
	assert.NotEmpty(t, resp.Metadata.AuditID)
	assert.Equal(t, 1, stub.calls)

	// Audit fields live at the top level of the payload, not under a wrapper.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "verdict")
	assert.Contains(t, raw, "metadata")
}

func TestAuditFinancialsValidation(t *testing.T) {
	stub := &stubProvider{content: stubAudit}
	s := newTestServer(stub)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/audit-financials", `{"metrics": {}, "location": "Austin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "industry")
	assert.Zero(t, stub.calls, "validation failures must not reach the provider")
}

func TestAuditFinancialsRequiresMetrics(t *testing.T) {
	stub := &stubProvider{content: stubAudit}
	s := newTestServer(stub)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/audit-financials",
		`{"industry": "Coffee", "location": "Austin, TX"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "metrics")
	assert.Zero(t, stub.calls, "a body with no financial figures must never burn a model call")
}

func TestAuditFinancialsProviderFailure(t *testing.T) {
	s := newTestServer(&stubProvider{err: errors.New("upstream quota exceeded")})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/audit-financials", auditBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exceeded")
}

func TestAuditFinancialsContractViolation(t *testing.T) {
	s := newTestServer(&stubProvider{content: `{"verdict": "Purple Light"}`})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/audit-financials", auditBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "contract")
}

func TestAnalyzeLocation(t *testing.T) {
	stub := &stubProvider{content: `{
		"text": "Good bones.",
		"mapSources": [
			{"title": "Search Competitors", "uri": "https://www.google.com/maps/search/a"},
			{"title": "Check Traffic", "uri": "https://www.google.com/maps/search/b"}
		]
	}`}
	s := newTestServer(stub)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/analyze-location",
		`{"query": "Portland, OR", "industry": "Car Wash"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apimodels.LocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Good bones.", resp.Text)
	require.Len(t, resp.MapSources, 2)
	assert.True(t, strings.HasPrefix(resp.MapSources[0].URI, "https://www.google.com/maps/"))
}

func TestAnalyzeLocationRequiresQuery(t *testing.T) {
	stub := &stubProvider{}
	s := newTestServer(stub)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/analyze-location", `{"industry": "Car Wash"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.calls)
}

// blockingProvider waits for the request context to die, as a stuck upstream
// would.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, opts ...llm.Option) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRequestTimeoutBoundsStuckProvider(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", WriteTimeout: 50 * time.Millisecond},
		LLM: config.LLMConfig{
			AuditModel:    "audit-model",
			LocationModel: "location-model",
			Timeout:       time.Minute,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	s := New(cfg, auditor.New(blockingProvider{}, cfg.LLM))

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- doJSON(t, s.Handler(), http.MethodPost, "/api/audit-financials", auditBody)
	}()

	select {
	case rec := <-done:
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("request was not bounded by the route timeout")
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	s := newTestServer(&stubProvider{})

	req := httptest.NewRequest(http.MethodOptions, "/api/calculate-metrics", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
