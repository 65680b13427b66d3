package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/franchisepro/audit-core/api/models"
	"github.com/franchisepro/audit-core/apimodels"
	"github.com/franchisepro/audit-core/internal/auditor"
	"github.com/franchisepro/audit-core/internal/metrics"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.Health{
		Status: "online",
		System: "FranchisePro AI Core",
	})
}

func (s *Server) handleAuditFinancials(w http.ResponseWriter, r *http.Request) {
	var req models.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Reject incomplete requests before spending an external call.
	if err := validateAuditRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.auditor.AuditFinancials(r.Context(), req)
	if err != nil {
		s.writeAuditError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeLocation(w http.ResponseWriter, r *http.Request) {
	var req models.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result, err := s.auditor.AnalyzeLocation(r.Context(), req)
	if err != nil {
		s.writeAuditError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleCalculateMetrics recomputes the deal math server side. The engine is
// total, so apart from a malformed body this cannot fail.
func (s *Server) handleCalculateMetrics(w http.ResponseWriter, r *http.Request) {
	var items models.LineItems
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result := metrics.Compute(items)

	writeJSON(w, http.StatusOK, apimodels.MetricsSummary{
		TotalInvestment: result.TotalInvestment,
		AnnualRevenue:   result.AnnualRevenue,
		NetProfit:       result.NetProfit,
		Margin:          result.Margin,
		IsViable:        result.IsViable,
	})
}

func validateAuditRequest(req models.AuditRequest) error {
	if req.Metrics == nil {
		return fmt.Errorf("metrics is required")
	}
	if strings.TrimSpace(req.Industry) == "" {
		return fmt.Errorf("industry is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return fmt.Errorf("location is required")
	}
	return nil
}

// writeAuditError surfaces pipeline failures with their classification so
// operators can tell "model misbehaved" from "provider unreachable".
func (s *Server) writeAuditError(w http.ResponseWriter, err error) {
	kind := "provider"
	if auditor.IsContractViolation(err) {
		kind = "contract"
	}
	slog.Error("audit request failed", "kind", kind, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
