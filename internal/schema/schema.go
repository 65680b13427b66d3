// Package schema enforces the structured-response contract between this
// service and the model. A model reply is only trusted after it passes a
// strict JSON Schema check; anything else becomes a ContractViolation rather
// than a half-decoded object.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/franchisepro/audit-core/apimodels"
)

// ContractViolation means the model replied, but the reply does not satisfy
// the requested shape. It carries the raw text so operators can see exactly
// what the model said.
type ContractViolation struct {
	Shape   string
	Reason  string
	RawText string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("model output violates %s contract: %s", e.Shape, e.Reason)
}

const bankerAuditSchema = `{
	"type": "object",
	"required": ["verdict", "realityCheck", "stressTest", "insiderIntel", "recommendations", "pitch", "closer"],
	"properties": {
		"verdict": {"type": "string", "enum": ["Green Light", "Yellow Light", "Red Light"]},
		"realityCheck": {"type": "string"},
		"stressTest": {"type": "string"},
		"insiderIntel": {"type": "string"},
		"recommendations": {"type": "array", "items": {"type": "string"}},
		"pitch": {"type": "string"},
		"closer": {"type": "string"}
	}
}`

const locationAnalysisSchema = `{
	"type": "object",
	"required": ["text", "mapSources"],
	"properties": {
		"text": {"type": "string"},
		"mapSources": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title", "uri"],
				"properties": {
					"title": {"type": "string"},
					"uri": {"type": "string"}
				}
			}
		}
	}
}`

var (
	bankerAudit      = mustCompile("BankerAudit", bankerAuditSchema)
	locationAnalysis = mustCompile("LocationAnalysis", locationAnalysisSchema)
)

func mustCompile(name, doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("invalid %s schema: %v", name, err))
	}
	return s
}

// ParseBankerAudit validates raw model text against the banker-audit shape
// and decodes it. Any structural or enum failure is a *ContractViolation.
func ParseBankerAudit(rawText string) (*apimodels.BankerAudit, error) {
	var audit apimodels.BankerAudit
	if err := parse("BankerAudit", bankerAudit, rawText, &audit); err != nil {
		return nil, err
	}
	// Belt and braces: the schema enum already guards this, but the closed
	// set lives in apimodels and must hold regardless of schema edits.
	if !audit.Verdict.Valid() {
		return nil, &ContractViolation{
			Shape:   "BankerAudit",
			Reason:  fmt.Sprintf("verdict %q is not one of the three allowed values", audit.Verdict),
			RawText: rawText,
		}
	}
	return &audit, nil
}

// ParseLocationAnalysis validates raw model text against the
// location-analysis shape and decodes it.
func ParseLocationAnalysis(rawText string) (*apimodels.LocationAnalysis, error) {
	var analysis apimodels.LocationAnalysis
	if err := parse("LocationAnalysis", locationAnalysis, rawText, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func parse(shape string, s *gojsonschema.Schema, rawText string, out any) error {
	doc := StripFences(rawText)

	result, err := s.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		// Loader error: the text is not JSON at all.
		return &ContractViolation{Shape: shape, Reason: fmt.Sprintf("not valid JSON: %v", err), RawText: rawText}
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return &ContractViolation{Shape: shape, Reason: strings.Join(reasons, "; "), RawText: rawText}
	}

	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return &ContractViolation{Shape: shape, Reason: fmt.Sprintf("decode failed: %v", err), RawText: rawText}
	}
	return nil
}

// StripFences removes a surrounding markdown code fence if the model wrapped
// its JSON in one despite being asked for raw JSON.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
