// Package prompt renders the two audit personas into model-ready prompts.
// The persona and output-shape instructions are fixed text; only the
// per-request figures vary, so rendering is deterministic and testable
// without a live model.
package prompt

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/franchisepro/audit-core/api/models"
)

// BankerSystemPrompt establishes the deal-audit persona and the JSON shape
// the model must reply with. Kept verbatim across calls; the verdict strings
// here must stay in lockstep with the response contract.
const BankerSystemPrompt = `You are a ruthless, cynical, high-stakes private equity banker who audits franchise deals.
You do not sugarcoat. You look for weaknesses. You are sarcastic but mathematically precise.
Your goal is to protect the investor from bad deals or help them scale good ones.

Output JSON only. Structure:
{
    "verdict": "Green Light" | "Yellow Light" | "Red Light",
    "realityCheck": "A brutal, 2-sentence summary of the financial reality.",
    "stressTest": "What happens if revenue drops 20%? Specific scenario based on the industry.",
    "insiderIntel": "A 'secret' industry insight regarding this specific location or business type.",
    "recommendations": ["Actionable fix 1", "Actionable fix 2", "Actionable fix 3"],
    "pitch": "A 2-sentence 'Godfather' style pitch to investors.",
    "closer": "A final witty remark about wealth."
}`

// LocationSystemPrompt establishes the location-intelligence persona and its
// required JSON shape.
const LocationSystemPrompt = `Act as a Commercial Real Estate Consultant.

Output JSON only. Structure:
{
    "text": "The analysis text...",
    "mapSources": [
        {"title": "Search Competitors", "uri": "https://www.google.com/maps/search/..."},
        {"title": "Check Traffic", "uri": "https://www.google.com/maps/search/..."}
    ]
}`

// BuildDealAudit renders the user prompt for a deal audit. All six headline
// figures (investment, revenue, profit, margin, break-even, ROI) are part of
// the contract with the model and are always present.
func BuildDealAudit(req models.AuditRequest) string {
	m := req.Metrics
	if m == nil {
		m = &models.FinancialMetrics{}
	}

	var b strings.Builder

	b.WriteString("Analyze this franchise deal:\n\n")
	fmt.Fprintf(&b, "Industry: %s\n", req.Industry)
	fmt.Fprintf(&b, "Location: %s\n\n", req.Location)

	b.WriteString("Financials:\n")
	fmt.Fprintf(&b, "- Total Investment: %s\n", Currency(m.TotalInvestment))
	fmt.Fprintf(&b, "- Annual Revenue: %s\n", Currency(m.AnnualRevenue))
	fmt.Fprintf(&b, "- Net Profit: %s (Margin: %s)\n", Currency(m.NetProfit), Percent(m.Margin))
	fmt.Fprintf(&b, "- Break Even: %.1f months\n", m.BreakEvenMonths)
	fmt.Fprintf(&b, "- ROI: %.1f years\n\n", m.ROIYears)

	if len(req.DetailedInputs) > 0 {
		b.WriteString("Detailed Inputs:\n")
		writeValue(&b, req.DetailedInputs, "")
		b.WriteString("\n")
	}

	b.WriteString("Based on the location and numbers, provide the ruthless banker audit.")
	return b.String()
}

// BuildLocation renders the user prompt for a location analysis.
func BuildLocation(req models.LocationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Target Location: %s\n", req.Query)
	fmt.Fprintf(&b, "Industry: %s\n\n", req.Industry)

	b.WriteString("Provide a 3-sentence analysis of the demographics, foot traffic potential, and saturation for this industry in this city.\n")
	b.WriteString("Then provide exactly 2 search queries for Google Maps to find competitors.")
	return b.String()
}

// Currency formats a dollar amount with digit grouping and cents, e.g.
// "$250,000.00". Negative amounts render as "-$16,800.00".
func Currency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Percent formats a percentage with one decimal, e.g. "10.0%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// writeValue renders a decoded-JSON value with keys sorted at every level so
// the same inputs always produce the same prompt.
func writeValue(b *strings.Builder, v any, indent string) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch val[k].(type) {
			case map[string]any, []any:
				fmt.Fprintf(b, "%s- %s:\n", indent, k)
				writeValue(b, val[k], indent+"  ")
			default:
				fmt.Fprintf(b, "%s- %s: %s\n", indent, k, scalar(val[k]))
			}
		}
	case []any:
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				writeValue(b, item, indent+"  ")
			default:
				fmt.Fprintf(b, "%s- %s\n", indent, scalar(item))
			}
		}
	default:
		fmt.Fprintf(b, "%s%s\n", indent, scalar(val))
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; drop the fraction when whole.
		// The int64 round-trip is only defined for values that fit.
		if math.Abs(val) < 1<<62 && val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", val)
	}
}
