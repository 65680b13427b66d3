package apimodels

// Verdict is the auditor's closed three-way call on a deal.
type Verdict string

const (
	VerdictGreenLight  Verdict = "Green Light"
	VerdictYellowLight Verdict = "Yellow Light"
	VerdictRedLight    Verdict = "Red Light"
)

// Valid reports whether v is one of the three allowed verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictGreenLight, VerdictYellowLight, VerdictRedLight:
		return true
	}
	return false
}

// BankerAudit is the structured output of the deal-audit persona.
type BankerAudit struct {
	Verdict         Verdict  `json:"verdict"`
	RealityCheck    string   `json:"realityCheck"`
	StressTest      string   `json:"stressTest"`
	InsiderIntel    string   `json:"insiderIntel"`
	Recommendations []string `json:"recommendations"`
	Pitch           string   `json:"pitch"`
	Closer          string   `json:"closer"`
}

// MapSource is a suggested map search backing a location analysis.
type MapSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// LocationAnalysis is the structured output of the real-estate persona.
type LocationAnalysis struct {
	Text       string      `json:"text"`
	MapSources []MapSource `json:"mapSources"`
}

// AuditMetadata describes how a single AI call went.
type AuditMetadata struct {
	// Unique id for this audit run
	AuditID string `json:"auditId"`

	// Time taken end to end
	Duration string `json:"duration"`

	// Model used for the call
	Model string `json:"model"`

	// Tokens consumed by the call
	TokensUsed int64 `json:"tokensUsed"`

	// Provider attempts made (>1 means a retry happened)
	Attempts int `json:"attempts"`
}

// AuditResponse is a banker audit plus call metadata. The audit fields stay
// at the top level of the JSON object.
type AuditResponse struct {
	BankerAudit
	Metadata AuditMetadata `json:"metadata"`
}

// LocationResponse is a location analysis plus call metadata.
type LocationResponse struct {
	LocationAnalysis
	Metadata AuditMetadata `json:"metadata"`
}

// MetricsSummary is the server-side recomputation of the deal math.
type MetricsSummary struct {
	TotalInvestment float64 `json:"totalInvestment"`
	AnnualRevenue   float64 `json:"annualRevenue"`
	NetProfit       float64 `json:"netProfit"`
	Margin          float64 `json:"margin"`
	IsViable        bool    `json:"isViable"`
}

// Health is the root health-check payload.
type Health struct {
	Status string `json:"status"`
	System string `json:"system"`
}
