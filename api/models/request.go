package models

// FinancialMetrics is the derived snapshot of a franchise deal's economics,
// supplied by the caller alongside the raw inputs it was derived from.
type FinancialMetrics struct {
	TotalInvestment float64 `json:"totalInvestment"`
	AnnualRevenue   float64 `json:"annualRevenue"`
	AnnualExpenses  float64 `json:"annualExpenses"`
	NetProfit       float64 `json:"netProfit"`
	MonthlyNet      float64 `json:"monthlyNet"`
	ROIYears        float64 `json:"roiYears"`
	BreakEvenMonths float64 `json:"breakEvenMonths"`
	Margin          float64 `json:"margin"`
	ContractTerm    int     `json:"contractTerm"`

	RequiredDailyCustomers          float64 `json:"requiredDailyCustomers"`
	RequiredDailyCustomersForMargin float64 `json:"requiredDailyCustomersForMargin"`
}

// AuditRequest asks for a banker-style audit of a single deal. Metrics is a
// pointer so a body that omits it entirely can be told apart from one with
// zero figures and rejected up front.
type AuditRequest struct {
	Metrics  *FinancialMetrics `json:"metrics"`
	Industry string            `json:"industry"`
	Location string            `json:"location"`

	// DetailedInputs carries whatever granular figures the caller wants the
	// auditor to see. Values are the decoded JSON scalar/object/array set.
	DetailedInputs map[string]any `json:"detailedInputs"`
}

// LocationRequest asks for location intelligence for an industry in a city.
type LocationRequest struct {
	Query    string `json:"query"`
	Industry string `json:"industry"`
}

// LineItems are the granular cost and revenue drivers of a franchise deal.
// They exist only to be turned into metrics; they are never stored.
type LineItems struct {
	FranchiseFee   float64 `json:"franchiseFee"`
	BuildOut       float64 `json:"buildOut"`
	Equipment      float64 `json:"equipment"`
	WorkingCapital float64 `json:"workingCapital"`

	AvgTicket      float64 `json:"avgTicket"`
	DailyCustomers float64 `json:"dailyCust"`
	DaysOpen       int     `json:"daysOpen"`

	RentMonthly     float64 `json:"rentMonthly"`
	SalariesMonthly float64 `json:"salariesMonthly"`
	MiscMonthly     float64 `json:"miscMonthly"`

	COGSPercent      float64 `json:"cogsPercent"`
	LaborPercent     float64 `json:"laborPercent"`
	RoyaltyPercent   float64 `json:"royaltyPercent"`
	MarketingPercent float64 `json:"marketingPercent"`
}
