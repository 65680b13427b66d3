// Package metrics turns a franchise deal's raw line items into derived
// financial figures. Everything here is pure arithmetic: no I/O, no error
// paths, so the same numbers the AI audit sees can be checked without an
// AI call.
package metrics

import (
	"github.com/franchisepro/audit-core/api/models"
)

// TargetMargin is the net margin (percent) used when sizing the customer
// volume a deal needs to be worth doing rather than merely break even.
const TargetMargin = 15.0

// Result is the full derived snapshot for one set of line items.
type Result struct {
	TotalInvestment float64
	AnnualRevenue   float64
	VariableCosts   float64
	FixedCosts      float64
	AnnualExpenses  float64
	NetProfit       float64
	MonthlyNet      float64
	Margin          float64
	ROIYears        float64
	BreakEvenMonths float64

	RequiredDailyCustomers          float64
	RequiredDailyCustomersForMargin float64

	IsViable bool
}

// Compute derives the deal economics from its line items.
func Compute(items models.LineItems) Result {
	totalInvestment := items.FranchiseFee + items.BuildOut + items.Equipment + items.WorkingCapital
	annualRevenue := items.AvgTicket * items.DailyCustomers * float64(items.DaysOpen)

	variableRate := (items.COGSPercent + items.LaborPercent + items.RoyaltyPercent + items.MarketingPercent) / 100
	variableCosts := annualRevenue * variableRate
	fixedCosts := (items.RentMonthly + items.SalariesMonthly + items.MiscMonthly) * 12

	netProfit := annualRevenue - variableCosts - fixedCosts

	r := Result{
		TotalInvestment: totalInvestment,
		AnnualRevenue:   annualRevenue,
		VariableCosts:   variableCosts,
		FixedCosts:      fixedCosts,
		AnnualExpenses:  variableCosts + fixedCosts,
		NetProfit:       netProfit,
		MonthlyNet:      netProfit / 12,
		IsViable:        netProfit > 0,
	}

	if annualRevenue > 0 {
		r.Margin = netProfit / annualRevenue * 100
	}
	if netProfit > 0 {
		r.ROIYears = totalInvestment / netProfit
		r.BreakEvenMonths = totalInvestment / r.MonthlyNet
	}

	r.RequiredDailyCustomers = requiredDailyCustomers(items, variableRate, fixedCosts, 0)
	r.RequiredDailyCustomersForMargin = requiredDailyCustomers(items, variableRate, fixedCosts, TargetMargin/100)

	return r
}

// requiredDailyCustomers solves for the daily customer count at which
// revenue*(1-variableRate-targetMargin) covers the fixed costs. Zero when the
// ticket economics make the target unreachable.
func requiredDailyCustomers(items models.LineItems, variableRate, fixedCosts, targetMargin float64) float64 {
	keep := 1 - variableRate - targetMargin
	if keep <= 0 {
		return 0
	}
	perCustomer := items.AvgTicket * float64(items.DaysOpen)
	if perCustomer <= 0 {
		return 0
	}
	neededRevenue := fixedCosts / keep
	return neededRevenue / perCustomer
}

// Snapshot expands a Result into the caller-facing FinancialMetrics shape.
func (r Result) Snapshot(contractTerm int) models.FinancialMetrics {
	return models.FinancialMetrics{
		TotalInvestment:                 r.TotalInvestment,
		AnnualRevenue:                   r.AnnualRevenue,
		AnnualExpenses:                  r.AnnualExpenses,
		NetProfit:                       r.NetProfit,
		MonthlyNet:                      r.MonthlyNet,
		ROIYears:                        r.ROIYears,
		BreakEvenMonths:                 r.BreakEvenMonths,
		Margin:                          r.Margin,
		ContractTerm:                    contractTerm,
		RequiredDailyCustomers:          r.RequiredDailyCustomers,
		RequiredDailyCustomersForMargin: r.RequiredDailyCustomersForMargin,
	}
}
