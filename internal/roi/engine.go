// Package roi estimates the financial return of automating work with agents.
package roi

import (
	"github.com/shopspring/decimal"

	"github.com/aumatic/backend-quote/internal/common"
)

// Input captures the prospect's cost structure and the automation scope.
type Input struct {
	HoursAutomatedPerWeek decimal.Decimal `json:"hoursAutomatedPerWeek"`
	HourlyCost            decimal.Decimal `json:"hourlyCost"`
	ImplementationCost    decimal.Decimal `json:"implementationCost"`
	MonthlyCost           decimal.Decimal `json:"monthlyCost"`
}

// Estimate is the computed return breakdown. PaybackMonths is zero when the
// net monthly saving is not positive, meaning the investment never pays back.
type Estimate struct {
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
	YearlySavings   decimal.Decimal `json:"yearlySavings"`
	NetMonthly      decimal.Decimal `json:"netMonthly"`
	PaybackMonths   decimal.Decimal `json:"paybackMonths"`
	FirstYearROIPct decimal.Decimal `json:"firstYearRoiPct"`
	NeverPaysBack   bool            `json:"neverPaysBack"`
}

// weeksPerMonth converts weekly effort to a monthly figure, 52 weeks over 12 months.
var (
	weeksPerMonth = decimal.RequireFromString("4.3333")
	twelve        = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Validate rejects negative figures.
func (in Input) Validate() error {
	switch {
	case in.HoursAutomatedPerWeek.IsNegative():
		return common.ValidationError("hoursAutomatedPerWeek", "must not be negative")
	case in.HourlyCost.IsNegative():
		return common.ValidationError("hourlyCost", "must not be negative")
	case in.ImplementationCost.IsNegative():
		return common.ValidationError("implementationCost", "must not be negative")
	case in.MonthlyCost.IsNegative():
		return common.ValidationError("monthlyCost", "must not be negative")
	}
	return nil
}

// Compute derives the estimate. Figures are rounded to two decimals once,
// at the boundary, matching the quote engine's rounding discipline.
func Compute(in Input) (Estimate, error) {
	if err := in.Validate(); err != nil {
		return Estimate{}, err
	}

	monthlySavings := in.HoursAutomatedPerWeek.Mul(weeksPerMonth).Mul(in.HourlyCost)
	yearlySavings := monthlySavings.Mul(twelve)
	netMonthly := monthlySavings.Sub(in.MonthlyCost)

	est := Estimate{
		MonthlySavings: monthlySavings.Round(2),
		YearlySavings:  yearlySavings.Round(2),
		NetMonthly:     netMonthly.Round(2),
	}

	if netMonthly.IsPositive() {
		if in.ImplementationCost.IsPositive() {
			est.PaybackMonths = in.ImplementationCost.Div(netMonthly).Round(2)
		}
	} else {
		est.NeverPaysBack = in.ImplementationCost.IsPositive() || netMonthly.IsNegative()
	}

	firstYearCost := in.ImplementationCost.Add(in.MonthlyCost.Mul(twelve))
	if firstYearCost.IsPositive() {
		est.FirstYearROIPct = yearlySavings.Sub(firstYearCost).Div(firstYearCost).Mul(hundred).Round(2)
	}
	return est, nil
}
