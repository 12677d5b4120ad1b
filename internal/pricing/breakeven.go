package pricing

import "math"

// BreakEvenInput holds the inputs of the break-even calculator.
type BreakEvenInput struct {
	FixedCosts          float64
	VariableCostPerUnit float64
	PricePerUnit        float64
}

// BreakEvenResult is the whole number of units needed to cover fixed costs.
type BreakEvenResult struct {
	Outcome
	Units                     float64 `json:"units"`
	Revenue                   float64 `json:"revenue"`
	ContributionMargin        float64 `json:"contribution_margin"`
	ContributionMarginPercent float64 `json:"contribution_margin_percent"`
}

// Scenario is a projected sales volume and the profit it leaves above the
// break-even point.
type Scenario struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Profit   float64 `json:"profit"`
}

// ResolveBreakEven requires PricePerUnit > VariableCostPerUnit. Units are
// rounded up since a fraction of a unit cannot be sold.
func ResolveBreakEven(in BreakEvenInput) BreakEvenResult {
	if anyNegative(in.FixedCosts, in.VariableCostPerUnit, in.PricePerUnit) {
		return BreakEvenResult{Outcome: invalid(ReasonNegativeInput, negativeInputMessage)}
	}
	if in.PricePerUnit <= in.VariableCostPerUnit {
		return BreakEvenResult{Outcome: invalid(ReasonNonPositiveContribution, "El precio debe ser mayor al costo variable")}
	}

	contributionMargin := in.PricePerUnit - in.VariableCostPerUnit
	units := math.Ceil(in.FixedCosts / contributionMargin)
	revenue := units * in.PricePerUnit
	contributionPercent := contributionMargin / in.PricePerUnit * 100
	// Scenarios double the volume, so that must stay finite too.
	if !allFinite(contributionMargin, units, units*2, revenue, contributionPercent, units*contributionMargin) {
		return BreakEvenResult{Outcome: invalid(ReasonOutOfDomain, overflowMessage)}
	}

	return BreakEvenResult{
		Outcome:                   valid(),
		Units:                     units,
		Revenue:                   revenue,
		ContributionMargin:        contributionMargin,
		ContributionMarginPercent: contributionPercent,
	}
}

// Scenarios projects profit at the break-even point, +20% and +50% sales,
// and at double the break-even volume. An invalid result has no scenarios.
func (r BreakEvenResult) Scenarios() []Scenario {
	if !r.Valid {
		return nil
	}

	scenarios := []Scenario{
		{Label: "En el punto de equilibrio", Quantity: r.Units},
		{Label: "+20% de ventas", Quantity: math.Ceil(r.Units * 1.2)},
		{Label: "+50% de ventas", Quantity: math.Ceil(r.Units * 1.5)},
		{Label: "Duplicando ventas", Quantity: r.Units * 2},
	}
	for i := range scenarios {
		profit := (scenarios[i].Quantity - r.Units) * r.ContributionMargin
		if profit > 0 {
			scenarios[i].Profit = profit
		}
	}
	return scenarios
}
