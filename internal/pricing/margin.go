package pricing

// MarginInput holds the inputs of the margin calculator. MarginPercent is a
// whole percentage of the sale price.
type MarginInput struct {
	Cost          float64
	MarginPercent float64
}

// MarginResult is the sale price that yields the requested margin.
type MarginResult struct {
	Outcome
	SalePrice     float64 `json:"sale_price"`
	Profit        float64 `json:"profit"`
	MarkupPercent float64 `json:"markup_percent"`
}

// ResolveMargin computes salePrice = cost / (1 - margin/100). The margin must
// lie in the open interval (0, 100) and the cost must be positive.
func ResolveMargin(in MarginInput) MarginResult {
	if anyNegative(in.Cost, in.MarginPercent) {
		return MarginResult{Outcome: invalid(ReasonNegativeInput, negativeInputMessage)}
	}
	if in.Cost <= 0 || in.MarginPercent <= 0 || in.MarginPercent >= 100 {
		return MarginResult{Outcome: invalid(ReasonOutOfDomain, "El costo debe ser mayor a 0 y el margen estar entre 0 y 100")}
	}

	salePrice := in.Cost / (1 - in.MarginPercent/100)
	profit := salePrice - in.Cost
	markupPercent := profit / in.Cost * 100
	if !allFinite(salePrice, profit, markupPercent) {
		return MarginResult{Outcome: invalid(ReasonOutOfDomain, overflowMessage)}
	}

	return MarginResult{
		Outcome:       valid(),
		SalePrice:     salePrice,
		Profit:        profit,
		MarkupPercent: markupPercent,
	}
}

// MarkupInput holds the inputs of a markup calculation. MarkupPercent is a
// whole percentage of the cost.
type MarkupInput struct {
	Cost          float64
	MarkupPercent float64
}

// MarkupResult is the sale price obtained by adding a markup over cost.
type MarkupResult struct {
	Outcome
	SalePrice     float64 `json:"sale_price"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
}

// ResolveMarkup computes salePrice = cost * (1 + markup/100).
func ResolveMarkup(in MarkupInput) MarkupResult {
	if anyNegative(in.Cost, in.MarkupPercent) {
		return MarkupResult{Outcome: invalid(ReasonNegativeInput, negativeInputMessage)}
	}
	if in.Cost <= 0 || in.MarkupPercent <= 0 {
		return MarkupResult{Outcome: invalid(ReasonOutOfDomain, "El costo y el recargo deben ser mayores a 0")}
	}

	salePrice := in.Cost * (1 + in.MarkupPercent/100)
	profit := salePrice - in.Cost
	marginPercent := profit / salePrice * 100
	if !allFinite(salePrice, profit, marginPercent) {
		return MarkupResult{Outcome: invalid(ReasonOutOfDomain, overflowMessage)}
	}

	return MarkupResult{
		Outcome:       valid(),
		SalePrice:     salePrice,
		Profit:        profit,
		MarginPercent: marginPercent,
	}
}
