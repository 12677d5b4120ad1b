package pricing

// DiscountInput holds the inputs of the offer calculator.
type DiscountInput struct {
	OriginalPrice   float64
	ProductCost     float64
	DiscountPercent float64
}

// DiscountResult describes the price after a discount and what is left of
// the margin.
type DiscountResult struct {
	Outcome
	DiscountAmount float64 `json:"savings"`
	FinalPrice     float64 `json:"final_price"`
	Profit         float64 `json:"profit"`
	ProfitPercent  float64 `json:"profit_percent"`
	IsLoss         bool    `json:"is_loss"`
}

// ResolveDiscount applies DiscountPercent to OriginalPrice. The discount is
// not bounded here; callers that take it from a slider clamp it to [0, 100].
// ProfitPercent is zero when the final price is not positive.
func ResolveDiscount(in DiscountInput) DiscountResult {
	if anyNegative(in.OriginalPrice, in.ProductCost) {
		return DiscountResult{Outcome: invalid(ReasonNegativeInput, negativeInputMessage)}
	}
	if !allFinite(in.DiscountPercent) {
		return DiscountResult{Outcome: invalid(ReasonOutOfDomain, "El descuento debe ser un número")}
	}

	discountAmount := in.OriginalPrice * in.DiscountPercent / 100
	finalPrice := in.OriginalPrice - discountAmount
	profit := finalPrice - in.ProductCost

	profitPercent := 0.0
	if finalPrice > 0 {
		profitPercent = profit / finalPrice * 100
	}
	if !allFinite(discountAmount, finalPrice, profit, profitPercent) {
		return DiscountResult{Outcome: invalid(ReasonOutOfDomain, overflowMessage)}
	}

	return DiscountResult{
		Outcome:        valid(),
		DiscountAmount: discountAmount,
		FinalPrice:     finalPrice,
		Profit:         profit,
		ProfitPercent:  profitPercent,
		IsLoss:         profit < 0,
	}
}
