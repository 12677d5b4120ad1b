package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestResolveMargin_ThirtyPercentOnHundred(t *testing.T) {
	result := ResolveMargin(MarginInput{Cost: 100, MarginPercent: 30})

	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Outcome)
	}
	nearlyEqual(t, "salePrice", result.SalePrice, 142.857142857)
	nearlyEqual(t, "profit", result.Profit, 42.857142857)
	nearlyEqual(t, "markupPercent", result.MarkupPercent, 42.857142857)
}

func TestResolveMargin_MarginIsMeasuredOnSalePrice(t *testing.T) {
	for _, cost := range []float64{0.5, 1, 99.99, 1500, 1e6} {
		for _, m := range []float64{0.1, 5, 30, 50, 75.5, 99} {
			result := ResolveMargin(MarginInput{Cost: cost, MarginPercent: m})
			if !result.Valid {
				t.Fatalf("cost=%v margin=%v: expected valid result", cost, m)
			}
			nearlyEqual(t, "achieved margin", result.Profit/result.SalePrice*100, m)
		}
	}
}

func TestResolveMargin_OpenIntervalBoundaries(t *testing.T) {
	cases := []MarginInput{
		{Cost: 100, MarginPercent: 0},
		{Cost: 100, MarginPercent: 100},
		{Cost: 100, MarginPercent: 150},
		{Cost: 0, MarginPercent: 30},
	}

	for _, in := range cases {
		result := ResolveMargin(in)
		if result.Valid || result.Reason != ReasonOutOfDomain {
			t.Fatalf("%+v: expected out of domain, got %+v", in, result.Outcome)
		}
		if result.SalePrice != 0 || result.Profit != 0 {
			t.Fatalf("%+v: expected neutral zero, got %+v", in, result)
		}
	}
}

func TestResolveMargin_RejectsNegativeInput(t *testing.T) {
	result := ResolveMargin(MarginInput{Cost: -100, MarginPercent: 30})
	if result.Valid || result.Reason != ReasonNegativeInput {
		t.Fatalf("expected negative input reason, got %+v", result.Outcome)
	}
	if result.SalePrice != 0 {
		t.Fatalf("expected zero sale price, got %v", result.SalePrice)
	}
}

func TestResolveMarkup_DiffersFromMargin(t *testing.T) {
	markup := ResolveMarkup(MarkupInput{Cost: 100, MarkupPercent: 30})
	margin := ResolveMargin(MarginInput{Cost: 100, MarginPercent: 30})

	nearlyEqual(t, "markup salePrice", markup.SalePrice, 130)
	nearlyEqual(t, "markup profit", markup.Profit, 30)
	nearlyEqual(t, "markup marginPercent", markup.MarginPercent, 23.076923077)
	if markup.SalePrice >= margin.SalePrice {
		t.Fatalf("a 30%% markup should price below a 30%% margin: %v >= %v", markup.SalePrice, margin.SalePrice)
	}
}

func TestResolveDiscount_TwentyPercent(t *testing.T) {
	result := ResolveDiscount(DiscountInput{OriginalPrice: 10000, ProductCost: 5000, DiscountPercent: 20})

	nearlyEqual(t, "finalPrice", result.FinalPrice, 8000)
	nearlyEqual(t, "savings", result.DiscountAmount, 2000)
	nearlyEqual(t, "profit", result.Profit, 3000)
	nearlyEqual(t, "profitPercent", result.ProfitPercent, 37.5)
	if result.IsLoss {
		t.Fatalf("expected no loss")
	}
}

func TestResolveDiscount_LossAndFullDiscount(t *testing.T) {
	loss := ResolveDiscount(DiscountInput{OriginalPrice: 10000, ProductCost: 9000, DiscountPercent: 50})
	if !loss.IsLoss || !loss.Valid {
		t.Fatalf("expected valid loss result, got %+v", loss)
	}
	nearlyEqual(t, "loss profit", loss.Profit, -4000)

	free := ResolveDiscount(DiscountInput{OriginalPrice: 10000, ProductCost: 1000, DiscountPercent: 100})
	nearlyEqual(t, "free finalPrice", free.FinalPrice, 0)
	nearlyEqual(t, "free profitPercent", free.ProfitPercent, 0)
	if !free.IsLoss {
		t.Fatalf("giving the product away below cost should be a loss")
	}
}

func TestResolveDiscount_RejectsNegativePrice(t *testing.T) {
	result := ResolveDiscount(DiscountInput{OriginalPrice: -1, ProductCost: 0, DiscountPercent: 10})
	if result.Valid || result.Reason != ReasonNegativeInput {
		t.Fatalf("expected negative input reason, got %+v", result.Outcome)
	}
}

func TestResolveBreakEven_FiftyUnits(t *testing.T) {
	result := ResolveBreakEven(BreakEvenInput{FixedCosts: 500000, VariableCostPerUnit: 5000, PricePerUnit: 15000})

	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Outcome)
	}
	nearlyEqual(t, "contributionMargin", result.ContributionMargin, 10000)
	nearlyEqual(t, "units", result.Units, 50)
	nearlyEqual(t, "revenue", result.Revenue, 750000)
	nearlyEqual(t, "contributionMarginPercent", result.ContributionMarginPercent, 66.666666667)
}

func TestResolveBreakEven_RoundsUnitsUp(t *testing.T) {
	result := ResolveBreakEven(BreakEvenInput{FixedCosts: 1001, VariableCostPerUnit: 0, PricePerUnit: 10})
	nearlyEqual(t, "units", result.Units, 101)
	nearlyEqual(t, "revenue", result.Revenue, 1010)
}

func TestResolveBreakEven_InvalidWhenPriceNotAboveVariable(t *testing.T) {
	cases := []BreakEvenInput{
		{FixedCosts: 0, VariableCostPerUnit: 0, PricePerUnit: 0},
		{FixedCosts: 1000, VariableCostPerUnit: 50, PricePerUnit: 50},
		{FixedCosts: 1000, VariableCostPerUnit: 80, PricePerUnit: 50},
		{FixedCosts: 123456, VariableCostPerUnit: 1e9, PricePerUnit: 1},
	}

	for _, in := range cases {
		result := ResolveBreakEven(in)
		if result.Valid {
			t.Fatalf("%+v: expected invalid result", in)
		}
		if result.Reason != ReasonNonPositiveContribution || result.Message == "" {
			t.Fatalf("%+v: unexpected outcome %+v", in, result.Outcome)
		}
		if result.Units != 0 || result.Revenue != 0 {
			t.Fatalf("%+v: expected zero values, got %+v", in, result)
		}
		if result.Scenarios() != nil {
			t.Fatalf("%+v: invalid result should have no scenarios", in)
		}
	}
}

func TestBreakEvenScenarios(t *testing.T) {
	result := ResolveBreakEven(BreakEvenInput{FixedCosts: 500000, VariableCostPerUnit: 5000, PricePerUnit: 15000})
	scenarios := result.Scenarios()

	if len(scenarios) != 4 {
		t.Fatalf("expected 4 scenarios, got %d", len(scenarios))
	}
	wantQty := []float64{50, 60, 75, 100}
	wantProfit := []float64{0, 100000, 250000, 500000}
	for i, s := range scenarios {
		nearlyEqual(t, s.Label+" quantity", s.Quantity, wantQty[i])
		nearlyEqual(t, s.Label+" profit", s.Profit, wantProfit[i])
	}
}

func TestResolvePricing_Manufacturer(t *testing.T) {
	result := ResolvePricing(ModeManufacturer, CostComponents{ProductionCost: 5000, OperatingCosts: 2000}, 30)

	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Outcome)
	}
	nearlyEqual(t, "totalCost", result.TotalCost, 7000)
	nearlyEqual(t, "salePrice", result.SalePrice, 10000)
	nearlyEqual(t, "profit", result.Profit, 3000)
	nearlyEqual(t, "margin", result.Margin, 30)
	if result.LowMargin() {
		t.Fatalf("30%% should not be flagged as low margin")
	}
}

func TestResolvePricing_ResellerIgnoresManufacturerFields(t *testing.T) {
	costs := CostComponents{ProductionCost: 999, OperatingCosts: 999, PurchasePrice: 5000, ShippingCost: 1000}
	result := ResolvePricing(ModeReseller, costs, 40)

	nearlyEqual(t, "totalCost", result.TotalCost, 6000)
	nearlyEqual(t, "salePrice", result.SalePrice, 10000)
	nearlyEqual(t, "profit", result.Profit, 4000)
}

func TestResolvePricing_MarginBoundsPerMode(t *testing.T) {
	costs := CostComponents{ProductionCost: 100, PurchasePrice: 100}

	if r := ResolvePricing(ModeManufacturer, costs, 75); r.Valid || r.Reason != ReasonMarginOutOfBounds {
		t.Fatalf("manufacturer 75%%: expected out of bounds, got %+v", r.Outcome)
	}
	if r := ResolvePricing(ModeReseller, costs, 75); !r.Valid {
		t.Fatalf("reseller 75%%: expected valid, got %+v", r.Outcome)
	}
	if r := ResolvePricing(ModeReseller, costs, 10); r.Valid || r.Reason != ReasonMarginOutOfBounds {
		t.Fatalf("reseller 10%%: expected out of bounds, got %+v", r.Outcome)
	}
}

func TestResolvePricing_CustomPresetsAndUnknownMode(t *testing.T) {
	resolver := NewResolver(Presets{ModeManufacturer: {MinMargin: 5, MaxMargin: 90, DefaultMargin: 50}})

	r := resolver.ResolvePricing(ModeManufacturer, CostComponents{ProductionCost: 100}, 5)
	if !r.Valid || !r.LowMargin() {
		t.Fatalf("expected valid low margin result, got %+v", r)
	}
	if b, ok := resolver.Bounds(ModeReseller); !ok || b.MaxMargin != 80 {
		t.Fatalf("reseller should keep default bounds, got %+v", b)
	}

	unknown := resolver.ResolvePricing(Mode("wholesale"), CostComponents{}, 30)
	if unknown.Valid || unknown.Reason != ReasonUnknownMode {
		t.Fatalf("expected unknown mode, got %+v", unknown.Outcome)
	}
}

func TestResolvePricing_ZeroCostYieldsNeutralZero(t *testing.T) {
	r := ResolvePricing(ModeManufacturer, CostComponents{}, 30)
	if r.Valid || r.SalePrice != 0 || r.Profit != 0 {
		t.Fatalf("expected invalid zero result, got %+v", r)
	}
}

func TestPricingProjection(t *testing.T) {
	r := ResolvePricing(ModeManufacturer, CostComponents{ProductionCost: 5000, OperatingCosts: 2000}, 30)

	rows := r.Projection()
	if len(rows) != 3 {
		t.Fatalf("expected default 3 rows, got %d", len(rows))
	}
	nearlyEqual(t, "100 units revenue", rows[2].Revenue, 1000000)
	nearlyEqual(t, "100 units profit", rows[2].Profit, 300000)

	custom := r.Projection(7)
	if len(custom) != 1 {
		t.Fatalf("expected 1 row, got %d", len(custom))
	}
	nearlyEqual(t, "7 units revenue", custom[0].Revenue, 70000)
}

func TestBoundsValidate(t *testing.T) {
	for _, b := range DefaultPresets() {
		if err := b.Validate(); err != nil {
			t.Fatalf("default bounds invalid: %v", err)
		}
	}
	bad := []Bounds{
		{MinMargin: 0, MaxMargin: 50, DefaultMargin: 20},
		{MinMargin: 10, MaxMargin: 100, DefaultMargin: 20},
		{MinMargin: 60, MaxMargin: 50, DefaultMargin: 55},
		{MinMargin: 10, MaxMargin: 50, DefaultMargin: 55},
	}
	for _, b := range bad {
		if err := b.Validate(); err == nil {
			t.Fatalf("%+v: expected validation error", b)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("reseller"); err != nil || m != ModeReseller {
		t.Fatalf("ParseMode(reseller) = %v, %v", m, err)
	}
	if _, err := ParseMode("retail"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestResolversAreIdempotent(t *testing.T) {
	if ResolveMargin(MarginInput{Cost: 123.45, MarginPercent: 33.3}) != ResolveMargin(MarginInput{Cost: 123.45, MarginPercent: 33.3}) {
		t.Fatalf("ResolveMargin is not deterministic")
	}
	if ResolveDiscount(DiscountInput{OriginalPrice: 999, ProductCost: 444, DiscountPercent: 17}) != ResolveDiscount(DiscountInput{OriginalPrice: 999, ProductCost: 444, DiscountPercent: 17}) {
		t.Fatalf("ResolveDiscount is not deterministic")
	}
	in := BreakEvenInput{FixedCosts: 77777, VariableCostPerUnit: 13, PricePerUnit: 29}
	if ResolveBreakEven(in) != ResolveBreakEven(in) {
		t.Fatalf("ResolveBreakEven is not deterministic")
	}
	costs := CostComponents{PurchasePrice: 3210, ShippingCost: 45}
	if ResolvePricing(ModeReseller, costs, 45) != ResolvePricing(ModeReseller, costs, 45) {
		t.Fatalf("ResolvePricing is not deterministic")
	}
}

func TestResolversRejectNonFiniteResults(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name    string
		resolve func() (Outcome, []float64)
		reason  Reason
	}{
		{"margin overflow", func() (Outcome, []float64) {
			r := ResolveMargin(MarginInput{Cost: 1e307, MarginPercent: 99.99})
			return r.Outcome, []float64{r.SalePrice, r.Profit, r.MarkupPercent}
		}, ReasonOutOfDomain},
		{"margin nan cost", func() (Outcome, []float64) {
			r := ResolveMargin(MarginInput{Cost: nan, MarginPercent: 30})
			return r.Outcome, []float64{r.SalePrice, r.Profit, r.MarkupPercent}
		}, ReasonNegativeInput},
		{"markup overflow", func() (Outcome, []float64) {
			r := ResolveMarkup(MarkupInput{Cost: 1e308, MarkupPercent: 100})
			return r.Outcome, []float64{r.SalePrice, r.Profit, r.MarginPercent}
		}, ReasonOutOfDomain},
		{"discount overflow", func() (Outcome, []float64) {
			r := ResolveDiscount(DiscountInput{OriginalPrice: 1.7e308, ProductCost: 0, DiscountPercent: 100})
			return r.Outcome, []float64{r.DiscountAmount, r.FinalPrice, r.Profit, r.ProfitPercent}
		}, ReasonOutOfDomain},
		{"discount nan percent", func() (Outcome, []float64) {
			r := ResolveDiscount(DiscountInput{OriginalPrice: 100, ProductCost: 50, DiscountPercent: nan})
			return r.Outcome, []float64{r.DiscountAmount, r.FinalPrice, r.Profit, r.ProfitPercent}
		}, ReasonOutOfDomain},
		{"discount nan cost", func() (Outcome, []float64) {
			r := ResolveDiscount(DiscountInput{OriginalPrice: 100, ProductCost: nan, DiscountPercent: 10})
			return r.Outcome, []float64{r.DiscountAmount, r.FinalPrice, r.Profit, r.ProfitPercent}
		}, ReasonNegativeInput},
		{"break-even overflow", func() (Outcome, []float64) {
			r := ResolveBreakEven(BreakEvenInput{FixedCosts: 1e300, VariableCostPerUnit: 0, PricePerUnit: 1e-10})
			return r.Outcome, []float64{r.Units, r.Revenue, r.ContributionMargin, r.ContributionMarginPercent}
		}, ReasonOutOfDomain},
		{"break-even infinite price", func() (Outcome, []float64) {
			r := ResolveBreakEven(BreakEvenInput{FixedCosts: 1000, VariableCostPerUnit: 10, PricePerUnit: math.Inf(1)})
			return r.Outcome, []float64{r.Units, r.Revenue, r.ContributionMargin, r.ContributionMarginPercent}
		}, ReasonOutOfDomain},
		{"break-even nan fixed costs", func() (Outcome, []float64) {
			r := ResolveBreakEven(BreakEvenInput{FixedCosts: nan, VariableCostPerUnit: 10, PricePerUnit: 20})
			return r.Outcome, []float64{r.Units, r.Revenue, r.ContributionMargin, r.ContributionMarginPercent}
		}, ReasonNegativeInput},
		{"pricing overflow", func() (Outcome, []float64) {
			r := ResolvePricing(ModeManufacturer, CostComponents{ProductionCost: 1e308, OperatingCosts: 1e308}, 30)
			return r.Outcome, []float64{r.TotalCost, r.SalePrice, r.Profit, r.Margin}
		}, ReasonOutOfDomain},
		{"pricing nan margin", func() (Outcome, []float64) {
			r := ResolvePricing(ModeReseller, CostComponents{PurchasePrice: 100}, nan)
			return r.Outcome, []float64{r.TotalCost, r.SalePrice, r.Profit, r.Margin}
		}, ReasonNegativeInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, values := tc.resolve()
			if outcome.Valid {
				t.Fatalf("expected invalid result, got %+v %v", outcome, values)
			}
			if outcome.Reason != tc.reason {
				t.Fatalf("reason = %q, want %q", outcome.Reason, tc.reason)
			}
			for i, v := range values {
				if v != 0 {
					t.Fatalf("field %d = %v, want 0", i, v)
				}
			}
		})
	}
}

func TestBreakEvenLargeButFiniteStaysValid(t *testing.T) {
	r := ResolveBreakEven(BreakEvenInput{FixedCosts: 1e200, VariableCostPerUnit: 0, PricePerUnit: 1})
	if !r.Valid {
		t.Fatalf("expected valid result, got %+v", r)
	}
	for _, s := range r.Scenarios() {
		if math.IsInf(s.Quantity, 0) || math.IsInf(s.Profit, 0) {
			t.Fatalf("scenario %q is not finite: %+v", s.Label, s)
		}
	}
}

func TestPricingProjectionOverflowIsNil(t *testing.T) {
	p := PricingResult{Outcome: valid(), SalePrice: 1e307, Profit: 1e306}
	if rows := p.Projection(); rows != nil {
		t.Fatalf("expected nil projection, got %+v", rows)
	}
}
