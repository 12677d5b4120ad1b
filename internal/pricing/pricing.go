package pricing

import "fmt"

// Mode selects which cost composition feeds the sale price.
type Mode string

const (
	ModeManufacturer Mode = "manufacturer"
	ModeReseller     Mode = "reseller"
)

// LowMarginThreshold is the margin percent under which a price is flagged.
const LowMarginThreshold = 20.0

// DefaultProjectionQuantities are the unit volumes shown in a sales projection.
var DefaultProjectionQuantities = []float64{10, 50, 100}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeManufacturer, ModeReseller:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown pricing mode %q", s)
	}
}

// Bounds are the inclusive margin limits and default margin of a mode.
type Bounds struct {
	MinMargin     float64 `json:"min_margin" yaml:"min_margin"`
	MaxMargin     float64 `json:"max_margin" yaml:"max_margin"`
	DefaultMargin float64 `json:"default_margin" yaml:"default_margin"`
}

// Contains reports whether margin lies within the bounds.
func (b Bounds) Contains(margin float64) bool {
	return margin >= b.MinMargin && margin <= b.MaxMargin
}

// Validate checks that the bounds stay inside (0, 100) and hold the default.
func (b Bounds) Validate() error {
	if b.MinMargin <= 0 || b.MaxMargin >= 100 {
		return fmt.Errorf("margin bounds must lie in (0, 100), got [%v, %v]", b.MinMargin, b.MaxMargin)
	}
	if b.MinMargin > b.MaxMargin {
		return fmt.Errorf("min margin %v exceeds max margin %v", b.MinMargin, b.MaxMargin)
	}
	if !b.Contains(b.DefaultMargin) {
		return fmt.Errorf("default margin %v outside [%v, %v]", b.DefaultMargin, b.MinMargin, b.MaxMargin)
	}
	return nil
}

// Presets maps each mode to its margin bounds.
type Presets map[Mode]Bounds

// DefaultPresets returns the built-in bounds for every mode.
func DefaultPresets() Presets {
	return Presets{
		ModeManufacturer: {MinMargin: 10, MaxMargin: 70, DefaultMargin: 30},
		ModeReseller:     {MinMargin: 15, MaxMargin: 80, DefaultMargin: 40},
	}
}

// CostComponents carries the inputs of both modes; only the pair belonging
// to the selected mode is read.
type CostComponents struct {
	ProductionCost float64 `json:"production_cost"`
	OperatingCosts float64 `json:"operating_costs"`
	PurchasePrice  float64 `json:"purchase_price"`
	ShippingCost   float64 `json:"shipping_cost"`
}

// TotalCost sums the components used by mode.
func (c CostComponents) TotalCost(mode Mode) float64 {
	if mode == ModeReseller {
		return c.PurchasePrice + c.ShippingCost
	}
	return c.ProductionCost + c.OperatingCosts
}

func (c CostComponents) active(mode Mode) []float64 {
	if mode == ModeReseller {
		return []float64{c.PurchasePrice, c.ShippingCost}
	}
	return []float64{c.ProductionCost, c.OperatingCosts}
}

// PricingResult is the sale price for a mode at the requested margin.
type PricingResult struct {
	Outcome
	Mode      Mode    `json:"mode"`
	TotalCost float64 `json:"total_cost"`
	SalePrice float64 `json:"sale_price"`
	Profit    float64 `json:"profit"`
	Margin    float64 `json:"margin"`
}

// ProjectionRow is the revenue and profit at a given sales volume.
type ProjectionRow struct {
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// Resolver prices products for both modes within configured margin bounds.
type Resolver struct {
	presets Presets
}

// NewResolver returns a Resolver using presets. Modes missing from presets
// fall back to DefaultPresets.
func NewResolver(presets Presets) *Resolver {
	merged := DefaultPresets()
	for mode, b := range presets {
		merged[mode] = b
	}
	return &Resolver{presets: merged}
}

// Bounds returns the margin bounds of mode.
func (r *Resolver) Bounds(mode Mode) (Bounds, bool) {
	b, ok := r.presets[mode]
	return b, ok
}

// ResolvePricing computes the sale price of mode using the margin formula
// over the mode's total cost.
func (r *Resolver) ResolvePricing(mode Mode, costs CostComponents, marginPercent float64) PricingResult {
	bounds, ok := r.presets[mode]
	if !ok {
		return PricingResult{Mode: mode, Outcome: invalid(ReasonUnknownMode, fmt.Sprintf("Modo desconocido: %s", mode))}
	}
	if anyNegative(append(costs.active(mode), marginPercent)...) {
		return PricingResult{Mode: mode, Outcome: invalid(ReasonNegativeInput, negativeInputMessage)}
	}
	if !bounds.Contains(marginPercent) {
		return PricingResult{
			Mode:    mode,
			Outcome: invalid(ReasonMarginOutOfBounds, fmt.Sprintf("El margen debe estar entre %.0f%% y %.0f%%", bounds.MinMargin, bounds.MaxMargin)),
		}
	}

	totalCost := costs.TotalCost(mode)
	m := ResolveMargin(MarginInput{Cost: totalCost, MarginPercent: marginPercent})
	if !m.Valid {
		return PricingResult{Mode: mode, Outcome: m.Outcome}
	}

	return PricingResult{
		Outcome:   valid(),
		Mode:      mode,
		TotalCost: totalCost,
		SalePrice: m.SalePrice,
		Profit:    m.Profit,
		Margin:    marginPercent,
	}
}

// LowMargin reports whether a valid price leaves less than LowMarginThreshold.
func (p PricingResult) LowMargin() bool {
	return p.Valid && p.Margin < LowMarginThreshold
}

// Projection returns revenue and profit for each quantity, or for
// DefaultProjectionQuantities when none are given. A projection that would
// overflow is nil.
func (p PricingResult) Projection(quantities ...float64) []ProjectionRow {
	if !p.Valid {
		return nil
	}
	if len(quantities) == 0 {
		quantities = DefaultProjectionQuantities
	}

	rows := make([]ProjectionRow, 0, len(quantities))
	for _, qty := range quantities {
		row := ProjectionRow{
			Quantity: qty,
			Revenue:  p.SalePrice * qty,
			Profit:   p.Profit * qty,
		}
		if !allFinite(row.Quantity, row.Revenue, row.Profit) {
			return nil
		}
		rows = append(rows, row)
	}
	return rows
}

var defaultResolver = NewResolver(nil)

// ResolvePricing prices mode with the built-in presets.
func ResolvePricing(mode Mode, costs CostComponents, marginPercent float64) PricingResult {
	return defaultResolver.ResolvePricing(mode, costs, marginPercent)
}
