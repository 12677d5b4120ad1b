package pricing

import "math"

// Reason classifies why a calculation produced no result.
type Reason string

const (
	ReasonNone                    Reason = ""
	ReasonOutOfDomain             Reason = "out_of_domain"
	ReasonNegativeInput           Reason = "negative_input"
	ReasonNonPositiveContribution Reason = "non_positive_contribution"
	ReasonMarginOutOfBounds       Reason = "margin_out_of_bounds"
	ReasonUnknownMode             Reason = "unknown_mode"
)

// Outcome is attached to every result. When Valid is false all numeric
// fields of the result are zero.
type Outcome struct {
	Valid   bool   `json:"is_valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func valid() Outcome {
	return Outcome{Valid: true}
}

func invalid(reason Reason, message string) Outcome {
	return Outcome{Reason: reason, Message: message}
}

// allFinite reports whether none of values is NaN or infinite.
func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// anyNegative also flags NaN, which compares false against every bound.
func anyNegative(values ...float64) bool {
	for _, v := range values {
		if !(v >= 0) {
			return true
		}
	}
	return false
}

const (
	negativeInputMessage = "Los montos no pueden ser negativos"
	overflowMessage      = "Los montos son demasiado grandes para calcular"
)
