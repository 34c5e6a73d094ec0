package quote

import (
	"github.com/aumatic/backend-quote/internal/common"
)

// Limits bounds the free-form parts of a selection before computation.
type Limits struct {
	MaxValidityDays     int
	DefaultValidityDays int
	DefaultCurrency     string
}

// ValidateSelection checks shape constraints and fills defaults in place.
// Referential checks (unknown ids/keys) belong to Compute, not here.
func ValidateSelection(sel *Selection, lim Limits) error {
	sel.Normalize()

	if sel.Currency == "" {
		sel.Currency = lim.DefaultCurrency
	}
	if len(sel.Currency) != 3 {
		return common.ValidationError("currency", "currency must be a 3-letter ISO code")
	}
	for _, c := range sel.Currency {
		if c < 'A' || c > 'Z' {
			return common.ValidationError("currency", "currency must be uppercase letters")
		}
	}

	if sel.ValidityDays == 0 {
		sel.ValidityDays = lim.DefaultValidityDays
	}
	if sel.ValidityDays <= 0 {
		return common.ValidationError("validityDays", "validityDays must be positive")
	}
	if lim.MaxValidityDays > 0 && sel.ValidityDays > lim.MaxValidityDays {
		return common.ValidationError("validityDays", "validityDays exceeds the allowed maximum")
	}
	return nil
}
