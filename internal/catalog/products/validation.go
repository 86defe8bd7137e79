package products

import (
	"time"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

// Validate runs the field-level rules in a fixed order: supplier presence,
// price, quantity, then the variant temporal rule. The first failure is the
// one surfaced to the caller.
func Validate(v variant, p Product, now time.Time) error {
	if p.SupplierID == 0 {
		return shared.ErrMissingSupplier
	}
	if p.Price < 0 {
		return shared.Invalid("price", "the price cannot be negative")
	}
	if p.Quantity < 0 {
		return shared.Invalid("quantity", "the quantity cannot be negative")
	}
	if p.Date().IsZero() {
		return shared.InvalidTemporal(v.dateField, "the "+v.dateField+" is required")
	}
	return v.checkDate(dateOnly(now), dateOnly(p.Date()))
}
