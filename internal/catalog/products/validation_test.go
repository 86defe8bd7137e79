package products

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

func TestValidateOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	v := variants[KindMedicine]

	// Everything wrong at once: the supplier check wins.
	p := Product{Kind: KindMedicine, Price: -1, Quantity: -1}
	require.ErrorIs(t, Validate(v, p, now), shared.ErrMissingSupplier)

	// Price is reported before quantity.
	p.SupplierID = 1
	err := Validate(v, p, now)
	require.ErrorIs(t, err, shared.ErrInvalidField)
	require.Equal(t, "the price cannot be negative", err.Error())

	// Quantity is reported before the temporal rule.
	p.Price = 1
	err = Validate(v, p, now)
	require.Equal(t, "the quantity cannot be negative", err.Error())

	p.Quantity = 1
	err = Validate(v, p, now)
	require.ErrorIs(t, err, shared.ErrInvalidTemporal)
}

func TestValidateMissingDate(t *testing.T) {
	now := time.Now()

	p := Product{Kind: KindEquipment, SupplierID: 1, Price: 1, Quantity: 1}
	err := Validate(variants[KindEquipment], p, now)
	require.ErrorIs(t, err, shared.ErrInvalidTemporal)
	require.Equal(t, "the purchase date is required", err.Error())
}

func TestVariantOf(t *testing.T) {
	_, err := variantOf(Kind("gadget"))
	require.ErrorIs(t, err, shared.ErrInvalidField)

	v, err := variantOf(KindEquipment)
	require.NoError(t, err)
	require.Equal(t, "warranty", v.secondaryField)
}
