package products

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// An empty secondary attribute is a legal stored value. The binding must keep
// it as '' rather than degrade it to NULL, which the schema's per-variant
// checks would reject.
func TestVariantBindingsEmptySecondary(t *testing.T) {
	expiry := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)

	m := medicine(1, expiry)
	m.Manufacturer = ""
	manufacturer, exp, warranty, purchase := variantBindings(m)
	require.NotNil(t, manufacturer)
	require.Equal(t, "", *manufacturer)
	require.NotNil(t, exp)
	require.Nil(t, warranty)
	require.Nil(t, purchase)

	e := equipment(1, expiry)
	e.Warranty = ""
	manufacturer, exp, warranty, purchase = variantBindings(e)
	require.Nil(t, manufacturer)
	require.Nil(t, exp)
	require.NotNil(t, warranty)
	require.Equal(t, "", *warranty)
	require.NotNil(t, purchase)
}

func TestVariantBindingsDropOtherVariantColumns(t *testing.T) {
	expiry := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)

	m := medicine(1, expiry)
	m.Warranty = "2 years"
	m.PurchaseDate = expiry
	_, _, warranty, purchase := variantBindings(m)
	require.Nil(t, warranty)
	require.Nil(t, purchase)
}
