package products

import (
	"time"
)

// Kind discriminates the two product variants.
type Kind string

const (
	// KindMedicine tags medicine products.
	KindMedicine Kind = "medicine"
	// KindEquipment tags equipment products.
	KindEquipment Kind = "equipment"
)

// Product represents a catalogue entry. The variant fields are populated
// according to Kind: manufacturer/expiry date for medicines, warranty and
// purchase date for equipment.
type Product struct {
	ID         int64   `json:"id"`
	Kind       Kind    `json:"kind"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	SupplierID int64   `json:"supplier_id"`

	Manufacturer string    `json:"manufacturer,omitempty"`
	ExpiryDate   time.Time `json:"expiry_date,omitzero"`

	Warranty     string    `json:"warranty,omitempty"`
	PurchaseDate time.Time `json:"purchase_date,omitzero"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Date returns the variant date field.
func (p Product) Date() time.Time {
	if p.Kind == KindEquipment {
		return p.PurchaseDate
	}
	return p.ExpiryDate
}

// Secondary returns the variant secondary attribute.
func (p Product) Secondary() string {
	if p.Kind == KindEquipment {
		return p.Warranty
	}
	return p.Manufacturer
}
