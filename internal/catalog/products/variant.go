package products

import (
	"time"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

// variant captures everything that differs between the two product kinds, so
// one service and one validation path serve both. checkDate encodes the
// temporal rule direction: medicines must not be expired, equipment must not
// be purchased in the future.
type variant struct {
	kind           Kind
	noun           string
	dateField      string
	secondaryField string
	checkDate      func(today, d time.Time) error
}

var variants = map[Kind]variant{
	KindMedicine: {
		kind:           KindMedicine,
		noun:           "medicine",
		dateField:      "expiry date",
		secondaryField: "manufacturer",
		checkDate: func(today, d time.Time) error {
			if d.Before(today) {
				return shared.InvalidTemporal("expiry_date", "the expiry date cannot be in the past")
			}
			return nil
		},
	},
	KindEquipment: {
		kind:           KindEquipment,
		noun:           "equipment",
		dateField:      "purchase date",
		secondaryField: "warranty",
		checkDate: func(today, d time.Time) error {
			if d.After(today) {
				return shared.InvalidTemporal("purchase_date", "the purchase date cannot be in the future")
			}
			return nil
		},
	},
}

func variantOf(kind Kind) (variant, error) {
	v, ok := variants[kind]
	if !ok {
		return variant{}, shared.Invalid("kind", "unknown product kind")
	}
	return v, nil
}

// dateOnly truncates a timestamp to its calendar date. Temporal rules compare
// whole days, so expiry on the current date is still valid.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (v variant) duplicateMessage() string {
	return "the " + v.noun + " with the same name, supplier, " + v.dateField + ", and " + v.secondaryField + " already exists"
}
