package models

import (
	"time"

	"github.com/billsplit/billsplit/internal/money"
)

// SavedCalculation is an immutable snapshot of a Split frozen at save time.
// It is created once, never mutated, and disappears when its stored entry
// expires.
type SavedCalculation struct {
	// ID is the unique identifier for the calculation (UUID format).
	ID string `json:"id"`

	// CreatedAt is when the snapshot was taken. JSON-encodes as RFC 3339.
	CreatedAt time.Time `json:"date"`

	BillTotal money.Money `json:"billTotal"`
	TipRate   money.Rate  `json:"tipRate"`
	TaxRate   money.Rate  `json:"taxRate"`
	Method    SplitMethod `json:"method"`

	// People carries each participant with their final allocated amount.
	People []Person `json:"people"`

	// Items carries the bill items as they stood at save time.
	Items []BillItem `json:"items"`

	// GroupName optionally links the calculation to a group by name.
	GroupName string `json:"groupName,omitempty"`
}

// Snapshot freezes an allocated Split into a SavedCalculation. The caller
// supplies the ID and timestamp so the snapshot itself stays deterministic.
func Snapshot(s Split, id string, at time.Time, groupName string) SavedCalculation {
	frozen := s.clone()
	return SavedCalculation{
		ID:        id,
		CreatedAt: at,
		BillTotal: frozen.BillTotal,
		TipRate:   frozen.TipRate,
		TaxRate:   frozen.TaxRate,
		Method:    frozen.Method,
		People:    frozen.People,
		Items:     frozen.Items,
		GroupName: groupName,
	}
}
