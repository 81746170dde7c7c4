// Package scanner defines the receipt-scanning collaborator. The engine
// never parses receipts itself; it only consumes the (name, price) pairs a
// Scanner produces. Real OCR is out of scope, so the shipped implementation
// is a mock that returns a fixed menu after a configurable delay.
package scanner

import (
	"context"
	"time"

	"github.com/billsplit/billsplit/internal/money"
)

// Item is one extracted line of a scanned receipt.
type Item struct {
	Name  string      `json:"name"`
	Price money.Money `json:"price"`
}

// Scanner extracts items from a receipt image.
type Scanner interface {
	// Scan returns the items found on the receipt image. Implementations
	// must honor context cancellation.
	Scan(ctx context.Context, image []byte) ([]Item, error)
}

// Ensure Mock implements Scanner
var _ Scanner = (*Mock)(nil)

// Mock simulates receipt processing: it waits for the configured delay and
// returns a static set of items regardless of the image contents.
type Mock struct {
	delay time.Duration
}

// NewMock creates a Mock with the given processing delay. A zero delay
// returns immediately, which is what tests want.
func NewMock(delay time.Duration) *Mock {
	return &Mock{delay: delay}
}

// Scan waits out the delay (or the context, whichever ends first) and
// returns the sample menu.
func (m *Mock) Scan(ctx context.Context, _ []byte) ([]Item, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Item{
		{Name: "Chicken Sandwich", Price: 1299},
		{Name: "French Fries", Price: 450},
		{Name: "Iced Tea", Price: 325},
		{Name: "Caesar Salad", Price: 999},
		{Name: "Cheesecake Slice", Price: 675},
	}, nil
}
