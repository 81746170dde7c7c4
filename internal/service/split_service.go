// Package service orchestrates the allocation engine, the expiring store
// and the scanner behind the operations the HTTP layer exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/billsplit/billsplit/internal/calculator"
	"github.com/billsplit/billsplit/internal/models"
	"github.com/billsplit/billsplit/internal/scanner"
	"github.com/billsplit/billsplit/internal/storage"
)

// CalculationsKey is the store key holding the saved-calculations list.
const CalculationsKey = "billsplit_calculations"

// ErrCalculationNotFound is returned when a saved calculation ID does not
// exist (or its entry has expired).
var ErrCalculationNotFound = errors.New("calculation not found")

// SplitService handles split allocation, saved-calculation persistence and
// receipt scanning.
type SplitService struct {
	store   *storage.Store[[]models.SavedCalculation]
	scanner scanner.Scanner
	ttlDays int
}

// NewSplitService creates a SplitService over the given KV backend.
func NewSplitService(kv storage.KV, sc scanner.Scanner, ttlDays int) *SplitService {
	return &SplitService{
		store:   storage.NewStore[[]models.SavedCalculation](kv),
		scanner: sc,
		ttlDays: ttlDays,
	}
}

// Allocate runs the allocation engine over a Split and returns the result.
func (s *SplitService) Allocate(_ context.Context, split models.Split) (models.Split, error) {
	out, err := calculator.Allocate(split)
	if err != nil {
		slog.Error("Allocate failed", "method", split.Method, "error", err)
		return split, err
	}
	slog.Debug("Allocate ok",
		"method", split.Method,
		"people", len(out.People),
		"grand_total", split.GrandTotal(),
	)
	return out, nil
}

// Save allocates the Split, freezes it into a SavedCalculation and appends
// it to the stored list, refreshing the list's TTL.
func (s *SplitService) Save(ctx context.Context, split models.Split, groupName string) (models.SavedCalculation, error) {
	allocated, err := calculator.Allocate(split)
	if err != nil {
		return models.SavedCalculation{}, err
	}

	calcs, _, err := s.store.Get(ctx, CalculationsKey)
	if err != nil {
		return models.SavedCalculation{}, err
	}

	calc := models.Snapshot(allocated, uuid.New().String(), time.Now().UTC(), groupName)
	calcs = append(calcs, calc)
	if err := s.store.Put(ctx, CalculationsKey, calcs, s.ttlDays); err != nil {
		return models.SavedCalculation{}, err
	}

	slog.Info("Calculation saved", "calculation_id", calc.ID, "method", calc.Method)
	return calc, nil
}

// List returns all saved calculations. An absent or expired entry is an
// empty list, not an error.
func (s *SplitService) List(ctx context.Context) ([]models.SavedCalculation, error) {
	calcs, found, err := s.store.Get(ctx, CalculationsKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.SavedCalculation{}, nil
	}
	return calcs, nil
}

// Delete removes one saved calculation by ID, keeping the rest and their
// remaining TTL window.
func (s *SplitService) Delete(ctx context.Context, id string) error {
	calcs, found, err := s.store.Get(ctx, CalculationsKey)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrCalculationNotFound, id)
	}
	idx := slices.IndexFunc(calcs, func(c models.SavedCalculation) bool { return c.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCalculationNotFound, id)
	}
	calcs = slices.Delete(calcs, idx, idx+1)
	if err := s.store.Put(ctx, CalculationsKey, calcs, s.ttlDays); err != nil {
		return err
	}
	slog.Info("Calculation deleted", "calculation_id", id)
	return nil
}

// Clear evicts every saved calculation.
func (s *SplitService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx, CalculationsKey); err != nil {
		return err
	}
	slog.Info("Calculations cleared")
	return nil
}

// ScanReceipt runs the scanner over an uploaded image and returns a Split
// pre-filled with the extracted items: the returned Split keeps the input
// split's people and rates, replaces its items, and sets the bill total to
// the extracted subtotal.
func (s *SplitService) ScanReceipt(ctx context.Context, split models.Split, image []byte) (models.Split, error) {
	items, err := s.scanner.Scan(ctx, image)
	if err != nil {
		slog.Error("Receipt scan failed", "error", err)
		return split, fmt.Errorf("scan receipt: %w", err)
	}

	out := split
	out.Items = nil
	out.BillTotal = 0
	for _, item := range items {
		out = out.AddItem(item.Name, item.Price)
		out.BillTotal = out.BillTotal.Add(item.Price)
	}
	out.Method = models.MethodItems

	slog.Info("Receipt scanned", "items", len(items), "subtotal", out.BillTotal)
	return out, nil
}
