// Package calculator implements the bill-splitting allocation policies and
// group balance computation. Everything here is a pure function: input
// values go in, new values come out, and calling twice with the same input
// yields the same output.
package calculator

import (
	"errors"
	"fmt"

	"github.com/billsplit/billsplit/internal/models"
	"github.com/billsplit/billsplit/internal/money"
)

var (
	// ErrUnknownMethod is returned when a Split carries a method that is
	// not equal, items or custom.
	ErrUnknownMethod = errors.New("unknown split method")

	// ErrNoItemsToProrate is returned when an items split is attempted
	// with a zero item subtotal, leaving nothing to prorate tip and tax
	// against.
	ErrNoItemsToProrate = errors.New("no items to prorate tip and tax against")

	// ErrNoParticipants is returned when a Split has no people.
	ErrNoParticipants = errors.New("split has no participants")
)

// Allocate computes each person's amount for the given Split and returns a
// new Split with the People amounts filled in. The input is not modified.
//
// The grand total being distributed is billTotal plus tip and tax, each
// computed on the bill total. Under MethodEqual and MethodItems the
// returned amounts sum exactly to the grand total; under MethodCustom the
// user-entered amounts pass through unchanged and are not reconciled.
func Allocate(split models.Split) (models.Split, error) {
	if len(split.People) == 0 {
		return split, ErrNoParticipants
	}
	if err := validateSplit(split); err != nil {
		return split, err
	}

	switch split.Method {
	case models.MethodEqual:
		return allocateEqual(split)
	case models.MethodItems:
		return allocateItems(split)
	case models.MethodCustom:
		// Amounts are authoritative user input; nothing to compute.
		return split, nil
	default:
		return split, fmt.Errorf("%w: %q", ErrUnknownMethod, split.Method)
	}
}

// validateSplit rejects unknown methods and negative inputs. Splits
// usually arrive from JSON, which bypasses the money constructors and
// models.ParseSplitMethod, so the checks repeat here.
func validateSplit(split models.Split) error {
	if _, err := models.ParseSplitMethod(string(split.Method)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, split.Method)
	}
	if split.BillTotal < 0 {
		return fmt.Errorf("%w: bill total %s", money.ErrInvalidAmount, split.BillTotal)
	}
	if split.TipRate < 0 || split.TaxRate < 0 {
		return fmt.Errorf("%w: tip %v, tax %v", money.ErrInvalidRate, split.TipRate, split.TaxRate)
	}
	for _, item := range split.Items {
		if item.Price < 0 {
			return fmt.Errorf("%w: item %q price %s", money.ErrInvalidAmount, item.Name, item.Price)
		}
	}
	if split.Method == models.MethodCustom {
		for _, p := range split.People {
			if p.Amount < 0 {
				return fmt.Errorf("%w: custom amount %s for %q", money.ErrInvalidAmount, p.Amount, p.Name)
			}
		}
	}
	return nil
}

// allocateEqual gives everyone an even share of the grand total, with the
// division remainder going one cent at a time to the first people in list
// order.
func allocateEqual(split models.Split) (models.Split, error) {
	shares, err := split.GrandTotal().DivideEvenly(len(split.People))
	if err != nil {
		return split, err
	}
	out := split
	out.People = make([]models.Person, len(split.People))
	for i, p := range split.People {
		p.Amount = shares[i]
		out.People[i] = p
	}
	return out, nil
}

// allocateItems charges each person for their share of every item assigned
// to them, then prorates tip and tax by each person's portion of the item
// subtotal. People assigned no items owe nothing, including tip and tax;
// that mirrors the product's behavior and is a policy choice, not a bug.
func allocateItems(split models.Split) (models.Split, error) {
	if split.ItemSubtotal().IsZero() {
		return split, ErrNoItemsToProrate
	}

	indexByID := make(map[int]int, len(split.People))
	for i, p := range split.People {
		indexByID[p.ID] = i
	}

	itemAmounts := make([]money.Money, len(split.People))
	for _, item := range split.Items {
		if len(item.AssignedTo) == 0 {
			continue
		}
		shares, err := item.Price.DivideEvenly(len(item.AssignedTo))
		if err != nil {
			return split, err
		}
		for i, personID := range item.AssignedTo {
			idx, ok := indexByID[personID]
			if !ok {
				return split, fmt.Errorf("item %q assigned to unknown person %d", item.Name, personID)
			}
			itemAmounts[idx] = itemAmounts[idx].Add(shares[i])
		}
	}

	// Tip and tax are prorated by each person's share of the full item
	// subtotal, unassigned items included. A trailing phantom weight holds
	// the unassigned portion and its share is discarded, so part of the tip
	// and tax stays undistributed whenever some items have no assignees.
	extras := split.TipAmount().Add(split.TaxAmount())
	tipTaxShares := make([]money.Money, len(split.People))
	if !extras.IsZero() {
		weights := make([]money.Money, 0, len(itemAmounts)+1)
		weights = append(weights, itemAmounts...)
		weights = append(weights, split.ItemSubtotal().Sub(money.Sum(itemAmounts)))
		shares, err := money.DistributeByWeights(extras, weights)
		if err != nil {
			return split, err
		}
		tipTaxShares = shares[:len(split.People)]
	}

	out := split
	out.People = make([]models.Person, len(split.People))
	for i, p := range split.People {
		p.Amount = itemAmounts[i].Add(tipTaxShares[i])
		out.People[i] = p
	}
	return out, nil
}
