package calculator

import (
	"errors"
	"testing"

	"github.com/billsplit/billsplit/internal/models"
	"github.com/billsplit/billsplit/internal/money"
)

func TestComputeBalances(t *testing.T) {
	t.Run("single payer two members", func(t *testing.T) {
		group := models.Group{
			Name:    "Roommates",
			Members: []string{"Alice", "Bob"},
			Expenses: []models.Expense{
				{Title: "Groceries", Amount: 6000, PaidBy: "Alice"},
				{Title: "Utilities", Amount: 4000, PaidBy: "Alice"},
			},
		}

		balances, err := ComputeBalances(group)
		if err != nil {
			t.Fatalf("ComputeBalances failed: %v", err)
		}

		if balances["Alice"] != 5000 {
			t.Errorf("Alice = %s, want 50.00", balances["Alice"])
		}
		if balances["Bob"] != -5000 {
			t.Errorf("Bob = %s, want -50.00", balances["Bob"])
		}
	})

	t.Run("balances sum to zero with uneven shares", func(t *testing.T) {
		group := models.Group{
			Name:    "Trip",
			Members: []string{"Alice", "Bob", "Charlie"},
			Expenses: []models.Expense{
				{Title: "Hotel", Amount: 10000, PaidBy: "Alice"},
			},
		}

		balances, err := ComputeBalances(group)
		if err != nil {
			t.Fatalf("ComputeBalances failed: %v", err)
		}

		// Shares are 33.34/33.33/33.33 in member order.
		if balances["Alice"] != 10000-3334 {
			t.Errorf("Alice = %s, want 66.66", balances["Alice"])
		}
		if balances["Bob"] != -3333 {
			t.Errorf("Bob = %s, want -33.33", balances["Bob"])
		}
		if balances["Charlie"] != -3333 {
			t.Errorf("Charlie = %s, want -33.33", balances["Charlie"])
		}

		var sum money.Money
		for _, b := range balances {
			sum = sum.Add(b)
		}
		if sum != 0 {
			t.Errorf("balances sum = %s, want 0.00", sum)
		}
	})

	t.Run("no expenses means everyone is level", func(t *testing.T) {
		group := models.Group{Members: []string{"Alice", "Bob"}}
		balances, err := ComputeBalances(group)
		if err != nil {
			t.Fatalf("ComputeBalances failed: %v", err)
		}
		for member, b := range balances {
			if b != 0 {
				t.Errorf("%s = %s, want 0.00", member, b)
			}
		}
	})

	t.Run("empty group fails", func(t *testing.T) {
		_, err := ComputeBalances(models.Group{Name: "Ghost town"})
		if !errors.Is(err, ErrEmptyGroup) {
			t.Errorf("error = %v, want ErrEmptyGroup", err)
		}
	})

	t.Run("expense paid by a removed member credits nobody", func(t *testing.T) {
		// "Dana" paid the hotel and then left the group. Her payment still
		// counts toward the total, so the remaining balances no longer sum
		// to zero. This mirrors the product's member-removal behavior.
		group := models.Group{
			Members: []string{"Alice", "Bob"},
			Expenses: []models.Expense{
				{Title: "Hotel", Amount: 9000, PaidBy: "Dana"},
			},
		}

		balances, err := ComputeBalances(group)
		if err != nil {
			t.Fatalf("ComputeBalances failed: %v", err)
		}

		if balances["Alice"] != -4500 || balances["Bob"] != -4500 {
			t.Errorf("balances = %v, want both -45.00", balances)
		}
		if _, ok := balances["Dana"]; ok {
			t.Error("removed member should not appear in balances")
		}
	})
}
