package models

import (
	"fmt"
	"slices"

	"github.com/billsplit/billsplit/internal/money"
)

// Expense is a single dated payment recorded against a Group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Title describes the expense, e.g. "Groceries".
	Title string `json:"title"`

	// Amount is what was paid.
	Amount money.Money `json:"amount"`

	// Date is the day the expense was incurred, in YYYY-MM-DD form.
	Date string `json:"date"`

	// PaidBy is the member name who paid. It must be a current member at
	// the time the expense is added.
	PaidBy string `json:"paidBy"`
}

// Group is a persistent named set of people sharing an expense ledger.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name, e.g. "Roommates".
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Members is the ordered list of unique member names.
	Members []string `json:"members"`

	// Expenses is the ordered ledger of payments.
	Expenses []Expense `json:"expenses"`
}

// HasMember reports whether name is a current member.
func (g Group) HasMember(name string) bool {
	return slices.Contains(g.Members, name)
}

// AddMember appends a member, rejecting duplicates and empty names.
func (g Group) AddMember(name string) (Group, error) {
	if name == "" {
		return g, fmt.Errorf("member name must not be empty")
	}
	if g.HasMember(name) {
		return g, fmt.Errorf("%q is already a member", name)
	}
	out := g.clone()
	out.Members = append(out.Members, name)
	return out, nil
}

// RemoveMember drops a member from the group. Expenses they paid stay in
// the ledger with their name; balance computation then undercounts the
// total paid by current members. The original behaves the same way, so it
// is kept rather than reconciled.
func (g Group) RemoveMember(name string) (Group, error) {
	idx := slices.Index(g.Members, name)
	if idx < 0 {
		return g, fmt.Errorf("%q is not a member", name)
	}
	out := g.clone()
	out.Members = slices.Delete(out.Members, idx, idx+1)
	return out, nil
}

// AddExpense appends an expense to the ledger. PaidBy must be a current
// member.
func (g Group) AddExpense(e Expense) (Group, error) {
	if !g.HasMember(e.PaidBy) {
		return g, fmt.Errorf("payer %q is not a member of %q", e.PaidBy, g.Name)
	}
	out := g.clone()
	out.Expenses = append(out.Expenses, e)
	return out, nil
}

// TotalExpenses sums the ledger.
func (g Group) TotalExpenses() money.Money {
	var total money.Money
	for _, e := range g.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func (g Group) clone() Group {
	out := g
	out.Members = slices.Clone(g.Members)
	out.Expenses = slices.Clone(g.Expenses)
	return out
}
