package calculator

import (
	"errors"

	"github.com/billsplit/billsplit/internal/models"
	"github.com/billsplit/billsplit/internal/money"
)

// ErrEmptyGroup is returned when balances are requested for a group with
// no members.
var ErrEmptyGroup = errors.New("group has no members")

// ComputeBalances derives each member's net balance from the group's
// expense ledger: positive means the member is owed money, negative means
// they owe. Balances are recomputed from the full ledger on every call;
// nothing is cached.
//
// Each member's fair share comes from DivideEvenly over the expense total
// in member order, so the shares sum exactly to the total and the balances
// sum exactly to zero — provided every expense was paid by a current
// member. Expenses paid by since-removed members still count toward the
// total but credit nobody, matching the product's removal behavior.
func ComputeBalances(group models.Group) (map[string]money.Money, error) {
	if len(group.Members) == 0 {
		return nil, ErrEmptyGroup
	}

	shares, err := group.TotalExpenses().DivideEvenly(len(group.Members))
	if err != nil {
		return nil, err
	}

	paid := make(map[string]money.Money, len(group.Members))
	for _, member := range group.Members {
		paid[member] = 0
	}
	for _, e := range group.Expenses {
		if _, ok := paid[e.PaidBy]; ok {
			paid[e.PaidBy] = paid[e.PaidBy].Add(e.Amount)
		}
	}

	balances := make(map[string]money.Money, len(group.Members))
	for i, member := range group.Members {
		balances[member] = paid[member].Sub(shares[i])
	}
	return balances, nil
}
