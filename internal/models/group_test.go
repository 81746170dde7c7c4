package models

import "testing"

func TestGroupMembers(t *testing.T) {
	g := Group{Name: "Roommates", Members: []string{"You"}}

	g, err := g.AddMember("Alex")
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if !g.HasMember("Alex") {
		t.Error("expected Alex to be a member")
	}

	if _, err := g.AddMember("Alex"); err == nil {
		t.Error("expected error adding duplicate member")
	}
	if _, err := g.AddMember(""); err == nil {
		t.Error("expected error adding empty member name")
	}

	g, err = g.RemoveMember("Alex")
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if g.HasMember("Alex") {
		t.Error("expected Alex to be removed")
	}
	if _, err := g.RemoveMember("Alex"); err == nil {
		t.Error("expected error removing absent member")
	}
}

func TestGroupExpenses(t *testing.T) {
	g := Group{Name: "Trip", Members: []string{"You", "Taylor"}}

	g, err := g.AddExpense(Expense{Title: "Hotel", Amount: 35000, PaidBy: "You"})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	g, err = g.AddExpense(Expense{Title: "Dinner", Amount: 18075, PaidBy: "Taylor"})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if _, err := g.AddExpense(Expense{Title: "Cab", Amount: 2000, PaidBy: "Stranger"}); err == nil {
		t.Error("expected error for non-member payer")
	}

	if got := g.TotalExpenses(); got != 53075 {
		t.Errorf("TotalExpenses = %s, want 530.75", got)
	}
}

func TestRemoveMemberKeepsTheirExpenses(t *testing.T) {
	g := Group{Name: "Trip", Members: []string{"You", "Dana"}}
	g, err := g.AddExpense(Expense{Title: "Hotel", Amount: 9000, PaidBy: "Dana"})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	g, err = g.RemoveMember("Dana")
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if len(g.Expenses) != 1 || g.Expenses[0].PaidBy != "Dana" {
		t.Error("expected Dana's expense to stay in the ledger")
	}
}
