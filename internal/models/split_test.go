package models

import (
	"slices"
	"testing"
)

func TestParseSplitMethod(t *testing.T) {
	for _, valid := range []string{"equal", "items", "custom"} {
		got, err := ParseSplitMethod(valid)
		if err != nil {
			t.Errorf("ParseSplitMethod(%q) failed: %v", valid, err)
		}
		if string(got) != valid {
			t.Errorf("ParseSplitMethod(%q) = %q", valid, got)
		}
	}
	for _, invalid := range []string{"", "percentage", "Equal"} {
		if _, err := ParseSplitMethod(invalid); err == nil {
			t.Errorf("ParseSplitMethod(%q) = nil error, want failure", invalid)
		}
	}
}

func TestNewSplit(t *testing.T) {
	s := NewSplit()
	if s.Method != MethodEqual {
		t.Errorf("method = %s, want equal", s.Method)
	}
	if len(s.People) != MinPeople {
		t.Errorf("people = %d, want %d", len(s.People), MinPeople)
	}
}

func TestAddPersonAssignsNextID(t *testing.T) {
	s := NewSplit().AddPerson()
	if len(s.People) != 3 {
		t.Fatalf("people = %d, want 3", len(s.People))
	}
	if s.People[2].ID != 3 {
		t.Errorf("new person ID = %d, want 3", s.People[2].ID)
	}

	// Removing the middle person must not cause ID reuse.
	s = s.AddPerson()
	removed, err := s.RemovePerson(3)
	if err != nil {
		t.Fatalf("RemovePerson failed: %v", err)
	}
	grown := removed.AddPerson()
	if grown.People[len(grown.People)-1].ID != 5 {
		t.Errorf("new person ID = %d, want 5", grown.People[len(grown.People)-1].ID)
	}
}

func TestRemovePersonScrubsAssignments(t *testing.T) {
	s := NewSplit().AddPerson() // people 1, 2, 3
	s = s.AddItem("Pizza", 1000)
	s = s.AddItem("Beer", 500)

	var err error
	s, err = s.ToggleAssignment(1, 2)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	s, err = s.ToggleAssignment(2, 2)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	s, err = s.ToggleAssignment(1, 3)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}

	s, err = s.RemovePerson(2)
	if err != nil {
		t.Fatalf("RemovePerson failed: %v", err)
	}

	for _, item := range s.Items {
		if slices.Contains(item.AssignedTo, 2) {
			t.Errorf("item %q still assigned to removed person", item.Name)
		}
	}
	if !slices.Contains(s.Items[0].AssignedTo, 3) {
		t.Error("unrelated assignment was dropped")
	}
}

func TestRemovePersonEnforcesMinimum(t *testing.T) {
	s := NewSplit()
	if _, err := s.RemovePerson(1); err == nil {
		t.Error("expected error removing below the two-person minimum")
	}
}

func TestToggleAssignment(t *testing.T) {
	s := NewSplit().AddItem("Pizza", 1000)

	s, err := s.ToggleAssignment(1, 1)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if !slices.Contains(s.Items[0].AssignedTo, 1) {
		t.Fatal("expected person 1 to be assigned")
	}

	s, err = s.ToggleAssignment(1, 1)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	if slices.Contains(s.Items[0].AssignedTo, 1) {
		t.Error("expected toggle to unassign person 1")
	}

	if _, err := s.ToggleAssignment(99, 1); err == nil {
		t.Error("expected error for unknown item")
	}
	if _, err := s.ToggleAssignment(1, 99); err == nil {
		t.Error("expected error for unknown person")
	}
}

func TestSplitHelpersDoNotAliasInput(t *testing.T) {
	original := NewSplit().AddItem("Pizza", 1000)
	original, err := original.ToggleAssignment(1, 1)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}

	modified, err := original.ToggleAssignment(1, 2)
	if err != nil {
		t.Fatalf("ToggleAssignment failed: %v", err)
	}
	modified.People[0].Name = "changed"

	if len(original.Items[0].AssignedTo) != 1 {
		t.Error("original split's assignments were mutated")
	}
	if original.People[0].Name == "changed" {
		t.Error("original split's people were mutated")
	}
}

func TestGrandTotal(t *testing.T) {
	s := Split{BillTotal: 10000, TipRate: 1500, TaxRate: 825}
	// 100.00 + 15.00 tip + 8.25 tax
	if got := s.GrandTotal(); got != 12325 {
		t.Errorf("GrandTotal = %s, want 123.25", got)
	}
}
