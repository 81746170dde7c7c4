package models

import (
	"fmt"
	"slices"

	"github.com/billsplit/billsplit/internal/money"
)

// SplitMethod selects how a bill's grand total maps to per-person amounts.
type SplitMethod string

const (
	// MethodEqual divides the grand total evenly among all participants.
	MethodEqual SplitMethod = "equal"

	// MethodItems divides each item's price among its assignees, then
	// prorates tip and tax by each person's share of the item subtotal.
	MethodItems SplitMethod = "items"

	// MethodCustom takes per-person amounts as entered by the user.
	MethodCustom SplitMethod = "custom"
)

// ParseSplitMethod validates a method string from the UI layer.
func ParseSplitMethod(s string) (SplitMethod, error) {
	switch SplitMethod(s) {
	case MethodEqual, MethodItems, MethodCustom:
		return SplitMethod(s), nil
	}
	return "", fmt.Errorf("unknown split method %q", s)
}

// Person is a participant in a Split.
type Person struct {
	// ID is unique within the owning Split.
	ID int `json:"id"`

	// Name is the display name, e.g. "Person 1" or an entered name.
	Name string `json:"name"`

	// Amount is the output of allocation. Under MethodCustom it is
	// user-supplied input and passes through allocation untouched.
	Amount money.Money `json:"amount"`
}

// BillItem is a single line item on the bill.
type BillItem struct {
	// ID is unique within the owning Split.
	ID int `json:"id"`

	// Name describes the item, e.g. "Pizza".
	Name string `json:"name"`

	// Price is the item's cost.
	Price money.Money `json:"price"`

	// AssignedTo lists the Person IDs sharing this item. Always a subset
	// of the Split's current participant IDs.
	AssignedTo []int `json:"assignedTo"`
}

// Split is one bill-splitting working session. It is created with two
// default people, mutated through the methods below by the UI layer, and
// consumed by calculator.Allocate.
type Split struct {
	BillTotal money.Money `json:"billTotal"`
	TipRate   money.Rate  `json:"tipRate"`
	TaxRate   money.Rate  `json:"taxRate"`
	Method    SplitMethod `json:"method"`
	People    []Person    `json:"people"`
	Items     []BillItem  `json:"items"`
}

// MinPeople is the smallest participant count a Split may hold; a bill
// split needs at least two people.
const MinPeople = 2

// NewSplit returns an equal-method Split seeded with two default people.
func NewSplit() Split {
	return Split{
		Method: MethodEqual,
		People: []Person{
			{ID: 1, Name: "Person 1"},
			{ID: 2, Name: "Person 2"},
		},
	}
}

// GrandTotal is the bill total plus tip and tax, each computed against the
// bill total and rounded independently.
func (s Split) GrandTotal() money.Money {
	return s.BillTotal.Add(s.BillTotal.MulRate(s.TipRate)).Add(s.BillTotal.MulRate(s.TaxRate))
}

// TipAmount is the tip computed on the bill total.
func (s Split) TipAmount() money.Money {
	return s.BillTotal.MulRate(s.TipRate)
}

// TaxAmount is the tax computed on the bill total.
func (s Split) TaxAmount() money.Money {
	return s.BillTotal.MulRate(s.TaxRate)
}

// ItemSubtotal is the sum of all item prices, assigned or not.
func (s Split) ItemSubtotal() money.Money {
	var total money.Money
	for _, item := range s.Items {
		total = total.Add(item.Price)
	}
	return total
}

// FindPerson returns the index of the person with the given ID, or -1.
func (s Split) FindPerson(id int) int {
	return slices.IndexFunc(s.People, func(p Person) bool { return p.ID == id })
}

// AddPerson appends a new participant with the next free ID and a default
// name, returning the updated Split.
func (s Split) AddPerson() Split {
	id := 1
	for _, p := range s.People {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	out := s.clone()
	out.People = append(out.People, Person{ID: id, Name: fmt.Sprintf("Person %d", id)})
	return out
}

// RemovePerson removes a participant and scrubs their ID from every item's
// AssignedTo list, keeping the subset invariant. It fails when the Split
// is already at the two-person minimum or the ID is unknown.
func (s Split) RemovePerson(id int) (Split, error) {
	if len(s.People) <= MinPeople {
		return s, fmt.Errorf("cannot remove person: at least %d people are required", MinPeople)
	}
	idx := s.FindPerson(id)
	if idx < 0 {
		return s, fmt.Errorf("no person with id %d", id)
	}
	out := s.clone()
	out.People = slices.Delete(out.People, idx, idx+1)
	for i := range out.Items {
		out.Items[i].AssignedTo = slices.DeleteFunc(out.Items[i].AssignedTo, func(pid int) bool {
			return pid == id
		})
	}
	return out, nil
}

// RenamePerson sets a participant's display name.
func (s Split) RenamePerson(id int, name string) (Split, error) {
	idx := s.FindPerson(id)
	if idx < 0 {
		return s, fmt.Errorf("no person with id %d", id)
	}
	out := s.clone()
	out.People[idx].Name = name
	return out, nil
}

// SetPersonAmount records a user-entered amount for MethodCustom.
func (s Split) SetPersonAmount(id int, amount money.Money) (Split, error) {
	idx := s.FindPerson(id)
	if idx < 0 {
		return s, fmt.Errorf("no person with id %d", id)
	}
	out := s.clone()
	out.People[idx].Amount = amount
	return out, nil
}

// AddItem appends an unassigned item with the next free ID.
func (s Split) AddItem(name string, price money.Money) Split {
	id := 1
	for _, item := range s.Items {
		if item.ID >= id {
			id = item.ID + 1
		}
	}
	out := s.clone()
	out.Items = append(out.Items, BillItem{ID: id, Name: name, Price: price})
	return out
}

// RemoveItem deletes an item by ID.
func (s Split) RemoveItem(id int) (Split, error) {
	idx := slices.IndexFunc(s.Items, func(i BillItem) bool { return i.ID == id })
	if idx < 0 {
		return s, fmt.Errorf("no item with id %d", id)
	}
	out := s.clone()
	out.Items = slices.Delete(out.Items, idx, idx+1)
	return out, nil
}

// ToggleAssignment flips whether a person shares an item. Assigning an
// unknown person or item is an error.
func (s Split) ToggleAssignment(itemID, personID int) (Split, error) {
	itemIdx := slices.IndexFunc(s.Items, func(i BillItem) bool { return i.ID == itemID })
	if itemIdx < 0 {
		return s, fmt.Errorf("no item with id %d", itemID)
	}
	if s.FindPerson(personID) < 0 {
		return s, fmt.Errorf("no person with id %d", personID)
	}
	out := s.clone()
	item := &out.Items[itemIdx]
	if i := slices.Index(item.AssignedTo, personID); i >= 0 {
		item.AssignedTo = slices.Delete(item.AssignedTo, i, i+1)
	} else {
		item.AssignedTo = append(item.AssignedTo, personID)
	}
	return out, nil
}

// clone deep-copies the Split so mutating helpers never alias the input's
// slices.
func (s Split) clone() Split {
	out := s
	out.People = slices.Clone(s.People)
	out.Items = slices.Clone(s.Items)
	for i := range out.Items {
		out.Items[i].AssignedTo = slices.Clone(s.Items[i].AssignedTo)
	}
	return out
}
