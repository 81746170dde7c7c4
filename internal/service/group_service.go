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
	"github.com/billsplit/billsplit/internal/money"
	"github.com/billsplit/billsplit/internal/storage"
)

// GroupsKey is the store key holding the groups list.
const GroupsKey = "billsplit_groups"

// DefaultMember is the name every new group starts with: the device owner.
const DefaultMember = "You"

// ErrGroupNotFound is returned when a group ID does not exist (or the
// groups entry has expired).
var ErrGroupNotFound = errors.New("group not found")

// GroupService manages the group ledger: members, expenses and balances.
type GroupService struct {
	store   *storage.Store[[]models.Group]
	ttlDays int
	now     func() time.Time
}

// NewGroupService creates a GroupService over the given KV backend.
func NewGroupService(kv storage.KV, ttlDays int) *GroupService {
	return &GroupService{
		store:   storage.NewStore[[]models.Group](kv),
		ttlDays: ttlDays,
		now:     time.Now,
	}
}

// Create adds a new group seeded with the device owner as its only member.
func (s *GroupService) Create(ctx context.Context, name, description string) (models.Group, error) {
	if name == "" {
		return models.Group{}, fmt.Errorf("group name must not be empty")
	}

	groups, _, err := s.store.Get(ctx, GroupsKey)
	if err != nil {
		return models.Group{}, err
	}

	group := models.Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Members:     []string{DefaultMember},
		Expenses:    []models.Expense{},
	}
	groups = append(groups, group)
	if err := s.store.Put(ctx, GroupsKey, groups, s.ttlDays); err != nil {
		return models.Group{}, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// List returns all groups. Absent or expired storage is an empty list.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, found, err := s.store.Get(ctx, GroupsKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Group{}, nil
	}
	return groups, nil
}

// Get returns one group by ID.
func (s *GroupService) Get(ctx context.Context, id string) (models.Group, error) {
	groups, _, err := s.store.Get(ctx, GroupsKey)
	if err != nil {
		return models.Group{}, err
	}
	idx := slices.IndexFunc(groups, func(g models.Group) bool { return g.ID == id })
	if idx < 0 {
		return models.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return groups[idx], nil
}

// AddMember adds a member to a group.
func (s *GroupService) AddMember(ctx context.Context, groupID, name string) (models.Group, error) {
	return s.update(ctx, groupID, func(g models.Group) (models.Group, error) {
		return g.AddMember(name)
	})
}

// RemoveMember removes a member. Expenses they paid stay in the ledger;
// see models.Group.RemoveMember for the consequences.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, name string) (models.Group, error) {
	return s.update(ctx, groupID, func(g models.Group) (models.Group, error) {
		return g.RemoveMember(name)
	})
}

// AddExpense records an expense paid by a current member, stamped with
// today's date.
func (s *GroupService) AddExpense(ctx context.Context, groupID, title string, amount money.Money, paidBy string) (models.Group, error) {
	expense := models.Expense{
		ID:     uuid.New().String(),
		Title:  title,
		Amount: amount,
		Date:   s.now().Format("2006-01-02"),
		PaidBy: paidBy,
	}
	group, err := s.update(ctx, groupID, func(g models.Group) (models.Group, error) {
		return g.AddExpense(expense)
	})
	if err != nil {
		return group, err
	}
	slog.Info("Expense added",
		"group_id", groupID,
		"title", title,
		"amount", amount,
		"paid_by", paidBy,
	)
	return group, nil
}

// Balances recomputes each member's net balance from the group's ledger.
func (s *GroupService) Balances(ctx context.Context, groupID string) (map[string]money.Money, error) {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeBalances(group)
}

// update applies fn to the stored group with the given ID and writes the
// full list back, refreshing its TTL.
func (s *GroupService) update(ctx context.Context, groupID string, fn func(models.Group) (models.Group, error)) (models.Group, error) {
	groups, found, err := s.store.Get(ctx, GroupsKey)
	if err != nil {
		return models.Group{}, err
	}
	if !found {
		return models.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	idx := slices.IndexFunc(groups, func(g models.Group) bool { return g.ID == groupID })
	if idx < 0 {
		return models.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	updated, err := fn(groups[idx])
	if err != nil {
		return models.Group{}, err
	}
	groups[idx] = updated
	if err := s.store.Put(ctx, GroupsKey, groups, s.ttlDays); err != nil {
		return models.Group{}, err
	}
	return updated, nil
}
