package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

// fakeStore is an in-memory storage.Store for service tests.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]*models.User
	expenses    []*models.Expense
	settlements []*models.Settlement
	groups      map[string]*models.Group
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*models.User),
		groups: make(map[string]*models.Group),
	}
}

func (f *fakeStore) addUser(id, name string) *models.User {
	u := &models.User{ID: id, Name: name, Email: id + "@example.com"}
	f.users[id] = u
	return u
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

func (f *fakeStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeStore) SearchUsers(ctx context.Context, query, excludeID string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := strings.ToLower(query)
	var out []*models.User
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
}

func (f *fakeStore) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.GroupID == "" && e.Involves(userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListExpensesBetween(ctx context.Context, userID, otherID string) ([]*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.GroupID == "" && e.Involves(userID) && e.Involves(otherID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUserExpensesSince(ctx context.Context, userID string, since int64) ([]*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.Date >= since && e.Involves(userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	f.settlements = append(f.settlements, settlement)
	return nil
}

func (f *fakeStore) ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Settlement
	for _, s := range f.settlements {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPersonalSettlements(ctx context.Context, userID string) ([]*models.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Settlement
	for _, s := range f.settlements {
		if s.GroupID == "" && (s.PaidByUserID == userID || s.ReceivedByUserID == userID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSettlementsBetween(ctx context.Context, userID, otherID string) ([]*models.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Settlement
	for _, s := range f.settlements {
		pair := (s.PaidByUserID == userID && s.ReceivedByUserID == otherID) ||
			(s.PaidByUserID == otherID && s.ReceivedByUserID == userID)
		if s.GroupID == "" && pair {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateGroup(ctx context.Context, group *models.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	f.groups[group.ID] = group
	return nil
}

func (f *fakeStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	return g, nil
}

func (f *fakeStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Group
	for _, g := range f.groups {
		if g.Member(userID) != nil {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) Close() error { return nil }
