// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitr-app/splitr/internal/models"
)

// ErrNotFound is returned when a referenced user, group, expense or
// settlement does not exist. Implementations wrap it with record details.
var ErrNotFound = errors.New("not found")

// Store defines the retrieval and persistence contract the balance engine's
// callers rely on. The engine itself never touches a Store: services fetch
// a consistent snapshot through these methods and hand the records to the
// calculator package.
//
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUsersByIDs returns a map of user id to user. Missing ids are
	// omitted; callers decide whether absence is an integrity error.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// SearchUsers matches name or email substrings, excluding excludeID.
	SearchUsers(ctx context.Context, query, excludeID string) ([]*models.User, error)

	// Expenses
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	// ListGroupExpenses returns all expenses scoped to one group,
	// ordered by date descending.
	ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)
	// ListPersonalExpenses returns non-group expenses where userID is the
	// payer or a split participant, ordered by date descending.
	ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error)
	// ListExpensesBetween returns non-group expenses involving both users.
	ListExpensesBetween(ctx context.Context, userID, otherID string) ([]*models.Expense, error)
	// ListUserExpensesSince returns every expense (group or not) involving
	// userID and dated at or after since.
	ListUserExpensesSince(ctx context.Context, userID string, since int64) ([]*models.Expense, error)

	// Settlements
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error)
	// ListPersonalSettlements returns non-group settlements where userID
	// paid or received.
	ListPersonalSettlements(ctx context.Context, userID string) ([]*models.Settlement, error)
	// ListSettlementsBetween returns non-group settlements between the two
	// users, in either direction.
	ListSettlementsBetween(ctx context.Context, userID, otherID string) ([]*models.Settlement, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	// ListGroupsForUser returns every group userID belongs to.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
