package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "splitr-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash-a")
	bob := models.NewUser("bob@example.com", "Bob", "hash-b")
	carol := models.NewUser("carol@example.com", "Carol", "hash-c")
	for _, u := range []*models.User{alice, bob, carol} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	t.Run("GetUserByID round-trips", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Email != "alice@example.com" {
			t.Errorf("email = %s, want alice@example.com", got.Email)
		}
		if got.PasswordHash != "hash-a" {
			t.Errorf("password hash was not stored")
		}
	})

	t.Run("GetUserByID wraps ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("GetUserByEmail finds users", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != bob.ID {
			t.Errorf("ID = %s, want %s", got.ID, bob.ID)
		}
	})

	t.Run("GetUsersByIDs omits missing ids", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, "nope", bob.ID})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("got %d users, want 2", len(users))
		}
		if _, ok := users["nope"]; ok {
			t.Error("missing id must be omitted, not present")
		}
	})

	t.Run("SearchUsers excludes the viewer", func(t *testing.T) {
		users, err := store.SearchUsers(ctx, "example.com", alice.ID)
		if err != nil {
			t.Fatalf("SearchUsers failed: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("got %d users, want 2", len(users))
		}
		for _, u := range users {
			if u.ID == alice.ID {
				t.Error("viewer must be excluded from results")
			}
		}
	})

	group := &models.Group{
		Name:        "Flat",
		Description: "Rent and groceries",
		CreatedBy:   alice.ID,
		Members: []models.GroupMember{
			{UserID: alice.ID, Role: models.RoleAdmin, JoinedAt: time.Now().Unix()},
			{UserID: bob.ID, Role: models.RoleMember, JoinedAt: time.Now().Unix()},
		},
	}

	t.Run("CreateGroup generates ID and round-trips", func(t *testing.T) {
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Fatal("expected group ID to be generated")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Flat" || got.Description != "Rent and groceries" {
			t.Errorf("group = %+v", got)
		}
		if len(got.Members) != 2 {
			t.Fatalf("got %d members, want 2", len(got.Members))
		}
		// Membership order is preserved.
		if got.Members[0].UserID != alice.ID || got.Members[0].Role != models.RoleAdmin {
			t.Errorf("first member = %+v, want alice as admin", got.Members[0])
		}
	})

	t.Run("ListGroupsForUser filters by membership", func(t *testing.T) {
		groups, err := store.ListGroupsForUser(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListGroupsForUser failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("groups = %+v, want the one created group", groups)
		}

		groups, err = store.ListGroupsForUser(ctx, carol.ID)
		if err != nil {
			t.Fatalf("ListGroupsForUser failed: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("carol got %d groups, want 0", len(groups))
		}
	})

	now := time.Now().Unix()
	personal := &models.Expense{
		Description:  "Dinner",
		Amount:       30.0,
		SplitType:    models.SplitTypeEqual,
		PaidByUserID: alice.ID,
		Date:         now,
		Splits: []models.Split{
			{UserID: alice.ID, Amount: 15.0},
			{UserID: bob.ID, Amount: 15.0},
		},
		CreatedBy: alice.ID,
	}
	grouped := &models.Expense{
		Description:  "Rent",
		Amount:       100.0,
		SplitType:    models.SplitTypeExact,
		PaidByUserID: bob.ID,
		GroupID:      group.ID,
		Date:         now - 100,
		Splits: []models.Split{
			{UserID: alice.ID, Amount: 60.0},
			{UserID: bob.ID, Amount: 40.0, Paid: true},
		},
		CreatedBy: bob.ID,
	}

	t.Run("CreateExpense persists splits in order", func(t *testing.T) {
		for _, e := range []*models.Expense{personal, grouped} {
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
			if e.ID == "" {
				t.Fatal("expected expense ID to be generated")
			}
		}

		got, err := store.GetExpense(ctx, grouped.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(got.Splits))
		}
		if got.Splits[0].UserID != alice.ID || got.Splits[0].Amount != 60.0 {
			t.Errorf("first split = %+v", got.Splits[0])
		}
		if !got.Splits[1].Paid {
			t.Error("paid flag was not stored")
		}
		if got.SplitType != models.SplitTypeExact {
			t.Errorf("split type = %s, want %s", got.SplitType, models.SplitTypeExact)
		}
	})

	t.Run("ListGroupExpenses scopes to the group", func(t *testing.T) {
		expenses, err := store.ListGroupExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListGroupExpenses failed: %v", err)
		}
		if len(expenses) != 1 || expenses[0].ID != grouped.ID {
			t.Errorf("expenses = %+v, want only the group expense", expenses)
		}
	})

	t.Run("ListPersonalExpenses excludes group expenses", func(t *testing.T) {
		expenses, err := store.ListPersonalExpenses(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListPersonalExpenses failed: %v", err)
		}
		if len(expenses) != 1 || expenses[0].ID != personal.ID {
			t.Errorf("expenses = %+v, want only the personal expense", expenses)
		}
	})

	t.Run("ListExpensesBetween requires both users", func(t *testing.T) {
		expenses, err := store.ListExpensesBetween(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("ListExpensesBetween failed: %v", err)
		}
		if len(expenses) != 1 || expenses[0].ID != personal.ID {
			t.Errorf("expenses = %+v, want only the shared personal expense", expenses)
		}

		expenses, err = store.ListExpensesBetween(ctx, alice.ID, carol.ID)
		if err != nil {
			t.Fatalf("ListExpensesBetween failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("got %d expenses, want 0", len(expenses))
		}
	})

	t.Run("ListUserExpensesSince spans group and personal", func(t *testing.T) {
		expenses, err := store.ListUserExpensesSince(ctx, bob.ID, now-1000)
		if err != nil {
			t.Fatalf("ListUserExpensesSince failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Errorf("got %d expenses, want 2", len(expenses))
		}

		expenses, err = store.ListUserExpensesSince(ctx, bob.ID, now-50)
		if err != nil {
			t.Fatalf("ListUserExpensesSince failed: %v", err)
		}
		if len(expenses) != 1 || expenses[0].ID != personal.ID {
			t.Errorf("expenses = %+v, want only the recent expense", expenses)
		}
	})

	settlement := &models.Settlement{
		GroupID:          group.ID,
		PaidByUserID:     bob.ID,
		ReceivedByUserID: alice.ID,
		Amount:           25.0,
		Date:             now,
		Note:             "cash",
		CreatedBy:        bob.ID,
	}
	personalSettlement := &models.Settlement{
		PaidByUserID:     alice.ID,
		ReceivedByUserID: bob.ID,
		Amount:           5.0,
		Date:             now,
		CreatedBy:        alice.ID,
	}

	t.Run("CreateSettlement round-trips", func(t *testing.T) {
		for _, s := range []*models.Settlement{settlement, personalSettlement} {
			if err := store.CreateSettlement(ctx, s); err != nil {
				t.Fatalf("CreateSettlement failed: %v", err)
			}
			if s.ID == "" {
				t.Fatal("expected settlement ID to be generated")
			}
		}

		settlements, err := store.ListGroupSettlements(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListGroupSettlements failed: %v", err)
		}
		if len(settlements) != 1 {
			t.Fatalf("got %d settlements, want 1", len(settlements))
		}
		if settlements[0].Note != "cash" || settlements[0].Amount != 25.0 {
			t.Errorf("settlement = %+v", settlements[0])
		}
	})

	t.Run("ListPersonalSettlements excludes group settlements", func(t *testing.T) {
		settlements, err := store.ListPersonalSettlements(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListPersonalSettlements failed: %v", err)
		}
		if len(settlements) != 1 || settlements[0].ID != personalSettlement.ID {
			t.Errorf("settlements = %+v, want only the personal one", settlements)
		}
	})

	t.Run("ListSettlementsBetween matches either direction", func(t *testing.T) {
		settlements, err := store.ListSettlementsBetween(ctx, bob.ID, alice.ID)
		if err != nil {
			t.Fatalf("ListSettlementsBetween failed: %v", err)
		}
		if len(settlements) != 1 || settlements[0].ID != personalSettlement.ID {
			t.Errorf("settlements = %+v, want only the personal one", settlements)
		}
	})
}
