package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

const expenseColumns = "id, description, amount, split_type, paid_by, group_id, date, created_by, created_at"

// CreateExpense persists a new expense and its splits in one transaction.
func (s *PostgresStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date == 0 {
		expense.Date = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		expense.ID, expense.Description, expense.Amount, expense.SplitType,
		expense.PaidByUserID, nullable(expense.GroupID), expense.Date,
		expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (expense_id, user_id, amount, paid, position) VALUES ($1, $2, $3, $4, $5)",
			expense.ID, split.UserID, split.Amount, split.Paid, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *PostgresStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1", id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if err := s.loadSplits(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListGroupExpenses returns all expenses scoped to one group.
func (s *PostgresStore) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = $1 ORDER BY date DESC",
		groupID,
	)
}

// ListPersonalExpenses returns non-group expenses involving the user.
func (s *PostgresStore) ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE group_id IS NULL
		   AND (paid_by = $1 OR id IN (SELECT expense_id FROM splits WHERE user_id = $1))
		 ORDER BY date DESC`,
		userID,
	)
}

// ListExpensesBetween returns non-group expenses involving both users.
func (s *PostgresStore) ListExpensesBetween(ctx context.Context, userID, otherID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE group_id IS NULL
		   AND (paid_by = $1 OR id IN (SELECT expense_id FROM splits WHERE user_id = $1))
		   AND (paid_by = $2 OR id IN (SELECT expense_id FROM splits WHERE user_id = $2))
		 ORDER BY date DESC`,
		userID, otherID,
	)
}

// ListUserExpensesSince returns every expense involving the user dated at
// or after since, group-scoped or not.
func (s *PostgresStore) ListUserExpensesSince(ctx context.Context, userID string, since int64) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE date >= $1
		   AND (paid_by = $2 OR id IN (SELECT expense_id FROM splits WHERE user_id = $2))
		 ORDER BY date`,
		since, userID,
	)
}

func (s *PostgresStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadSplits(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func scanExpense(row interface{ Scan(...interface{}) error }) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID sql.NullString
	err := row.Scan(&expense.ID, &expense.Description, &expense.Amount,
		&expense.SplitType, &expense.PaidByUserID, &groupID, &expense.Date,
		&expense.CreatedBy, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.GroupID = fromNull(groupID)
	return expense, nil
}

func (s *PostgresStore) loadSplits(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount, paid FROM splits WHERE expense_id = $1 ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.UserID, &split.Amount, &split.Paid); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}
