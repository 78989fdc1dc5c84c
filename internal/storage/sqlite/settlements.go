package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitr-app/splitr/internal/models"
)

const settlementColumns = "id, group_id, paid_by, received_by, amount, date, note, created_by, created_at"

// CreateSettlement persists a new settlement to the database.
// Settlements are append-only; there is no update or delete path.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Date == 0 {
		settlement.Date = settlement.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settlements ("+settlementColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		settlement.ID, nullable(settlement.GroupID), settlement.PaidByUserID,
		settlement.ReceivedByUserID, settlement.Amount, settlement.Date,
		nullable(settlement.Note), settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// ListGroupSettlements retrieves all settlements for a group.
func (s *SQLiteStore) ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id = ? ORDER BY date DESC",
		groupID,
	)
}

// ListPersonalSettlements returns non-group settlements where the user
// paid or received.
func (s *SQLiteStore) ListPersonalSettlements(ctx context.Context, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id IS NULL AND (paid_by = ? OR received_by = ?) ORDER BY date DESC",
		userID, userID,
	)
}

// ListSettlementsBetween returns non-group settlements between the two
// users, in either direction.
func (s *SQLiteStore) ListSettlementsBetween(ctx context.Context, userID, otherID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id IS NULL AND ((paid_by = ? AND received_by = ?) OR (paid_by = ? AND received_by = ?)) ORDER BY date DESC",
		userID, otherID, otherID, userID,
	)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, args ...interface{}) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var groupID, note sql.NullString
		if err := rows.Scan(&settlement.ID, &groupID, &settlement.PaidByUserID,
			&settlement.ReceivedByUserID, &settlement.Amount, &settlement.Date,
			&note, &settlement.CreatedBy, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.GroupID = fromNull(groupID)
		settlement.Note = fromNull(note)
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
