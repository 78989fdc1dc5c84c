package postgres

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
func (s *PostgresStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
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
		"INSERT INTO settlements ("+settlementColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
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
func (s *PostgresStore) ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id = $1 ORDER BY date DESC",
		groupID,
	)
}

// ListPersonalSettlements returns non-group settlements where the user
// paid or received.
func (s *PostgresStore) ListPersonalSettlements(ctx context.Context, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id IS NULL AND (paid_by = $1 OR received_by = $1) ORDER BY date DESC",
		userID,
	)
}

// ListSettlementsBetween returns non-group settlements between the two
// users, in either direction.
func (s *PostgresStore) ListSettlementsBetween(ctx context.Context, userID, otherID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE group_id IS NULL
		   AND ((paid_by = $1 AND received_by = $2) OR (paid_by = $2 AND received_by = $1))
		 ORDER BY date DESC`,
		userID, otherID,
	)
}

func (s *PostgresStore) listSettlements(ctx context.Context, query string, args ...interface{}) ([]*models.Settlement, error) {
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
