package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitr-app/splitr/internal/events"
	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

// SettlementService records direct payments between users.
type SettlementService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(store storage.Store, publisher events.Publisher) *SettlementService {
	return &SettlementService{store: store, publisher: publisher}
}

// CreateSettlementInput is the request to record a settlement.
type CreateSettlementInput struct {
	PaidByUserID     string  `json:"paidByUserId"`
	ReceivedByUserID string  `json:"receivedByUserId"`
	Amount           float64 `json:"amount"`
	GroupID          string  `json:"groupId"`
	Date             int64   `json:"date"`
	Note             string  `json:"note"`
}

// CreateSettlement validates and persists a settlement recorded by
// creatorID, who must be one of the two parties. Settlements are allowed
// between users with no prior expense history; the ledger nets the
// resulting credit.
func (s *SettlementService) CreateSettlement(ctx context.Context, creatorID string, in CreateSettlementInput) (*models.Settlement, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.PaidByUserID == "" || in.ReceivedByUserID == "" {
		return nil, fmt.Errorf("%w: payer and receiver are required", ErrInvalidInput)
	}
	if in.PaidByUserID == in.ReceivedByUserID {
		return nil, fmt.Errorf("%w: payer and receiver must differ", ErrInvalidInput)
	}
	if creatorID != in.PaidByUserID && creatorID != in.ReceivedByUserID {
		return nil, fmt.Errorf("%w: settlements can only be recorded by a party to them", ErrInvalidInput)
	}

	users, err := s.store.GetUsersByIDs(ctx, []string{in.PaidByUserID, in.ReceivedByUserID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up parties: %w", err)
	}
	for _, id := range []string{in.PaidByUserID, in.ReceivedByUserID} {
		if _, ok := users[id]; !ok {
			return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
		}
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		if err := group.AssertMember(in.PaidByUserID); err != nil {
			return nil, err
		}
		if err := group.AssertMember(in.ReceivedByUserID); err != nil {
			return nil, err
		}
	}

	settlement := &models.Settlement{
		GroupID:          in.GroupID,
		PaidByUserID:     in.PaidByUserID,
		ReceivedByUserID: in.ReceivedByUserID,
		Amount:           in.Amount,
		Date:             in.Date,
		Note:             in.Note,
		CreatedBy:        creatorID,
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount,
	)

	if err := s.publisher.Publish(ctx, events.KeySettlementRecorded, events.SettlementRecorded{
		SettlementID: settlement.ID,
		GroupID:      settlement.GroupID,
		PaidBy:       settlement.PaidByUserID,
		ReceivedBy:   settlement.ReceivedByUserID,
		Amount:       settlement.Amount,
		Timestamp:    time.Now(),
	}); err != nil {
		slog.Warn("Failed to publish settlement event", "settlement_id", settlement.ID, "error", err)
	}

	return settlement, nil
}
