package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/splitr-app/splitr/internal/calculator"
	"github.com/splitr-app/splitr/internal/events"
	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

// ExpenseService records expenses and serves the 1:1 contact view.
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

// CreateExpenseInput is the request to record an expense.
type CreateExpenseInput struct {
	Description  string         `json:"description"`
	Amount       float64        `json:"amount"`
	SplitType    string         `json:"splitType"`
	PaidByUserID string         `json:"paidByUserId"`
	GroupID      string         `json:"groupId"`
	Date         int64          `json:"date"`
	Splits       []models.Split `json:"splits"`
}

// CreateExpense validates and persists an expense created by creatorID.
// Split amounts must sum to the expense total (to the cent), participants
// must be known users, and group expenses may only involve group members.
func (s *ExpenseService) CreateExpense(ctx context.Context, creatorID string, in CreateExpenseInput) (*models.Expense, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if len(in.Splits) == 0 {
		return nil, fmt.Errorf("%w: at least one split is required", ErrInvalidInput)
	}
	if in.PaidByUserID == "" {
		return nil, fmt.Errorf("%w: payer is required", ErrInvalidInput)
	}

	var splitSum calculator.Cents
	seen := make(map[string]bool, len(in.Splits))
	for _, sp := range in.Splits {
		if sp.UserID == "" {
			return nil, fmt.Errorf("%w: split participant is required", ErrInvalidInput)
		}
		if seen[sp.UserID] {
			return nil, fmt.Errorf("%w: duplicate split participant %s", ErrInvalidInput, sp.UserID)
		}
		seen[sp.UserID] = true
		if sp.Amount < 0 {
			return nil, fmt.Errorf("%w: split amounts must not be negative", ErrInvalidInput)
		}
		splitSum += calculator.CentsOf(sp.Amount)
	}
	if splitSum != calculator.CentsOf(in.Amount) {
		return nil, fmt.Errorf("%w: split amounts must sum to the expense total", ErrInvalidInput)
	}

	participantIDs := make([]string, 0, len(in.Splits)+2)
	for id := range seen {
		participantIDs = append(participantIDs, id)
	}
	if !seen[in.PaidByUserID] {
		participantIDs = append(participantIDs, in.PaidByUserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, participantIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up participants: %w", err)
	}
	for _, id := range participantIDs {
		if _, ok := users[id]; !ok {
			return nil, fmt.Errorf("participant %s: %w", id, storage.ErrNotFound)
		}
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		if err := group.AssertMember(creatorID); err != nil {
			return nil, err
		}
		if err := group.AssertMember(in.PaidByUserID); err != nil {
			return nil, err
		}
		for _, sp := range in.Splits {
			if err := group.AssertMember(sp.UserID); err != nil {
				return nil, err
			}
		}
	}

	expense := &models.Expense{
		Description:  in.Description,
		Amount:       in.Amount,
		SplitType:    in.SplitType,
		PaidByUserID: in.PaidByUserID,
		GroupID:      in.GroupID,
		Date:         in.Date,
		Splits:       in.Splits,
		CreatedBy:    creatorID,
	}
	if expense.SplitType == "" {
		expense.SplitType = models.SplitTypeEqual
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
	)

	// Event delivery is best-effort; the expense is already durable.
	if err := s.publisher.Publish(ctx, events.KeyExpenseCreated, events.ExpenseCreated{
		ExpenseID: expense.ID,
		GroupID:   expense.GroupID,
		PaidBy:    expense.PaidByUserID,
		Amount:    expense.Amount,
		Timestamp: time.Now(),
	}); err != nil {
		slog.Warn("Failed to publish expense event", "expense_id", expense.ID, "error", err)
	}

	return expense, nil
}

// ContactDetail is the 1:1 view with another user: shared personal
// history plus the net position between the two.
type ContactDetail struct {
	User        *models.User         `json:"user"`
	Expenses    []*models.Expense    `json:"expenses"`
	Settlements []*models.Settlement `json:"settlements"`
	// Balance is positive when the other user owes the viewer.
	Balance float64 `json:"balance"`
}

// GetContactDetail returns the personal expenses and settlements shared
// between the viewer and another user, with their netted balance.
func (s *ExpenseService) GetContactDetail(ctx context.Context, viewerID, otherID string) (*ContactDetail, error) {
	other, err := s.store.GetUserByID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesBetween(gctx, viewerID, otherID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListSettlementsBetween(gctx, viewerID, otherID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch shared records: %w", err)
	}

	balances := calculator.BuildLedger(expenses, settlements, viewerID, otherID)
	return &ContactDetail{
		User:        other,
		Expenses:    expenses,
		Settlements: settlements,
		Balance:     balances.Net(otherID, viewerID).Float(),
	}, nil
}
