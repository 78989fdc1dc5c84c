package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/splitr-app/splitr/internal/calculator"
	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

// DashboardService derives the viewer's personal (non-group) balances and
// spending rollups from a consistent snapshot of stored records.
type DashboardService struct {
	store storage.Store
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetUserBalances computes the viewer's dashboard summary over all
// personal expenses and settlements they are involved in. A viewer with no
// history gets a valid all-zero summary.
func (s *DashboardService) GetUserBalances(ctx context.Context, viewerID string) (*calculator.BalanceSummary, error) {
	expenses, settlements, err := s.fetchPersonal(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	users, err := s.lookupParticipants(ctx, expenses, settlements, viewerID)
	if err != nil {
		return nil, err
	}
	if err := calculator.ValidateExpenses(expenses, users); err != nil {
		return nil, err
	}
	if err := calculator.ValidateSettlements(settlements, users); err != nil {
		return nil, err
	}

	balances := calculator.BuildLedger(expenses, settlements, viewerID)
	summary, err := calculator.SummarizeForViewer(balances, users, viewerID)
	if err != nil {
		return nil, err
	}

	slog.Debug("Computed user balances",
		"user_id", viewerID,
		"expenses", len(expenses),
		"settlements", len(settlements),
	)
	return summary, nil
}

// GetMonthlySpending returns the viewer's split totals for each of the 12
// months of year, zero-filled for quiet months.
func (s *DashboardService) GetMonthlySpending(ctx context.Context, viewerID string, year int) ([]calculator.MonthlySpending, error) {
	expenses, err := s.yearExpenses(ctx, viewerID, year)
	if err != nil {
		return nil, err
	}
	return calculator.MonthlySpendingFor(expenses, viewerID, year, time.UTC), nil
}

// GetTotalSpent sums the viewer's own split amounts for the given year.
func (s *DashboardService) GetTotalSpent(ctx context.Context, viewerID string, year int) (float64, error) {
	expenses, err := s.yearExpenses(ctx, viewerID, year)
	if err != nil {
		return 0, err
	}
	return calculator.TotalSpent(expenses, viewerID), nil
}

// GroupWithBalance pairs a group with the viewer's net position inside it.
type GroupWithBalance struct {
	*models.Group
	Balance float64 `json:"balance"`
}

// GetUserGroups lists the viewer's groups, each with the viewer's signed
// balance within that group.
func (s *DashboardService) GetUserGroups(ctx context.Context, viewerID string) ([]GroupWithBalance, error) {
	groups, err := s.store.ListGroupsForUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	out := make([]GroupWithBalance, 0, len(groups))
	for _, group := range groups {
		var (
			expenses    []*models.Expense
			settlements []*models.Settlement
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			expenses, err = s.store.ListGroupExpenses(gctx, group.ID)
			return err
		})
		g.Go(func() error {
			var err error
			settlements, err = s.store.ListGroupSettlements(gctx, group.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to fetch group records: %w", err)
		}

		balances := calculator.BuildLedger(expenses, settlements, group.MemberIDs()...)
		out = append(out, GroupWithBalance{
			Group:   group,
			Balance: calculator.GroupBalance(balances, viewerID),
		})
	}
	return out, nil
}

func (s *DashboardService) fetchPersonal(ctx context.Context, viewerID string) ([]*models.Expense, []*models.Settlement, error) {
	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListPersonalExpenses(gctx, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListPersonalSettlements(gctx, viewerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch personal records: %w", err)
	}
	return expenses, settlements, nil
}

func (s *DashboardService) yearExpenses(ctx context.Context, viewerID string, year int) ([]*models.Expense, error) {
	since := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	expenses, err := s.store.ListUserExpensesSince(ctx, viewerID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// lookupParticipants resolves every user id appearing in the records, plus
// the viewer, for display and integrity checking.
func (s *DashboardService) lookupParticipants(ctx context.Context, expenses []*models.Expense, settlements []*models.Settlement, viewerID string) (map[string]*models.User, error) {
	seen := map[string]bool{viewerID: true}
	ids := []string{viewerID}
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, e := range expenses {
		add(e.PaidByUserID)
		for _, sp := range e.Splits {
			add(sp.UserID)
		}
	}
	for _, st := range settlements {
		add(st.PaidByUserID)
		add(st.ReceivedByUserID)
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up participants: %w", err)
	}
	return users, nil
}
