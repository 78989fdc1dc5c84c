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

// GroupService manages groups and the group detail view.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the creator as its first member, role
// admin. Duplicate member ids are collapsed; every member must be a known
// user.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name, description string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	now := time.Now().Unix()
	group := &models.Group{
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		Members: []models.GroupMember{
			{UserID: creatorID, Role: models.RoleAdmin, JoinedAt: now},
		},
	}

	seen := map[string]bool{creatorID: true}
	for _, id := range memberIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		group.Members = append(group.Members, models.GroupMember{
			UserID: id, Role: models.RoleMember, JoinedAt: now,
		})
	}

	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to look up members: %w", err)
	}
	for _, id := range group.MemberIDs() {
		if _, ok := users[id]; !ok {
			return nil, fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
		}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("Group created",
		"group_id", group.ID,
		"created_by", creatorID,
		"members", len(group.Members),
	)
	return group, nil
}

// MemberDetail is one member row on the group detail page.
type MemberDetail struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Role     string `json:"role"`
}

// GroupDetail is the full group view: records plus derived balances.
type GroupDetail struct {
	Group       *models.Group              `json:"group"`
	Members     []MemberDetail             `json:"members"`
	Expenses    []*models.Expense          `json:"expenses"`
	Settlements []*models.Settlement       `json:"settlements"`
	Balances    []calculator.MemberBalance `json:"balances"`
}

// GetGroupDetail returns the group's members, expense and settlement
// history, and per-member balances. Only members may see it: non-members
// get a NotAMemberError.
func (s *GroupService) GetGroupDetail(ctx context.Context, groupID, viewerID string) (*GroupDetail, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := group.AssertMember(viewerID); err != nil {
		return nil, err
	}

	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListGroupExpenses(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListGroupSettlements(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch group records: %w", err)
	}

	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to look up members: %w", err)
	}
	if err := calculator.ValidateExpenses(expenses, users); err != nil {
		return nil, err
	}
	if err := calculator.ValidateSettlements(settlements, users); err != nil {
		return nil, err
	}

	balances := calculator.BuildLedger(expenses, settlements, group.MemberIDs()...)
	memberBalances, err := calculator.MemberBalancesFor(balances, group, users)
	if err != nil {
		return nil, err
	}

	members := make([]MemberDetail, 0, len(group.Members))
	for _, m := range group.Members {
		u := users[m.UserID]
		members = append(members, MemberDetail{
			UserID:   u.ID,
			Name:     u.Name,
			ImageURL: u.ImageURL,
			Role:     m.Role,
		})
	}

	return &GroupDetail{
		Group:       group,
		Members:     members,
		Expenses:    expenses,
		Settlements: settlements,
		Balances:    memberBalances,
	}, nil
}
