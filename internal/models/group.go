package models

import "fmt"

// Member roles within a group.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group represents a named set of members whose expenses and settlements
// are scoped together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Weekend Trip").
	Name string `json:"name"`

	// Description is an optional longer blurb.
	Description string `json:"description,omitempty"`

	// CreatedBy is the user who created the group. The creator is always
	// the first member, with role admin.
	CreatedBy string `json:"createdBy"`

	// Members is the ordered member list. No user id appears twice.
	Members []GroupMember `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// GroupMember is one user's membership in a group.
type GroupMember struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

// NotAMemberError is returned when a user requests group-scoped data for a
// group they do not belong to. Callers treat it as an authorization
// failure, never a retryable one.
type NotAMemberError struct {
	GroupID string
	UserID  string
}

func (e *NotAMemberError) Error() string {
	return fmt.Sprintf("user %s is not a member of group %s", e.UserID, e.GroupID)
}

// Member returns the membership entry for userID, or nil if absent.
func (g *Group) Member(userID string) *GroupMember {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// AssertMember fails with a NotAMemberError unless userID is a member.
// It is the precondition guard for every group-scoped balance or expense
// query; pure, no side effects.
func (g *Group) AssertMember(userID string) error {
	if g.Member(userID) == nil {
		return &NotAMemberError{GroupID: g.ID, UserID: userID}
	}
	return nil
}

// MemberIDs returns the member user ids in membership order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
