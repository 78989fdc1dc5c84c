package models

// Split types recorded on an expense. The engine only reads the resolved
// per-user amounts; the type is kept so clients can re-open the expense in
// the same editing mode it was created with.
const (
	SplitTypeEqual      = "equal"
	SplitTypePercentage = "percentage"
	SplitTypeExact      = "exact"
)

// Expense represents a shared cost paid by one user and split among
// participants. Expenses are never mutated by the balance engine; a split's
// Paid flag may change independently through the store.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g., "Dinner", "Cab fare").
	Description string `json:"description"`

	// Amount is the total expense amount. The sum of split amounts equals
	// this total; creation validates it, the engine assumes it.
	Amount float64 `json:"amount"`

	// SplitType records how the splits were derived (equal, percentage, exact).
	SplitType string `json:"splitType"`

	// PaidByUserID is the user who fronted the money.
	PaidByUserID string `json:"paidByUserId"`

	// GroupID scopes the expense to a group. Empty means a personal (1:1)
	// expense that shows up on the dashboard rather than a group page.
	GroupID string `json:"groupId,omitempty"`

	// Date is the Unix timestamp the expense is dated at (not necessarily
	// when it was recorded).
	Date int64 `json:"date"`

	// Splits is the ordered list of participant shares.
	Splits []Split `json:"splits"`

	// CreatedBy is the user who recorded the expense.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// Split is one participant's owed share of a single expense.
type Split struct {
	// UserID is the participant who owes this share.
	UserID string `json:"userId"`

	// Amount is the share owed.
	Amount float64 `json:"amount"`

	// Paid marks the share as settled outside the settlement ledger
	// (e.g., paid in cash on the spot). Paid splits are excluded from
	// outstanding balances but remain part of the expense history.
	Paid bool `json:"paid"`
}

// ViewerSplit returns the split belonging to userID, or nil if the user has
// no stake in the expense.
func (e *Expense) ViewerSplit(userID string) *Split {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i]
		}
	}
	return nil
}

// Involves reports whether userID is the payer or a split participant.
func (e *Expense) Involves(userID string) bool {
	return e.PaidByUserID == userID || e.ViewerSplit(userID) != nil
}
