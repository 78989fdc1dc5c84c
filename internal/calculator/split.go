package calculator

import (
	"github.com/splitr-app/splitr/internal/models"
)

// Resolution describes one viewer's stake in a single expense.
type Resolution struct {
	// IsPayer is true when the viewer fronted the expense.
	IsPayer bool

	// ViewerSplit is the viewer's own split entry, or nil when the viewer
	// has no share in the expense (they may still be the payer).
	ViewerSplit *models.Split
}

// ResolveSplit determines the viewer's role in an expense: whether they
// paid it and what their own share is. No side effects.
//
// An expense carrying a split with an empty participant id is reported as a
// DataIntegrityError rather than skipped.
func ResolveSplit(e *models.Expense, viewerID string) (Resolution, error) {
	for i := range e.Splits {
		if e.Splits[i].UserID == "" {
			return Resolution{}, &DataIntegrityError{
				ExpenseID: e.ID,
				Reason:    "split with empty participant id",
			}
		}
	}
	return Resolution{
		IsPayer:     e.PaidByUserID == viewerID,
		ViewerSplit: e.ViewerSplit(viewerID),
	}, nil
}

// ValidateSettlements checks both parties of every settlement against the
// set of known users.
func ValidateSettlements(settlements []*models.Settlement, known map[string]*models.User) error {
	for _, s := range settlements {
		for _, id := range []string{s.PaidByUserID, s.ReceivedByUserID} {
			if _, ok := known[id]; !ok {
				return &DataIntegrityError{
					UserID: id,
					Reason: "settlement party is not a known user",
				}
			}
		}
	}
	return nil
}

// ValidateExpenses checks every split participant and payer against the set
// of known users. The first unresolvable reference fails the whole batch:
// balances built from a partially-resolvable history would be wrong for
// everyone, not just the damaged record.
func ValidateExpenses(expenses []*models.Expense, known map[string]*models.User) error {
	for _, e := range expenses {
		if _, ok := known[e.PaidByUserID]; !ok {
			return &DataIntegrityError{
				ExpenseID: e.ID,
				UserID:    e.PaidByUserID,
				Reason:    "payer is not a known user",
			}
		}
		for _, s := range e.Splits {
			if _, ok := known[s.UserID]; !ok {
				return &DataIntegrityError{
					ExpenseID: e.ID,
					UserID:    s.UserID,
					Reason:    "split participant is not a known user",
				}
			}
		}
	}
	return nil
}
