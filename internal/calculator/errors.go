package calculator

import "fmt"

// DataIntegrityError reports a stored record whose contents cannot be
// trusted: a split referencing an unknown participant, an empty user id,
// and similar structural damage.
//
// It is never recovered from locally. Silently dropping a damaged split
// would silently corrupt every balance derived from it, so the error is
// always propagated to the caller.
type DataIntegrityError struct {
	ExpenseID string
	UserID    string
	Reason    string
}

func (e *DataIntegrityError) Error() string {
	if e.ExpenseID != "" {
		return fmt.Sprintf("data integrity: expense %s: %s", e.ExpenseID, e.Reason)
	}
	return fmt.Sprintf("data integrity: %s", e.Reason)
}
