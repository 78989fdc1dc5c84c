package models

// Settlement represents a direct payment between two users reducing an
// existing debt. Settlements are append-only ledger events: once recorded
// they are never mutated.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID scopes the settlement to a group. Empty means it settles a
	// personal (1:1) debt.
	GroupID string `json:"groupId,omitempty"`

	// PaidByUserID is the debtor settling up.
	PaidByUserID string `json:"paidByUserId"`

	// ReceivedByUserID is the creditor being paid.
	ReceivedByUserID string `json:"receivedByUserId"`

	// Amount is the payment amount. Overpayment is valid and nets out as a
	// credit toward the payer.
	Amount float64 `json:"amount"`

	// Date is the Unix timestamp the payment is dated at.
	Date int64 `json:"date"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`

	// CreatedBy is the user who recorded the settlement.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"createdAt"`
}
