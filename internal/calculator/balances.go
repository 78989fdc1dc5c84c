// Package calculator implements the balance computation engine: pure,
// synchronous functions that turn a snapshot of expenses and settlements
// into net balances, a pairwise who-owes-whom ledger, and
// presentation-ready summaries.
//
// The engine is scope-agnostic: callers pre-filter the records to the
// desired scope (personal/1:1, one group, one counterpart) and the engine
// aggregates exactly what it is given.
package calculator

import (
	"sort"

	"github.com/splitr-app/splitr/internal/models"
)

// Balances is the output of BuildLedger.
type Balances struct {
	// Totals maps user id to net balance: positive means the user is owed
	// money, negative means they owe.
	Totals map[string]Cents

	// Ledger maps debtor -> creditor -> amount accumulated in event order.
	// Both directions of a pair may carry raw entries; Net reduces them to
	// the single presentable direction.
	Ledger map[string]map[string]Cents
}

// BuildLedger aggregates expenses and settlements into per-user totals and
// a pairwise ledger. Each expense is visited exactly once, and only its own
// splits are visited within it.
//
// include pre-seeds user ids (typically the group member list) so that
// users with no activity still appear with zero balances. Ids appearing in
// the supplied records are added regardless.
//
// A zero-event input is valid and returns an empty result.
func BuildLedger(expenses []*models.Expense, settlements []*models.Settlement, include ...string) *Balances {
	b := &Balances{
		Totals: make(map[string]Cents),
		Ledger: make(map[string]map[string]Cents),
	}
	b.ensure(include...)

	for _, e := range expenses {
		payer := e.PaidByUserID
		b.ensure(payer)
		for _, s := range e.Splits {
			b.ensure(s.UserID)
			// A self-split contributes no debt; a paid split is history.
			if s.UserID == payer || s.Paid {
				continue
			}
			amt := CentsOf(s.Amount)
			b.Totals[payer] += amt
			b.Totals[s.UserID] -= amt
			b.Ledger[s.UserID][payer] += amt
		}
	}

	for _, s := range settlements {
		b.ensure(s.PaidByUserID, s.ReceivedByUserID)
		amt := CentsOf(s.Amount)
		b.Totals[s.PaidByUserID] += amt
		b.Totals[s.ReceivedByUserID] -= amt
		// A payment reduces what the payer owed the receiver. Driving the
		// entry negative is valid: it is an overpayment/credit that Net
		// folds into the opposite direction.
		b.Ledger[s.PaidByUserID][s.ReceivedByUserID] -= amt
	}

	return b
}

// Net returns the netted amount a owes b: raw a->b minus raw b->a.
// Positive means a owes b, negative means b owes a, zero means no
// relationship is reported.
func (b *Balances) Net(a, c string) Cents {
	return b.Ledger[a][c] - b.Ledger[c][a]
}

// Users returns all user ids in the result, sorted for deterministic
// iteration.
func (b *Balances) Users() []string {
	ids := make([]string, 0, len(b.Totals))
	for id := range b.Totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *Balances) ensure(ids ...string) {
	for _, id := range ids {
		if _, ok := b.Totals[id]; !ok {
			b.Totals[id] = 0
			b.Ledger[id] = make(map[string]Cents)
		}
	}
}
