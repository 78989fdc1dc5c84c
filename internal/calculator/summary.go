package calculator

import (
	"sort"
	"time"

	"github.com/splitr-app/splitr/internal/models"
)

// BalanceEntry is one counterpart row in a balance summary.
type BalanceEntry struct {
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Amount   float64 `json:"amount"`
}

// OweDetails holds the viewer's creditor and debtor lists.
type OweDetails struct {
	// YouOwe lists counterparts the viewer owes money to.
	YouOwe []BalanceEntry `json:"youOwe"`
	// YouAreOwed lists counterparts who owe the viewer.
	YouAreOwed []BalanceEntry `json:"youAreOwed"`
}

// BalanceSummary is the dashboard view of one user's position.
type BalanceSummary struct {
	YouOwe       float64    `json:"youOwe"`
	YouAreOwed   float64    `json:"youAreOwed"`
	TotalBalance float64    `json:"totalBalance"`
	OweDetails   OweDetails `json:"oweDetails"`
}

// SummarizeForViewer reduces a ledger to the viewer's dashboard summary.
// TotalBalance always equals Totals[viewerID]; the per-pair netting and the
// per-user totals are two views of the same events.
//
// Counterparts are looked up in users for display fields; an unknown
// counterpart is a DataIntegrityError, not an "Unknown" placeholder.
func SummarizeForViewer(b *Balances, users map[string]*models.User, viewerID string) (*BalanceSummary, error) {
	var youOwe, youAreOwed Cents
	details := OweDetails{
		YouOwe:     []BalanceEntry{},
		YouAreOwed: []BalanceEntry{},
	}

	for _, other := range b.Users() {
		if other == viewerID {
			continue
		}
		net := b.Net(viewerID, other)
		if net == 0 {
			continue
		}
		u, ok := users[other]
		if !ok {
			return nil, &DataIntegrityError{
				UserID: other,
				Reason: "balance counterpart is not a known user",
			}
		}
		entry := BalanceEntry{UserID: u.ID, Name: u.Name, ImageURL: u.ImageURL}
		if net > 0 {
			youOwe += net
			entry.Amount = net.Float()
			details.YouOwe = append(details.YouOwe, entry)
		} else {
			youAreOwed += -net
			entry.Amount = (-net).Float()
			details.YouAreOwed = append(details.YouAreOwed, entry)
		}
	}

	sortEntries(details.YouOwe)
	sortEntries(details.YouAreOwed)

	return &BalanceSummary{
		YouOwe:       youOwe.Float(),
		YouAreOwed:   youAreOwed.Float(),
		TotalBalance: (youAreOwed - youOwe).Float(),
		OweDetails:   details,
	}, nil
}

// sortEntries orders by amount descending, ties broken by user id
// ascending, so two runs over the same input render identically.
func sortEntries(entries []BalanceEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].UserID < entries[j].UserID
	})
}

// MonthlySpending is one month's share of the viewer's own split amounts.
type MonthlySpending struct {
	// Month is the Unix timestamp of the first day of the month.
	Month int64 `json:"month"`
	// Total is the viewer's split sum for expenses dated in the month.
	Total float64 `json:"total"`
}

// MonthlySpendingFor buckets the viewer's own split amount (regardless of
// paid status) into the 12 calendar months of year. Months with no
// activity report zero, not absence; expenses dated outside the year are
// ignored.
func MonthlySpendingFor(expenses []*models.Expense, viewerID string, year int, loc *time.Location) []MonthlySpending {
	totals := make([]Cents, 12)
	for _, e := range expenses {
		d := time.Unix(e.Date, 0).In(loc)
		if d.Year() != year {
			continue
		}
		if s := e.ViewerSplit(viewerID); s != nil {
			totals[int(d.Month())-1] += CentsOf(s.Amount)
		}
	}

	out := make([]MonthlySpending, 12)
	for i := 0; i < 12; i++ {
		out[i] = MonthlySpending{
			Month: time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, loc).Unix(),
			Total: totals[i].Float(),
		}
	}
	return out
}

// TotalSpent sums the viewer's own split amounts across the supplied
// expenses, regardless of paid status.
func TotalSpent(expenses []*models.Expense, viewerID string) float64 {
	var total Cents
	for _, e := range expenses {
		if s := e.ViewerSplit(viewerID); s != nil {
			total += CentsOf(s.Amount)
		}
	}
	return total.Float()
}

// GroupBalance reduces a group-scoped ledger to the viewer's single signed
// position within that group: positive means the group owes the viewer.
func GroupBalance(b *Balances, viewerID string) float64 {
	return b.Totals[viewerID].Float()
}

// PairAmount is one edge of a member's owes/owedBy lists.
type PairAmount struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

// MemberBalance is one group member's position on the group detail page.
type MemberBalance struct {
	UserID       string       `json:"userId"`
	Name         string       `json:"name"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Role         string       `json:"role"`
	TotalBalance float64      `json:"totalBalance"`
	Owes         []PairAmount `json:"owes"`
	OwedBy       []PairAmount `json:"owedBy"`
}

// MemberBalancesFor formats a group-scoped ledger as one row per member,
// in membership order. Only the netted direction of each pair is reported:
// "A owes B" and "B owes A" never appear together.
func MemberBalancesFor(b *Balances, group *models.Group, users map[string]*models.User) ([]MemberBalance, error) {
	out := make([]MemberBalance, 0, len(group.Members))
	for _, m := range group.Members {
		u, ok := users[m.UserID]
		if !ok {
			return nil, &DataIntegrityError{
				UserID: m.UserID,
				Reason: "group member is not a known user",
			}
		}

		mb := MemberBalance{
			UserID:       u.ID,
			Name:         u.Name,
			ImageURL:     u.ImageURL,
			Role:         m.Role,
			TotalBalance: b.Totals[m.UserID].Float(),
			Owes:         []PairAmount{},
			OwedBy:       []PairAmount{},
		}
		for _, other := range b.Users() {
			if other == m.UserID {
				continue
			}
			if net := b.Net(m.UserID, other); net > 0 {
				mb.Owes = append(mb.Owes, PairAmount{UserID: other, Amount: net.Float()})
			} else if net < 0 {
				mb.OwedBy = append(mb.OwedBy, PairAmount{UserID: other, Amount: (-net).Float()})
			}
		}
		sortPairs(mb.Owes)
		sortPairs(mb.OwedBy)
		out = append(out, mb)
	}
	return out, nil
}

func sortPairs(pairs []PairAmount) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Amount != pairs[j].Amount {
			return pairs[i].Amount > pairs[j].Amount
		}
		return pairs[i].UserID < pairs[j].UserID
	})
}
