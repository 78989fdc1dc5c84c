package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/splitr-app/splitr/internal/middleware"
)

// GetUserBalances serves the viewer's personal balance summary.
func (h *Handlers) GetUserBalances(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dashboard.GetUserBalances(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetMonthlySpending serves the 12-month spending rollup for a year
// (default: the current year).
func (h *Handlers) GetMonthlySpending(w http.ResponseWriter, r *http.Request) {
	months, err := h.Dashboard.GetMonthlySpending(r.Context(), middleware.GetUserID(r.Context()), yearParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// GetTotalSpent serves the viewer's split total for a year.
func (h *Handlers) GetTotalSpent(w http.ResponseWriter, r *http.Request) {
	total, err := h.Dashboard.GetTotalSpent(r.Context(), middleware.GetUserID(r.Context()), yearParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"totalSpent": total})
}

// GetUserGroups serves the viewer's groups with their group balances.
func (h *Handlers) GetUserGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Dashboard.GetUserGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func yearParam(r *http.Request) int {
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		return y
	}
	return time.Now().UTC().Year()
}
