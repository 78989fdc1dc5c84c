package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/splitr-app/splitr/internal/middleware"
	"github.com/splitr-app/splitr/internal/service"
)

// CreateExpense records an expense. Splits must cover the full amount.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.CreateExpenseInput
	if !decodeBody(w, r, &in) {
		return
	}

	expense, err := h.Expenses.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// CreateSettlement records a payment between two users.
func (h *Handlers) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSettlementInput
	if !decodeBody(w, r, &in) {
		return
	}

	settlement, err := h.Settlements.CreateSettlement(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlement)
}

// GetContactDetail serves the one-to-one view against another user: the
// shared non-group history and the net balance between the pair.
func (h *Handlers) GetContactDetail(w http.ResponseWriter, r *http.Request) {
	otherID := mux.Vars(r)["userId"]

	detail, err := h.Expenses.GetContactDetail(r.Context(), middleware.GetUserID(r.Context()), otherID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
