// Package handlers exposes the application services over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitr-app/splitr/internal/auth"
	"github.com/splitr-app/splitr/internal/calculator"
	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/service"
	"github.com/splitr-app/splitr/internal/storage"
)

// Handlers bundles the services the HTTP layer dispatches to.
type Handlers struct {
	Auth        *service.AuthService
	Dashboard   *service.DashboardService
	Groups      *service.GroupService
	Expenses    *service.ExpenseService
	Settlements *service.SettlementService
	Users       *service.UserService
	JWT         *auth.JWTManager
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses.
// Integrity failures stay 500s: they mean stored data cannot be trusted
// and must never be papered over with a partial result.
func writeError(w http.ResponseWriter, err error) {
	var notAMember *models.NotAMemberError
	var integrity *calculator.DataIntegrityError

	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.As(err, &notAMember):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &integrity):
		slog.Error("Data integrity failure", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
