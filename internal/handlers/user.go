package handlers

import (
	"net/http"

	"github.com/splitr-app/splitr/internal/middleware"
)

// SearchUsers looks up users by name or email prefix. Queries shorter
// than two characters return an empty list.
func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users, err := h.Users.Search(r.Context(), middleware.GetUserID(r.Context()), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
