package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/splitr-app/splitr/internal/middleware"
)

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

// CreateGroup creates a group with the viewer as admin.
func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.Groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()),
		req.Name, req.Description, req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// GetGroupDetail serves the membership-gated group view: records plus
// per-member balances.
func (h *Handlers) GetGroupDetail(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	detail, err := h.Groups.GetGroupDetail(r.Context(), groupID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
