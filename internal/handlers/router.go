package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitr-app/splitr/internal/middleware"
)

// Router builds the full route table. Auth routes sit outside the JWT
// middleware; everything else under /api requires a valid token.
func (h *Handlers) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	router.Use(middleware.Logging)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth(h.JWT, func(w http.ResponseWriter, err error) {
		writeError(w, err)
	}))

	api.HandleFunc("/dashboard/balances", h.GetUserBalances).Methods("GET")
	api.HandleFunc("/dashboard/spending", h.GetMonthlySpending).Methods("GET")
	api.HandleFunc("/dashboard/total", h.GetTotalSpent).Methods("GET")

	api.HandleFunc("/groups", h.CreateGroup).Methods("POST")
	api.HandleFunc("/groups", h.GetUserGroups).Methods("GET")
	api.HandleFunc("/groups/{groupId}/expenses", h.GetGroupDetail).Methods("GET")

	api.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	api.HandleFunc("/settlements", h.CreateSettlement).Methods("POST")

	api.HandleFunc("/contacts/{userId}", h.GetContactDetail).Methods("GET")
	api.HandleFunc("/users/search", h.SearchUsers).Methods("GET")

	return router
}
