// backend/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gewnthar/tripcover/backend/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires the screens, the JSON endpoints and the middleware chain.
func NewRouter(h *Handler, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/plans", h.ListPlans).Methods(http.MethodGet)

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/login", h.ShowLogin).Methods(http.MethodGet)
	r.HandleFunc("/login", h.SubmitLogin).Methods(http.MethodPost)
	r.HandleFunc("/trip", h.ShowTrip).Methods(http.MethodGet)
	r.HandleFunc("/trip", h.SubmitTrip).Methods(http.MethodPost)
	r.HandleFunc("/plans", h.ShowPlans).Methods(http.MethodGet)
	r.HandleFunc("/plans/compare", h.ToggleCompare).Methods(http.MethodPost)
	r.HandleFunc("/plans/{id}/toggle", h.TogglePlan).Methods(http.MethodPost)
	r.HandleFunc("/plans/{id}/choose", h.ChoosePlan).Methods(http.MethodPost)
	r.HandleFunc("/checkout", h.ShowCheckout).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.Confirm).Methods(http.MethodPost)
	r.HandleFunc("/confirmation", h.ShowConfirmation).Methods(http.MethodGet)
	r.HandleFunc("/confirmation/restart", h.StartOver).Methods(http.MethodPost)
	r.HandleFunc("/back", h.Back).Methods(http.MethodPost)
	return r
}
