// backend/handlers/checkout_handler.go
package handlers

import (
	"math"
	"net/http"

	"github.com/gewnthar/tripcover/backend/models"
	"github.com/gewnthar/tripcover/backend/services"
	"github.com/gewnthar/tripcover/backend/utils"
)

type checkoutPage struct {
	page
	Plan      planCard
	Trip      models.TripQuery
	StartDate string
	EndDate   string
}

type confirmationPage struct {
	page
	Loading   bool
	Reference string
	Plan      planCard
	Trip      models.TripQuery
}

// ShowCheckout renders GET /checkout for the chosen plan.
func (h *Handler) ShowCheckout(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r, services.StepCheckout)
	if !ok {
		return
	}
	data := checkoutPage{page: page{Title: "Checkout"}}
	if snap.Chosen != nil {
		data.Plan = newPlanCard(*snap.Chosen)
	}
	if snap.Trip != nil {
		data.Trip = *snap.Trip
		data.StartDate = utils.FormatTripDate(snap.Trip.StartDate)
		data.EndDate = utils.FormatTripDate(snap.Trip.EndDate)
	}
	h.render(w, http.StatusOK, "checkout.html", data)
}

// Confirm handles POST /checkout. No payment is taken.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "confirm", func(f *services.Flow) error {
		return f.Confirm()
	})
}

// ShowConfirmation renders GET /confirmation; while the countdown runs the page
// reloads itself when it is due.
func (h *Handler) ShowConfirmation(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r, services.StepConfirmation)
	if !ok {
		return
	}
	data := confirmationPage{page: page{Title: "Confirmation"}, Loading: snap.Loading}
	if c := snap.Confirmation; c != nil {
		data.Reference = c.Reference
		data.Plan = newPlanCard(c.Plan)
		data.Trip = c.Trip
		if snap.Loading {
			data.Refresh = int(math.Ceil(snap.Remaining.Seconds()))
			if data.Refresh < 1 {
				data.Refresh = 1
			}
		}
	}
	h.render(w, http.StatusOK, "confirmation.html", data)
}

// StartOver handles POST /confirmation/restart.
func (h *Handler) StartOver(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "start-over", func(f *services.Flow) error {
		return f.StartOver()
	})
}
