// backend/handlers/plan_handler.go
package handlers

import (
	"net/http"

	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
	"github.com/gewnthar/tripcover/backend/services"
	"github.com/gorilla/mux"
)

type plansPage struct {
	page
	Trip        models.TripQuery
	CompareMode bool
	View        string
	Cards       []planCard // Plans to render for the current view
	Catalog     []planCard // Every plan with its selection mark, for the compare picker
	Pickable    bool
	Needed      int
}

// ShowPlans renders GET /plans according to the selection's render decision.
func (h *Handler) ShowPlans(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r, services.StepPlans)
	if !ok {
		return
	}

	selected := make(map[string]bool, len(snap.Selected))
	for _, id := range snap.Selected {
		selected[id] = true
	}

	data := plansPage{
		page:        page{Title: "Plans"},
		CompareMode: snap.CompareMode,
		View:        snap.Decision.View.String(),
		Pickable:    snap.CompareMode && h.compareStyle != config.CompareStyleAll,
		Needed:      snap.Decision.Needed,
	}
	if snap.Trip != nil {
		data.Trip = *snap.Trip
	}
	for _, p := range snap.Decision.Plans {
		data.Cards = append(data.Cards, newPlanCard(p))
	}
	for _, p := range h.catalog.Plans() {
		card := newPlanCard(p)
		card.Selected = selected[p.ID]
		data.Catalog = append(data.Catalog, card)
	}
	h.render(w, http.StatusOK, "plans.html", data)
}

// ToggleCompare handles POST /plans/compare.
func (h *Handler) ToggleCompare(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "toggle-compare", func(f *services.Flow) error {
		return f.ToggleCompareMode()
	})
}

// TogglePlan handles POST /plans/{id}/toggle.
func (h *Handler) TogglePlan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.act(w, r, "toggle-plan", func(f *services.Flow) error {
		return f.ToggleSelection(id)
	})
}

// ChoosePlan handles POST /plans/{id}/choose. Refused choices land back on the plan list.
func (h *Handler) ChoosePlan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.act(w, r, "choose-plan", func(f *services.Flow) error {
		_, err := f.ChoosePlan(id)
		return err
	})
}
