// backend/handlers/handler.go
package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gewnthar/tripcover/backend/catalog"
	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
	"github.com/gewnthar/tripcover/backend/services"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// FlowCookie carries the visitor's flow id.
const FlowCookie = "tripcover_flow"

// Handler serves the shopping screens on top of the flow state machine.
type Handler struct {
	flows        *services.FlowStore
	catalog      *catalog.Catalog
	compareStyle string
	templates    *template.Template
}

func NewHandler(flows *services.FlowStore, c *catalog.Catalog, sel config.SelectionConfig) *Handler {
	return &Handler{
		flows:        flows,
		catalog:      c,
		compareStyle: sel.CompareStyle,
		templates:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// page holds what the shared header needs.
type page struct {
	Title   string
	Refresh int // Seconds until the browser reloads; 0 disables
}

// planCard is a plan as the screens show it.
type planCard struct {
	models.InsurancePlan
	PriceText string
	Selected  bool
}

func newPlanCard(p models.InsurancePlan) planCard {
	return planCard{InsurancePlan: p, PriceText: p.PriceLabel()}
}

// stepPath is the screen URL for each step.
func stepPath(step services.Step) string {
	switch step {
	case services.StepTrip:
		return "/trip"
	case services.StepPlans:
		return "/plans"
	case services.StepCheckout:
		return "/checkout"
	case services.StepConfirmation:
		return "/confirmation"
	}
	return "/login"
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		zap.L().Error("Template render failed", zap.String("template", name), zap.Error(err))
	}
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// startFlow creates a flow, hands its id to the browser and sends it to the login screen.
func (h *Handler) startFlow(w http.ResponseWriter, r *http.Request) {
	id := h.flows.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     FlowCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	zap.L().Debug("Started flow", zap.String("flow", id))
	redirect(w, r, "/login")
}

// withFlow runs fn on the caller's flow. A missing or expired flow starts a new one and
// reports false; the response has been written in that case.
func (h *Handler) withFlow(w http.ResponseWriter, r *http.Request, fn func(*services.Flow) error) (bool, error) {
	cookie, err := r.Cookie(FlowCookie)
	if err != nil || cookie.Value == "" {
		h.startFlow(w, r)
		return false, nil
	}
	err = h.flows.With(cookie.Value, fn)
	if errors.Is(err, services.ErrFlowNotFound) {
		h.startFlow(w, r)
		return false, nil
	}
	return true, err
}

// snapshot loads the caller's flow for a GET screen. It redirects and reports false
// when the flow is on a different step than want.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request, want services.Step) (services.FlowSnapshot, bool) {
	var snap services.FlowSnapshot
	ok, _ := h.withFlow(w, r, func(f *services.Flow) error {
		snap = f.Snapshot()
		return nil
	})
	if !ok {
		return snap, false
	}
	if snap.Step != want {
		redirect(w, r, stepPath(snap.Step))
		return snap, false
	}
	return snap, true
}

// act runs a POST action and redirects to whatever screen the flow ends up on.
// Actions that do not belong to the current screen are ignored.
func (h *Handler) act(w http.ResponseWriter, r *http.Request, name string, fn func(*services.Flow) error) {
	var step services.Step
	ok, err := h.withFlow(w, r, func(f *services.Flow) error {
		err := fn(f)
		step = f.Step()
		return err
	})
	if !ok {
		return
	}
	if errors.Is(err, services.ErrWrongStep) {
		zap.L().Debug("Ignored action for another screen", zap.String("action", name), zap.Stringer("step", step))
	} else if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	redirect(w, r, stepPath(step))
}

// Home sends the visitor to their current screen.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	var step services.Step
	ok, _ := h.withFlow(w, r, func(f *services.Flow) error {
		step = f.Step()
		return nil
	})
	if ok {
		redirect(w, r, stepPath(step))
	}
}

// Back handles POST /back.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "back", func(f *services.Flow) error {
		f.Back()
		return nil
	})
}
