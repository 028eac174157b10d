// backend/handlers/trip_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gewnthar/tripcover/backend/models"
	"github.com/gewnthar/tripcover/backend/services"
	"github.com/gewnthar/tripcover/backend/utils"
	"go.uber.org/zap"
)

// tripForm is the trip screen's fields as text, exactly as the traveler typed them.
type tripForm struct {
	Origin       string
	Destination  string
	TravelerAge  string
	StartDate    string
	EndDate      string
	ContactEmail string
}

type tripPage struct {
	page
	Notice string
	Form   tripForm
	Cities []string
}

func formFromQuery(q models.TripQuery) tripForm {
	return tripForm{
		Origin:       q.Origin,
		Destination:  q.Destination,
		TravelerAge:  q.TravelerAge,
		StartDate:    utils.FormatTripDate(q.StartDate),
		EndDate:      utils.FormatTripDate(q.EndDate),
		ContactEmail: q.ContactEmail,
	}
}

func formFromRequest(r *http.Request) tripForm {
	return tripForm{
		Origin:       r.PostFormValue("origin"),
		Destination:  r.PostFormValue("destination"),
		TravelerAge:  r.PostFormValue("traveler_age"),
		StartDate:    r.PostFormValue("start_date"),
		EndDate:      r.PostFormValue("end_date"),
		ContactEmail: r.PostFormValue("contact_email"),
	}
}

// query converts the form into a TripQuery. A date that cannot be parsed is left nil,
// which makes the query incomplete.
func (f tripForm) query() models.TripQuery {
	q := models.TripQuery{
		Origin:       utils.NormalizeCity(f.Origin),
		Destination:  utils.NormalizeCity(f.Destination),
		TravelerAge:  strings.TrimSpace(f.TravelerAge),
		ContactEmail: strings.TrimSpace(f.ContactEmail),
	}
	var err error
	if q.StartDate, err = utils.ParseTripDate(f.StartDate); err != nil {
		zap.L().Debug("Unparseable start date", zap.Error(err))
	}
	if q.EndDate, err = utils.ParseTripDate(f.EndDate); err != nil {
		zap.L().Debug("Unparseable end date", zap.Error(err))
	}
	return q
}

func (h *Handler) tripPage(notice string, form tripForm) tripPage {
	return tripPage{
		page:   page{Title: "Trip details"},
		Notice: notice,
		Form:   form,
		Cities: utils.KnownCities,
	}
}

// ShowTrip renders GET /trip with the current draft.
func (h *Handler) ShowTrip(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r, services.StepTrip)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, "trip.html", h.tripPage(snap.Notice, formFromQuery(snap.Draft)))
}

// SubmitTrip handles POST /trip. An invalid draft re-renders the form with a single
// notice and everything the traveler entered; a valid one moves on to the plans.
func (h *Handler) SubmitTrip(w http.ResponseWriter, r *http.Request) {
	form := formFromRequest(r)
	query := form.query()

	var step services.Step
	ok, err := h.withFlow(w, r, func(f *services.Flow) error {
		err := f.SubmitTrip(query)
		step = f.Step()
		return err
	})
	if !ok {
		return
	}

	switch {
	case err == nil, errors.Is(err, services.ErrWrongStep):
		redirect(w, r, stepPath(step))
	default:
		zap.L().Debug("Trip draft rejected", zap.Error(err))
		h.render(w, http.StatusUnprocessableEntity, "trip.html", h.tripPage(services.Notice(err), form))
	}
}
