// backend/services/flow_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/gewnthar/tripcover/backend/catalog"
	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
)

// Step is one screen of the shopping flow.
type Step int

const (
	StepLogin Step = iota
	StepTrip
	StepPlans
	StepCheckout
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepLogin:
		return "login"
	case StepTrip:
		return "trip"
	case StepPlans:
		return "plans"
	case StepCheckout:
		return "checkout"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// ErrWrongStep is returned when an action belongs to a screen the flow is not on.
var ErrWrongStep = errors.New("action not available on the current screen")

// FlowOptions are shared by every flow of a process.
type FlowOptions struct {
	Catalog           *catalog.Catalog
	Validator         *IntakeValidator
	Selection         config.SelectionConfig
	ConfirmationDelay time.Duration
	Now               func() time.Time // Defaults to time.Now
}

func (o *FlowOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Flow is one visitor's walk through login, trip, plans, checkout and confirmation.
// Data moves forward as copies: the validated trip, then the chosen plan.
// A Flow is not safe for concurrent use; FlowStore serializes access.
type Flow struct {
	ID   string
	opts *FlowOptions

	step         Step
	draft        models.TripQuery  // What the trip screen shows, valid or not
	trip         *models.TripQuery // Set once the draft passed validation
	selection    *Selection
	chosen       *models.InsurancePlan
	confirmation *Confirmation
	notice       string
}

func NewFlow(id string, opts *FlowOptions) *Flow {
	return &Flow{ID: id, opts: opts, step: StepLogin}
}

func (f *Flow) Step() Step { return f.step }

// Login moves to the trip screen. There is no authentication; the email, if any,
// pre-fills the trip's contact email.
func (f *Flow) Login(email string) error {
	if f.step != StepLogin {
		return ErrWrongStep
	}
	if email = strings.TrimSpace(email); email != "" && f.draft.ContactEmail == "" {
		f.draft.ContactEmail = email
	}
	f.step = StepTrip
	return nil
}

// SubmitTrip stores the draft and, if it validates, moves to the plan screen with a
// fresh selection. On failure the flow stays put and keeps the draft for editing.
// A blank contact email keeps the one pre-filled at login.
func (f *Flow) SubmitTrip(draft models.TripQuery) error {
	if f.step != StepTrip {
		return ErrWrongStep
	}
	if blank(draft.ContactEmail) {
		draft.ContactEmail = f.draft.ContactEmail
	}
	f.draft = draft.Clone()
	if err := f.opts.Validator.Validate(draft); err != nil {
		f.notice = Notice(err)
		return err
	}

	trip := draft.Clone()
	f.trip = &trip
	f.notice = ""
	f.selection = NewSelection(f.opts.Catalog, f.opts.Selection)
	f.step = StepPlans
	return nil
}

func (f *Flow) ToggleCompareMode() error {
	if f.step != StepPlans {
		return ErrWrongStep
	}
	f.selection.ToggleCompareMode()
	return nil
}

func (f *Flow) ToggleSelection(id string) error {
	if f.step != StepPlans {
		return ErrWrongStep
	}
	f.selection.ToggleSelection(id)
	return nil
}

// ChoosePlan forwards the plan to checkout. It reports false, staying on the plan
// screen, when compare mode is on or the id is unknown.
func (f *Flow) ChoosePlan(id string) (bool, error) {
	if f.step != StepPlans {
		return false, ErrWrongStep
	}
	plan, ok := f.selection.Choose(id)
	if !ok {
		return false, nil
	}
	f.chosen = &plan
	f.step = StepCheckout
	return true, nil
}

// Confirm finishes checkout and starts the confirmation countdown.
func (f *Flow) Confirm() error {
	if f.step != StepCheckout {
		return ErrWrongStep
	}
	f.confirmation = NewConfirmation(*f.chosen, *f.trip, f.opts.now(), f.opts.ConfirmationDelay)
	f.step = StepConfirmation
	return nil
}

// Back goes one screen back. The trip draft survives going back from the plan screen and
// the selection survives going back from checkout. The confirmation screen is final.
func (f *Flow) Back() bool {
	switch f.step {
	case StepTrip:
		f.notice = ""
		f.step = StepLogin
	case StepPlans:
		f.selection = nil
		f.step = StepTrip
	case StepCheckout:
		f.chosen = nil
		f.step = StepPlans
	default:
		return false
	}
	return true
}

// StartOver begins a new trip from the confirmation screen, keeping the contact email.
func (f *Flow) StartOver() error {
	if f.step != StepConfirmation {
		return ErrWrongStep
	}
	email := f.draft.ContactEmail
	*f = Flow{ID: f.ID, opts: f.opts, step: StepTrip}
	f.draft.ContactEmail = email
	return nil
}

// FlowSnapshot is a read-only copy of a flow for rendering.
type FlowSnapshot struct {
	ID           string
	Step         Step
	Draft        models.TripQuery
	Trip         *models.TripQuery
	Notice       string
	CompareMode  bool
	Selected     []string
	Decision     RenderDecision
	Chosen       *models.InsurancePlan
	Confirmation *Confirmation
	Loading      bool
	Remaining    time.Duration // Time left on the confirmation countdown
}

func (f *Flow) Snapshot() FlowSnapshot {
	snap := FlowSnapshot{
		ID:     f.ID,
		Step:   f.step,
		Draft:  f.draft.Clone(),
		Notice: f.notice,
	}
	if f.trip != nil {
		trip := f.trip.Clone()
		snap.Trip = &trip
	}
	if f.selection != nil {
		snap.CompareMode = f.selection.CompareMode()
		snap.Selected = f.selection.Selected()
		snap.Decision = f.selection.RenderDecision()
	}
	if f.chosen != nil {
		plan := f.chosen.Clone()
		snap.Chosen = &plan
	}
	if f.confirmation != nil {
		c := *f.confirmation
		snap.Confirmation = &c
		now := f.opts.now()
		snap.Loading = c.Loading(now)
		snap.Remaining = c.Remaining(now)
	}
	return snap
}
