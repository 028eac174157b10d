// backend/services/intake_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
)

// Intake failures. The trip screen shows Notice(err) as its single notice.
var (
	ErrIncompleteTrip      = errors.New("please complete all required fields")
	ErrInvalidTravelerAge  = errors.New("traveler age must be a whole number")
	ErrTripDatesOutOfOrder = errors.New("the trip end date cannot be before the start date")
)

// Notice turns an intake error into the sentence shown to the traveler.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// IsComplete reports whether origin, destination, traveler age and both dates are filled in.
// Whitespace-only text counts as empty. ContactEmail is never looked at.
func IsComplete(q models.TripQuery) bool {
	return !blank(q.Origin) &&
		!blank(q.Destination) &&
		!blank(q.TravelerAge) &&
		q.StartDate != nil &&
		q.EndDate != nil
}

// CanProceed is the lenient gate between the trip screen and the plan list.
func CanProceed(q models.TripQuery) bool {
	return IsComplete(q)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IntakeValidator decides whether a trip draft may move on to plan selection.
// Lenient mode only checks completeness. Strict mode also checks the traveler age
// range and that the trip does not end before it starts.
type IntakeValidator struct {
	strict bool
	minAge int
	maxAge int
}

func NewIntakeValidator(cfg config.IntakeConfig) *IntakeValidator {
	return &IntakeValidator{
		strict: cfg.Mode == config.IntakeModeStrict,
		minAge: cfg.MinTravelerAge,
		maxAge: cfg.MaxTravelerAge,
	}
}

// Strict reports whether the validator runs in strict mode.
func (v *IntakeValidator) Strict() bool { return v.strict }

// Validate returns nil when q may proceed, otherwise one of the Err* values above
// (possibly wrapped with detail; match with errors.Is).
func (v *IntakeValidator) Validate(q models.TripQuery) error {
	if !IsComplete(q) {
		return ErrIncompleteTrip
	}
	if !v.strict {
		return nil
	}

	age, err := strconv.Atoi(strings.TrimSpace(q.TravelerAge))
	if err != nil || age < v.minAge || age > v.maxAge {
		return fmt.Errorf("%w between %d and %d", ErrInvalidTravelerAge, v.minAge, v.maxAge)
	}
	if q.EndDate.Before(*q.StartDate) {
		return ErrTripDatesOutOfOrder
	}
	return nil
}

// CanProceed is Validate(q) == nil.
func (v *IntakeValidator) CanProceed(q models.TripQuery) bool {
	return v.Validate(q) == nil
}
