// backend/services/checkout_service.go
package services

import (
	"strings"
	"time"

	"github.com/gewnthar/tripcover/backend/models"
	"github.com/google/uuid"
)

// Confirmation is the static screen shown after checkout. No payment happens; the
// screen shows a loading state for a fixed cosmetic delay and then the summary.
type Confirmation struct {
	Reference string
	Plan      models.InsurancePlan
	Trip      models.TripQuery
	ReadyAt   time.Time
}

// NewConfirmation starts the one-shot countdown at now.
func NewConfirmation(plan models.InsurancePlan, trip models.TripQuery, now time.Time, delay time.Duration) *Confirmation {
	return &Confirmation{
		Reference: confirmationReference(),
		Plan:      plan.Clone(),
		Trip:      trip.Clone(),
		ReadyAt:   now.Add(delay),
	}
}

// Loading is true until the countdown has run out. It never restarts.
func (c *Confirmation) Loading(now time.Time) bool {
	return now.Before(c.ReadyAt)
}

// Remaining is how long the countdown still runs at now; zero once it is over.
func (c *Confirmation) Remaining(now time.Time) time.Duration {
	if !c.Loading(now) {
		return 0
	}
	return c.ReadyAt.Sub(now)
}

// confirmationReference returns a display reference like "TC-1A2B3C4D".
func confirmationReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TC-" + strings.ToUpper(id[:8])
}
