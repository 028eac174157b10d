// backend/models/trip.go
package models

import "time"

// TripQuery is a traveler's trip-insurance search intent as entered on the trip screen.
// TravelerAge stays raw text until validated. Nil dates mean the field was left empty.
type TripQuery struct {
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	TravelerAge  string     `json:"traveler_age"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"` // Optional, never blocks progression
}

// Clone returns a copy that shares no pointers with q.
func (q TripQuery) Clone() TripQuery {
	out := q
	if q.StartDate != nil {
		d := *q.StartDate
		out.StartDate = &d
	}
	if q.EndDate != nil {
		d := *q.EndDate
		out.EndDate = &d
	}
	return out
}
