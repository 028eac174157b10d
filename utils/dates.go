// backend/utils/dates.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

// Accepted trip date layouts: the HTML date input and the US-style MM/DD/YYYY.
const (
	isoDateLayout = "2006-01-02"
	usDateLayout  = "01/02/2006"
)

// ParseTripDate parses a calendar date typed on the trip screen.
// An empty string yields (nil, nil) so the caller can treat it as "not filled in".
func ParseTripDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{isoDateLayout, usDateLayout} {
		if d, err := time.Parse(layout, raw); err == nil {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or MM/DD/YYYY", raw)
}

// FormatTripDate renders a date for the date input; nil becomes "".
func FormatTripDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(isoDateLayout)
}
