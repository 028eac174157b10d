// backend/models/plan.go
package models

import (
	"strconv"
	"strings"
)

// perkSeparator joins perks inside a single CSV cell or DB column.
const perkSeparator = "|"

// Perks is the ordered list of benefits a plan includes.
// It is stored as "Trip cancellation|Baggage|COVID-19" in CSV cells and DB columns.
type Perks []string

// UnmarshalCSV implements csvutil.Unmarshaler. JSON keeps the plain array form.
func (p *Perks) UnmarshalCSV(data []byte) error {
	*p = ParsePerks(string(data))
	return nil
}

// MarshalCSV implements csvutil.Marshaler.
func (p Perks) MarshalCSV() ([]byte, error) {
	return []byte(strings.Join(p, perkSeparator)), nil
}

// ParsePerks splits a joined perk column, dropping blank entries.
func ParsePerks(raw string) Perks {
	var perks Perks
	for _, part := range strings.Split(raw, perkSeparator) {
		if perk := strings.TrimSpace(part); perk != "" {
			perks = append(perks, perk)
		}
	}
	return perks
}

// InsurancePlan is one entry of the static plan catalog.
// CSV tags match the headers of catalog/plans.csv.
type InsurancePlan struct {
	ID            string  `csv:"id" db:"id" json:"id"`
	Provider      string  `csv:"provider" db:"provider" json:"provider"`
	Price         float64 `csv:"price" db:"price" json:"price"`
	CoverageLimit string  `csv:"coverage_limit" db:"coverage_limit" json:"coverage_limit"` // Display-formatted, e.g. "$200,000"
	Perks         Perks   `csv:"perks" db:"-" json:"perks"`
}

// Clone returns a deep copy so callers can never mutate catalog entries.
func (p InsurancePlan) Clone() InsurancePlan {
	out := p
	if p.Perks != nil {
		out.Perks = append(Perks(nil), p.Perks...)
	}
	return out
}

// PriceLabel formats the premium the way the plan cards show it: "$45" or "$45.50".
func (p InsurancePlan) PriceLabel() string {
	if p.Price == float64(int64(p.Price)) {
		return "$" + strconv.FormatInt(int64(p.Price), 10)
	}
	return "$" + strconv.FormatFloat(p.Price, 'f', 2, 64)
}
