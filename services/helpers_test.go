package services

import (
	"testing"
	"time"

	"github.com/gewnthar/tripcover/backend/catalog"
	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("time.Parse(%q) error = %v", s, err)
	}
	return &d
}

func completeTrip(t *testing.T) models.TripQuery {
	return models.TripQuery{
		Origin:      "Bogotá",
		Destination: "Madrid",
		TravelerAge: "34",
		StartDate:   date(t, "2026-12-01"),
		EndDate:     date(t, "2026-12-15"),
	}
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	return c
}

func pickSelection(t *testing.T) *Selection {
	return NewSelection(defaultCatalog(t), config.SelectionConfig{CompareStyle: config.CompareStylePick, MinCompare: 2})
}

func planIDs(plans []models.InsurancePlan) []string {
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	return ids
}
