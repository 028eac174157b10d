// backend/services/selection_service.go
package services

import (
	"github.com/gewnthar/tripcover/backend/catalog"
	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
)

// View is what the plan screen should render.
type View int

const (
	ViewList       View = iota // Full catalog, each plan selectable for checkout
	ViewSelectMore             // Compare mode with too few plans picked
	ViewCompare                // Plans side by side
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewSelectMore:
		return "select-more"
	case ViewCompare:
		return "compare"
	}
	return "unknown"
}

// RenderDecision is a pure function of the selection state.
type RenderDecision struct {
	View  View
	Plans []models.InsurancePlan // Empty for ViewSelectMore
	// Needed is how many more plans must be picked before comparing (ViewSelectMore only).
	Needed int
}

// Selection holds the plan screen's compare toggle and the plans marked for comparison.
// Not safe for concurrent use; FlowStore serializes access per flow.
type Selection struct {
	catalog     *catalog.Catalog
	style       string
	minCompare  int
	compareMode bool
	selected    []string // toggle order
}

// NewSelection starts with compare mode off and nothing selected.
func NewSelection(c *catalog.Catalog, cfg config.SelectionConfig) *Selection {
	minCompare := cfg.MinCompare
	if minCompare < 2 {
		minCompare = 2
	}
	style := cfg.CompareStyle
	if style != config.CompareStyleAll {
		style = config.CompareStylePick
	}
	return &Selection{catalog: c, style: style, minCompare: minCompare}
}

// ToggleCompareMode flips compare mode. The selection is kept.
func (s *Selection) ToggleCompareMode() {
	s.compareMode = !s.compareMode
}

// ToggleSelection marks or unmarks a plan for comparison.
// Ids outside the catalog are ignored.
func (s *Selection) ToggleSelection(id string) {
	if !s.catalog.Contains(id) {
		return
	}
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, id)
}

func (s *Selection) CompareMode() bool { return s.compareMode }

// Selected returns the marked plan ids in toggle order.
func (s *Selection) Selected() []string {
	return append([]string(nil), s.selected...)
}

func (s *Selection) IsSelected(id string) bool {
	for _, sel := range s.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// RenderDecision picks the plan screen's view:
// compare off shows the list; compare on shows the picked plans once enough are picked
// (or the whole catalog in the "all" compare style).
func (s *Selection) RenderDecision() RenderDecision {
	if !s.compareMode {
		return RenderDecision{View: ViewList, Plans: s.catalog.Plans()}
	}
	if s.style == config.CompareStyleAll {
		return RenderDecision{View: ViewCompare, Plans: s.catalog.Plans()}
	}
	if len(s.selected) < s.minCompare {
		return RenderDecision{View: ViewSelectMore, Needed: s.minCompare - len(s.selected)}
	}

	plans := make([]models.InsurancePlan, 0, len(s.selected))
	for _, id := range s.selected {
		if p, ok := s.catalog.Lookup(id); ok {
			plans = append(plans, p)
		}
	}
	return RenderDecision{View: ViewCompare, Plans: plans}
}

// Choose returns the plan to forward to checkout. It refuses (false) while compare mode
// is on or when the id is not in the catalog; nothing changes in either case.
func (s *Selection) Choose(id string) (models.InsurancePlan, bool) {
	if s.compareMode {
		return models.InsurancePlan{}, false
	}
	return s.catalog.Lookup(id)
}
