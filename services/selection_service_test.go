package services

import (
	"reflect"
	"testing"

	"github.com/gewnthar/tripcover/backend/config"
)

func TestSelectionInitialState(t *testing.T) {
	s := pickSelection(t)
	if s.CompareMode() || len(s.Selected()) != 0 {
		t.Fatalf("initial state: compare=%v selected=%v", s.CompareMode(), s.Selected())
	}
	d := s.RenderDecision()
	if d.View != ViewList {
		t.Fatalf("View = %s, want list", d.View)
	}
	if got, want := planIDs(d.Plans), []string{"axa", "turismo", "securviajes"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("plans = %v, want %v", got, want)
	}
}

func TestToggleSelectionTwiceRestoresState(t *testing.T) {
	s := pickSelection(t)
	s.ToggleSelection("turismo")
	before := s.Selected()

	for _, id := range []string{"axa", "turismo", "securviajes"} {
		s.ToggleSelection(id)
		s.ToggleSelection(id)
		if got := s.Selected(); !reflect.DeepEqual(got, before) {
			t.Fatalf("double toggle of %s: selected = %v, want %v", id, got, before)
		}
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	s := pickSelection(t)
	s.ToggleCompareMode()
	s.ToggleSelection("axa")
	s.ToggleSelection("allianz")

	if got := s.Selected(); !reflect.DeepEqual(got, []string{"axa"}) {
		t.Fatalf("selected = %v, want [axa]", got)
	}
	if d := s.RenderDecision(); d.View != ViewSelectMore {
		t.Fatalf("View = %s, want select-more", d.View)
	}
}

func TestToggleCompareModeKeepsSelection(t *testing.T) {
	s := pickSelection(t)
	s.ToggleSelection("axa")
	s.ToggleCompareMode()
	s.ToggleCompareMode()
	if s.CompareMode() {
		t.Fatalf("CompareMode after two toggles = true")
	}
	if !s.IsSelected("axa") {
		t.Fatalf("selection lost when toggling compare mode")
	}
}

func TestRenderDecisionOneSelectedAsksForMore(t *testing.T) {
	s := pickSelection(t)
	s.ToggleCompareMode()
	s.ToggleSelection("turismo")

	d := s.RenderDecision()
	if d.View != ViewSelectMore {
		t.Fatalf("View = %s, want select-more", d.View)
	}
	if d.Needed != 1 || len(d.Plans) != 0 {
		t.Fatalf("decision = %+v, want Needed=1 and no plans", d)
	}
}

func TestRenderDecisionCompareZeroSelected(t *testing.T) {
	s := pickSelection(t)
	s.ToggleCompareMode()
	if d := s.RenderDecision(); d.View != ViewSelectMore || d.Needed != 2 {
		t.Fatalf("decision = %+v, want select-more needing 2", d)
	}
}

func TestRenderDecisionCompareInToggleOrder(t *testing.T) {
	s := pickSelection(t)
	s.ToggleCompareMode()
	s.ToggleSelection("axa")
	s.ToggleSelection("securviajes")

	d := s.RenderDecision()
	if d.View != ViewCompare {
		t.Fatalf("View = %s, want compare", d.View)
	}
	if got, want := planIDs(d.Plans), []string{"axa", "securviajes"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("compared plans = %v, want %v", got, want)
	}
	if d.Plans[0].Price != 45 || d.Plans[1].Price != 52 {
		t.Fatalf("compared prices = %v, %v", d.Plans[0].Price, d.Plans[1].Price)
	}

	// Reverse toggle order changes display order.
	s2 := pickSelection(t)
	s2.ToggleCompareMode()
	s2.ToggleSelection("securviajes")
	s2.ToggleSelection("axa")
	if got, want := planIDs(s2.RenderDecision().Plans), []string{"securviajes", "axa"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("compared plans = %v, want %v", got, want)
	}
}

func TestRenderDecisionSelectionOutsideCompareModeStillLists(t *testing.T) {
	s := pickSelection(t)
	s.ToggleSelection("axa")
	s.ToggleSelection("turismo")
	if d := s.RenderDecision(); d.View != ViewList || len(d.Plans) != 3 {
		t.Fatalf("decision = %+v, want full list", d)
	}
}

func TestCompareStyleAll(t *testing.T) {
	s := NewSelection(defaultCatalog(t), config.SelectionConfig{CompareStyle: config.CompareStyleAll})
	s.ToggleCompareMode()

	d := s.RenderDecision()
	if d.View != ViewCompare {
		t.Fatalf("View = %s, want compare", d.View)
	}
	if len(d.Plans) != 3 {
		t.Fatalf("len(plans) = %d, want 3", len(d.Plans))
	}
}

func TestChoose(t *testing.T) {
	s := pickSelection(t)

	plan, ok := s.Choose("turismo")
	if !ok || plan.Provider != "Turismo" || plan.PriceLabel() != "$38" {
		t.Fatalf("Choose(turismo) = %+v, %v", plan, ok)
	}
	if _, ok := s.Choose("allianz"); ok {
		t.Fatalf("Choose(unknown) = true, want false")
	}

	s.ToggleCompareMode()
	if _, ok := s.Choose("axa"); ok {
		t.Fatalf("Choose in compare mode = true, want false")
	}
}

func TestSelectedReturnsCopy(t *testing.T) {
	s := pickSelection(t)
	s.ToggleSelection("axa")
	got := s.Selected()
	got[0] = "hacked"
	if !s.IsSelected("axa") || s.IsSelected("hacked") {
		t.Fatalf("Selected() exposed internal state")
	}
}
