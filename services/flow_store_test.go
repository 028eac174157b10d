package services

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFlowStoreCreateAndWith(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	store := NewFlowStore(newTestOptions(t, clock), 30*time.Minute)

	id := store.Create()
	if id == "" || store.Len() != 1 {
		t.Fatalf("Create: id=%q len=%d", id, store.Len())
	}

	err := store.With(id, func(f *Flow) error {
		if f.ID != id || f.Step() != StepLogin {
			t.Fatalf("flow = %s on %s", f.ID, f.Step())
		}
		return f.Login("")
	})
	if err != nil {
		t.Fatalf("With error = %v", err)
	}

	_ = store.With(id, func(f *Flow) error {
		if f.Step() != StepTrip {
			t.Fatalf("state not kept between calls: %s", f.Step())
		}
		return nil
	})

	if err := store.With("missing", func(*Flow) error { return nil }); !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("With(missing) = %v, want ErrFlowNotFound", err)
	}
}

func TestFlowStoreExpiresIdleFlows(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	store := NewFlowStore(newTestOptions(t, clock), time.Minute)

	stale := store.Create()
	clock.Advance(30 * time.Second)
	fresh := store.Create()

	clock.Advance(45 * time.Second)
	if err := store.With(stale, func(*Flow) error { return nil }); !errors.Is(err, ErrFlowNotFound) {
		t.Fatalf("With(stale) = %v, want ErrFlowNotFound", err)
	}
	if err := store.With(fresh, func(*Flow) error { return nil }); err != nil {
		t.Fatalf("With(fresh) = %v", err)
	}

	clock.Advance(2 * time.Minute)
	store.Create()
	if store.Len() != 1 {
		t.Fatalf("Len after sweep = %d, want 1", store.Len())
	}
}

func TestFlowStoreConcurrentAccess(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	store := NewFlowStore(newTestOptions(t, clock), time.Hour)
	id := store.Create()
	_ = store.With(id, func(f *Flow) error {
		_ = f.Login("")
		return f.SubmitTrip(completeTrip(t))
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.With(id, func(f *Flow) error { return f.ToggleSelection("axa") })
			store.Create()
		}()
	}
	wg.Wait()

	_ = store.With(id, func(f *Flow) error {
		// 50 toggles of the same id cancel out.
		if sel := f.Snapshot().Selected; len(sel) != 0 {
			t.Errorf("selected = %v, want empty", sel)
		}
		return nil
	})
}
