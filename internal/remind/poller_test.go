package remind

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pvminh/lichviet/internal/store"
)

func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.Open(store.Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mkTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.ParseInLocation(store.TimeLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parsing time %q: %v", s, err)
	}
	return tm
}

func TestTickFiresDueReminder(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	if _, err := st.AddEvent(ctx, &store.Event{
		Name:            "họp nhóm",
		StartTime:       mkTime(t, "2025-03-11T10:00"),
		ReminderMinutes: 15,
	}); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	var fired []string
	notifier := NotifierFunc(func(e store.Event) { fired = append(fired, e.Name) })

	now := mkTime(t, "2025-03-11T09:45")
	p := New(st, notifier, WithNow(func() time.Time { return now }))

	if err := p.Tick(ctx); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(fired) != 1 || fired[0] != "họp nhóm" {
		t.Fatalf("fired = %v, want [họp nhóm]", fired)
	}
}

func TestTickFiresOnlyOncePerEvent(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	if _, err := st.AddEvent(ctx, &store.Event{
		Name:            "họp nhóm",
		StartTime:       mkTime(t, "2025-03-11T10:00"),
		ReminderMinutes: 15,
	}); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	var fired int
	notifier := NotifierFunc(func(e store.Event) { fired++ })

	now := mkTime(t, "2025-03-11T09:45")
	p := New(st, notifier, WithNow(func() time.Time { return now }))

	// Two ticks inside the same due window must notify once.
	for i := 0; i < 2; i++ {
		if err := p.Tick(ctx); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
}

func TestTickIgnoresNotYetDue(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	if _, err := st.AddEvent(ctx, &store.Event{
		Name:            "họp nhóm",
		StartTime:       mkTime(t, "2025-03-11T10:00"),
		ReminderMinutes: 15,
	}); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	var fired int
	notifier := NotifierFunc(func(e store.Event) { fired++ })

	now := mkTime(t, "2025-03-11T09:30")
	p := New(st, notifier, WithNow(func() time.Time { return now }))

	if err := p.Tick(ctx); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fired != 0 {
		t.Errorf("fired %d times, want 0", fired)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	st := setupTestStore(t)
	notifier := NotifierFunc(func(e store.Event) {})
	p := New(st, notifier, WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
