package chain

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mizanlabs/athan"
	"github.com/mizanlabs/athan/id"
	"github.com/mizanlabs/athan/store"
	"github.com/mizanlabs/athan/store/memory"
)

func TestRouterRefreshTriggerRearmsChain(t *testing.T) {
	st := memory.New()
	c := testController(t, fullYearData(), st, Config{LookaheadDays: 3, AdvanceWarningMinutes: 10})
	r := NewRouter(c, zerolog.Nop())

	// Simulate the OS delivering the trigger to a freshly started process:
	// nothing pending, no prior in-memory state.
	delivered := &store.Pending{
		ID:       id.RefreshTrigger(),
		FireAt:   testNow,
		Metadata: map[string]string{store.MetaType: store.TypeRefreshTrigger},
	}
	if err := r.Route(context.Background(), delivered); err != nil {
		t.Fatalf("route failed: %v", err)
	}

	prayers, triggers := splitPending(t, st)
	if len(prayers) == 0 {
		t.Error("routing a refresh trigger must repopulate the window")
	}
	if len(triggers) != 1 {
		t.Errorf("expected exactly one re-armed trigger, got %d", len(triggers))
	}
}

func TestRouterReminderHook(t *testing.T) {
	st := memory.New()
	c := testController(t, fullYearData(), st, Config{LookaheadDays: 3})
	r := NewRouter(c, zerolog.Nop())

	var gotPrayer athan.Prayer
	var gotDate time.Time
	r.OnReminder(func(ctx context.Context, prayer athan.Prayer, date time.Time) {
		gotPrayer = prayer
		gotDate = date
	})

	delivered := &store.Pending{
		ID: "athan_some-id",
		Metadata: map[string]string{
			store.MetaType:   store.TypePrayerReminder,
			store.MetaPrayer: "maghrib",
			store.MetaDate:   "2025-04-13",
		},
	}
	if err := r.Route(context.Background(), delivered); err != nil {
		t.Fatalf("route failed: %v", err)
	}

	if gotPrayer != athan.PrayerMaghrib {
		t.Errorf("expected maghrib, got %s", gotPrayer)
	}
	if gotDate.Format("2006-01-02") != "2025-04-13" {
		t.Errorf("expected 2025-04-13, got %v", gotDate)
	}
	if st.PendingCount() != 0 {
		t.Error("a reminder delivery must not touch the schedule")
	}
}

func TestRouterReminderWithoutHookIsNoOp(t *testing.T) {
	c := testController(t, fullYearData(), memory.New(), Config{LookaheadDays: 3})
	r := NewRouter(c, zerolog.Nop())

	delivered := &store.Pending{
		ID:       "athan_some-id",
		Metadata: map[string]string{store.MetaType: store.TypePrayerReminder, store.MetaDate: "2025-04-13"},
	}
	if err := r.Route(context.Background(), delivered); err != nil {
		t.Errorf("reminder without hook should be a no-op, got %v", err)
	}
}

func TestRouterUnknownTypeIgnored(t *testing.T) {
	st := memory.New()
	c := testController(t, fullYearData(), st, Config{LookaheadDays: 3})
	r := NewRouter(c, zerolog.Nop())

	if err := r.Route(context.Background(), &store.Pending{ID: "foreign"}); err != nil {
		t.Errorf("unknown payloads must be dropped silently, got %v", err)
	}
	if st.PendingCount() != 0 {
		t.Error("unknown payloads must not schedule anything")
	}
}

func TestRouterBadReminderDate(t *testing.T) {
	c := testController(t, fullYearData(), memory.New(), Config{LookaheadDays: 3})
	r := NewRouter(c, zerolog.Nop())
	r.OnReminder(func(ctx context.Context, prayer athan.Prayer, date time.Time) {
		t.Error("hook must not run on malformed metadata")
	})

	delivered := &store.Pending{
		ID: "athan_some-id",
		Metadata: map[string]string{
			store.MetaType: store.TypePrayerReminder,
			store.MetaDate: "13/04/2025",
		},
	}
	if err := r.Route(context.Background(), delivered); err == nil {
		t.Error("expected error for malformed reminder date")
	}
}
