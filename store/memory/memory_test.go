package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mizanlabs/athan/store"
)

func TestScheduleReplacesSameID(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &store.Notification{ID: "n1", Title: "first", FireAt: time.Now().Add(time.Hour)}
	second := &store.Notification{ID: "n1", Title: "second", FireAt: time.Now().Add(2 * time.Hour)}

	if err := s.Schedule(ctx, first); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if err := s.Schedule(ctx, second); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	if s.PendingCount() != 1 {
		t.Errorf("expected 1 pending after replace, got %d", s.PendingCount())
	}
	got, ok := s.Get("n1")
	if !ok || got.Title != "second" {
		t.Error("replace should keep the latest notification")
	}
}

func TestCancelUnknownIDIsNoOp(t *testing.T) {
	s := New()
	if err := s.Cancel(context.Background(), "missing"); err != nil {
		t.Errorf("cancel of unknown ID must not error, got %v", err)
	}
}

func TestDue(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	s.Schedule(ctx, &store.Notification{ID: "past", FireAt: now.Add(-time.Minute)})
	s.Schedule(ctx, &store.Notification{ID: "future", FireAt: now.Add(time.Hour)})

	due := s.Due(now)
	if len(due) != 1 || due[0].ID != "past" {
		t.Errorf("expected only the past notification due, got %v", due)
	}
}
