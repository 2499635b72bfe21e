// Package memory is an in-memory store.NotificationStore used by tests and
// the daemon's dry-run mode. Failure-injection hooks let tests exercise
// partial-failure and permission-revoked paths against the real contract.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mizanlabs/athan/store"
)

// Store is an in-memory notification store. The zero value is not usable;
// call New.
type Store struct {
	mu        sync.Mutex
	pending   map[string]*store.Notification
	displayed []*store.Notification

	// ScheduleErr, when set, is consulted before each Schedule call and its
	// error (if any) returned instead of storing the notification.
	ScheduleErr func(n *store.Notification) error
	// ListErr, when set, is returned by ListPending.
	ListErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{pending: make(map[string]*store.Notification)}
}

func (s *Store) Schedule(ctx context.Context, n *store.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ScheduleErr != nil {
		if err := s.ScheduleErr(n); err != nil {
			return err
		}
	}

	cp := *n
	s.pending[n.ID] = &cp
	return nil
}

func (s *Store) Cancel(ctx context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, notificationID)
	return nil
}

func (s *Store) ListPending(ctx context.Context) ([]*store.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}

	out := make([]*store.Pending, 0, len(s.pending))
	for _, n := range s.pending {
		out = append(out, &store.Pending{ID: n.ID, FireAt: n.FireAt, Metadata: n.Metadata})
	}
	return out, nil
}

func (s *Store) DisplayImmediate(ctx context.Context, n *store.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.displayed = append(s.displayed, &cp)
	return nil
}

func (s *Store) Close() error { return nil }

// Get returns the pending notification with the given ID, if any.
func (s *Store) Get(notificationID string) (*store.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.pending[notificationID]
	return n, ok
}

// PendingCount returns the number of pending notifications.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Displayed returns notifications shown via DisplayImmediate.
func (s *Store) Displayed() []*store.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*store.Notification, len(s.displayed))
	copy(out, s.displayed)
	return out
}

// Due returns pending notifications with a fire time at or before now.
func (s *Store) Due(now time.Time) []*store.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*store.Pending
	for _, n := range s.pending {
		if !n.FireAt.After(now) {
			due = append(due, &store.Pending{ID: n.ID, FireAt: n.FireAt, Metadata: n.Metadata})
		}
	}
	return due
}
