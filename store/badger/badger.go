// Package badger persists scheduled notifications in BadgerDB. It stands in
// for the OS notification store in the daemon rendering of the engine:
// pending alerts survive process restarts, which is what the chain relies on
// to re-enter after a cold start.
package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mizanlabs/athan/store"
)

// Store implements store.NotificationStore on top of a Badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the notification database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable default logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open notification db: %w", err)
	}
	return &Store{db: db}, nil
}

func pendingKey(id string) []byte {
	return []byte(fmt.Sprintf("pending/%s", id))
}

func deliveredKey(id string) []byte {
	return []byte(fmt.Sprintf("delivered/%s", id))
}

type record struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	FireAt   time.Time         `json:"fire_at"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Schedule stores a pending notification. An existing entry with the same ID
// is overwritten, which gives the replace-not-duplicate semantics the chain
// depends on.
func (s *Store) Schedule(ctx context.Context, n *store.Notification) error {
	data, err := json.Marshal(record{
		ID:       n.ID,
		Title:    n.Title,
		Body:     n.Body,
		FireAt:   n.FireAt,
		Metadata: n.Metadata,
	})
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pendingKey(n.ID), data)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", n.ID, err)
	}
	return nil
}

// Cancel removes a pending notification. Unknown IDs are a no-op.
func (s *Store) Cancel(ctx context.Context, notificationID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(pendingKey(notificationID))
	})
	if err != nil {
		return fmt.Errorf("cancel %s: %w", notificationID, err)
	}
	return nil
}

// ListPending returns every notification still held by the store, in no
// particular order.
func (s *Store) ListPending(ctx context.Context) ([]*store.Pending, error) {
	var pending []*store.Pending

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("pending/")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec record
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				pending = append(pending, &store.Pending{
					ID:       rec.ID,
					FireAt:   rec.FireAt,
					Metadata: rec.Metadata,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	return pending, nil
}

// DisplayImmediate records a delivered notification without scheduling it.
func (s *Store) DisplayImmediate(ctx context.Context, n *store.Notification) error {
	data, err := json.Marshal(record{
		ID:       n.ID,
		Title:    n.Title,
		Body:     n.Body,
		FireAt:   time.Now(),
		Metadata: n.Metadata,
	})
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(deliveredKey(n.ID), data)
	})
	if err != nil {
		return fmt.Errorf("display %s: %w", n.ID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
