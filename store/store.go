// Package store defines the contract for the device notification store: the
// OS primitive capable of scheduling and cancelling timestamp-triggered
// alerts. The engine never keeps its own schedule; whatever the store reports
// as pending is the truth.
package store

import (
	"context"
	"errors"
	"time"
)

// Metadata keys and payload type tags. A delivered notification is routed
// purely on its metadata, which is what lets a cold-started process pick up
// the chain.
const (
	MetaType     = "type"
	MetaPrayer   = "prayer"
	MetaDate     = "date"
	MetaClock    = "clock"
	MetaFallback = "fallback"

	TypeRefreshTrigger = "refresh-trigger"
	TypePrayerReminder = "prayer-reminder"
)

// ErrUnavailable indicates the underlying notification permission is not
// granted at all. It is surfaced to the app UI; everything else in the engine
// treats it as a per-call failure and keeps going.
var ErrUnavailable = errors.New("notification store unavailable")

// Notification is a single alert handed to the store. Instances are
// ephemeral: created, scheduled, and forgotten.
type Notification struct {
	ID       string
	Title    string
	Body     string
	FireAt   time.Time
	Metadata map[string]string
}

// Pending describes a notification the store still holds.
type Pending struct {
	ID       string
	FireAt   time.Time
	Metadata map[string]string
}

// NotificationStore is the capability interface over the notification
// primitive. Scheduling an ID that is already pending replaces it; cancelling
// an unknown ID is a no-op.
type NotificationStore interface {
	Schedule(ctx context.Context, n *Notification) error
	Cancel(ctx context.Context, notificationID string) error
	ListPending(ctx context.Context) ([]*Pending, error)

	// DisplayImmediate shows a notification right away, bypassing
	// scheduling. Debug and test paths only; the chain never uses it.
	DisplayImmediate(ctx context.Context, n *Notification) error

	Close() error
}
