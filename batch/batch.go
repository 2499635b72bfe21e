// Package batch schedules and cancels groups of notifications against the
// device store. Calls within a batch run concurrently; batches themselves are
// paced so a large window does not burst into the OS scheduler all at once.
package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mizanlabs/athan/store"
)

// ItemError records a single notification the store rejected.
type ItemError struct {
	ID  string
	Err error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("schedule %s: %v", e.ID, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// Result summarizes a ScheduleAll call. Partial success is expected and
// normal: one bad notification must not block its siblings.
type Result struct {
	ScheduledCount int
	Errors         []ItemError
}

// Config bounds the scheduler's load on the store.
type Config struct {
	// BatchSize is the number of concurrent schedule calls per batch.
	BatchSize int
	// Pacing limits how often a new batch may start.
	Pacing rate.Limit
}

// DefaultConfig returns the production bounds: batches of ten, at most two
// batch starts per second.
func DefaultConfig() Config {
	return Config{BatchSize: 10, Pacing: rate.Limit(2)}
}

// Scheduler issues grouped schedule/cancel calls against a notification
// store. It is stateless between calls and safe for concurrent use, though
// the chain controller serializes its own use of it.
type Scheduler struct {
	store   store.NotificationStore
	size    int
	limiter *rate.Limiter
	log     zerolog.Logger
}

// New creates a batch scheduler over the given store.
func New(st store.NotificationStore, cfg Config, log zerolog.Logger) *Scheduler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.Pacing <= 0 {
		cfg.Pacing = DefaultConfig().Pacing
	}
	return &Scheduler{
		store:   st,
		size:    cfg.BatchSize,
		limiter: rate.NewLimiter(cfg.Pacing, 1),
		log:     log,
	}
}

// ScheduleAll schedules every notification, recording per-item failures
// without aborting. It never returns an error: the Result carries whatever
// went wrong.
func (s *Scheduler) ScheduleAll(ctx context.Context, notifications []*store.Notification) *Result {
	res := &Result{}

	for start := 0; start < len(notifications); start += s.size {
		end := start + s.size
		if end > len(notifications) {
			end = len(notifications)
		}

		if start > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				// Context gone; record the remainder as failed.
				for _, n := range notifications[start:] {
					res.Errors = append(res.Errors, ItemError{ID: n.ID, Err: err})
				}
				break
			}
		}

		scheduled, errs := s.runBatch(ctx, notifications[start:end])
		res.ScheduledCount += scheduled
		res.Errors = append(res.Errors, errs...)
	}

	if len(res.Errors) > 0 {
		s.log.Warn().
			Int("scheduled", res.ScheduledCount).
			Int("failed", len(res.Errors)).
			Msg("batch completed with failures")
	}
	return res
}

// CancelAllWithPrefix cancels every pending notification whose ID starts with
// prefix. Individual cancel failures are logged and skipped; only a failure
// to list pending notifications is returned.
func (s *Scheduler) CancelAllWithPrefix(ctx context.Context, prefix string) error {
	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}

	cancelled := 0
	for _, p := range pending {
		if !strings.HasPrefix(p.ID, prefix) {
			continue
		}
		if err := s.store.Cancel(ctx, p.ID); err != nil {
			s.log.Warn().Err(err).Str("id", p.ID).Msg("cancel failed")
			continue
		}
		cancelled++
	}

	s.log.Debug().Int("cancelled", cancelled).Str("prefix", prefix).Msg("cleared pending notifications")
	return nil
}
