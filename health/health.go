// Package health repairs the notification chain when its self-perpetuation
// was not enough: the OS may drop notifications under storage pressure, the
// user may clear them all, and the dropped one may have been the refresh
// trigger itself. The checker runs on foreground/resume events and rebuilds
// the chain whenever the pending buffer looks under-provisioned.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mizanlabs/athan/chain"
	"github.com/mizanlabs/athan/metrics"
	"github.com/mizanlabs/athan/store"
)

// DefaultLowWaterMark is the pending-notification count below which the
// chain is considered under-provisioned.
const DefaultLowWaterMark = 5

// Checker inspects the store and repairs the chain through the controller.
type Checker struct {
	store      store.NotificationStore
	controller *chain.Controller
	lowWater   int
	metrics    metrics.Collector
	log        zerolog.Logger
	now        func() time.Time
}

// NewChecker creates a checker. lowWater <= 0 selects the default; the
// collector may be nil.
func NewChecker(st store.NotificationStore, c *chain.Controller, lowWater int, col metrics.Collector, log zerolog.Logger) *Checker {
	if lowWater <= 0 {
		lowWater = DefaultLowWaterMark
	}
	if col == nil {
		col = metrics.NewNoOp()
	}
	return &Checker{
		store:      st,
		controller: c,
		lowWater:   lowWater,
		metrics:    col,
		log:        log,
		now:        time.Now,
	}
}

// EnsureHealthy counts future-dated pending notifications and re-runs the
// chain setup if the buffer is low or no refresh trigger is pending. It
// reports whether a repair was performed.
func (h *Checker) EnsureHealthy(ctx context.Context) (bool, error) {
	pending, err := h.store.ListPending(ctx)
	if err != nil {
		return false, fmt.Errorf("inspect pending notifications: %w", err)
	}

	now := h.now()
	future := 0
	triggers := 0
	for _, p := range pending {
		if !p.FireAt.After(now) {
			continue
		}
		switch p.Metadata[store.MetaType] {
		case store.TypeRefreshTrigger:
			triggers++
		case store.TypePrayerReminder:
			future++
		}
	}

	h.metrics.SetPendingNotifications(len(pending))
	h.metrics.SetFuturePrayers(future)

	if future >= h.lowWater && triggers >= 1 {
		return false, nil
	}

	h.log.Warn().
		Int("future", future).
		Int("triggers", triggers).
		Int("low_water", h.lowWater).
		Msg("notification chain under-provisioned, repairing")

	count, err := h.controller.SetupChain(ctx)
	if err != nil {
		return false, fmt.Errorf("repair chain: %w", err)
	}
	h.metrics.IncHealthRepairs()
	h.log.Info().Int("scheduled", count).Msg("notification chain repaired")
	return true, nil
}
