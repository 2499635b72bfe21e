package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mizanlabs/athan"
	"github.com/mizanlabs/athan/store"
)

// ReminderFunc is invoked when a prayer reminder is delivered.
type ReminderFunc func(ctx context.Context, prayer athan.Prayer, date time.Time)

// Router dispatches delivered notifications by their metadata type tag.
// Continuation of the chain depends only on the delivered payload, never on
// in-memory state, so routing works identically from a warm process and a
// cold start.
type Router struct {
	controller *Controller
	onReminder ReminderFunc
	log        zerolog.Logger
}

// NewRouter creates a router feeding refresh triggers into the controller.
func NewRouter(c *Controller, log zerolog.Logger) *Router {
	return &Router{controller: c, log: log}
}

// OnReminder registers a hook for delivered prayer reminders. Optional; the
// chain itself does not need it.
func (r *Router) OnReminder(fn ReminderFunc) {
	r.onReminder = fn
}

// Route handles one delivered notification. Unknown payload types are logged
// and dropped; an error is only returned for refresh cycles that could not
// re-arm.
func (r *Router) Route(ctx context.Context, delivered *store.Pending) error {
	switch delivered.Metadata[store.MetaType] {
	case store.TypeRefreshTrigger:
		r.log.Info().Str("id", delivered.ID).Msg("refresh trigger delivered")
		return r.controller.HandleRefresh(ctx)

	case store.TypePrayerReminder:
		if r.onReminder == nil {
			return nil
		}
		prayer := athan.Prayer(delivered.Metadata[store.MetaPrayer])
		date, err := time.Parse("2006-01-02", delivered.Metadata[store.MetaDate])
		if err != nil {
			return fmt.Errorf("reminder %s: bad date metadata: %w", delivered.ID, err)
		}
		r.onReminder(ctx, prayer, date)
		return nil

	default:
		r.log.Debug().Str("id", delivered.ID).Msg("ignoring notification without a known type tag")
		return nil
	}
}
