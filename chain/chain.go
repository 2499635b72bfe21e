// Package chain keeps a rolling window of prayer notifications scheduled
// indefinitely without any recurring background job. Each cycle schedules the
// window and arms a single refresh trigger shortly before the window runs
// out; delivery of that trigger is what starts the next cycle, whether the
// process was still running or was cold-started by it.
package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mizanlabs/athan"
	"github.com/mizanlabs/athan/batch"
	"github.com/mizanlabs/athan/id"
	"github.com/mizanlabs/athan/metrics"
	"github.com/mizanlabs/athan/resolver"
	"github.com/mizanlabs/athan/store"
)

// State describes where the controller is in its cycle.
type State string

const (
	StateIdle       State = "idle"
	StateComputing  State = "computing"
	StateScheduling State = "scheduling"
	StateArmed      State = "armed"
	StateDegraded   State = "degraded"
)

// Config tunes the controller's window and trigger placement.
type Config struct {
	// LookaheadDays is the number of calendar days materialized per cycle,
	// counted from yesterday. Anchoring a day back tolerates clock and
	// timezone skew so today's still-pending prayers are never dropped.
	LookaheadDays int
	// AdvanceWarningMinutes is how long before the prayer the reminder fires.
	AdvanceWarningMinutes int
	// RefreshLead is how far before the window's last notification the
	// refresh trigger is placed.
	RefreshLead time.Duration
	// FallbackSpec is a cron expression giving the retry time armed when a
	// window cannot be computed, e.g. "30 3 * * *" for 03:30 daily.
	FallbackSpec string
	// Prayers selects which prayers get reminders. Defaults to the five
	// obligatory ones.
	Prayers []athan.Prayer
}

// DefaultConfig returns production settings: a ten-day window, reminders ten
// minutes ahead, the trigger half an hour before the window ends, and a
// 03:30 fallback retry.
func DefaultConfig() Config {
	return Config{
		LookaheadDays:         10,
		AdvanceWarningMinutes: 10,
		RefreshLead:           30 * time.Minute,
		FallbackSpec:          "30 3 * * *",
	}
}

// Controller runs the cancel-compute-schedule-rearm cycle. SetupChain and
// HandleRefresh are mutually exclusive; a call arriving while a cycle is in
// flight is ignored, since both rewrite the same notification ID space.
type Controller struct {
	resolver *resolver.Resolver
	batch    *batch.Scheduler
	store    store.NotificationStore
	cfg      Config
	fallback cron.Schedule
	metrics  metrics.Collector
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	state    State
	inFlight bool
}

// NewController wires the controller. The collector may be nil.
func NewController(res *resolver.Resolver, sched *batch.Scheduler, st store.NotificationStore, cfg Config, col metrics.Collector, log zerolog.Logger) (*Controller, error) {
	def := DefaultConfig()
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = def.LookaheadDays
	}
	if cfg.AdvanceWarningMinutes < 0 {
		cfg.AdvanceWarningMinutes = def.AdvanceWarningMinutes
	}
	if cfg.RefreshLead <= 0 {
		cfg.RefreshLead = def.RefreshLead
	}
	if cfg.FallbackSpec == "" {
		cfg.FallbackSpec = def.FallbackSpec
	}
	if len(cfg.Prayers) == 0 {
		cfg.Prayers = athan.ObligatoryPrayers()
	}
	if col == nil {
		col = metrics.NewNoOp()
	}

	fallback, err := cron.ParseStandard(cfg.FallbackSpec)
	if err != nil {
		return nil, fmt.Errorf("parse fallback spec %q: %w", cfg.FallbackSpec, err)
	}

	return &Controller{
		resolver: res,
		batch:    sched,
		store:    st,
		cfg:      cfg,
		fallback: fallback,
		metrics:  col,
		log:      log,
		now:      time.Now,
		state:    StateIdle,
	}, nil
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetupChain runs a full cycle from app start: cancel the stale window,
// schedule a fresh one, arm the refresh trigger. Returns the number of
// prayer notifications scheduled.
func (c *Controller) SetupChain(ctx context.Context) (int, error) {
	return c.cycle(ctx, "setup")
}

// HandleRefresh runs the same cycle in response to a delivered refresh
// trigger. Window-level failures are converted into the fallback path and
// never escape.
func (c *Controller) HandleRefresh(ctx context.Context) error {
	_, err := c.cycle(ctx, "refresh")
	return err
}

func (c *Controller) cycle(ctx context.Context, reason string) (int, error) {
	if !c.begin() {
		c.log.Debug().Str("reason", reason).Msg("cycle already in flight, ignoring")
		return 0, nil
	}
	defer c.end()

	started := c.now()
	c.setState(StateComputing)

	plan, err := c.buildWindow(ctx, started)
	if err != nil {
		c.log.Error().Err(err).Str("reason", reason).Msg("window computation failed, arming fallback")
		c.setState(StateDegraded)
		c.metrics.IncRefreshCycles(string(StateDegraded))
		if ferr := c.armFallback(ctx, started); ferr != nil {
			return 0, ferr
		}
		return 0, nil
	}

	c.setState(StateScheduling)

	if err := c.batch.CancelAllWithPrefix(ctx, id.Prefix); err != nil {
		// Best effort: deterministic IDs mean rescheduling replaces rather
		// than duplicates, so a failed sweep is not fatal.
		c.log.Warn().Err(err).Msg("could not clear stale window")
	}

	res := c.batch.ScheduleAll(ctx, plan.notifications)
	c.metrics.AddScheduled(res.ScheduledCount)
	c.metrics.AddScheduleFailures(len(res.Errors))

	trigger := c.refreshTrigger(plan.latest, started)
	if err := c.store.Schedule(ctx, trigger); err != nil {
		c.setState(StateDegraded)
		c.metrics.IncRefreshCycles(string(StateDegraded))
		return res.ScheduledCount, fmt.Errorf("arm refresh trigger: %w", err)
	}

	c.setState(StateArmed)
	c.metrics.IncRefreshCycles(string(StateArmed))
	c.metrics.ObserveCycleDuration(c.now().Sub(started))

	c.log.Info().
		Str("reason", reason).
		Int("scheduled", res.ScheduledCount).
		Int("failed", len(res.Errors)).
		Int("days_skipped", plan.daysSkipped).
		Time("trigger_at", trigger.FireAt).
		Msg("notification chain armed")
	return res.ScheduledCount, nil
}

// refreshTrigger places the trigger RefreshLead before the window's last
// notification, clamped strictly between now and that notification.
func (c *Controller) refreshTrigger(latest, now time.Time) *store.Notification {
	fire := latest.Add(-c.cfg.RefreshLead)
	if !fire.After(now) {
		fire = now.Add(latest.Sub(now) / 2)
	}
	return &store.Notification{
		ID:     id.RefreshTrigger(),
		FireAt: fire,
		Metadata: map[string]string{
			store.MetaType: store.TypeRefreshTrigger,
		},
	}
}

// armFallback schedules a retry trigger at the next fallback slot so the
// chain self-heals instead of going dark permanently.
func (c *Controller) armFallback(ctx context.Context, now time.Time) error {
	next := c.fallback.Next(now)
	n := &store.Notification{
		ID:     id.RefreshTrigger(),
		FireAt: next,
		Metadata: map[string]string{
			store.MetaType:     store.TypeRefreshTrigger,
			store.MetaFallback: "true",
		},
	}
	if err := c.store.Schedule(ctx, n); err != nil {
		return fmt.Errorf("arm fallback trigger: %w", err)
	}
	c.metrics.IncFallbackArms()
	c.log.Info().Time("retry_at", next).Msg("fallback trigger armed")
	return nil
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}
