// Package dispatch delivers due notifications. On a phone the OS does this;
// in the daemon rendering of the engine a small polling loop takes that
// role: it removes each due notification from the store and hands its
// payload to the chain router, which is exactly the path a cold-started
// process would take when the OS delivers a notification to it.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mizanlabs/athan/chain"
	"github.com/mizanlabs/athan/store"
)

// Dispatcher polls the store and routes due notifications.
type Dispatcher struct {
	store    store.NotificationStore
	router   *chain.Router
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// New creates a dispatcher polling at the given interval.
func New(st store.NotificationStore, router *chain.Router, interval time.Duration, log zerolog.Logger) *Dispatcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Dispatcher{
		store:    st,
		router:   router,
		interval: interval,
		log:      log,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the delivery loop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	d.wg.Add(1)
	go d.run(ctx)
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopCh:
			return
		case <-ticker.C:
			d.DeliverDue(ctx)
		}
	}
}

// DeliverDue removes and routes every notification whose fire time has
// passed. Each notification is removed before routing so a refresh cycle's
// own cancel-and-reschedule never sees it again.
func (d *Dispatcher) DeliverDue(ctx context.Context) {
	pending, err := d.store.ListPending(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("could not list pending notifications")
		return
	}

	now := d.now()
	for _, p := range pending {
		if p.FireAt.After(now) {
			continue
		}
		if err := d.store.Cancel(ctx, p.ID); err != nil {
			d.log.Warn().Err(err).Str("id", p.ID).Msg("could not remove due notification")
			continue
		}
		if err := d.router.Route(ctx, p); err != nil {
			d.log.Error().Err(err).Str("id", p.ID).Msg("delivery handling failed")
		}
	}
}

// Stop halts the delivery loop and waits for it to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	close(d.stopCh)
	d.wg.Wait()
	d.started = false
}
