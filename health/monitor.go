package health

import (
	"context"
	"sync"
	"time"
)

// Monitor periodically runs the checker. In the daemon rendering of the
// engine it stands in for the app-foreground events a mobile shell would
// deliver.
type Monitor struct {
	checker  *Checker
	interval time.Duration

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// NewMonitor creates a monitor that checks every interval.
func NewMonitor(checker *Checker, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Monitor{
		checker:  checker,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins periodic checking. An immediate check runs first so a broken
// chain is repaired at startup rather than one interval later.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	m.wg.Add(1)
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()

	if _, err := m.checker.EnsureHealthy(ctx); err != nil {
		m.checker.log.Error().Err(err).Msg("health check failed")
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			if _, err := m.checker.EnsureHealthy(ctx); err != nil {
				m.checker.log.Error().Err(err).Msg("health check failed")
			}
		}
	}
}

// Stop halts the monitor and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	close(m.stopCh)
	m.wg.Wait()
	m.started = false
}
