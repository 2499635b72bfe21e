// Package metrics collects counters and gauges for the notification chain.
package metrics

import (
	"sync"
	"time"
)

// Collector is the interface the engine reports into.
type Collector interface {
	// Gauges - current state
	SetPendingNotifications(count int)
	SetFuturePrayers(count int)

	// Counters - event tracking
	AddScheduled(count int)
	AddScheduleFailures(count int)
	IncRefreshCycles(outcome string)
	IncFallbackArms()
	IncHealthRepairs()

	// Histograms - duration tracking
	ObserveCycleDuration(d time.Duration)

	// Query methods for testing and monitoring
	GetPendingNotifications() int
	GetFuturePrayers() int
	GetScheduled() int64
	GetScheduleFailures() int64
	GetRefreshCycles(outcome string) int64
	GetFallbackArms() int64
	GetHealthRepairs() int64
}

// NoOp is a collector that does nothing.
type NoOp struct{}

func NewNoOp() *NoOp { return &NoOp{} }

func (m *NoOp) SetPendingNotifications(count int)       {}
func (m *NoOp) SetFuturePrayers(count int)              {}
func (m *NoOp) AddScheduled(count int)                  {}
func (m *NoOp) AddScheduleFailures(count int)           {}
func (m *NoOp) IncRefreshCycles(outcome string)         {}
func (m *NoOp) IncFallbackArms()                        {}
func (m *NoOp) IncHealthRepairs()                       {}
func (m *NoOp) ObserveCycleDuration(d time.Duration)    {}
func (m *NoOp) GetPendingNotifications() int            { return 0 }
func (m *NoOp) GetFuturePrayers() int                   { return 0 }
func (m *NoOp) GetScheduled() int64                     { return 0 }
func (m *NoOp) GetScheduleFailures() int64              { return 0 }
func (m *NoOp) GetRefreshCycles(outcome string) int64   { return 0 }
func (m *NoOp) GetFallbackArms() int64                  { return 0 }
func (m *NoOp) GetHealthRepairs() int64                 { return 0 }

// InMemory is a simple in-memory collector for tests and the debug surface.
type InMemory struct {
	mu sync.RWMutex

	pendingNotifications int
	futurePrayers        int

	scheduled        int64
	scheduleFailures int64
	refreshCycles    map[string]int64 // key: outcome
	fallbackArms     int64
	healthRepairs    int64

	cycleDurations []time.Duration
}

func NewInMemory() *InMemory {
	return &InMemory{refreshCycles: make(map[string]int64)}
}

func (m *InMemory) SetPendingNotifications(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingNotifications = count
}

func (m *InMemory) SetFuturePrayers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.futurePrayers = count
}

func (m *InMemory) AddScheduled(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled += int64(count)
}

func (m *InMemory) AddScheduleFailures(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleFailures += int64(count)
}

func (m *InMemory) IncRefreshCycles(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCycles[outcome]++
}

func (m *InMemory) IncFallbackArms() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackArms++
}

func (m *InMemory) IncHealthRepairs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthRepairs++
}

func (m *InMemory) ObserveCycleDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleDurations = append(m.cycleDurations, d)
}

func (m *InMemory) GetPendingNotifications() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pendingNotifications
}

func (m *InMemory) GetFuturePrayers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.futurePrayers
}

func (m *InMemory) GetScheduled() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scheduled
}

func (m *InMemory) GetScheduleFailures() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scheduleFailures
}

func (m *InMemory) GetRefreshCycles(outcome string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshCycles[outcome]
}

func (m *InMemory) GetFallbackArms() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fallbackArms
}

func (m *InMemory) GetHealthRepairs() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthRepairs
}

// GetCycleDurations returns a copy of the observed cycle durations.
func (m *InMemory) GetCycleDurations() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]time.Duration, len(m.cycleDurations))
	copy(out, m.cycleDurations)
	return out
}

// Reset clears all metrics (useful for testing).
func (m *InMemory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingNotifications = 0
	m.futurePrayers = 0
	m.scheduled = 0
	m.scheduleFailures = 0
	m.refreshCycles = make(map[string]int64)
	m.fallbackArms = 0
	m.healthRepairs = 0
	m.cycleDurations = nil
}
