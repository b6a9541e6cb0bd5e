package dispatcher

import (
	"sync"
	"time"

	"github.com/dshills/pictor/internal/dispatcher/handler"
)

// Metrics collects dispatch timing and outcome statistics.
type Metrics struct {
	mu sync.Mutex

	dispatches map[string]*CommandMetrics
	panics     map[string]uint64
}

// CommandMetrics holds per-command statistics.
type CommandMetrics struct {
	// Count is the number of dispatches.
	Count uint64

	// Errors is the number of error outcomes.
	Errors uint64

	// TotalDuration is the accumulated handler time.
	TotalDuration time.Duration
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		dispatches: make(map[string]*CommandMetrics),
		panics:     make(map[string]uint64),
	}
}

// RecordDispatch records one dispatch outcome.
func (m *Metrics) RecordDispatch(name string, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cm := m.dispatches[name]
	if cm == nil {
		cm = &CommandMetrics{}
		m.dispatches[name] = cm
	}
	cm.Count++
	cm.TotalDuration += d
	if status == handler.StatusError {
		cm.Errors++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics[name]++
}

// Command returns a copy of the statistics for a command.
func (m *Metrics) Command(name string) CommandMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cm := m.dispatches[name]; cm != nil {
		return *cm
	}
	return CommandMetrics{}
}

// Panics returns the recovered panic count for a command.
func (m *Metrics) Panics(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panics[name]
}
