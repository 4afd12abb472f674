package dispatcher

import (
	"sort"
	"time"

	"github.com/dshills/spiral/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	actionMetrics map[string]*ActionMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ActionMetrics holds metrics for a specific command.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{actionMetrics: make(map[string]*ActionMetrics)}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, status handler.ResultStatus) {
	m.totalDispatches++
	m.totalDuration += duration
	if status == handler.StatusError {
		m.totalErrors++
	}

	am := m.actionMetrics[name]
	if am == nil {
		am = &ActionMetrics{Name: name}
		m.actionMetrics[name] = am
	}
	am.DispatchCount++
	am.TotalDuration += duration
	am.LastStatus = status
	am.MaxDuration = max(am.MaxDuration, duration)
	if status == handler.StatusError {
		am.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(name string) {
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 { return m.totalDispatches }

// TotalErrors returns the total number of errors.
func (m *Metrics) TotalErrors() uint64 { return m.totalErrors }

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 { return m.totalPanics }

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ActionStats returns a copy of the metrics for a command.
func (m *Metrics) ActionStats(name string) *ActionMetrics {
	am := m.actionMetrics[name]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns the n most dispatched commands.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	actions := make([]*ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		c := *am
		actions = append(actions, &c)
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].DispatchCount != actions[j].DispatchCount {
			return actions[i].DispatchCount > actions[j].DispatchCount
		}
		return actions[i].Name < actions[j].Name
	})
	return actions[:min(n, len(actions))]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	*m = Metrics{actionMetrics: make(map[string]*ActionMetrics)}
}
