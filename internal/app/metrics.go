package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the input loop did. It is logged when the editor
// exits.
type Metrics struct {
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	snapshots atomic.Uint64
	undos     atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records the time taken to handle one input event.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(d.Nanoseconds())
}

// RecordRender records one drawn frame.
func (m *Metrics) RecordRender(d time.Duration) {
	ns := d.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	for {
		cur := m.renderMaxNs.Load()
		if ns <= cur || m.renderMaxNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// RecordSnapshot records an undo snapshot taken by a loop cycle.
func (m *Metrics) RecordSnapshot() {
	m.snapshots.Add(1)
}

// RecordUndo records a restored snapshot.
func (m *Metrics) RecordUndo() {
	m.undos.Add(1)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Events        uint64
	AvgEventTime  time.Duration
	Renders       uint64
	AvgRenderTime time.Duration
	MaxRenderTime time.Duration
	Snapshots     uint64
	Undos         uint64
	Uptime        time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Events:        m.eventCount.Load(),
		Renders:       m.renderCount.Load(),
		MaxRenderTime: time.Duration(m.renderMaxNs.Load()),
		Snapshots:     m.snapshots.Load(),
		Undos:         m.undos.Load(),
		Uptime:        time.Since(m.startTime),
	}
	if s.Events > 0 {
		s.AvgEventTime = time.Duration(m.eventTotalNs.Load() / int64(s.Events))
	}
	if s.Renders > 0 {
		s.AvgRenderTime = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}

// Fields returns the snapshot as logger fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"events":     s.Events,
		"renders":    s.Renders,
		"avg_render": s.AvgRenderTime,
		"max_render": s.MaxRenderTime,
		"snapshots":  s.Snapshots,
		"undos":      s.Undos,
		"uptime":     s.Uptime.Round(time.Second),
	}
}

// Metrics returns the application's loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
