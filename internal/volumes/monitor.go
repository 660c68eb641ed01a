package volumes

import (
	"context"
	"sync"
	"time"

	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
)

// DefaultInterval is how often the monitor re-enumerates volumes
const DefaultInterval = time.Second

// Monitor polls an Enumerator and publishes a VolumesChanged event whenever
// the set of mountpoints changes. Capacity drift alone is not reported.
type Monitor struct {
	enum     Enumerator
	interval time.Duration
	out      sink.Sink

	mu       sync.Mutex
	previous model.Snapshot
}

// NewMonitor creates a monitor. The held snapshot starts empty so the first
// successful tick reports every attached volume.
func NewMonitor(enum Enumerator, interval time.Duration, out sink.Sink) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if out == nil {
		out = sink.Discard
	}
	return &Monitor{
		enum:     enum,
		interval: interval,
		out:      out,
	}
}

// Interval returns the polling period
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Current returns the last published snapshot
func (m *Monitor) Current() model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.previous
}

// Run checks once immediately and then on every tick until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	logging.Volumes.Debugf("monitor started, interval %v", m.interval)
	defer logging.Volumes.Debug("monitor stopped")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick takes one snapshot and publishes it if the mountpoint set changed.
// A failed enumeration keeps the held snapshot so the next good tick is
// compared against the last known state.
func (m *Monitor) Tick(ctx context.Context) (model.Diff, bool) {
	cur, err := m.enum.Snapshot(ctx)
	if err != nil {
		logging.Volumes.Debugf("enumerate volumes: %v", err)
		return model.Diff{}, false
	}

	m.mu.Lock()
	prev := m.previous
	if model.SameMountpoints(prev, cur) {
		m.mu.Unlock()
		return model.Diff{}, false
	}
	m.previous = cur
	m.mu.Unlock()

	diff := model.DiffSnapshots(prev, cur)
	logging.Volumes.Debugf("volumes changed: +%d -%d", len(diff.Added), len(diff.Removed))
	m.out.Publish(sink.EventVolumes, model.VolumesChanged{
		Removed: diff.Removed,
		Current: cur,
	})
	return diff, true
}
