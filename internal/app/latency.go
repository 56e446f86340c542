package app

import (
	"slices"
	"time"
)

// minLatencySamples is the fewest samples P50 reports on.
const minLatencySamples = 5

// LatencyTracker collects request durations and computes the P50 over a
// rolling window.
// Not thread-safe: caller (Engine.statsMu) must serialize access.
type LatencyTracker struct {
	window  time.Duration
	samples []latencySample
}

type latencySample struct {
	ts time.Time
	d  time.Duration
}

// NewLatencyTracker creates a tracker with the given rolling window duration.
func NewLatencyTracker(window time.Duration) *LatencyTracker {
	return &LatencyTracker{window: window}
}

// Record adds a duration sample at the current time.
func (l *LatencyTracker) Record(d time.Duration) {
	l.RecordAt(time.Now(), d)
}

// RecordAt adds a duration sample at a specific timestamp. Negative
// durations (clock steps) are dropped.
func (l *LatencyTracker) RecordAt(ts time.Time, d time.Duration) {
	if d < 0 {
		return
	}
	l.samples = append(l.samples, latencySample{ts: ts, d: d})
	l.evict(ts)
}

// P50 returns the median duration within the window, or 0 with fewer than
// five samples.
func (l *LatencyTracker) P50() time.Duration {
	return l.P50At(time.Now())
}

// P50At computes the median as of the given time.
func (l *LatencyTracker) P50At(now time.Time) time.Duration {
	l.evict(now)
	if len(l.samples) < minLatencySamples {
		return 0
	}
	ds := make([]time.Duration, len(l.samples))
	for i, s := range l.samples {
		ds[i] = s.d
	}
	slices.Sort(ds)
	return ds[len(ds)/2]
}

// HasData returns true if there are enough samples to compute P50.
func (l *LatencyTracker) HasData() bool {
	l.evict(time.Now())
	return len(l.samples) >= minLatencySamples
}

// Reset clears all samples.
func (l *LatencyTracker) Reset() {
	l.samples = nil
}

// evict removes samples older than the window.
func (l *LatencyTracker) evict(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.samples) && l.samples[i].ts.Before(cutoff) {
		i++
	}
	if i > 0 {
		l.samples = l.samples[i:]
	}
}
