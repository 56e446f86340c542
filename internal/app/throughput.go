package app

import "time"

// ThroughputTracker computes a rolling scan rate (bytes per minute) over a
// configurable window.
// Not thread-safe: caller (Engine.statsMu) must serialize access.
type ThroughputTracker struct {
	window  time.Duration
	samples []throughputSample
	total   int64
}

type throughputSample struct {
	ts    time.Time
	bytes int
}

// NewThroughputTracker creates a tracker with the given rolling window duration.
func NewThroughputTracker(window time.Duration) *ThroughputTracker {
	return &ThroughputTracker{window: window}
}

// Record adds a sample at the current time.
func (t *ThroughputTracker) Record(bytes int) {
	t.RecordAt(time.Now(), bytes)
}

// RecordAt adds a sample at a specific timestamp.
func (t *ThroughputTracker) RecordAt(ts time.Time, bytes int) {
	t.samples = append(t.samples, throughputSample{ts: ts, bytes: bytes})
	t.total += int64(bytes)
	t.evict(ts)
}

// BytesPerMin returns the current scan rate.
func (t *ThroughputTracker) BytesPerMin() float64 {
	return t.BytesPerMinAt(time.Now())
}

// BytesPerMinAt computes the scan rate as of the given time.
func (t *ThroughputTracker) BytesPerMinAt(now time.Time) float64 {
	t.evict(now)
	if len(t.samples) < 2 {
		return 0
	}
	span := now.Sub(t.samples[0].ts)
	if span <= 0 {
		return 0
	}

	sum := 0
	for _, s := range t.samples {
		sum += s.bytes
	}
	return float64(sum) / span.Minutes()
}

// TotalBytes returns the lifetime total of recorded bytes.
func (t *ThroughputTracker) TotalBytes() int64 {
	return t.total
}

// Reset clears all samples and the lifetime total.
func (t *ThroughputTracker) Reset() {
	t.samples = nil
	t.total = 0
}

// evict removes samples older than the window.
func (t *ThroughputTracker) evict(now time.Time) {
	cutoff := now.Add(-t.window)
	i := 0
	for i < len(t.samples) && t.samples[i].ts.Before(cutoff) {
		i++
	}
	if i > 0 {
		t.samples = t.samples[i:]
	}
}
