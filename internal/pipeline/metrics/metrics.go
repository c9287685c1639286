// Package metrics defines the per-stage metrics shape every stage in the
// pipeline returns alongside its output, per spec section 4.1's contract:
// (stage_result_value, metrics: {duration_ms, item_counts...}, status).
package metrics

import "time"

// Metrics carries a stage's timing and item counters. Counters is a free
// map because each stage tracks different things (lines_extracted,
// duplicates_dropped, pairs_rejected_by_distance, ...); the executor
// never interprets counter keys itself, only persists them.
type Metrics struct {
	DurationMS int64          `json:"duration_ms"`
	Counters   map[string]int `json:"counters,omitempty"`
}

// New returns a zero-valued Metrics ready for counter increments.
func New() Metrics {
	return Metrics{Counters: make(map[string]int)}
}

// Timer measures wall-clock duration for a stage invocation.
type Timer struct {
	start time.Time
}

// StartTimer begins timing a stage.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Stop returns the elapsed duration in milliseconds.
func (t Timer) Stop() int64 {
	return time.Since(t.start).Milliseconds()
}
