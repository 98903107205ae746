package fieldgate

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID uint16

const (
	// MetricCreateSuccess counts documents inserted through the gateway.
	MetricCreateSuccess MetricID = iota
	// MetricCreateDenied counts create requests rejected by a field check.
	MetricCreateDenied
	// MetricEditSuccess counts modifiers applied through the gateway.
	MetricEditSuccess
	// MetricEditDenied counts edit requests rejected by a field check.
	MetricEditDenied
	// MetricDeleteSuccess counts documents removed through the gateway.
	MetricDeleteSuccess
	// MetricDeleteDenied counts delete requests rejected by the delete
	// predicate.
	MetricDeleteDenied
	// MetricNotLoggedIn counts operations rejected for lack of a
	// principal.
	MetricNotLoggedIn
	// MetricInvalidArgument counts requests rejected at the argument
	// boundary.
	MetricInvalidArgument
	// MetricFieldsQuery counts InsertableFields/EditableFields calls.
	MetricFieldsQuery
	// MetricCheckLatency is the histogram bucket for full-operation
	// check latency (predicate evaluation through store call).
	MetricCheckLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds atomic counters and an optional latency histogram. When
// disabled, all operations are no-ops.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether latency histograms are being recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc increments the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample for id. Only [MetricCheckLatency] is a
// histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricCheckLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current value of the counter identified by id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a deep copy of all counters and histograms.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64),
	}
	if m == nil {
		return snap
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricCheckLatency].buckets[i])
		}
		snap.Histograms[MetricCheckLatency] = buckets
	}

	return snap
}

// bucketIndex maps a duration to one of eight exponential buckets:
// <50µs, <100µs, <250µs, <500µs, <1ms, <5ms, <25ms, rest.
func bucketIndex(d time.Duration) int {
	switch {
	case d < 50*time.Microsecond:
		return 0
	case d < 100*time.Microsecond:
		return 1
	case d < 250*time.Microsecond:
		return 2
	case d < 500*time.Microsecond:
		return 3
	case d < time.Millisecond:
		return 4
	case d < 5*time.Millisecond:
		return 5
	case d < 25*time.Millisecond:
		return 6
	default:
		return 7
	}
}
