package planning

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Telemetry is a lock-free accumulator: plain counters plus sum+count
// pairs for latencies, with no locks on the hot path. Sharded
// xsync.Counter absorbs concurrent increments from many planning
// goroutines far better than a single atomic word under contention,
// which is why it's promoted here from an indirect, previously-unused
// dependency to a direct one.
type Telemetry struct {
	requestsTotal   *xsync.Counter
	requestsSuccess *xsync.Counter
	requestsError   *xsync.Counter
	cacheHits       *xsync.Counter
	cacheMisses     *xsync.Counter
	retries         *xsync.Counter
	circuitOpens    *xsync.Counter
	fallbacks       *xsync.Counter

	llmLatency  *latencyAccumulator
	planLatency *latencyAccumulator
}

// latencyAccumulator holds a sum+count pair behind lock-free counters,
// so snapshot() can compute an average without taking a lock.
type latencyAccumulator struct {
	sumNanos *xsync.Counter
	count    *xsync.Counter
}

func newLatencyAccumulator() *latencyAccumulator {
	return &latencyAccumulator{sumNanos: xsync.NewCounter(), count: xsync.NewCounter()}
}

func (l *latencyAccumulator) record(d int64) {
	l.sumNanos.Add(d)
	l.count.Add(1)
}

func (l *latencyAccumulator) snapshot() LatencyStats {
	count := l.count.Value()
	sum := l.sumNanos.Value()
	var avg float64
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	return LatencyStats{SumNanos: sum, Count: count, AverageNanos: avg}
}

// NewTelemetry creates an empty Telemetry accumulator.
func NewTelemetry() *Telemetry {
	return &Telemetry{
		requestsTotal:   xsync.NewCounter(),
		requestsSuccess: xsync.NewCounter(),
		requestsError:   xsync.NewCounter(),
		cacheHits:       xsync.NewCounter(),
		cacheMisses:     xsync.NewCounter(),
		retries:         xsync.NewCounter(),
		circuitOpens:    xsync.NewCounter(),
		fallbacks:       xsync.NewCounter(),
		llmLatency:      newLatencyAccumulator(),
		planLatency:     newLatencyAccumulator(),
	}
}

func (t *Telemetry) RecordRequest()        { t.requestsTotal.Add(1) }
func (t *Telemetry) RecordSuccess()        { t.requestsSuccess.Add(1) }
func (t *Telemetry) RecordError()          { t.requestsError.Add(1) }
func (t *Telemetry) RecordCacheHit()       { t.cacheHits.Add(1) }
func (t *Telemetry) RecordCacheMiss()      { t.cacheMisses.Add(1) }
func (t *Telemetry) RecordRetry()          { t.retries.Add(1) }
func (t *Telemetry) RecordCircuitOpen()    { t.circuitOpens.Add(1) }
func (t *Telemetry) RecordFallback()       { t.fallbacks.Add(1) }
func (t *Telemetry) RecordLLMLatency(nanos int64)  { t.llmLatency.record(nanos) }
func (t *Telemetry) RecordPlanLatency(nanos int64) { t.planLatency.record(nanos) }

// LatencyStats is a point-in-time sum/count/average read.
type LatencyStats struct {
	SumNanos     int64
	Count        int64
	AverageNanos float64
}

// Snapshot is the immutable point-in-time view returned by
// Telemetry.Snapshot: raw counters plus derived success rate and
// latency averages.
type Snapshot struct {
	RequestsTotal   int64
	RequestsSuccess int64
	RequestsError   int64
	CacheHits       int64
	CacheMisses     int64
	Retries         int64
	CircuitOpens    int64
	Fallbacks       int64
	SuccessRate     float64
	LLMLatency      LatencyStats
	PlanLatency     LatencyStats
}

// Snapshot computes a consistent-enough read of all counters. Because
// each counter is independently lock-free, the combined view is not a
// single atomic transaction across counters — acceptable for
// telemetry, which needs no cross-field linearizability, only
// individually race-free counters.
func (t *Telemetry) Snapshot() Snapshot {
	total := t.requestsTotal.Value()
	success := t.requestsSuccess.Value()
	var rate float64
	if total > 0 {
		rate = float64(success) / float64(total)
	}
	return Snapshot{
		RequestsTotal:   total,
		RequestsSuccess: success,
		RequestsError:   t.requestsError.Value(),
		CacheHits:       t.cacheHits.Value(),
		CacheMisses:     t.cacheMisses.Value(),
		Retries:         t.retries.Value(),
		CircuitOpens:    t.circuitOpens.Value(),
		Fallbacks:       t.fallbacks.Value(),
		SuccessRate:     rate,
		LLMLatency:      t.llmLatency.snapshot(),
		PlanLatency:     t.planLatency.snapshot(),
	}
}

// Reset clears all counters back to zero by replacing each accumulator
// with a fresh one. The field replacement is not synchronized, so Reset
// is not safe to call concurrently with the Record methods or Snapshot.
func (t *Telemetry) Reset() {
	t.requestsTotal = xsync.NewCounter()
	t.requestsSuccess = xsync.NewCounter()
	t.requestsError = xsync.NewCounter()
	t.cacheHits = xsync.NewCounter()
	t.cacheMisses = xsync.NewCounter()
	t.retries = xsync.NewCounter()
	t.circuitOpens = xsync.NewCounter()
	t.fallbacks = xsync.NewCounter()
	t.llmLatency = newLatencyAccumulator()
	t.planLatency = newLatencyAccumulator()
}
