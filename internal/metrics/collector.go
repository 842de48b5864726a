// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// Operation names for the collector.
const (
	OpEmbedding   = "embedding"
	OpExtraction  = "extraction"
	OpStoreSearch = "store_search"
	OpStoreUpsert = "store_upsert"
)

// Counter names for admission and recall outcomes.
const (
	CounterFactsStored       = "facts_stored"
	CounterDuplicatesSkipped = "duplicates_skipped"
	CounterInjectionRejected = "injection_rejected"
	CounterCandidatesDropped = "candidates_dropped"
	CounterRecallsServed     = "recalls_served"
	CounterRecallsEmpty      = "recalls_empty"
)

// OperationMetrics holds aggregated timings for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`
}

// Snapshot represents the full collector state at a point in time.
type Snapshot struct {
	UptimeSeconds float64                      `json:"uptime_seconds"`
	Operations    map[string]OperationSnapshot `json:"operations,omitempty"`
	Counters      map[string]int64             `json:"counters,omitempty"`
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
	counters  map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
		counters:  make(map[string]int64),
	}
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}

	m.Count++
	m.TotalTime += duration
	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Inc increments a named counter.
func (c *Collector) Inc(counter string) {
	c.Add(counter, 1)
}

// Add increments a named counter by n.
func (c *Collector) Add(counter string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[counter] += n
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
	}

	if len(c.ops) > 0 {
		snap.Operations = make(map[string]OperationSnapshot, len(c.ops))
		for name, m := range c.ops {
			if m.Count == 0 {
				continue
			}
			snap.Operations[name] = OperationSnapshot{
				Count:       m.Count,
				TotalTimeMs: m.TotalTime.Milliseconds(),
				AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
				MinTimeMs:   m.MinTime.Milliseconds(),
				MaxTimeMs:   m.MaxTime.Milliseconds(),
			}
		}
	}

	if len(c.counters) > 0 {
		snap.Counters = make(map[string]int64, len(c.counters))
		for name, v := range c.counters {
			snap.Counters[name] = v
		}
	}

	return snap
}
