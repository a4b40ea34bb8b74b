package tablo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordAppend records a row append batch with its duration and outcome.
	RecordAppend(rows int, duration time.Duration, err error)

	// RecordJoin records a join with its mode, output row count, duration and
	// outcome.
	RecordJoin(mode JoinMode, rows int, duration time.Duration, err error)

	// RecordSort records a sort operation.
	RecordSort(duration time.Duration, err error)

	// RecordSelect records a column projection.
	RecordSelect(duration time.Duration, err error)

	// RecordFilter records a row filter.
	RecordFilter(duration time.Duration, err error)

	// RecordTransform records a column derivation or mapping.
	RecordTransform(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Used as the default when metrics collection is disabled.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAppend(rows int, duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordJoin(mode JoinMode, rows int, duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordSort(duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordSelect(duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordFilter(duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordTransform(duration time.Duration, err error) {}

// BasicMetricsCollector collects metrics using atomic counters.
// Useful for testing and simple monitoring scenarios.
type BasicMetricsCollector struct {
	appendCount    atomic.Int64
	appendRows     atomic.Int64
	joinCount      atomic.Int64
	joinRows       atomic.Int64
	sortCount      atomic.Int64
	selectCount    atomic.Int64
	filterCount    atomic.Int64
	transformCount atomic.Int64
	errorCount     atomic.Int64
}

func (c *BasicMetricsCollector) RecordAppend(rows int, duration time.Duration, err error) {
	c.appendCount.Add(1)
	if err != nil {
		c.errorCount.Add(1)
		return
	}
	c.appendRows.Add(int64(rows))
}

func (c *BasicMetricsCollector) RecordJoin(mode JoinMode, rows int, duration time.Duration, err error) {
	c.joinCount.Add(1)
	if err != nil {
		c.errorCount.Add(1)
		return
	}
	c.joinRows.Add(int64(rows))
}

func (c *BasicMetricsCollector) RecordSort(duration time.Duration, err error) {
	c.sortCount.Add(1)
	if err != nil {
		c.errorCount.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSelect(duration time.Duration, err error) {
	c.selectCount.Add(1)
	if err != nil {
		c.errorCount.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordFilter(duration time.Duration, err error) {
	c.filterCount.Add(1)
	if err != nil {
		c.errorCount.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordTransform(duration time.Duration, err error) {
	c.transformCount.Add(1)
	if err != nil {
		c.errorCount.Add(1)
	}
}

// GetStats returns a snapshot of collected metrics.
func (c *BasicMetricsCollector) GetStats() map[string]int64 {
	return map[string]int64{
		"append_count":    c.appendCount.Load(),
		"append_rows":     c.appendRows.Load(),
		"join_count":      c.joinCount.Load(),
		"join_rows":       c.joinRows.Load(),
		"sort_count":      c.sortCount.Load(),
		"select_count":    c.selectCount.Load(),
		"filter_count":    c.filterCount.Load(),
		"transform_count": c.transformCount.Load(),
		"error_count":     c.errorCount.Load(),
	}
}
