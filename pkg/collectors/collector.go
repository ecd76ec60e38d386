// Package collectors defines how background samplers feed the overlay.
// A Collector runs off the UI goroutine on its own interval; its result is
// wrapped in an Update and handed to the bubbletea loop as a message.
package collectors

import (
	"context"
	"time"
)

// Collector is a periodic data source.
type Collector interface {
	// Name returns a unique identifier (e.g. "sysmetrics").
	Name() string

	// Collect performs one collection cycle. Consumers type-assert the
	// result based on Name.
	Collect(ctx context.Context) (any, error)

	// Interval returns how often Collect should run.
	Interval() time.Duration

	// Healthy reports whether the last Collect succeeded.
	Healthy() bool
}

// Status is the runtime record a Registry keeps for each collector.
type Status struct {
	Name        string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// Update carries the result of one collection cycle.
type Update struct {
	Source    string
	Data      any
	Timestamp time.Time
	Latency   time.Duration
	Error     error
}

// Run performs one collection with c and wraps the outcome.
func Run(ctx context.Context, c Collector) Update {
	start := time.Now()
	data, err := c.Collect(ctx)
	return Update{
		Source:    c.Name(),
		Data:      data,
		Timestamp: start,
		Latency:   time.Since(start),
		Error:     err,
	}
}
