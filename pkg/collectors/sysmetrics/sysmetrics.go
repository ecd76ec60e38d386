// Package sysmetrics samples host and process load with gopsutil so the
// edit-mode status line can show what the overlay costs to run.
package sysmetrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Name identifies the collector in a collectors.Registry.
const Name = "sysmetrics"

// Config controls the collector.
type Config struct {
	// Interval is the sampling period (default 2s).
	Interval time.Duration

	// PID is the process to report on. Zero means the current process.
	PID int32
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Interval: 2 * time.Second}
}

// Metrics is one sample.
type Metrics struct {
	CPUPercent float64   `json:"cpu_percent"` // host, all cores
	MemPercent float64   `json:"mem_percent"` // host
	Load1      float64   `json:"load1"`
	ProcCPU    float64   `json:"proc_cpu"` // this process
	ProcRSS    uint64    `json:"proc_rss"` // bytes
	Timestamp  time.Time `json:"timestamp"`
}

// String renders the sample as a single status-line fragment.
func (m Metrics) String() string {
	return fmt.Sprintf("cpu %.0f%%  mem %.0f%%  load %.2f  self %.1f%% %s",
		m.CPUPercent, m.MemPercent, m.Load1, m.ProcCPU, FormatBytes(m.ProcRSS))
}

// Collector gathers Metrics. It satisfies collectors.Collector.
type Collector struct {
	cfg Config

	mu      sync.Mutex
	healthy bool
	proc    *process.Process
}

// New creates a Collector. Zero-value fields in cfg are replaced with
// defaults.
func New(cfg Config) *Collector {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.PID == 0 {
		cfg.PID = int32(os.Getpid())
	}
	return &Collector{cfg: cfg, healthy: true}
}

func (c *Collector) Name() string            { return Name }
func (c *Collector) Interval() time.Duration { return c.cfg.Interval }

// Healthy reports whether the last collection produced any data.
func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthy
}

func (c *Collector) setHealthy(h bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.healthy = h
}

// Collect takes one sample. Sub-collector failures are joined into the
// returned error; the sample still carries whatever succeeded. When every
// part fails the collector turns unhealthy and no sample is returned.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := Metrics{Timestamp: time.Now()}
	parts := []struct {
		name string
		fn   func(context.Context, *Metrics) error
	}{
		{"cpu", c.collectCPU},
		{"memory", c.collectMemory},
		{"load", c.collectLoad},
		{"process", c.collectProcess},
	}

	var errs []error
	for _, p := range parts {
		if err := p.fn(ctx, &m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
		}
	}

	if len(errs) == len(parts) {
		c.setHealthy(false)
		return nil, fmt.Errorf("sysmetrics: all sub-collectors failed: %w", errors.Join(errs...))
	}
	c.setHealthy(true)
	if len(errs) > 0 {
		return m, fmt.Errorf("sysmetrics: partial errors: %w", errors.Join(errs...))
	}
	return m, nil
}

func (c *Collector) collectCPU(ctx context.Context, m *Metrics) error {
	// interval=0 compares against the previous call.
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return err
	}
	if len(total) > 0 {
		m.CPUPercent = total[0]
	}
	return nil
}

func (c *Collector) collectMemory(ctx context.Context, m *Metrics) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	m.MemPercent = vm.UsedPercent
	return nil
}

func (c *Collector) collectLoad(ctx context.Context, m *Metrics) error {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return err
	}
	m.Load1 = avg.Load1
	return nil
}

func (c *Collector) collectProcess(ctx context.Context, m *Metrics) error {
	c.mu.Lock()
	p := c.proc
	c.mu.Unlock()
	if p == nil {
		var err error
		if p, err = process.NewProcessWithContext(ctx, c.cfg.PID); err != nil {
			return err
		}
		c.mu.Lock()
		c.proc = p
		c.mu.Unlock()
	}

	pct, err := p.PercentWithContext(ctx, 0)
	if err != nil {
		return err
	}
	mi, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return err
	}
	m.ProcCPU = pct
	m.ProcRSS = mi.RSS
	return nil
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
