package sysmetrics

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestName(t *testing.T) {
	c := New(DefaultConfig())
	if got := c.Name(); got != "sysmetrics" {
		t.Errorf("Name() = %q, want %q", got, "sysmetrics")
	}
}

func TestIntervalDefault(t *testing.T) {
	c := New(Config{})
	if got := c.Interval(); got != 2*time.Second {
		t.Errorf("Interval() with zero config = %v, want 2s", got)
	}
}

func TestIntervalCustom(t *testing.T) {
	c := New(Config{Interval: 5 * time.Second})
	if got := c.Interval(); got != 5*time.Second {
		t.Errorf("Interval() = %v, want 5s", got)
	}
}

func TestNewDefaultsToCurrentProcess(t *testing.T) {
	c := New(Config{})
	if c.cfg.PID != int32(os.Getpid()) {
		t.Errorf("PID = %d, want %d", c.cfg.PID, os.Getpid())
	}
}

func TestHealthyInitialState(t *testing.T) {
	c := New(DefaultConfig())
	if !c.Healthy() {
		t.Error("Healthy() should be true before any collection")
	}
}

// --- Integration tests (run on actual host) ---

func TestCollectReturnsValidMetrics(t *testing.T) {
	c := New(DefaultConfig())
	result, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	m, ok := result.(Metrics)
	if !ok {
		t.Fatalf("Collect() returned %T, want Metrics", result)
	}
	if m.CPUPercent < 0 || m.CPUPercent > 100 {
		t.Errorf("CPUPercent = %f, want 0-100", m.CPUPercent)
	}
	if m.MemPercent <= 0 || m.MemPercent > 100 {
		t.Errorf("MemPercent = %f, want (0, 100]", m.MemPercent)
	}
	if m.ProcRSS == 0 {
		t.Error("ProcRSS should be > 0 for the running test binary")
	}
	if time.Since(m.Timestamp) > 5*time.Second {
		t.Errorf("Timestamp is too old: %v", m.Timestamp)
	}
	if !c.Healthy() {
		t.Error("Healthy() = false after successful Collect")
	}
}

func TestCollectWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(DefaultConfig())
	_, err := c.Collect(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Collect() error = %v, want context.Canceled", err)
	}
}

func TestMetricsString(t *testing.T) {
	m := Metrics{CPUPercent: 12.4, MemPercent: 55, Load1: 0.5, ProcCPU: 1.3, ProcRSS: 3 << 20}
	got := m.String()
	for _, want := range []string{"cpu 12%", "mem 55%", "load 0.50", "self 1.3%", "3.0MiB"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0KiB"},
		{1536, "1.5KiB"},
		{5 << 20, "5.0MiB"},
		{3 << 30, "3.0GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHealthyConcurrency(t *testing.T) {
	c := New(DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.setHealthy(i%2 == 0)
		}()
		go func() {
			defer wg.Done()
			_ = c.Healthy()
		}()
	}
	wg.Wait()
}
