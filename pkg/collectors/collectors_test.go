package collectors

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// ctMock is a Collector whose result is fixed at construction.
type ctMock struct {
	name    string
	data    any
	err     error
	healthy bool
	calls   atomic.Int64
}

func ctNew(name string, data any, err error) *ctMock {
	return &ctMock{name: name, data: data, err: err, healthy: err == nil}
}

func (m *ctMock) Name() string            { return m.name }
func (m *ctMock) Interval() time.Duration { return time.Second }
func (m *ctMock) Healthy() bool           { return m.healthy }

func (m *ctMock) Collect(ctx context.Context) (any, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.data, m.err
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(ctNew("test", nil, nil)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Get("test")
	if !ok {
		t.Fatal("Get returned false for registered collector")
	}
	if got.Name() != "test" {
		t.Errorf("Name = %q, want %q", got.Name(), "test")
	}
	st, ok := r.Status("test")
	if !ok || !st.Healthy {
		t.Errorf("Status(test) = %+v, %v; want healthy entry", st, ok)
	}
}

func TestRegistryDuplicateNameError(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(ctNew("dup", nil, nil)); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(ctNew("dup", nil, nil)); err == nil {
		t.Fatal("second Register should have returned an error for duplicate name")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(ctNew("gone", nil, nil))
	r.Unregister("gone")
	r.Unregister("does-not-exist")

	if _, ok := r.Get("gone"); ok {
		t.Fatal("Get returned true after Unregister")
	}
	if _, ok := r.Status("gone"); ok {
		t.Fatal("Status returned true after Unregister")
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		_ = r.Register(ctNew(n, nil, nil))
	}
	want := []string{"alpha", "mid", "zeta"}
	got := r.List()
	all := r.All()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
		if all[i].Name() != want[i] {
			t.Errorf("All()[%d].Name() = %q, want %q", i, all[i].Name(), want[i])
		}
	}
}

func TestRunWrapsResult(t *testing.T) {
	c := ctNew("host", 42, nil)
	u := Run(context.Background(), c)

	if u.Source != "host" {
		t.Errorf("Source = %q, want %q", u.Source, "host")
	}
	if u.Data != 42 {
		t.Errorf("Data = %v, want 42", u.Data)
	}
	if u.Error != nil {
		t.Errorf("Error = %v, want nil", u.Error)
	}
	if u.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if c.calls.Load() != 1 {
		t.Errorf("Collect called %d times, want 1", c.calls.Load())
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := Run(ctx, ctNew("host", 1, nil))
	if !errors.Is(u.Error, context.Canceled) {
		t.Errorf("Error = %v, want context.Canceled", u.Error)
	}
}

func TestRegistryRecord(t *testing.T) {
	r := NewRegistry()
	ok := ctNew("ok", 1, nil)
	bad := ctNew("bad", nil, errors.New("boom"))
	_ = r.Register(ok)
	_ = r.Register(bad)

	r.Record(Run(context.Background(), ok))
	r.Record(Run(context.Background(), ok))
	r.Record(Run(context.Background(), bad))
	r.Record(Update{Source: "unknown"})

	st, _ := r.Status("ok")
	if st.RunCount != 2 || st.ErrorCount != 0 || !st.Healthy {
		t.Errorf("Status(ok) = %+v, want 2 runs, 0 errors, healthy", st)
	}
	if st.LastRun.IsZero() {
		t.Error("Status(ok).LastRun not set")
	}

	st, _ = r.Status("bad")
	if st.RunCount != 1 || st.ErrorCount != 1 || st.Healthy {
		t.Errorf("Status(bad) = %+v, want 1 run, 1 error, unhealthy", st)
	}
	if st.LastError == nil || st.LastError.Error() != "boom" {
		t.Errorf("Status(bad).LastError = %v, want boom", st.LastError)
	}

	if len(r.List()) != 2 {
		t.Errorf("Record of unknown source changed the registry: %v", r.List())
	}
}
