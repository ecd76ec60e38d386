package feed

import "time"

// Throttle gates a publish to a fixed rate using an accumulator: time is
// added every frame and the gate opens once a full interval has built up.
// Opening resets the accumulator to zero, so leftover time is dropped
// rather than carried.
type Throttle struct {
	interval time.Duration
	acc      time.Duration
}

// NewThrottle returns a Throttle opening hz times per second. A
// non-positive hz opens on every call.
func NewThrottle(hz float64) *Throttle {
	var interval time.Duration
	if hz > 0 {
		interval = time.Duration(float64(time.Second) / hz)
	}
	return &Throttle{interval: interval}
}

// Ready adds dt and reports whether the gate opened.
func (t *Throttle) Ready(dt time.Duration) bool {
	t.acc += dt
	if t.acc >= t.interval {
		t.acc = 0
		return true
	}
	return false
}

// Interval returns the minimum time between openings.
func (t *Throttle) Interval() time.Duration { return t.interval }
