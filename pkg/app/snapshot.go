package app

// Snapshot advances m by frames frame intervals without a running program
// and returns the composed frame. It backs the non-interactive mode used
// when stdout is not a terminal.
func Snapshot(m *Model, frames int) string {
	dt := m.cfg.FrameInterval()
	for range frames {
		m.Step(dt)
	}
	return m.View()
}
