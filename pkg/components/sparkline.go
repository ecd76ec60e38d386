package components

import "gitlab.com/tinyland/lab/pacemaker/pkg/render"

// Sparkline draws the last width values as one row of vertical blocks
// scaled between lo and hi.
func Sparkline(c *render.Canvas, x, y, width int, values []float64, lo, hi float64, p render.Pen) {
	if width <= 0 || len(values) == 0 {
		return
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	span := hi - lo
	for i, v := range values {
		level := 0
		if span > 0 {
			frac := (v - lo) / span
			level = int(min(max(frac, 0), 1)*7) + 1
		}
		c.Set(x+i, y, vBlocks[level], p)
	}
}
