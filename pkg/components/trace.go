package components

import (
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

// TraceSeries is one line of a Trace.
type TraceSeries struct {
	Values []float64
	Color  string
}

// Trace plots series into area as braille dots, two columns and four rows
// of dots per cell. Values are scaled between lo and hi. Samples are
// spread evenly over capacity dot columns so that a partially filled
// history grows from the left. Consecutive samples are joined vertically
// so fast transitions stay continuous. A cell takes the colour of the last
// series that touched it.
func Trace(c *render.Canvas, area geometry.Bounds, series []TraceSeries, lo, hi float64, capacity int) {
	if area.Empty() || hi <= lo {
		return
	}
	dotsW, dotsH := area.Width*2, area.Height*4
	grid := make([]uint8, area.Width*area.Height)
	owner := make([]int, area.Width*area.Height)
	for i := range owner {
		owner[i] = -1
	}
	if capacity < 2 {
		capacity = 2
	}

	plot := func(dx, dy, si int) {
		if dx < 0 || dx >= dotsW || dy < 0 || dy >= dotsH {
			return
		}
		i := (dy/4)*area.Width + dx/2
		grid[i] |= brailleBit(dx%2, dy%4)
		owner[i] = si
	}
	toDotY := func(v float64) int {
		frac := min(max((v-lo)/(hi-lo), 0), 1)
		return int((1 - frac) * float64(dotsH-1))
	}

	for si, s := range series {
		prevY := -1
		for i, v := range s.Values {
			dx := i * (dotsW - 1) / (capacity - 1)
			dy := toDotY(v)
			plot(dx, dy, si)
			if prevY >= 0 {
				step := 1
				if dy < prevY {
					step = -1
				}
				for y := prevY; y != dy; y += step {
					plot(dx, y, si)
				}
			}
			prevY = dy
		}
	}

	for row := 0; row < area.Height; row++ {
		for col := 0; col < area.Width; col++ {
			i := row*area.Width + col
			if grid[i] == 0 {
				continue
			}
			c.Set(area.X+col, area.Y+row, rune(0x2800+int(grid[i])), render.Pen{FG: series[owner[i]].Color})
		}
	}
}

// brailleBit returns the bitmask for a dot at offset (offX, offY) within a
// Braille cell. offX is 0 (left) or 1 (right). offY is 0..3 (top to bottom).
//
// Unicode Braille dot numbering:
//
//	1 4      bit: 0x01  0x08
//	2 5           0x02  0x10
//	3 6           0x04  0x20
//	7 8           0x40  0x80
func brailleBit(offX, offY int) uint8 {
	leftBits := [4]uint8{0x01, 0x02, 0x04, 0x40}
	rightBits := [4]uint8{0x08, 0x10, 0x20, 0x80}

	if offY < 0 || offY > 3 {
		return 0
	}
	if offX == 0 {
		return leftBits[offY]
	}
	return rightBits[offY]
}
