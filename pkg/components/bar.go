// Package components draws the small reusable visuals the overlays are
// built from: sub-cell bars, sparklines and braille traces. Everything
// draws straight onto a render.Canvas.
package components

import (
	"math"

	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

// Horizontal eighth blocks, index = eighths filled.
var hBlocks = [9]rune{
	' ',
	'\u258F', // ▏
	'\u258E', // ▎
	'\u258D', // ▍
	'\u258C', // ▌
	'\u258B', // ▋
	'\u258A', // ▊
	'\u2589', // ▉
	'\u2588', // █
}

// Vertical eighth blocks, index = eighths filled from the bottom.
var vBlocks = [9]rune{
	' ',
	'\u2581', // ▁
	'\u2582', // ▂
	'\u2583', // ▃
	'\u2584', // ▄
	'\u2585', // ▅
	'\u2586', // ▆
	'\u2587', // ▇
	'\u2588', // █
}

// HBar draws a left-to-right bar of width cells at (x, y) filled to ratio
// with eighth-cell precision. The unfilled part is drawn on empty.
func HBar(c *render.Canvas, x, y, width int, ratio float64, fill, empty string) {
	if width <= 0 {
		return
	}
	eighths := barEighths(ratio, width)
	for i := 0; i < width; i++ {
		n := min(max(eighths-i*8, 0), 8)
		c.Set(x+i, y, hBlocks[n], render.Pen{FG: fill, BG: empty})
	}
}

// VBar draws a bottom-to-top bar of height cells whose bottom cell is at
// (x, y+height-1).
func VBar(c *render.Canvas, x, y, height int, ratio float64, fill, empty string) {
	if height <= 0 {
		return
	}
	eighths := barEighths(ratio, height)
	for i := 0; i < height; i++ {
		n := min(max(eighths-i*8, 0), 8)
		c.Set(x, y+height-1-i, vBlocks[n], render.Pen{FG: fill, BG: empty})
	}
}

// barEighths converts ratio to a count of filled eighths across cells.
func barEighths(ratio float64, cells int) int {
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * float64(cells*8)))
}
