// Package geometry holds the rectangle model shared by every overlay: a
// widget's Bounds, its immutable MinSize floor, and the hit tests used by
// the interaction state machine.
//
// Coordinates are unit-agnostic integers. The terminal host uses cells.
package geometry

// DefaultHandleSize is the edge length of the square resize handle at the
// bottom-right corner of a widget.
const DefaultHandleSize = 20

// Bounds is an integer rectangle anchored at its top-left corner.
type Bounds struct {
	X      int `toml:"x" yaml:"x"`
	Y      int `toml:"y" yaml:"y"`
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// MinSize is the size floor a widget can never be resized below.
type MinSize struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Right returns X+Width.
func (b Bounds) Right() int { return b.X + b.Width }

// Bottom returns Y+Height.
func (b Bounds) Bottom() int { return b.Y + b.Height }

// Empty reports whether b has no area.
func (b Bounds) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Contains reports whether (px, py) lies within b. All four edges are
// inclusive, so a point on X+Width or Y+Height still hits.
func (b Bounds) Contains(px, py int) bool {
	return px >= b.X && px <= b.Right() && py >= b.Y && py <= b.Bottom()
}

// ContainsResizeHandle reports whether (px, py) lies in the handle-sized
// square at the bottom-right corner of b, edges inclusive.
func (b Bounds) ContainsResizeHandle(px, py, handle int) bool {
	return px >= b.Right()-handle && px <= b.Right() &&
		py >= b.Bottom()-handle && py <= b.Bottom()
}

// Inner returns b shrunk by margin on every side. Dimensions never go
// negative.
func (b Bounds) Inner(margin int) Bounds {
	if margin < 0 {
		margin = 0
	}
	w := b.Width - 2*margin
	h := b.Height - 2*margin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Bounds{X: b.X + margin, Y: b.Y + margin, Width: w, Height: h}
}

// Intersect returns the overlap of b and o, or a zero Bounds when they do
// not overlap.
func (b Bounds) Intersect(o Bounds) Bounds {
	x1 := max(b.X, o.X)
	y1 := max(b.Y, o.Y)
	x2 := min(b.Right(), o.Right())
	y2 := min(b.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Bounds{}
	}
	return Bounds{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Clamp returns b with each dimension raised to at least m.
func (m MinSize) Clamp(b Bounds) Bounds {
	if b.Width < m.Width {
		b.Width = m.Width
	}
	if b.Height < m.Height {
		b.Height = m.Height
	}
	return b
}
