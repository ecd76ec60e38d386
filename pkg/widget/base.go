package widget

import (
	"errors"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

// ErrBadBounds is returned by LoadConfig when the stored bounds have no
// area.
var ErrBadBounds = errors.New("widget: stored bounds have no area")

// handleGlyph marks the resize handle.
const handleGlyph = '◢'

// Base carries the state every overlay shares: name, bounds, size floor,
// visibility, and the Idle/Dragging/Resizing state machine. Overlays embed
// it and add Render.
type Base struct {
	name    string
	bounds  geometry.Bounds
	minSize geometry.MinSize
	visible bool
	handle  int

	state            State
	offsetX, offsetY int
}

// Option configures a Base.
type Option func(*Base)

// WithHandleSize sets the edge length of the resize handle.
func WithHandleSize(n int) Option {
	return func(b *Base) {
		if n > 0 {
			b.handle = n
		}
	}
}

// WithHidden starts the widget invisible.
func WithHidden() Option {
	return func(b *Base) { b.visible = false }
}

// NewBase returns a visible, Idle Base. The initial bounds are raised to
// minSize if smaller.
func NewBase(name string, bounds geometry.Bounds, minSize geometry.MinSize, opts ...Option) Base {
	b := Base{
		name:    name,
		bounds:  minSize.Clamp(bounds),
		minSize: minSize,
		visible: true,
		handle:  geometry.DefaultHandleSize,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *Base) Name() string                { return b.name }
func (b *Base) Bounds() geometry.Bounds     { return b.bounds }
func (b *Base) MinSize() geometry.MinSize   { return b.minSize }
func (b *Base) Visible() bool               { return b.visible }
func (b *Base) SetVisible(v bool)           { b.visible = v }
func (b *Base) State() State                { return b.state }
func (b *Base) Dragging() bool              { return b.state == Dragging }
func (b *Base) Resizing() bool              { return b.state == Resizing }
func (b *Base) HandleSize() int             { return b.handle }
func (b *Base) DragOffset() (x, y int)      { return b.offsetX, b.offsetY }
func (b *Base) SetBounds(r geometry.Bounds) { b.bounds = b.minSize.Clamp(r) }

// Update does nothing. Overlays that animate override it.
func (b *Base) Update(time.Duration) {}

// OnMousePressed starts a resize when the press lands on the handle, a
// drag when it lands elsewhere inside the bounds, and nothing otherwise.
// Presses are ignored until the current drag or resize is released.
func (b *Base) OnMousePressed(x, y int) {
	if b.state != Idle {
		return
	}
	switch {
	case b.bounds.ContainsResizeHandle(x, y, b.handle):
		b.state = Resizing
	case b.bounds.Contains(x, y):
		b.state = Dragging
		b.offsetX = x - b.bounds.X
		b.offsetY = y - b.bounds.Y
	}
}

// OnMouseReleased always returns to Idle.
func (b *Base) OnMouseReleased(int, int) {
	b.state = Idle
}

// OnMouseDragged moves or resizes according to the current state. A resize
// applies each axis only when it stays at or above MinSize.
func (b *Base) OnMouseDragged(x, y int) {
	switch b.state {
	case Dragging:
		b.bounds.X = x - b.offsetX
		b.bounds.Y = y - b.offsetY
	case Resizing:
		if w := x - b.bounds.X; w >= b.minSize.Width {
			b.bounds.Width = w
		}
		if h := y - b.bounds.Y; h >= b.minSize.Height {
			b.bounds.Height = h
		}
	}
}

// RenderBorder outlines the widget while it is hovered, dragged or
// resized, and marks the resize handle when the pointer is over it.
func (b *Base) RenderBorder(ctx *render.Context, mouseX, mouseY int) {
	hover := b.bounds.Contains(mouseX, mouseY)
	if b.state == Idle && !hover {
		return
	}

	th := ctx.Theme
	glyphs, color := render.BorderDashed, th.BorderHover
	switch b.state {
	case Dragging:
		glyphs, color = render.BorderHeavy, th.BorderDrag
	case Resizing:
		glyphs, color = render.BorderHeavy, th.BorderResize
	}

	c := ctx.Canvas
	pen := render.Pen{FG: color, Bold: b.state != Idle}
	c.Frame(b.bounds, glyphs, pen)

	if b.state != Idle {
		label := fmt.Sprintf(" %s %dx%d ", b.name, b.bounds.Width, b.bounds.Height)
		c.Text(b.bounds.X+2, b.bounds.Y, label, pen)
	}
	if b.state == Resizing || b.bounds.ContainsResizeHandle(mouseX, mouseY, b.handle) {
		c.Set(b.bounds.Right()-1, b.bounds.Bottom()-1, handleGlyph, render.Pen{FG: th.BorderResize, Bold: true})
	}
}

// SaveConfig records the current bounds under the widget name.
func (b *Base) SaveConfig(s ConfigStore) error {
	s.SaveBounds(b.name, b.bounds)
	return nil
}

// LoadConfig restores bounds saved under the widget name. A missing entry
// leaves the bounds untouched.
func (b *Base) LoadConfig(s ConfigStore) error {
	r, ok := s.LoadBounds(b.name)
	if !ok {
		return nil
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %s %+v", ErrBadBounds, b.name, r)
	}
	b.SetBounds(r)
	return nil
}

// Simple is a render-only element: name, bounds and visibility without any
// interaction state.
type Simple struct {
	name    string
	bounds  geometry.Bounds
	visible bool
}

// NewSimple returns a visible Simple.
func NewSimple(name string, bounds geometry.Bounds) Simple {
	return Simple{name: name, bounds: bounds, visible: true}
}

func (s *Simple) Name() string                { return s.name }
func (s *Simple) Bounds() geometry.Bounds     { return s.bounds }
func (s *Simple) SetBounds(b geometry.Bounds) { s.bounds = b }
func (s *Simple) Visible() bool               { return s.visible }
func (s *Simple) SetVisible(v bool)           { s.visible = v }
