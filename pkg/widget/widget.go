// Package widget defines the overlay widget contract, the shared
// drag/resize state machine in Base, and the Manager that routes pointer
// input to widgets by z-order.
package widget

import (
	"time"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

// Renderable draws into a frame.
type Renderable interface {
	// Render draws the widget's content. The canvas is clipped to Bounds.
	Render(ctx *render.Context)
	// RenderBorder draws the edit-mode interaction border for the current
	// state and pointer position. It never changes state.
	RenderBorder(ctx *render.Context, mouseX, mouseY int)
}

// Draggable reacts to pointer events while edit mode is on.
type Draggable interface {
	OnMousePressed(x, y int)
	OnMouseReleased(x, y int)
	OnMouseDragged(x, y int)
	Dragging() bool
	Resizing() bool
}

// ConfigStore persists widget bounds keyed by widget name.
type ConfigStore interface {
	SaveBounds(name string, b geometry.Bounds)
	LoadBounds(name string) (geometry.Bounds, bool)
}

// Configurable can save and restore its layout.
type Configurable interface {
	SaveConfig(s ConfigStore) error
	LoadConfig(s ConfigStore) error
}

// Widget is the full capability set of an overlay.
type Widget interface {
	Renderable
	Draggable
	Configurable

	Name() string
	Bounds() geometry.Bounds
	SetBounds(b geometry.Bounds)
	MinSize() geometry.MinSize
	Visible() bool
	SetVisible(v bool)
	Update(dt time.Duration)
}

// State is the interaction state of a Base.
type State int

// Interaction states.
const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}
