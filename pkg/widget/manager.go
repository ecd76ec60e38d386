package widget

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

var (
	// ErrNilWidget is returned when adding a nil widget.
	ErrNilWidget = errors.New("widget: nil widget")
	// ErrDuplicateName is returned when adding a widget whose name is
	// already managed.
	ErrDuplicateName = errors.New("widget: duplicate name")
)

// Manager owns the overlay widgets. Insertion order is z-order: widgets
// added later sit on top for hit-testing and draw over earlier ones.
//
// Pointer routing and border rendering happen only in edit mode. Toggling
// edit mode leaves every widget's drag/resize state untouched; a widget
// caught mid-drag stays Dragging until a release reaches it.
type Manager struct {
	widgets  []Widget
	editMode bool
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns an empty Manager with edit mode off.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddWidget takes ownership of w and places it on top of the stack.
func (m *Manager) AddWidget(w Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	if _, ok := m.Widget(w.Name()); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, w.Name())
	}
	m.widgets = append(m.widgets, w)
	m.logger.Debug("widget added", "name", w.Name(), "bounds", w.Bounds())
	return nil
}

// RemoveWidget removes the named widget, closing it if it implements
// io.Closer so that its broker subscription is released. It reports
// whether a widget was removed.
func (m *Manager) RemoveWidget(name string) bool {
	for i, w := range m.widgets {
		if w.Name() != name {
			continue
		}
		m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
		if c, ok := w.(io.Closer); ok {
			if err := c.Close(); err != nil {
				m.logger.Warn("widget close failed", "name", name, "error", err)
			}
		}
		m.logger.Debug("widget removed", "name", name)
		return true
	}
	return false
}

// Widget returns the named widget.
func (m *Manager) Widget(name string) (Widget, bool) {
	for _, w := range m.widgets {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

// Widgets returns the managed widgets bottom to top.
func (m *Manager) Widgets() []Widget {
	out := make([]Widget, len(m.widgets))
	copy(out, m.widgets)
	return out
}

// Len returns the number of managed widgets.
func (m *Manager) Len() int { return len(m.widgets) }

// SetEditMode turns pointer routing and border rendering on or off.
func (m *Manager) SetEditMode(on bool) {
	if m.editMode == on {
		return
	}
	m.editMode = on
	m.logger.Info("edit mode changed", "enabled", on)
}

// EditMode reports whether edit mode is on.
func (m *Manager) EditMode() bool { return m.editMode }

// HandleMousePressed forwards the press to the topmost visible widget
// containing the point and to no other.
func (m *Manager) HandleMousePressed(x, y int) {
	if !m.editMode {
		return
	}
	for i := len(m.widgets) - 1; i >= 0; i-- {
		w := m.widgets[i]
		if w.Visible() && w.Bounds().Contains(x, y) {
			w.OnMousePressed(x, y)
			return
		}
	}
}

// HandleMouseReleased forwards the release to every widget.
func (m *Manager) HandleMouseReleased(x, y int) {
	if !m.editMode {
		return
	}
	for _, w := range m.widgets {
		w.OnMouseReleased(x, y)
	}
}

// HandleMouseDragged forwards pointer motion to every widget. Only a widget
// that is dragging or resizing reacts.
func (m *Manager) HandleMouseDragged(x, y int) {
	if !m.editMode {
		return
	}
	for _, w := range m.widgets {
		w.OnMouseDragged(x, y)
	}
}

// Active returns the widget currently being dragged or resized.
func (m *Manager) Active() (Widget, bool) {
	for _, w := range m.widgets {
		if w.Dragging() || w.Resizing() {
			return w, true
		}
	}
	return nil, false
}

// Update advances every widget by dt.
func (m *Manager) Update(dt time.Duration) {
	for _, w := range m.widgets {
		w.Update(dt)
	}
}

// Render draws every visible widget bottom to top, each clipped to its
// own bounds. It runs whether or not edit mode is on.
func (m *Manager) Render(ctx *render.Context) {
	for _, w := range m.widgets {
		if !w.Visible() {
			continue
		}
		restore := ctx.Canvas.Clip(w.Bounds())
		w.Render(ctx)
		restore()
	}
}

// RenderBorders draws interaction borders in edit mode.
func (m *Manager) RenderBorders(ctx *render.Context, mouseX, mouseY int) {
	if !m.editMode {
		return
	}
	for _, w := range m.widgets {
		if w.Visible() {
			w.RenderBorder(ctx, mouseX, mouseY)
		}
	}
}

// SaveAllConfigs saves every widget into s.
func (m *Manager) SaveAllConfigs(s ConfigStore) error {
	var errs []error
	for _, w := range m.widgets {
		if err := w.SaveConfig(s); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", w.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LoadAllConfigs restores every widget from s. A widget that fails to load
// keeps its current bounds; the others still load.
func (m *Manager) LoadAllConfigs(s ConfigStore) error {
	var errs []error
	for _, w := range m.widgets {
		if err := w.LoadConfig(s); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", w.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every widget that implements io.Closer and empties the
// manager.
func (m *Manager) Close() error {
	var errs []error
	for _, w := range m.widgets {
		if c, ok := w.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", w.Name(), err))
			}
		}
	}
	m.widgets = nil
	return errors.Join(errs...)
}
