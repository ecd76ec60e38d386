package widget

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/theme"
)

// --- helpers ---

type wtWidget struct {
	Base
	renders int
	updates time.Duration
	closed  bool
}

func (w *wtWidget) Render(ctx *render.Context) {
	w.renders++
	b := w.Bounds()
	ctx.Canvas.Text(b.X, b.Y, strings.Repeat("#", b.Width+4), render.Pen{})
}

func (w *wtWidget) Update(dt time.Duration) { w.updates += dt }

func (w *wtWidget) Close() error {
	w.closed = true
	return nil
}

func wtNew(name string, b geometry.Bounds, opts ...Option) *wtWidget {
	return &wtWidget{Base: NewBase(name, b, geometry.MinSize{Width: 40, Height: 30}, opts...)}
}

type wtStore map[string]geometry.Bounds

func (s wtStore) SaveBounds(name string, b geometry.Bounds) { s[name] = b }

func (s wtStore) LoadBounds(name string) (geometry.Bounds, bool) {
	b, ok := s[name]
	return b, ok
}

func wtContext(w, h int) *render.Context {
	return render.NewContext(render.NewCanvas(w, h), theme.Default())
}

// --- Base state machine ---

func TestBaseStartsIdle(t *testing.T) {
	w := wtNew("a", geometry.Bounds{X: 10, Y: 10, Width: 100, Height: 80})
	if w.State() != Idle || w.Dragging() || w.Resizing() {
		t.Errorf("State() = %v, want idle", w.State())
	}
	if !w.Visible() {
		t.Error("Visible() = false, want true")
	}
}

func TestBaseNewClampsToMinSize(t *testing.T) {
	w := wtNew("a", geometry.Bounds{Width: 10, Height: 100})
	if got := w.Bounds(); got.Width != 40 || got.Height != 100 {
		t.Errorf("Bounds() = %+v, want width raised to 40", got)
	}
}

func TestBaseDrag(t *testing.T) {
	w := wtNew("a", geometry.Bounds{X: 10, Y: 10, Width: 100, Height: 80})
	w.OnMousePressed(30, 25)
	if !w.Dragging() {
		t.Fatalf("State() = %v, want dragging", w.State())
	}
	if ox, oy := w.DragOffset(); ox != 20 || oy != 15 {
		t.Errorf("DragOffset() = (%d,%d), want (20,15)", ox, oy)
	}
	w.OnMouseDragged(200, 300)
	want := geometry.Bounds{X: 180, Y: 285, Width: 100, Height: 80}
	if got := w.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	w.OnMouseReleased(200, 300)
	if w.State() != Idle {
		t.Errorf("State() after release = %v, want idle", w.State())
	}
}

func TestBasePressOnHandleResizes(t *testing.T) {
	w := wtNew("a", geometry.Bounds{X: 0, Y: 0, Width: 100, Height: 80})
	w.OnMousePressed(95, 75)
	if !w.Resizing() {
		t.Fatalf("State() = %v, want resizing", w.State())
	}
	w.OnMouseDragged(150, 120)
	want := geometry.Bounds{Width: 150, Height: 120}
	if got := w.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestBaseResizeFloorPerAxis(t *testing.T) {
	w := wtNew("a", geometry.Bounds{X: 0, Y: 0, Width: 100, Height: 80})
	w.OnMousePressed(100, 80)
	// Width candidate 20 < 40 is ignored, height candidate 50 >= 30 applies.
	w.OnMouseDragged(20, 50)
	want := geometry.Bounds{Width: 100, Height: 50}
	if got := w.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	// Both below the floor: nothing changes.
	w.OnMouseDragged(5, 5)
	if got := w.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestBasePressOutsideStaysIdle(t *testing.T) {
	w := wtNew("a", geometry.Bounds{X: 10, Y: 10, Width: 100, Height: 80})
	w.OnMousePressed(0, 0)
	if w.State() != Idle {
		t.Errorf("State() = %v, want idle", w.State())
	}
	w.OnMouseDragged(50, 50)
	if got := w.Bounds(); got.X != 10 || got.Y != 10 {
		t.Errorf("idle drag moved widget to %+v", got)
	}
}

func TestBasePressIgnoredWhileActive(t *testing.T) {
	w := wtNew("a", geometry.Bounds{X: 0, Y: 0, Width: 100, Height: 80})
	w.OnMousePressed(10, 10)
	w.OnMousePressed(100, 80) // on the handle, but already dragging
	if !w.Dragging() {
		t.Errorf("State() = %v, want dragging", w.State())
	}
	if ox, oy := w.DragOffset(); ox != 10 || oy != 10 {
		t.Errorf("DragOffset() = (%d,%d), want (10,10)", ox, oy)
	}
}

func TestBaseHandleSizeOption(t *testing.T) {
	w := wtNew("a", geometry.Bounds{Width: 100, Height: 80}, WithHandleSize(2))
	if w.HandleSize() != 2 {
		t.Fatalf("HandleSize() = %d, want 2", w.HandleSize())
	}
	w.OnMousePressed(95, 75)
	if !w.Dragging() {
		t.Errorf("press outside small handle: State() = %v, want dragging", w.State())
	}
}

func TestBaseSetBoundsClamps(t *testing.T) {
	w := wtNew("a", geometry.Bounds{Width: 100, Height: 80})
	w.SetBounds(geometry.Bounds{X: 5, Y: 6, Width: 1, Height: 1})
	want := geometry.Bounds{X: 5, Y: 6, Width: 40, Height: 30}
	if got := w.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestBaseDragProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("drag moves origin by pointer minus offset", prop.ForAll(
		func(px, py, dx, dy int) bool {
			start := geometry.Bounds{X: 100, Y: 100, Width: 200, Height: 150}
			w := wtNew("p", start)
			// Keep the press off the resize handle.
			px, py = start.X+px%150, start.Y+py%100
			w.OnMousePressed(px, py)
			ox, oy := px-start.X, py-start.Y
			w.OnMouseDragged(dx, dy)
			got := w.Bounds()
			return w.Dragging() &&
				got.X == dx-ox && got.Y == dy-oy &&
				got.Width == start.Width && got.Height == start.Height
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(-500, 2000),
		gen.IntRange(-500, 2000),
	))

	properties.Property("resize never goes below the floor", prop.ForAll(
		func(x, y int) bool {
			w := wtNew("p", geometry.Bounds{X: 0, Y: 0, Width: 100, Height: 80})
			w.OnMousePressed(100, 80)
			w.OnMouseDragged(x, y)
			got := w.Bounds()
			wantW, wantH := 100, 80
			if x >= 40 {
				wantW = x
			}
			if y >= 30 {
				wantH = y
			}
			return got.Width == wantW && got.Height == wantH
		},
		gen.IntRange(-100, 400),
		gen.IntRange(-100, 400),
	))

	properties.TestingRun(t)
}

// --- RenderBorder ---

func TestRenderBorderIdleOutsideDrawsNothing(t *testing.T) {
	ctx := wtContext(20, 10)
	w := wtNew("a", geometry.Bounds{X: 2, Y: 2, Width: 40, Height: 30})
	w.RenderBorder(ctx, 0, 0)
	if strings.TrimSpace(ctx.Canvas.String()) != "" {
		t.Errorf("idle border drew:\n%s", ctx.Canvas.String())
	}
}

func TestRenderBorderHoverAndDrag(t *testing.T) {
	th := theme.Default()
	ctx := wtContext(50, 40)
	w := wtNew("a", geometry.Bounds{X: 0, Y: 0, Width: 40, Height: 30}, WithHandleSize(2))

	w.RenderBorder(ctx, 5, 5)
	cell, _ := ctx.Canvas.At(0, 0)
	if cell.Pen.FG != th.BorderHover {
		t.Errorf("hover corner FG = %q, want %q", cell.Pen.FG, th.BorderHover)
	}

	ctx.Canvas.Clear()
	w.OnMousePressed(5, 5)
	w.RenderBorder(ctx, 5, 5)
	cell, _ = ctx.Canvas.At(0, 0)
	if cell.Pen.FG != th.BorderDrag {
		t.Errorf("drag corner FG = %q, want %q", cell.Pen.FG, th.BorderDrag)
	}
	if !strings.Contains(ctx.Canvas.Row(0), "a 40x30") {
		t.Errorf("drag border row = %q, want size label", ctx.Canvas.Row(0))
	}
}

func TestRenderBorderHandleMarker(t *testing.T) {
	ctx := wtContext(50, 40)
	w := wtNew("a", geometry.Bounds{Width: 40, Height: 30}, WithHandleSize(2))
	w.RenderBorder(ctx, 40, 30)
	if cell, _ := ctx.Canvas.At(39, 29); cell.Rune != handleGlyph {
		t.Errorf("handle cell = %q, want %q", cell.Rune, handleGlyph)
	}
}

func TestRenderBorderIsReadOnly(t *testing.T) {
	w := wtNew("a", geometry.Bounds{Width: 40, Height: 30})
	before := w.Bounds()
	w.RenderBorder(wtContext(50, 40), 10, 10)
	if w.State() != Idle || w.Bounds() != before {
		t.Errorf("RenderBorder changed state to %v / %+v", w.State(), w.Bounds())
	}
}

// --- Config ---

func TestSaveLoadConfig(t *testing.T) {
	s := wtStore{}
	w := wtNew("Leaderboard", geometry.Bounds{X: 1, Y: 2, Width: 50, Height: 40})
	if err := w.SaveConfig(s); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	w.SetBounds(geometry.Bounds{Width: 60, Height: 60})
	if err := w.LoadConfig(s); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got, want := w.Bounds(), (geometry.Bounds{X: 1, Y: 2, Width: 50, Height: 40}); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestLoadConfigMissingAndBad(t *testing.T) {
	w := wtNew("a", geometry.Bounds{Width: 50, Height: 40})
	if err := w.LoadConfig(wtStore{}); err != nil {
		t.Errorf("LoadConfig(empty) = %v, want nil", err)
	}
	err := w.LoadConfig(wtStore{"a": {X: 1}})
	if !errors.Is(err, ErrBadBounds) {
		t.Errorf("LoadConfig(zero size) = %v, want ErrBadBounds", err)
	}
	if got := w.Bounds(); got.Width != 50 {
		t.Errorf("bad load changed bounds to %+v", got)
	}
}

// --- Simple ---

func TestSimple(t *testing.T) {
	s := NewSimple("StatusIndicator", geometry.Bounds{Width: 10, Height: 1})
	if !s.Visible() || s.Name() != "StatusIndicator" {
		t.Errorf("NewSimple = %+v", s)
	}
	s.SetVisible(false)
	s.SetBounds(geometry.Bounds{X: 3, Width: 10, Height: 1})
	if s.Visible() || s.Bounds().X != 3 {
		t.Errorf("after setters = %+v", s)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Dragging: "dragging", Resizing: "resizing", State(9): "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
