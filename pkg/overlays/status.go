package overlays

import (
	"github.com/charmbracelet/bubbles/help"

	"gitlab.com/tinyland/lab/pacemaker/pkg/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

// MoveModeMessage is the banner shown while widgets can be moved.
const MoveModeMessage = "MOVE MODE - Press Ctrl+F6 to exit"

// StatusSize is the footprint of the status indicator.
var StatusSize = geometry.MinSize{Width: 46, Height: 3}

// StatusIndicator is the edit-mode banner. It is not managed by the
// widget manager and cannot be dragged.
type StatusIndicator struct {
	widget.Simple
	keys    help.KeyMap
	help    help.Model
	metrics string
}

// NewStatusIndicator returns a hidden indicator at b that lists the short
// help for keys.
func NewStatusIndicator(b geometry.Bounds, keys help.KeyMap) *StatusIndicator {
	s := &StatusIndicator{
		Simple: widget.NewSimple(StatusIndicatorName, b),
		keys:   keys,
		help:   help.New(),
	}
	s.SetVisible(false)
	return s
}

// SetMetrics replaces the host statistics line.
func (s *StatusIndicator) SetMetrics(m sysmetrics.Metrics) { s.metrics = m.String() }

// Render draws the banner, the key help and the host statistics.
func (s *StatusIndicator) Render(ctx *render.Context) {
	if !s.Visible() {
		return
	}
	b := s.Bounds()
	th := ctx.Theme
	c := ctx.Canvas

	c.Fill(b, th.StatusBG)
	c.Frame(b, render.BorderHeavy, render.Pen{FG: th.StatusFG})
	c.TextCenter(b, b.Y, " "+MoveModeMessage+" ", ctx.Fonts.Title.Pen(th.StatusFG, ""))

	inner := b.Inner(1)
	if inner.Empty() {
		return
	}
	s.help.Width = inner.Width
	c.TextCenter(inner, inner.Y, s.help.ShortHelpView(s.keys.ShortHelp()), ctx.Fonts.Body.Pen(th.Foreground, ""))
	if s.metrics != "" {
		c.TextCenter(b, b.Bottom()-1, " "+s.metrics+" ", ctx.Fonts.Caption.Pen(th.Dim, ""))
	}
}
