// Package overlays implements the telemetry widgets. Each overlay embeds
// widget.Base for bounds and drag/resize handling, subscribes to one
// broker when constructed, keeps the latest snapshot, and draws it on
// Render. Close releases the subscription.
package overlays

import (
	"fmt"
	"math"
	"strconv"

	"gitlab.com/tinyland/lab/pacemaker/pkg/broker"
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

// Widget names. Layout files key bounds by these.
const (
	LeaderboardName     = "Leaderboard"
	RelativeTimingName  = "RelativeTiming"
	SpeedometerName     = "Speedometer"
	TireInfoName        = "TireInfo"
	InputTelemetryName  = "InputTelemetry"
	StatusIndicatorName = "StatusIndicator"
)

// Size floors in cells.
var (
	LeaderboardMinSize    = geometry.MinSize{Width: 40, Height: 6}
	RelativeTimingMinSize = geometry.MinSize{Width: 34, Height: 6}
	SpeedometerMinSize    = geometry.MinSize{Width: 24, Height: 10}
	TireInfoMinSize       = geometry.MinSize{Width: 20, Height: 8}
	InputTelemetryMinSize = geometry.MinSize{Width: 48, Height: 7}
)

// subscription ties an overlay to one broker.
type subscription[T any] struct {
	src *broker.Broker[T]
	id  broker.SubscriptionID
	on  bool
}

func (s *subscription[T]) attach(src *broker.Broker[T], fn func(T)) {
	s.src = src
	s.id = src.Subscribe(fn)
	s.on = true
}

// Close unsubscribes. It is safe to call more than once.
func (s *subscription[T]) Close() error {
	if s.on {
		s.src.Unsubscribe(s.id)
		s.on = false
	}
	return nil
}

// ovPanel fills b with the panel colour and draws a header row holding
// title on the left and right on the right. It returns the area below the
// header.
func ovPanel(ctx *render.Context, b geometry.Bounds, title, right string) geometry.Bounds {
	th := ctx.Theme
	c := ctx.Canvas
	c.Fill(b, th.Panel)
	c.Fill(geometry.Bounds{X: b.X, Y: b.Y, Width: b.Width, Height: 1}, th.PanelAlt)
	c.Text(b.X+1, b.Y, title, ctx.Fonts.Title.Pen(th.Foreground, ""))
	if right != "" {
		c.TextRight(b.Right()-1, b.Y, right, ctx.Fonts.Body.Pen(th.Dim, ""))
	}
	return geometry.Bounds{X: b.X, Y: b.Y + 1, Width: b.Width, Height: b.Height - 1}
}

// ovRGB formats an 8-bit colour as "#rrggbb", clamping and rounding each
// channel.
func ovRGB(r, g, b float64) string {
	ch := func(v float64) int { return int(math.Round(min(max(v, 0), 255))) }
	return fmt.Sprintf("#%02x%02x%02x", ch(r), ch(g), ch(b))
}

// ovGear renders a gear number, with R for reverse and N for neutral.
func ovGear(g int) string {
	switch {
	case g < 0:
		return "R"
	case g == 0:
		return "N"
	default:
		return strconv.Itoa(g)
	}
}
