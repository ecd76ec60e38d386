package overlays

import (
	"fmt"
	"math"

	"gitlab.com/tinyland/lab/pacemaker/pkg/broker"
	"gitlab.com/tinyland/lab/pacemaker/pkg/components"
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

// Position badge colours.
const (
	relBadgePodium = "#dc0000"
	relBadgePoints = "#00b400"
	relBadgeOther  = "#646464"
)

// RelativeTiming shows the cars immediately ahead of and behind the player
// with their gap in seconds.
type RelativeTiming struct {
	widget.Base
	subscription[telemetry.RelativeTimingData]
	data telemetry.RelativeTimingData
}

var _ widget.Widget = (*RelativeTiming)(nil)

// NewRelativeTiming subscribes a RelativeTiming to src.
func NewRelativeTiming(b geometry.Bounds, src *broker.Broker[telemetry.RelativeTimingData], opts ...widget.Option) *RelativeTiming {
	r := &RelativeTiming{Base: widget.NewBase(RelativeTimingName, b, RelativeTimingMinSize, opts...)}
	r.attach(src, r.onData)
	return r
}

func (r *RelativeTiming) onData(d telemetry.RelativeTimingData) { r.data = d }

// Data returns the last snapshot received.
func (r *RelativeTiming) Data() telemetry.RelativeTimingData { return r.data }

func (r *RelativeTiming) Render(ctx *render.Context) {
	b := r.Bounds()
	body := ovPanel(ctx, b, "RELATIVE", fmt.Sprintf("P%d", r.data.PlayerPosition))

	th := ctx.Theme
	c := ctx.Canvas
	const (
		badgeW = 4
		codeW  = 5
		gapW   = 6
	)
	nameW := b.Width - (1 + badgeW + 1 + codeW + 1 + gapW + 1)

	for i, p := range r.data.Players {
		if i >= body.Height {
			break
		}
		y := body.Y + i
		if p.Position == r.data.PlayerPosition {
			c.Fill(geometry.Bounds{X: b.X, Y: y, Width: b.Width, Height: 1}, th.Highlight)
		}

		x := b.X + 1
		badge := geometry.Bounds{X: x, Y: y, Width: badgeW, Height: 1}
		c.Fill(badge, relBadgeColor(p.Position))
		c.TextCenter(badge, y, fmt.Sprint(p.Position), ctx.Fonts.Title.Pen(th.Foreground, ""))
		x += badgeW + 1

		code := geometry.Bounds{X: x, Y: y, Width: codeW, Height: 1}
		c.Fill(code, th.Team(p.TeamColorIndex))
		c.TextCenter(code, y, components.Truncate(p.TeamCode, codeW, ""), ctx.Fonts.Title.Pen(th.Foreground, ""))
		x += codeW + 1

		if nameW > 0 {
			c.Text(x, y, components.PadRight(p.Name, nameW), ctx.Fonts.Body.Pen(th.Foreground, ""))
		}

		text, color := relGap(p.Gap, th.Foreground, th.Good, th.Crit)
		c.TextRight(b.Right()-1, y, text, ctx.Fonts.Body.Pen(color, ""))
	}
}

// relBadgeColor colours the top three red, the points places green and
// the rest grey.
func relBadgeColor(pos int) string {
	switch {
	case pos <= 3:
		return relBadgePodium
	case pos <= 10:
		return relBadgePoints
	default:
		return relBadgeOther
	}
}

// relGap formats a gap in seconds. Gaps within a hundredth of a second
// read as "0.0" in the neutral colour.
func relGap(gap float64, neutral, ahead, behind string) (string, string) {
	switch {
	case math.Abs(gap) < 0.01:
		return "0.0", neutral
	case gap > 0:
		return fmt.Sprintf("%+.1f", gap), ahead
	default:
		return fmt.Sprintf("%+.1f", gap), behind
	}
}
