package overlays

import (
	"fmt"

	"gitlab.com/tinyland/lab/pacemaker/pkg/broker"
	"gitlab.com/tinyland/lab/pacemaker/pkg/components"
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

// Leaderboard shows the session classification with each car's battery.
type Leaderboard struct {
	widget.Base
	subscription[telemetry.LeaderboardData]
	data telemetry.LeaderboardData
}

var _ widget.Widget = (*Leaderboard)(nil)

// NewLeaderboard subscribes a Leaderboard to src.
func NewLeaderboard(b geometry.Bounds, src *broker.Broker[telemetry.LeaderboardData], opts ...widget.Option) *Leaderboard {
	l := &Leaderboard{Base: widget.NewBase(LeaderboardName, b, LeaderboardMinSize, opts...)}
	l.attach(src, l.onData)
	return l
}

func (l *Leaderboard) onData(d telemetry.LeaderboardData) { l.data = d }

// Data returns the last snapshot received.
func (l *Leaderboard) Data() telemetry.LeaderboardData { return l.data }

// Render draws the header and one row per player until the panel is full.
func (l *Leaderboard) Render(ctx *render.Context) {
	b := l.Bounds()
	body := ovPanel(ctx, b, l.data.SessionType, l.data.SessionTime)

	th := ctx.Theme
	c := ctx.Canvas
	const (
		posW   = 3
		numW   = 4
		timeW  = 9
		barW   = 6
		battW  = barW + 5
		fixedW = 1 + posW + 2 + numW + 1 + timeW + 1 + battW + 1
	)
	nameW := b.Width - fixedW
	showTime := true
	if nameW < 8 {
		nameW += timeW + 1
		showTime = false
	}

	for i, p := range l.data.Players {
		if i >= body.Height {
			break
		}
		y := body.Y + i
		bg := th.Panel
		if i%2 == 1 {
			bg = th.PanelAlt
		}
		c.Fill(geometry.Bounds{X: b.X, Y: y, Width: b.Width, Height: 1}, bg)

		x := b.X + 1
		c.Text(x, y, components.PadLeft(fmt.Sprint(p.Position), posW), ctx.Fonts.Title.Pen(th.Foreground, ""))
		x += posW + 1
		c.Set(x, y, '▌', render.Pen{FG: th.Team(p.TeamColorIndex)})
		x++
		c.Text(x, y, components.PadLeft(fmt.Sprint(p.Number), numW-1)+" ", ctx.Fonts.Body.Pen(th.Dim, ""))
		x += numW
		c.Text(x, y, components.PadRight(p.Name, nameW), ctx.Fonts.Body.Pen(th.Foreground, ""))
		x += nameW + 1

		if showTime {
			timePen := ctx.Fonts.Body.Pen(th.Foreground, "")
			if p.InPit {
				timePen = ctx.Fonts.Title.Pen(th.Warn, "")
			}
			c.Text(x, y, components.PadLeft(p.CurrentTime, timeW), timePen)
			x += timeW + 1
		}

		if p.InPit {
			c.Text(x, y, components.PadLeft("PIT", battW), ctx.Fonts.Title.Pen(th.Warn, ""))
			continue
		}
		color := lbBatteryColor(th.Good, th.Warn, th.Crit, p.BatteryPercent)
		components.HBar(c, x, y, barW, p.BatteryPercent/100, color, th.Highlight)
		c.Text(x+barW, y, fmt.Sprintf("%4.0f%%", p.BatteryPercent), ctx.Fonts.Body.Pen(color, ""))
	}
}

// lbBatteryColor is green above 50%, orange above 20%, red otherwise.
func lbBatteryColor(good, warn, crit string, pct float64) string {
	switch {
	case pct > 50:
		return good
	case pct > 20:
		return warn
	default:
		return crit
	}
}
