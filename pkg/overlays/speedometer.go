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

const (
	spdFuel    = "#ffc800"
	spdERS     = "#64a0ff"
	spdBarsW   = 5 // two bars, their gaps and the right margin
	spdRPMWarn = 0.85
	spdRPMCrit = 0.95
)

// Speedometer shows gear, speed, rpm, temperatures, fuel and ERS, and the
// current and last lap.
type Speedometer struct {
	widget.Base
	subscription[telemetry.VehicleData]
	data telemetry.VehicleData
}

var _ widget.Widget = (*Speedometer)(nil)

// NewSpeedometer subscribes a Speedometer to src.
func NewSpeedometer(b geometry.Bounds, src *broker.Broker[telemetry.VehicleData], opts ...widget.Option) *Speedometer {
	s := &Speedometer{Base: widget.NewBase(SpeedometerName, b, SpeedometerMinSize, opts...)}
	s.attach(src, s.onData)
	return s
}

func (s *Speedometer) onData(d telemetry.VehicleData) { s.data = d }

// Data returns the last snapshot received.
func (s *Speedometer) Data() telemetry.VehicleData { return s.data }

func (s *Speedometer) Render(ctx *render.Context) {
	b := s.Bounds()
	d := s.data
	th := ctx.Theme
	c := ctx.Canvas

	body := ovPanel(ctx, b, "SPEED", "")
	if d.DRSEnabled {
		c.TextRight(b.Right()-1, b.Y, "DRS", ctx.Fonts.Title.Pen(th.Good, ""))
	}

	left := geometry.Bounds{X: b.X + 1, Y: body.Y, Width: body.Width - spdBarsW - 1, Height: body.Height}
	y := left.Y

	c.TextCenter(left, y, "[ "+ovGear(d.Gear)+" ]", ctx.Fonts.Title.Pen(th.Foreground, ""))
	y++
	speed := fmt.Sprintf("%.0f", d.Speed)
	x := left.X + (left.Width-len(speed)-4)/2
	x += c.Text(x, y, speed, ctx.Fonts.Title.Pen(th.Foreground, ""))
	c.Text(x+1, y, "MPH", ctx.Fonts.Caption.Pen(th.Dim, ""))
	y++
	rpm := telemetry.Clamp01(d.RPM)
	components.HBar(c, left.X, y, left.Width, rpm, th.Level(rpm, spdRPMWarn, spdRPMCrit), th.PanelAlt)
	y++
	c.Text(left.X, y, fmt.Sprintf("ENG %5.1f°C", d.EngineTemp), ctx.Fonts.Body.Pen(th.Foreground, ""))
	y++
	c.Text(left.X, y, fmt.Sprintf("OIL %5.1f°C", d.OilTemp), ctx.Fonts.Body.Pen(th.Foreground, ""))
	y++
	lap := geometry.Bounds{X: left.X, Y: y, Width: left.Width, Height: 1}
	c.Fill(lap, th.LapBox)
	c.Text(lap.X+1, y, "LAP "+d.LapTime, ctx.Fonts.Body.Pen(th.Foreground, ""))
	y++
	last := geometry.Bounds{X: left.X, Y: y, Width: left.Width, Height: 1}
	c.Fill(last, th.EnergyBox)
	c.Text(last.X+1, y, "NRG "+d.LastLap, ctx.Fonts.Body.Pen(th.Foreground, ""))

	// Fuel and ERS columns with a label row beneath.
	barH := body.Height - 1
	fx := b.Right() - spdBarsW + 1
	fuel := spdFuel
	if d.FuelPercent <= 20 {
		fuel = th.Crit
	}
	components.VBar(c, fx, body.Y, barH, d.FuelPercent/100, fuel, th.PanelAlt)
	components.VBar(c, fx+2, body.Y, barH, d.ERSPercent/100, spdERS, th.PanelAlt)
	c.Text(fx, body.Y+barH, "F", ctx.Fonts.Caption.Pen(th.Dim, ""))
	c.Text(fx+2, body.Y+barH, "E", ctx.Fonts.Caption.Pen(th.Dim, ""))
}
