package overlays

import (
	"fmt"
	"slices"

	"gitlab.com/tinyland/lab/pacemaker/pkg/broker"
	"gitlab.com/tinyland/lab/pacemaker/pkg/components"
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

const (
	inAmber = "#ffbf00"
	inBeige = "#d3b083"
	inGearW = 7
)

// InputTelemetry plots the recent throttle, brake and steering inputs and
// shows the current gear and rpm.
type InputTelemetry struct {
	widget.Base
	subscription[telemetry.InputTelemetryData]
	data    telemetry.InputTelemetryData
	history []telemetry.InputTelemetryData
}

var _ widget.Widget = (*InputTelemetry)(nil)

// NewInputTelemetry subscribes an InputTelemetry to src. A replayed value
// becomes the first history sample.
func NewInputTelemetry(b geometry.Bounds, src *broker.Broker[telemetry.InputTelemetryData], opts ...widget.Option) *InputTelemetry {
	in := &InputTelemetry{
		Base:    widget.NewBase(InputTelemetryName, b, InputTelemetryMinSize, opts...),
		data:    telemetry.DefaultInput(),
		history: make([]telemetry.InputTelemetryData, 0, telemetry.MaxHistory),
	}
	in.attach(src, in.onData)
	return in
}

func (in *InputTelemetry) onData(d telemetry.InputTelemetryData) {
	in.data = d
	in.history = append(in.history, d)
	if n := len(in.history) - telemetry.MaxHistory; n > 0 {
		in.history = slices.Delete(in.history, 0, n)
	}
}

// Data returns the last sample received.
func (in *InputTelemetry) Data() telemetry.InputTelemetryData { return in.data }

// History returns a copy of the retained samples, oldest first.
func (in *InputTelemetry) History() []telemetry.InputTelemetryData {
	return slices.Clone(in.history)
}

func (in *InputTelemetry) Render(ctx *render.Context) {
	b := in.Bounds()
	body := ovPanel(ctx, b, "INPUTS", "")
	th := ctx.Theme
	c := ctx.Canvas

	gearX := b.Right() - 1 - inGearW
	throttleX := gearX - 2
	brakeX := throttleX - 2
	graph := geometry.Bounds{X: b.X + 1, Y: body.Y, Width: brakeX - 1 - (b.X + 1), Height: body.Height}

	c.Fill(graph, th.PanelAlt)
	c.HLine(graph.X, graph.Y+graph.Height/2, graph.Width, '─', render.Pen{FG: th.Dim, Faint: true})

	n := len(in.history)
	throttle := make([]float64, n)
	brake := make([]float64, n)
	steering := make([]float64, n)
	for i, s := range in.history {
		throttle[i] = s.Throttle
		brake[i] = s.Brake
		steering[i] = 0.5 + 0.4*s.Steering
	}
	components.Trace(c, graph, []components.TraceSeries{
		{Values: steering, Color: th.Steering},
		{Values: brake, Color: th.Brake},
		{Values: throttle, Color: th.Throttle},
	}, 0, 1, telemetry.MaxHistory)

	for i := 1; i < n; i++ {
		prev, cur := in.history[i-1].Gear, in.history[i].Gear
		if prev == cur || prev <= 0 || cur <= 0 {
			continue
		}
		col := graph.X + inSampleColumn(i, graph.Width)
		if cur > prev {
			c.Set(col, graph.Y, '▲', render.Pen{FG: th.Good})
		} else {
			c.Set(col, graph.Bottom()-1, '▼', render.Pen{FG: inAmber})
		}
	}

	components.VBar(c, brakeX, body.Y, body.Height, telemetry.Clamp01(in.data.Brake), th.Brake, th.PanelAlt)
	components.VBar(c, throttleX, body.Y, body.Height, telemetry.Clamp01(in.data.Throttle), th.Throttle, th.PanelAlt)

	gear := geometry.Bounds{X: gearX, Y: body.Y, Width: inGearW, Height: body.Height - 1}
	c.Fill(gear, th.PanelAlt)
	c.TextCenter(gear, gear.Y+gear.Height/2, ovGear(in.data.Gear), ctx.Fonts.Title.Pen(inAmber, ""))
	rpm := geometry.Bounds{X: gearX, Y: body.Bottom() - 1, Width: inGearW, Height: 1}
	c.TextCenter(rpm, rpm.Y, fmt.Sprintf("%d", int(in.data.RPM*10000)), ctx.Fonts.Body.Pen(inBeige, ""))
}

// inSampleColumn maps history index i to the cell column Trace plots it in.
func inSampleColumn(i, width int) int {
	return i * (width*2 - 1) / (telemetry.MaxHistory - 1) / 2
}
