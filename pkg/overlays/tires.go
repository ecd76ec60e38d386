package overlays

import (
	"fmt"

	"gitlab.com/tinyland/lab/pacemaker/pkg/broker"
	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

// TireInfo draws the four tires as tiles coloured by wear.
type TireInfo struct {
	widget.Base
	subscription[telemetry.TireData]
	data telemetry.TireData
}

var _ widget.Widget = (*TireInfo)(nil)

// NewTireInfo subscribes a TireInfo to src.
func NewTireInfo(b geometry.Bounds, src *broker.Broker[telemetry.TireData], opts ...widget.Option) *TireInfo {
	t := &TireInfo{Base: widget.NewBase(TireInfoName, b, TireInfoMinSize, opts...)}
	t.attach(src, t.onData)
	return t
}

func (t *TireInfo) onData(d telemetry.TireData) { t.data = d }

// Data returns the last snapshot received.
func (t *TireInfo) Data() telemetry.TireData { return t.data }

func (t *TireInfo) Render(ctx *render.Context) {
	b := t.Bounds()
	body := ovPanel(ctx, b, "TIRES", "")
	th := ctx.Theme
	c := ctx.Canvas

	// Tiles sit either side of a one-column chassis line.
	tileW := (body.Width - 3) / 2
	tileH := (body.Height - 1) / 2
	mid := body.X + 1 + tileW
	c.VLine(mid, body.Y, body.Height, '│', render.Pen{FG: th.Dim})

	for w := telemetry.FrontLeft; w <= telemetry.RearRight; w++ {
		tile := geometry.Bounds{
			X:      body.X + 1 + int(w%2)*(tileW+1),
			Y:      body.Y + int(w/2)*(tileH+1),
			Width:  tileW,
			Height: tileH,
		}
		c.Fill(tile, TireWearColor(t.data.Wear[w]))
		c.TextCenter(tile, tile.Y, w.String(), ctx.Fonts.Caption.Pen(th.Foreground, ""))
		if tile.Height > 1 {
			c.TextCenter(tile, tile.Y+1, fmt.Sprintf("%.0f°", t.data.Temperatures[w]), ctx.Fonts.Title.Pen(th.Foreground, ""))
		}
		if tile.Height > 2 {
			c.TextCenter(tile, tile.Y+2, fmt.Sprintf("%.1f", t.data.Pressures[w]), ctx.Fonts.Body.Pen(th.Foreground, ""))
		}
	}
}

// TireWearColor fades from red at 0% to green at 100%.
func TireWearColor(wear float64) string {
	return ovRGB(255-wear*2.55, wear*2.55, 0)
}
