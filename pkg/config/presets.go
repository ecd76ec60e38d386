package config

import (
	"errors"
	"fmt"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/overlays"
)

// ErrUnknownPreset is returned for a layout name that is not built in.
var ErrUnknownPreset = errors.New("unknown layout preset")

// Layout preset names.
const (
	PresetDefault = "default"
	PresetCompact = "compact"
	PresetStacked = "stacked"
)

// Presets lists the built-in layout names.
func Presets() []string {
	return []string{PresetDefault, PresetCompact, PresetStacked}
}

// Layout returns starting bounds for every widget, keyed by widget name,
// for a screen of width×height cells.
//
// default: leaderboard top-left, relative timing bottom-left, tires and
// speedometer bottom-right, inputs centred, status at one third height.
//
//	┌──────────┐
//	│ LB       │
//	│    IN    │
//	│ RT  TI SP│
//	└──────────┘
//
// compact: the same anchors at minimum sizes.
//
// stacked: every overlay at default size in one column down the left edge.
func Layout(name string, width, height int) (map[string]geometry.Bounds, error) {
	switch name {
	case PresetDefault:
		return anchoredLayout(width, height, defaultSizes), nil
	case PresetCompact:
		return anchoredLayout(width, height, compactSizes), nil
	case PresetStacked:
		return stackedLayout(width, height), nil
	default:
		return nil, fmt.Errorf("config: %w: %q", ErrUnknownPreset, name)
	}
}

var defaultSizes = map[string]geometry.MinSize{
	overlays.LeaderboardName:    {Width: 48, Height: 11},
	overlays.RelativeTimingName: {Width: 40, Height: 9},
	overlays.TireInfoName:       {Width: 22, Height: 9},
	overlays.SpeedometerName:    {Width: 28, Height: 11},
	overlays.InputTelemetryName: {Width: 64, Height: 9},
}

var compactSizes = map[string]geometry.MinSize{
	overlays.LeaderboardName:    overlays.LeaderboardMinSize,
	overlays.RelativeTimingName: overlays.RelativeTimingMinSize,
	overlays.TireInfoName:       overlays.TireInfoMinSize,
	overlays.SpeedometerName:    overlays.SpeedometerMinSize,
	overlays.InputTelemetryName: overlays.InputTelemetryMinSize,
}

// stackOrder is the draw order of the overlays.
var stackOrder = []string{
	overlays.LeaderboardName,
	overlays.RelativeTimingName,
	overlays.TireInfoName,
	overlays.SpeedometerName,
	overlays.InputTelemetryName,
}

func anchoredLayout(w, h int, sizes map[string]geometry.MinSize) map[string]geometry.Bounds {
	at := func(name string, x, y int) geometry.Bounds {
		s := sizes[name]
		return geometry.Bounds{X: max(x, 0), Y: max(y, 0), Width: s.Width, Height: s.Height}
	}
	lb := sizes[overlays.LeaderboardName]
	rt := sizes[overlays.RelativeTimingName]
	ti := sizes[overlays.TireInfoName]
	sp := sizes[overlays.SpeedometerName]
	in := sizes[overlays.InputTelemetryName]

	return map[string]geometry.Bounds{
		overlays.LeaderboardName:     at(overlays.LeaderboardName, 1, 1),
		overlays.RelativeTimingName:  at(overlays.RelativeTimingName, 1, h-rt.Height-1),
		overlays.TireInfoName:        at(overlays.TireInfoName, w-sp.Width-ti.Width-2, h-ti.Height-1),
		overlays.SpeedometerName:     at(overlays.SpeedometerName, w-sp.Width-1, h-sp.Height-1),
		overlays.InputTelemetryName:  at(overlays.InputTelemetryName, w/2-in.Width/2, max(h/2-in.Height/2, lb.Height+2)),
		overlays.StatusIndicatorName: statusBounds(w, h),
	}
}

func stackedLayout(w, h int) map[string]geometry.Bounds {
	out := make(map[string]geometry.Bounds, len(stackOrder)+1)
	y := 1
	for _, name := range stackOrder {
		s := defaultSizes[name]
		out[name] = geometry.Bounds{X: 1, Y: y, Width: s.Width, Height: s.Height}
		y += s.Height
	}
	out[overlays.StatusIndicatorName] = statusBounds(w, h)
	return out
}

func statusBounds(w, h int) geometry.Bounds {
	s := overlays.StatusSize
	return geometry.Bounds{X: max(w/2-s.Width/2, 0), Y: h / 3, Width: s.Width, Height: s.Height}
}
