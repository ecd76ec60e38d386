package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name      string          `toml:"name"`
	Panel     thTOMLPanel     `toml:"panel"`
	Border    thTOMLBorder    `toml:"border"`
	Status    thTOMLStatus    `toml:"status"`
	Input     thTOMLInput     `toml:"input"`
	Timing    thTOMLTiming    `toml:"timing"`
	Indicator thTOMLIndicator `toml:"indicator"`
	Teams     []string        `toml:"teams"`
}

type thTOMLPanel struct {
	Background string `toml:"background"`
	Alt        string `toml:"alt"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Highlight  string `toml:"highlight"`
}

type thTOMLBorder struct {
	Drag   string `toml:"drag"`
	Resize string `toml:"resize"`
	Hover  string `toml:"hover"`
}

type thTOMLStatus struct {
	Good string `toml:"good"`
	Warn string `toml:"warn"`
	Crit string `toml:"crit"`
}

type thTOMLInput struct {
	Throttle string `toml:"throttle"`
	Brake    string `toml:"brake"`
	Steering string `toml:"steering"`
}

type thTOMLTiming struct {
	Lap    string `toml:"lap"`
	Energy string `toml:"energy"`
}

type thTOMLIndicator struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition. Fields left out of the file
// keep their Default values; the team table is replaced only when the file
// lists teams.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}
	if tt.Name == "" {
		return Theme{}, fmt.Errorf("theme: missing required field %q", "name")
	}

	t := Default()
	t.Name = tt.Name
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&t.Panel, tt.Panel.Background},
		{&t.PanelAlt, tt.Panel.Alt},
		{&t.Foreground, tt.Panel.Foreground},
		{&t.Dim, tt.Panel.Dim},
		{&t.Highlight, tt.Panel.Highlight},
		{&t.BorderDrag, tt.Border.Drag},
		{&t.BorderResize, tt.Border.Resize},
		{&t.BorderHover, tt.Border.Hover},
		{&t.Good, tt.Status.Good},
		{&t.Warn, tt.Status.Warn},
		{&t.Crit, tt.Status.Crit},
		{&t.Throttle, tt.Input.Throttle},
		{&t.Brake, tt.Input.Brake},
		{&t.Steering, tt.Input.Steering},
		{&t.LapBox, tt.Timing.Lap},
		{&t.EnergyBox, tt.Timing.Energy},
		{&t.StatusFG, tt.Indicator.Foreground},
		{&t.StatusBG, tt.Indicator.Background},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if len(tt.Teams) > 0 {
		t.Teams = tt.Teams
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFromFile reads and parses a TOML theme file.
func LoadFromFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: %w", err)
	}
	return LoadFromTOML(data)
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Panel: thTOMLPanel{
			Background: t.Panel,
			Alt:        t.PanelAlt,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Highlight:  t.Highlight,
		},
		Border:    thTOMLBorder{Drag: t.BorderDrag, Resize: t.BorderResize, Hover: t.BorderHover},
		Status:    thTOMLStatus{Good: t.Good, Warn: t.Warn, Crit: t.Crit},
		Input:     thTOMLInput{Throttle: t.Throttle, Brake: t.Brake, Steering: t.Steering},
		Timing:    thTOMLTiming{Lap: t.LapBox, Energy: t.EnergyBox},
		Indicator: thTOMLIndicator{Foreground: t.StatusFG, Background: t.StatusBG},
		Teams:     t.Teams,
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thValidateTheme checks that every colour is a valid hex string and that
// the team table is not empty.
func thValidateTheme(t Theme) error {
	colors := map[string]string{
		"panel.background":     t.Panel,
		"panel.alt":            t.PanelAlt,
		"panel.foreground":     t.Foreground,
		"panel.dim":            t.Dim,
		"panel.highlight":      t.Highlight,
		"border.drag":          t.BorderDrag,
		"border.resize":        t.BorderResize,
		"border.hover":         t.BorderHover,
		"status.good":          t.Good,
		"status.warn":          t.Warn,
		"status.crit":          t.Crit,
		"input.throttle":       t.Throttle,
		"input.brake":          t.Brake,
		"input.steering":       t.Steering,
		"timing.lap":           t.LapBox,
		"timing.energy":        t.EnergyBox,
		"indicator.foreground": t.StatusFG,
		"indicator.background": t.StatusBG,
	}
	for field, value := range colors {
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: field %q has invalid hex color %q", field, value)
		}
	}
	if len(t.Teams) == 0 {
		return fmt.Errorf("theme: team table is empty")
	}
	for i, c := range t.Teams {
		if !thHexColorRegex.MatchString(c) {
			return fmt.Errorf("theme: teams[%d] has invalid hex color %q", i, c)
		}
	}
	return nil
}
