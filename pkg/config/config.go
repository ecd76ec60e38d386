// Package config loads PaceMaker settings from TOML or YAML files with
// environment overrides.
package config

// Config is the root of the configuration file.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Overlay OverlayConfig `toml:"overlay" yaml:"overlay"`
	Feed    FeedConfig    `toml:"feed" yaml:"feed"`
}

// GeneralConfig covers logging and the frame loop.
type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"` // debug, info, warn, error
	LogFile  string `toml:"log_file" yaml:"log_file"`
	FPS      int    `toml:"fps" yaml:"fps"`
}

// OverlayConfig covers appearance and widget placement.
type OverlayConfig struct {
	Theme        string   `toml:"theme" yaml:"theme"`
	ThemeFile    string   `toml:"theme_file" yaml:"theme_file"`
	Layout       string   `toml:"layout" yaml:"layout"` // preset name
	LayoutFile   string   `toml:"layout_file" yaml:"layout_file"`
	ResizeHandle int      `toml:"resize_handle" yaml:"resize_handle"` // cells
	EditKeys     []string `toml:"edit_keys" yaml:"edit_keys"`
}

// FeedConfig selects where telemetry comes from.
type FeedConfig struct {
	Source      string   `toml:"source" yaml:"source"` // synthetic or websocket
	URL         string   `toml:"url" yaml:"url"`
	InputRateHz float64  `toml:"input_rate_hz" yaml:"input_rate_hz"`
	Reconnect   Duration `toml:"reconnect" yaml:"reconnect"`
}

// Feed sources.
const (
	SourceSynthetic = "synthetic"
	SourceWebsocket = "websocket"
)
