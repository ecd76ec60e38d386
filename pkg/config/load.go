package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/pacemaker/pkg/theme"
)

// AppName names the XDG subdirectories.
const AppName = "pacemaker"

// Format is a config file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the syntax from a file extension. Anything that is not
// .yaml or .yml is read as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/pacemaker/config.{toml,yaml,yml}
//  2. ~/.config/pacemaker/config.{toml,yaml,yml}
//
// If no file exists, returns DefaultConfig() with environment overrides.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes r over the defaults and applies environment
// overrides.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes cfg to path in the syntax chosen by its extension.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	switch FormatFor(path) {
	case FormatYAML:
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return enc.Close()
	default:
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// DefaultConfig returns the default configuration with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(xdgStateHome(home), AppName, AppName+".log"),
			FPS:      30,
		},
		Overlay: OverlayConfig{
			Theme:        "default",
			Layout:       PresetDefault,
			LayoutFile:   filepath.Join(xdgConfigHome(home), AppName, "layout.toml"),
			ResizeHandle: 2,
			EditKeys:     []string{"ctrl+f6", "f6"},
		},
		Feed: FeedConfig{
			Source:      SourceSynthetic,
			InputRateHz: 60,
			Reconnect:   Duration{2 * time.Second},
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.General.LogLevel)
	}
	if c.General.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.General.FPS)
	}
	if c.Overlay.ThemeFile == "" {
		if _, ok := theme.Lookup(c.Overlay.Theme); !ok {
			return fmt.Errorf("config: unknown theme %q (have %s)", c.Overlay.Theme, strings.Join(theme.Names(), ", "))
		}
	}
	if !slices.Contains(Presets(), c.Overlay.Layout) {
		return fmt.Errorf("config: %w: %q", ErrUnknownPreset, c.Overlay.Layout)
	}
	if c.Overlay.ResizeHandle <= 0 {
		return fmt.Errorf("config: resize_handle must be positive, got %d", c.Overlay.ResizeHandle)
	}
	if len(c.Overlay.EditKeys) == 0 {
		return errors.New("config: edit_keys is empty")
	}
	switch c.Feed.Source {
	case SourceSynthetic:
	case SourceWebsocket:
		if c.Feed.URL == "" {
			return errors.New("config: feed source websocket needs a url")
		}
	default:
		return fmt.Errorf("config: unknown feed source %q", c.Feed.Source)
	}
	if c.Feed.InputRateHz <= 0 {
		return fmt.Errorf("config: input_rate_hz must be positive, got %g", c.Feed.InputRateHz)
	}
	return nil
}

// FrameInterval is the frame period implied by FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.General.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.General.FPS)
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PACEMAKER_THEME"); v != "" {
		cfg.Overlay.Theme = v
	}
	if v := os.Getenv("PACEMAKER_LAYOUT"); v != "" {
		cfg.Overlay.Layout = v
	}
	if v := os.Getenv("PACEMAKER_FEED_URL"); v != "" {
		cfg.Feed.URL = v
		cfg.Feed.Source = SourceWebsocket
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{filepath.Join(xdgConfigHome(home), AppName)}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	if def := filepath.Join(home, ".config", AppName); def != dirs[0] {
		dirs = append(dirs, def)
	}

	var paths []string
	for _, d := range dirs {
		for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
			paths = append(paths, filepath.Join(d, name))
		}
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
