// pacemaker is a racing telemetry overlay for the terminal.
//
// It draws a leaderboard, relative timing, speedometer, tire and input
// telemetry widgets over the screen. In move mode the widgets can be
// dragged and resized with the mouse and the layout is saved on exit.
//
// Usage:
//
//	pacemaker [flags]
//
// Flags:
//
//	-config string       Path to configuration file (default: ~/.config/pacemaker/config.toml)
//	-layout string       Layout preset (default|compact|stacked)
//	-layout-file string  Path to the saved widget layout
//	-theme string        Theme name or path to a theme TOML file
//	-feed-url string     Websocket telemetry feed (default: synthetic data)
//	-fps int             Frames per second
//	-snapshot            Render one frame to stdout and exit
//	-width int           Screen width override (0 = auto-detect)
//	-height int          Screen height override (0 = auto-detect)
//	-no-color            Disable colour output
//	-verbose             Enable verbose logging
//	-version             Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/pacemaker/pkg/app"
	"gitlab.com/tinyland/lab/pacemaker/pkg/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/pacemaker/pkg/config"
	"gitlab.com/tinyland/lab/pacemaker/pkg/feed"
	"gitlab.com/tinyland/lab/pacemaker/pkg/layoutstore"
	"gitlab.com/tinyland/lab/pacemaker/pkg/theme"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Fallback screen size when the output is not a terminal.
const (
	defaultWidth  = 160
	defaultHeight = 48
)

// themeReloadDelay coalesces the burst of events an editor save produces.
const themeReloadDelay = 200 * time.Millisecond

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		layoutName  = flag.String("layout", "", "Layout preset ("+strings.Join(config.Presets(), "|")+")")
		layoutFile  = flag.String("layout-file", "", "Path to the saved widget layout")
		themeName   = flag.String("theme", "", "Theme name or path to a theme TOML file")
		feedURL     = flag.String("feed-url", "", "Websocket telemetry feed (default: synthetic data)")
		fps         = flag.Int("fps", 0, "Frames per second (0 = config)")
		snapshot    = flag.Bool("snapshot", false, "Render one frame to stdout and exit")
		width       = flag.Int("width", 0, "Screen width override (0 = auto-detect)")
		height      = flag.Int("height", 0, "Screen height override (0 = auto-detect)")
		noColor     = flag.Bool("no-color", false, "Disable colour output")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pacemaker %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *layoutName, *layoutFile, *themeName, *feedURL, *fps)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	interactive := !*snapshot && isatty.IsTerminal(os.Stdout.Fd())

	if err := ensureLogDir(cfg.General.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// The alt screen owns stderr while the program runs.
	var logOut io.Writer = logFile
	if !interactive {
		logOut = io.MultiWriter(os.Stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel, *verbose),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	th, err := loadTheme(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load theme: %v\n", err)
		os.Exit(1)
	}

	store, err := layoutstore.Open(cfg.Overlay.LayoutFile)
	if err != nil {
		logger.Warn("saved layout unreadable, using preset", "path", cfg.Overlay.LayoutFile, "error", err)
		store = nil
	}

	w, h := screenSize(*width, *height)

	renderer := lipgloss.NewRenderer(os.Stdout)
	if *noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithRenderer(renderer),
		app.WithCollector(sysmetrics.New(sysmetrics.DefaultConfig())),
	}
	if store != nil {
		opts = append(opts, app.WithStore(store))
	}
	if cfg.Feed.Source == config.SourceSynthetic {
		opts = append(opts, app.WithSource(feed.NewGenerator()))
	}

	model, err := app.New(cfg, th, w, h, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build overlay: %v\n", err)
		os.Exit(1)
	}
	defer model.Close()

	logger.Info("starting",
		"version", version,
		"size", fmt.Sprintf("%dx%d", w, h),
		"layout", cfg.Overlay.Layout,
		"theme", th.Name,
		"feed", cfg.Feed.Source,
		"interactive", interactive,
	)

	if !interactive {
		fmt.Println(app.Snapshot(model, cfg.General.FPS))
		return
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	if cfg.Feed.Source == config.SourceWebsocket {
		client := feed.NewClient(cfg.Feed.URL,
			feed.WithReconnect(cfg.Feed.Reconnect.Duration),
			feed.WithClientLogger(logger),
		)
		go func() {
			err := client.Run(ctx, func(env feed.Envelope) {
				p.Send(app.FeedEvent{Envelope: env})
			})
			if err != nil && ctx.Err() == nil {
				p.Send(app.FeedErrorEvent{Err: err})
			}
		}()
	}

	if path := cfg.Overlay.ThemeFile; path != "" {
		go func() {
			err := config.Watch(ctx, path, themeReloadDelay, logger, func() {
				t, err := theme.LoadFromFile(path)
				p.Send(app.ThemeReloadEvent{Theme: t, Err: err})
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("theme watch stopped", "path", path, "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "overlay error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// applyFlags lets non-empty command line values override the config file.
func applyFlags(cfg *config.Config, layout, layoutFile, themeArg, feedURL string, fps int) {
	if layout != "" {
		cfg.Overlay.Layout = layout
	}
	if layoutFile != "" {
		cfg.Overlay.LayoutFile = layoutFile
	}
	if themeArg != "" {
		if strings.HasSuffix(themeArg, ".toml") {
			cfg.Overlay.ThemeFile = themeArg
		} else {
			cfg.Overlay.Theme = themeArg
			cfg.Overlay.ThemeFile = ""
		}
	}
	if feedURL != "" {
		cfg.Feed.URL = feedURL
		cfg.Feed.Source = config.SourceWebsocket
	}
	if fps > 0 {
		cfg.General.FPS = fps
	}
}

func loadTheme(cfg *config.Config) (theme.Theme, error) {
	if cfg.Overlay.ThemeFile != "" {
		return theme.LoadFromFile(cfg.Overlay.ThemeFile)
	}
	t, ok := theme.Lookup(cfg.Overlay.Theme)
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q (available: %s)", cfg.Overlay.Theme, strings.Join(theme.Names(), ", "))
	}
	return t, nil
}

func screenSize(width, height int) (int, int) {
	w, h := defaultWidth, defaultHeight
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if tw, th, err := term.GetSize(os.Stdout.Fd()); err == nil && tw > 0 && th > 0 {
			w, h = tw, th
		}
	}
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	return w, h
}

func logLevel(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func ensureLogDir(logFile string) error {
	dir := filepath.Dir(logFile)
	return os.MkdirAll(dir, 0755)
}
