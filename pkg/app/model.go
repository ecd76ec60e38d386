package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/pacemaker/pkg/collectors"
	"gitlab.com/tinyland/lab/pacemaker/pkg/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/pacemaker/pkg/config"
	"gitlab.com/tinyland/lab/pacemaker/pkg/feed"
	"gitlab.com/tinyland/lab/pacemaker/pkg/layoutstore"
	"gitlab.com/tinyland/lab/pacemaker/pkg/overlays"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/theme"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

// Model is the root bubbletea model: the data bus, the widget manager, the
// edit-mode status indicator and the canvas they draw on.
type Model struct {
	cfg      *config.Config
	logger   *slog.Logger
	keys     KeyMap
	theme    theme.Theme
	renderer *lipgloss.Renderer
	window   Window

	bus     *feed.Bus
	pump    *feed.Pump // nil when telemetry comes from outside
	manager *widget.Manager
	status  *overlays.StatusIndicator
	store   *layoutstore.Store
	reg     *collectors.Registry
	canvas  *render.Canvas

	width, height  int
	mouseX, mouseY int
	lastFrame      time.Time
	quitting       bool
}

var _ tea.Model = (*Model)(nil)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSource drives the brokers from src on every frame.
func WithSource(src feed.Source) Option {
	return func(m *Model) {
		m.pump = feed.NewPump(src, m.bus, m.cfg.Feed.InputRateHz)
	}
}

// WithStore loads widget bounds from s and saves them back when edit mode
// is left and on quit.
func WithStore(s *layoutstore.Store) Option {
	return func(m *Model) { m.store = s }
}

// WithWindow replaces the default TerminalWindow.
func WithWindow(w Window) Option {
	return func(m *Model) {
		if w != nil {
			m.window = w
		}
	}
}

// WithRenderer sets the lipgloss renderer used by View.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithCollector registers a background collector. Its results are sampled
// every Interval while the program runs.
func WithCollector(c collectors.Collector) Option {
	return func(m *Model) {
		if err := m.reg.Register(c); err != nil {
			m.logger.Warn("collector not registered", "error", err)
		}
	}
}

// New builds the overlays for a width×height screen using the configured
// layout preset, then applies any saved layout.
func New(cfg *config.Config, th theme.Theme, width, height int, opts ...Option) (*Model, error) {
	layout, err := config.Layout(cfg.Overlay.Layout, width, height)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	m := &Model{
		cfg:      cfg,
		logger:   slog.Default(),
		keys:     NewKeyMap(cfg.Overlay.EditKeys),
		theme:    th,
		renderer: lipgloss.DefaultRenderer(),
		window:   &TerminalWindow{},
		bus:      feed.NewBus(telemetry.TeamCount),
		reg:      collectors.NewRegistry(),
		canvas:   render.NewCanvas(width, height),
		width:    width,
		height:   height,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.manager = widget.NewManager(widget.WithLogger(m.logger))

	handle := widget.WithHandleSize(cfg.Overlay.ResizeHandle)
	for _, w := range []widget.Widget{
		overlays.NewLeaderboard(layout[overlays.LeaderboardName], m.bus.Leaderboard, handle),
		overlays.NewRelativeTiming(layout[overlays.RelativeTimingName], m.bus.Relative, handle),
		overlays.NewTireInfo(layout[overlays.TireInfoName], m.bus.Tire, handle),
		overlays.NewSpeedometer(layout[overlays.SpeedometerName], m.bus.Vehicle, handle),
		overlays.NewInputTelemetry(layout[overlays.InputTelemetryName], m.bus.Input, handle),
	} {
		if err := m.manager.AddWidget(w); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	m.status = overlays.NewStatusIndicator(layout[overlays.StatusIndicatorName], m.keys)

	if m.store != nil {
		if err := m.manager.LoadAllConfigs(m.store); err != nil {
			m.logger.Warn("saved layout partly ignored", "path", m.store.Path(), "error", err)
		}
	}
	return m, nil
}

// Manager returns the widget manager.
func (m *Model) Manager() *widget.Manager { return m.manager }

// Status returns the edit-mode indicator.
func (m *Model) Status() *overlays.StatusIndicator { return m.status }

// Bus returns the brokers the overlays subscribe to.
func (m *Model) Bus() *feed.Bus { return m.bus }

// Theme returns the active theme.
func (m *Model) Theme() theme.Theme { return m.theme }

// Collectors returns the collector registry.
func (m *Model) Collectors() *collectors.Registry { return m.reg }

// Init starts the frame loop and the collectors, and enters click-through.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		FrameCmd(m.cfg.FrameInterval()),
		m.window.SetClickThrough(true),
	}
	for _, c := range m.reg.All() {
		cmds = append(cmds, CollectCmd(c, 0))
	}
	return tea.Batch(cmds...)
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FrameEvent:
		dt := m.cfg.FrameInterval()
		if !m.lastFrame.IsZero() {
			dt = msg.Time.Sub(m.lastFrame)
		}
		m.lastFrame = msg.Time
		m.Step(dt)
		return m, FrameCmd(m.cfg.FrameInterval())

	case FeedEvent:
		if err := m.bus.Apply(msg.Envelope); err != nil {
			m.logger.Warn("feed envelope rejected", "kind", msg.Envelope.Kind, "error", err)
		}
		return m, nil

	case FeedErrorEvent:
		m.logger.Warn("feed connection failed", "error", msg.Err)
		return m, nil

	case DataUpdateEvent:
		return m, m.collected(msg.Update)

	case ThemeReloadEvent:
		if msg.Err != nil {
			m.logger.Warn("theme reload failed", "error", msg.Err)
			return m, nil
		}
		m.theme = msg.Theme
		m.logger.Info("theme reloaded", "name", msg.Theme.Name)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// Step advances the synthetic feed, if any, and every widget by dt.
func (m *Model) Step(dt time.Duration) {
	if m.pump != nil {
		m.pump.Tick(dt)
	}
	m.manager.Update(dt)
}

// View composes one frame: overlays, the status indicator, then edit-mode
// borders on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.canvas.Clear()
	ctx := render.NewContext(m.canvas, m.theme)
	m.manager.Render(ctx)
	m.status.Render(ctx)
	m.manager.RenderBorders(ctx, m.mouseX, m.mouseY)
	return m.canvas.Render(m.renderer)
}

// SetEditMode switches edit mode, click-through and the status indicator
// together. Leaving edit mode saves the layout.
func (m *Model) SetEditMode(on bool) tea.Cmd {
	if m.manager.EditMode() == on {
		return nil
	}
	m.manager.SetEditMode(on)
	m.status.SetVisible(on)
	cmd := m.window.SetClickThrough(!on)
	if !on {
		m.SaveLayout()
	}
	return cmd
}

// SaveLayout writes every widget's bounds to the layout store.
func (m *Model) SaveLayout() {
	if m.store == nil {
		return
	}
	if err := m.manager.SaveAllConfigs(m.store); err != nil {
		m.logger.Warn("layout not fully captured", "error", err)
	}
	if err := m.store.Save(); err != nil {
		m.logger.Error("layout save failed", "path", m.store.Path(), "error", err)
		return
	}
	m.logger.Debug("layout saved", "path", m.store.Path())
}

// Close releases every overlay's subscription.
func (m *Model) Close() error {
	return m.manager.Close()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToggleEdit):
		return m.SetEditMode(!m.manager.EditMode())
	case key.Matches(msg, m.keys.Save):
		m.SaveLayout()
	case key.Matches(msg, m.keys.Quit):
		m.SaveLayout()
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.mouseX, m.mouseY = msg.X, msg.Y
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.manager.HandleMousePressed(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		m.manager.HandleMouseReleased(msg.X, msg.Y)
	case tea.MouseActionMotion:
		m.manager.HandleMouseDragged(msg.X, msg.Y)
	}
}

func (m *Model) collected(u collectors.Update) tea.Cmd {
	m.reg.Record(u)
	if u.Error != nil {
		m.logger.Debug("collector error", "source", u.Source, "error", u.Error)
	}
	if s, ok := u.Data.(sysmetrics.Metrics); ok {
		m.status.SetMetrics(s)
	}
	c, ok := m.reg.Get(u.Source)
	if !ok {
		return nil
	}
	return CollectCmd(c, c.Interval())
}

func (m *Model) resize(w, h int) {
	if w == m.width && h == m.height {
		return
	}
	m.width, m.height = w, h
	m.canvas.Resize(w, h)
	if layout, err := config.Layout(m.cfg.Overlay.Layout, w, h); err == nil {
		m.status.SetBounds(layout[overlays.StatusIndicatorName])
	}
	m.logger.Debug("screen resized", "width", w, "height", h)
}
