// Package theme defines the overlay colour palettes: panel chrome, the
// interaction border colours, status thresholds, input trace colours and
// the ten-entry team colour table.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a complete overlay palette. All colours are "#rrggbb" strings.
type Theme struct {
	Name string

	// Panels
	Panel      string // overlay background
	PanelAlt   string // header and alternate rows
	Foreground string
	Dim        string
	Highlight  string // player row

	// Edit-mode borders
	BorderDrag   string
	BorderResize string
	BorderHover  string

	// Thresholds
	Good string
	Warn string
	Crit string

	// Input trace
	Throttle string
	Brake    string
	Steering string

	// Timing boxes
	LapBox    string
	EnergyBox string

	// Status indicator
	StatusFG string
	StatusBG string

	// Team colours, indexed by TeamColorIndex.
	Teams []string
}

// Team returns the colour for team index i, or Dim when i is outside the
// table.
func (t Theme) Team(i int) string {
	if i < 0 || i >= len(t.Teams) {
		return t.Dim
	}
	return t.Teams[i]
}

// Level picks Good, Warn or Crit for v: below warn is Good, below crit is
// Warn, anything else is Crit.
func (t Theme) Level(v, warn, crit float64) string {
	switch {
	case v < warn:
		return t.Good
	case v < crit:
		return t.Warn
	default:
		return t.Crit
	}
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to Default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Lookup returns the named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a theme under its lowercase name. Themes
// loaded from disk are registered so that they can be selected by name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
