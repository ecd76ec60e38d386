// Package layoutstore persists widget bounds in a TOML file so a layout
// arranged in edit mode survives restarts.
//
//	[widgets.Leaderboard]
//	x = 1
//	y = 1
//	width = 48
//	height = 11
package layoutstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/widget"
)

// file is the on-disk document.
type file struct {
	Widgets map[string]geometry.Bounds `toml:"widgets"`
}

// Store is a widget.ConfigStore backed by a TOML file. Changes stay in
// memory until Save. It is safe for concurrent use.
type Store struct {
	path string

	mu      sync.RWMutex
	widgets map[string]geometry.Bounds
	dirty   bool
}

var _ widget.ConfigStore = (*Store)(nil)

// Open reads the layout at path. A missing file gives an empty store that
// will create the file on Save.
func Open(path string) (*Store, error) {
	s := &Store{path: path, widgets: make(map[string]geometry.Bounds)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("layoutstore: %w", err)
	}

	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("layoutstore: %s: %w", path, err)
	}
	if f.Widgets != nil {
		s.widgets = f.Widgets
	}
	return s, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// SaveBounds records b for name.
func (s *Store) SaveBounds(name string, b geometry.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.widgets[name]; ok && old == b {
		return
	}
	s.widgets[name] = b
	s.dirty = true
}

// LoadBounds returns the bounds stored for name.
func (s *Store) LoadBounds(name string) (geometry.Bounds, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.widgets[name]
	return b, ok
}

// Names returns the stored widget names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.widgets))
}

// Dirty reports whether there are changes not yet written.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Save writes the layout if anything changed since the last Save or Open.
// The file is replaced atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file{Widgets: s.widgets}); err != nil {
		return fmt.Errorf("layoutstore: encode: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("layoutstore: %w", err)
	}
	if err := atomicWrite(s.path, buf.Bytes(), dir); err != nil {
		return fmt.Errorf("layoutstore: %w", err)
	}
	s.dirty = false
	return nil
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".layout-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
