package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the overlay's keyboard surface.
type KeyMap struct {
	ToggleEdit key.Binding
	Save       key.Binding
	Quit       key.Binding
}

// NewKeyMap binds the edit toggle to editKeys (ctrl+f6 and f6 when empty).
func NewKeyMap(editKeys []string) KeyMap {
	if len(editKeys) == 0 {
		editKeys = []string{"ctrl+f6", "f6"}
	}
	return KeyMap{
		ToggleEdit: key.NewBinding(
			key.WithKeys(editKeys...),
			key.WithHelp(strings.Join(editKeys, "/"), "exit move mode"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save layout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleEdit, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
