package app

import tea "github.com/charmbracelet/bubbletea"

// Window is the host surface's pointer policy. With click-through on the
// overlay ignores the pointer and lets it reach whatever is underneath.
type Window interface {
	SetClickThrough(on bool) tea.Cmd
	ClickThrough() bool
}

// TerminalWindow implements Window for a terminal by releasing mouse
// capture while click-through is on and capturing all motion otherwise.
type TerminalWindow struct {
	clickThrough bool
}

var _ Window = (*TerminalWindow)(nil)

func (w *TerminalWindow) SetClickThrough(on bool) tea.Cmd {
	w.clickThrough = on
	if on {
		return tea.DisableMouse
	}
	return tea.EnableMouseAllMotion
}

func (w *TerminalWindow) ClickThrough() bool { return w.clickThrough }
