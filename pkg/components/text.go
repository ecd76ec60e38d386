package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible width of s in terminal cells, ignoring
// ANSI escape sequences.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, ending with tail when it had
// to cut.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight truncates or pads s with spaces to exactly width cells.
func PadRight(s string, width int) string {
	s = Truncate(s, width, "")
	if vis := VisibleLen(s); vis < width {
		s += strings.Repeat(" ", width-vis)
	}
	return s
}

// PadLeft truncates or left-pads s with spaces to exactly width cells.
func PadLeft(s string, width int) string {
	s = Truncate(s, width, "")
	if vis := VisibleLen(s); vis < width {
		s = strings.Repeat(" ", width-vis) + s
	}
	return s
}
