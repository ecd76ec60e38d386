package render

import "gitlab.com/tinyland/lab/pacemaker/pkg/theme"

// Font is the terminal stand-in for a typeface: a set of text attributes.
type Font struct {
	Bold  bool
	Faint bool
}

// Pen returns a pen drawing this font in fg over bg.
func (f Font) Pen(fg, bg string) Pen {
	return Pen{FG: fg, BG: bg, Bold: f.Bold, Faint: f.Faint}
}

// Fonts is the set of faces overlays draw with.
type Fonts struct {
	Title   Font
	Body    Font
	Caption Font
}

// DefaultFonts returns bold titles, regular body text and faint captions.
func DefaultFonts() Fonts {
	return Fonts{
		Title:   Font{Bold: true},
		Body:    Font{},
		Caption: Font{Faint: true},
	}
}

// Context is everything a widget needs to draw a frame.
type Context struct {
	Canvas *Canvas
	Fonts  Fonts
	Theme  theme.Theme
}

// NewContext returns a Context over c with the default fonts.
func NewContext(c *Canvas, th theme.Theme) *Context {
	return &Context{Canvas: c, Fonts: DefaultFonts(), Theme: th}
}
