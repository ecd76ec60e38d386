// Package render is the drawing surface handed to every widget. It replaces
// a global font registry with an explicit Context (canvas, fonts, theme)
// owned by the application and passed into Render calls.
//
// The Canvas is a grid of terminal cells. Cells that are never drawn stay
// transparent and are emitted as unstyled spaces.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
)

// Pen is the style of one cell. An empty FG or BG leaves the terminal
// default, and an empty BG drawn over a filled cell keeps that fill.
type Pen struct {
	FG    string
	BG    string
	Bold  bool
	Faint bool
}

// Cell is one character position on the canvas.
type Cell struct {
	Rune rune // 0 means transparent; cont marks the right half of a wide rune
	Pen  Pen
}

const cont rune = -1

// Canvas is a fixed-size cell buffer with a clip rectangle.
type Canvas struct {
	width, height int
	cells         []Cell
	clip          geometry.Bounds
}

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the canvas and resets the clip to the full area.
func (c *Canvas) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	c.width, c.height = width, height
	c.cells = make([]Cell, width*height)
	c.clip = geometry.Bounds{Width: width, Height: height}
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Clear makes every cell transparent again.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Clip narrows drawing to b (intersected with the current clip) and returns
// a function restoring the previous clip.
func (c *Canvas) Clip(b geometry.Bounds) (restore func()) {
	prev := c.clip
	c.clip = prev.Intersect(b)
	return func() { c.clip = prev }
}

func (c *Canvas) inClip(x, y int) bool {
	return x >= c.clip.X && x < c.clip.Right() && y >= c.clip.Y && y < c.clip.Bottom()
}

// At returns the cell at (x, y) and whether it lies on the canvas.
func (c *Canvas) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

// Set draws r at (x, y) with p, honouring the clip. Overwriting either
// half of a wide rune blanks the other half. A right half whose left half
// lies outside the clip is drawn as a space.
func (c *Canvas) Set(x, y int, r rune, p Pen) {
	if !c.inClip(x, y) {
		return
	}
	if r == cont && !c.inClip(x-1, y) {
		r = ' '
	}
	i := y*c.width + x
	if r != cont && c.cells[i].Rune == cont && x > 0 {
		c.cells[i-1].Rune = ' '
	}
	if x+1 < c.width && c.cells[i+1].Rune == cont {
		c.cells[i+1].Rune = ' '
	}
	if p.BG == "" {
		p.BG = c.cells[i].Pen.BG
	}
	c.cells[i] = Cell{Rune: r, Pen: p}
}

// Fill paints b with spaces on background bg.
func (c *Canvas) Fill(b geometry.Bounds, bg string) {
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X; x < b.Right(); x++ {
			c.Set(x, y, ' ', Pen{BG: bg})
		}
	}
}

// Text draws s starting at (x, y) and returns the number of cells it
// advanced. ANSI sequences in s are stripped; wide runes take two cells.
func (c *Canvas) Text(x, y int, s string, p Pen) int {
	start := x
	for _, r := range ansi.Strip(s) {
		w := ansi.StringWidth(string(r))
		switch w {
		case 0:
			continue
		case 2:
			if !c.inClip(x+1, y) {
				c.Set(x, y, ' ', p)
				break
			}
			c.Set(x, y, r, p)
			c.Set(x+1, y, cont, p)
		default:
			c.Set(x, y, r, p)
		}
		x += w
	}
	return x - start
}

// TextRight draws s so that its last cell sits at right-1.
func (c *Canvas) TextRight(right, y int, s string, p Pen) {
	c.Text(right-ansi.StringWidth(s), y, s, p)
}

// TextCenter draws s centred horizontally within b on row y.
func (c *Canvas) TextCenter(b geometry.Bounds, y int, s string, p Pen) {
	w := ansi.StringWidth(s)
	c.Text(b.X+(b.Width-w)/2, y, s, p)
}

// HLine draws n copies of r rightwards from (x, y).
func (c *Canvas) HLine(x, y, n int, r rune, p Pen) {
	for i := 0; i < n; i++ {
		c.Set(x+i, y, r, p)
	}
}

// VLine draws n copies of r downwards from (x, y).
func (c *Canvas) VLine(x, y, n int, r rune, p Pen) {
	for i := 0; i < n; i++ {
		c.Set(x, y+i, r, p)
	}
}

// Frame strokes the outline of b with glyphs from g.
func (c *Canvas) Frame(b geometry.Bounds, g Border, p Pen) {
	if b.Width < 2 || b.Height < 2 {
		return
	}
	r, bot := b.Right()-1, b.Bottom()-1
	c.HLine(b.X+1, b.Y, b.Width-2, g.Horizontal, p)
	c.HLine(b.X+1, bot, b.Width-2, g.Horizontal, p)
	c.VLine(b.X, b.Y+1, b.Height-2, g.Vertical, p)
	c.VLine(r, b.Y+1, b.Height-2, g.Vertical, p)
	c.Set(b.X, b.Y, g.TopLeft, p)
	c.Set(r, b.Y, g.TopRight, p)
	c.Set(b.X, bot, g.BottomLeft, p)
	c.Set(r, bot, g.BottomRight, p)
}

// Row returns row y as plain text with transparent cells as spaces.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var sb strings.Builder
	for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
		switch cell.Rune {
		case cont:
		case 0:
			sb.WriteByte(' ')
		default:
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y := range rows {
		rows[y] = c.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Render returns the canvas as styled terminal output. Adjacent cells that
// share a Pen are emitted as one styled run.
func (c *Canvas) Render(r *lipgloss.Renderer) string {
	styles := make(map[Pen]lipgloss.Style)
	styleFor := func(p Pen) lipgloss.Style {
		if s, ok := styles[p]; ok {
			return s
		}
		s := r.NewStyle()
		if p.FG != "" {
			s = s.Foreground(lipgloss.Color(p.FG))
		}
		if p.BG != "" {
			s = s.Background(lipgloss.Color(p.BG))
		}
		if p.Bold {
			s = s.Bold(true)
		}
		if p.Faint {
			s = s.Faint(true)
		}
		styles[p] = s
		return s
	}

	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var cur Pen
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == (Pen{}) {
				out.WriteString(run.String())
			} else {
				out.WriteString(styleFor(cur).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
			if cell.Rune == cont {
				continue
			}
			p, ch := cell.Pen, cell.Rune
			if ch == 0 {
				p, ch = Pen{}, ' '
			}
			if p != cur {
				flush()
				cur = p
			}
			run.WriteRune(ch)
		}
		flush()
	}
	return out.String()
}
