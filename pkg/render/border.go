package render

// Border is a set of box-drawing glyphs.
type Border struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// Border glyph sets.
var (
	BorderLight   = Border{'┌', '┐', '└', '┘', '─', '│'}
	BorderRounded = Border{'╭', '╮', '╰', '╯', '─', '│'}
	BorderHeavy   = Border{'┏', '┓', '┗', '┛', '━', '┃'}
	BorderDouble  = Border{'╔', '╗', '╚', '╝', '═', '║'}
	BorderDashed  = Border{'┌', '┐', '└', '┘', '╌', '╎'}
)
