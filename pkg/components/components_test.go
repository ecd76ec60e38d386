package components

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/pacemaker/pkg/geometry"
	"gitlab.com/tinyland/lab/pacemaker/pkg/render"
)

func TestHBar(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "    "},
		{1, "████"},
		{0.5, "██  "},
		{0.5 + 1.0/32, "██▏ "},
		{2, "████"},
		{-1, "    "},
	}
	for _, tt := range tests {
		c := render.NewCanvas(4, 1)
		HBar(c, 0, 0, 4, tt.ratio, "#00ff00", "#333333")
		if got := c.Row(0); got != tt.want {
			t.Errorf("HBar(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestHBarColors(t *testing.T) {
	c := render.NewCanvas(2, 1)
	HBar(c, 0, 0, 2, 0.5, "#00ff00", "#333333")
	cell, _ := c.At(0, 0)
	if cell.Pen.FG != "#00ff00" || cell.Pen.BG != "#333333" {
		t.Errorf("cell pen = %+v, want fg #00ff00 bg #333333", cell.Pen)
	}
}

func TestVBarFillsFromBottom(t *testing.T) {
	c := render.NewCanvas(1, 4)
	VBar(c, 0, 0, 4, 0.5, "#ffffff", "")
	want := []string{" ", " ", "█", "█"}
	for y, w := range want {
		if got := c.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestSparkline(t *testing.T) {
	c := render.NewCanvas(3, 1)
	Sparkline(c, 0, 0, 3, []float64{5, 0, 0.5, 1}, 0, 1, render.Pen{})
	if got := c.Row(0); got != "▁▄█" {
		t.Errorf("Sparkline = %q, want %q", got, "▁▄█")
	}
}

func TestTracePlotsEndpoints(t *testing.T) {
	c := render.NewCanvas(4, 2)
	area := geometry.Bounds{Width: 4, Height: 2}
	Trace(c, area, []TraceSeries{{Values: []float64{1, 1}, Color: "#00ff00"}}, 0, 1, 2)

	// Value 1 lands on the top dot row at both ends.
	first, _ := c.At(0, 0)
	last, _ := c.At(3, 0)
	if first.Rune != rune(0x2800|0x01) {
		t.Errorf("first cell = %U, want top-left dot", first.Rune)
	}
	if last.Rune != rune(0x2800|0x08) {
		t.Errorf("last cell = %U, want top-right dot", last.Rune)
	}
	if first.Pen.FG != "#00ff00" {
		t.Errorf("first cell FG = %q, want series colour", first.Pen.FG)
	}
	if strings.TrimSpace(c.Row(1)) != "" {
		t.Errorf("row 1 = %q, want empty", c.Row(1))
	}
}

func TestTraceJoinsVerticalSteps(t *testing.T) {
	c := render.NewCanvas(1, 2)
	Trace(c, geometry.Bounds{Width: 1, Height: 2}, []TraceSeries{{Values: []float64{0, 1}}}, 0, 1, 2)
	// Second sample sits in the right dot column; the join fills it top to
	// bottom across both cells.
	top, _ := c.At(0, 0)
	bottom, _ := c.At(0, 1)
	if top.Rune&0xB8 != 0xB8 || bottom.Rune&0xB8 != 0xB8 {
		t.Errorf("cells = %U %U, want full right columns", top.Rune, bottom.Rune)
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("PIT", 5); got != "PIT  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("7", 3); got != "  7" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadRight("Rasmussen", 4); got != "Rasm" {
		t.Errorf("PadRight(truncate) = %q", got)
	}
	if got := Truncate("Campbell", 5, "…"); VisibleLen(got) != 5 {
		t.Errorf("Truncate = %q (width %d), want width 5", got, VisibleLen(got))
	}
}
