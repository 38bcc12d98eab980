package oled

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the glyph set used for all text.
var Font = &proggy.TinySZ8pt7b

// GlyphAscent is the distance from the top of a text line to its baseline.
// tinyfont draws relative to the baseline; callers address lines by their top.
const GlyphAscent = 9

// WriteString draws text with its top-left corner at x, y.
func WriteString(b *Buffer, x, y int16, text string) {
	tinyfont.WriteLine(b, Font, x, y+GlyphAscent, text, White)
}

// WriteCentered draws text horizontally centred on the panel, top at y.
// Text wider than the panel starts at x = 0.
func WriteCentered(b *Buffer, y int16, text string) {
	_, w := tinyfont.LineWidth(Font, text)
	x := (int16(Width) - int16(w)) / 2
	if x < 0 {
		x = 0
	}
	WriteString(b, x, y, text)
}
