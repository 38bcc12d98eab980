package oled

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Buffer)(nil)

func TestSetPixelPageLayout(t *testing.T) {
	c := qt.New(t)
	var b Buffer

	b.SetPixel(0, 0, White)
	b.SetPixel(5, 9, White)
	b.SetPixel(127, 63, White)

	raw := b.Bytes()
	c.Assert(raw[0], qt.Equals, byte(0x01))
	c.Assert(raw[5+1*Width], qt.Equals, byte(0x02))
	c.Assert(raw[BufLen-1], qt.Equals, byte(0x80))

	b.SetPixel(5, 9, Black)
	c.Assert(raw[5+1*Width], qt.Equals, byte(0x00))
	c.Assert(b.Pixel(0, 0), qt.IsTrue)
	c.Assert(b.Pixel(5, 9), qt.IsFalse)
}

func TestSetPixelOutOfRange(t *testing.T) {
	c := qt.New(t)
	var b Buffer

	b.SetPixel(-1, 0, White)
	b.SetPixel(0, -1, White)
	b.SetPixel(Width, 0, White)
	b.SetPixel(0, Height, White)

	c.Assert(b.BandEmpty(0, Height), qt.IsTrue)
	c.Assert(b.Pixel(Width, 0), qt.IsFalse)
}

func TestClear(t *testing.T) {
	c := qt.New(t)
	var b Buffer

	WriteString(&b, 0, 0, "10:15:30")
	c.Assert(b.BandEmpty(0, Height), qt.IsFalse)

	b.Clear()
	c.Assert(b.BandEmpty(0, Height), qt.IsTrue)
	c.Assert(b.Bytes(), qt.DeepEquals, make([]byte, BufLen))
}

func TestWriteStringStaysInRow(t *testing.T) {
	c := qt.New(t)
	var b Buffer

	WriteString(&b, 0, 12, "08/09/2025")

	c.Assert(b.BandEmpty(12, 12), qt.IsFalse)
	c.Assert(b.BandEmpty(0, 12), qt.IsTrue)
	c.Assert(b.BandEmpty(24, Height-24), qt.IsTrue)
}

func TestWriteStringIsDeterministic(t *testing.T) {
	c := qt.New(t)
	var a, b Buffer

	WriteString(&a, 0, 24, "22.5C")
	WriteString(&b, 0, 24, "22.5C")
	c.Assert(a.Bytes(), qt.DeepEquals, b.Bytes())

	var other Buffer
	WriteString(&other, 0, 24, "19.0C")
	c.Assert(other.Bytes(), qt.Not(qt.DeepEquals), a.Bytes())
}

func TestWriteCentered(t *testing.T) {
	c := qt.New(t)
	var b Buffer

	WriteCentered(&b, 16, "RTC Clock")

	left, right := int16(Width), int16(-1)
	for x := int16(0); x < Width; x++ {
		for y := int16(16); y < 28; y++ {
			if b.Pixel(x, y) {
				if x < left {
					left = x
				}
				if x > right {
					right = x
				}
			}
		}
	}
	c.Assert(right >= left, qt.IsTrue)
	// Roughly balanced margins; glyph bearings make exact symmetry font dependent.
	margin := (Width - 1 - right) - left
	if margin < 0 {
		margin = -margin
	}
	c.Assert(margin <= 8, qt.IsTrue, qt.Commentf("left %d right %d", left, right))
}

func TestFullScreenRegion(t *testing.T) {
	c := qt.New(t)

	r := FullScreen()
	c.Assert(r.BufLen, qt.Equals, 0)
	r.CalcBufLen()

	c.Assert(r, qt.Equals, Region{StartCol: 0, EndCol: 127, StartPage: 0, EndPage: 7, BufLen: BufLen})
	c.Assert(r.IsFullScreen(), qt.IsTrue)

	partial := Region{StartCol: 0, EndCol: 63, StartPage: 2, EndPage: 3}
	partial.CalcBufLen()
	c.Assert(partial.BufLen, qt.Equals, 128)
	c.Assert(partial.IsFullScreen(), qt.IsFalse)
}
