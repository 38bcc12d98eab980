// Package oled holds the pixel buffer and region handling for a 128x64
// SSD1306 monochrome panel.
//
// The buffer uses the controller's native page layout: 8 pages of 8 pixel
// rows, one byte per column per page, bit 0 at the top. A buffer can be
// sent to the panel as-is.
package oled

import (
	"image/color"
)

// Display dimensions
const (
	Width  = 128
	Height = 64
	Pages  = Height / 8

	// BufLen is the size of a full-screen buffer in bytes.
	BufLen = Width * Pages
)

// Colors for monochrome display
var (
	Black = color.RGBA{0, 0, 0, 0}
	White = color.RGBA{255, 255, 255, 255}
)

// Buffer is a full-screen pixel bitmap. The zero value is a cleared screen.
// It implements drivers.Displayer so text can be drawn into it with tinyfont.
type Buffer struct {
	pix [BufLen]byte
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.pix = [BufLen]byte{}
}

// Size implements drivers.Displayer.
func (b *Buffer) Size() (x, y int16) {
	return Width, Height
}

// SetPixel implements drivers.Displayer. Any non-black colour turns the
// pixel on. Out of range coordinates are ignored.
func (b *Buffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	i := int(x) + int(y/8)*Width
	mask := byte(1) << uint(y%8)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		b.pix[i] |= mask
	} else {
		b.pix[i] &^= mask
	}
}

// Pixel reports whether the pixel at x, y is on.
func (b *Buffer) Pixel(x, y int16) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return b.pix[int(x)+int(y/8)*Width]&(1<<uint(y%8)) != 0
}

// Display implements drivers.Displayer. Drawing into a Buffer never
// touches hardware; transfers go through a Panel.
func (b *Buffer) Display() error {
	return nil
}

// Bytes returns the buffer in panel page layout. The slice aliases the
// buffer.
func (b *Buffer) Bytes() []byte {
	return b.pix[:]
}

// BandEmpty reports whether every pixel in rows [y, y+h) is off.
func (b *Buffer) BandEmpty(y, h int16) bool {
	for yy := y; yy < y+h; yy++ {
		for x := int16(0); x < Width; x++ {
			if b.Pixel(x, yy) {
				return false
			}
		}
	}
	return true
}
