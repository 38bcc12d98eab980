package oled

// Panel is the display controller. Render pushes buf to the panel memory
// covered by r in a single transfer.
type Panel interface {
	Render(buf []byte, r *Region) error
}
