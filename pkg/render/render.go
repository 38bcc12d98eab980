// Package render pushes composed buffers to the panel, always as one
// full-screen transfer.
package render

import (
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/errcode"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/oled"
)

// Pipeline renders to a single panel. Callers must not render concurrently.
type Pipeline struct {
	panel oled.Panel
}

// New creates a pipeline for p.
func New(p oled.Panel) *Pipeline {
	return &Pipeline{panel: p}
}

// Render transfers the whole of b. The region is recomputed on every call.
// A failed transfer returns an errcode.TransferFailed error; the panel may
// still show the previous frame.
func (p *Pipeline) Render(b *oled.Buffer) error {
	r := oled.FullScreen()
	r.CalcBufLen()

	if err := p.panel.Render(b.Bytes(), &r); err != nil {
		return errcode.Wrap(errcode.TransferFailed, "render", err)
	}
	return nil
}
