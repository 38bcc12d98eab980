//go:build tinygo

package oled

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// I2C address of the panel.
const Address = 0x3C

var errPartialRegion = errors.New("ssd1306: only full-screen transfers are supported")

// SSD1306 drives the panel through the tinygo ssd1306 driver.
type SSD1306 struct {
	device *ssd1306.Device
}

// NewSSD1306 initializes the panel on an already configured bus and clears it.
func NewSSD1306(bus drivers.I2C) *SSD1306 {
	// Small delay for bus stabilization
	time.Sleep(10 * time.Millisecond)

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: Address,
		Width:   Width,
		Height:  Height,
	})
	dev.ClearDisplay()

	return &SSD1306{device: dev}
}

// Render copies buf into the driver and sends it in one Display call. The
// driver always addresses the full screen, so r must be full-screen.
func (p *SSD1306) Render(buf []byte, r *Region) error {
	if !r.IsFullScreen() {
		return errPartialRegion
	}
	if err := p.device.SetBuffer(buf[:r.BufLen]); err != nil {
		return err
	}
	return p.device.Display()
}
