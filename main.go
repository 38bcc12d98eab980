//go:build tinygo && rp2040

package main

import (
	"context"
	"machine"
	"os"
	"time"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/app"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/i2cbus"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/oled"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/rtc"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/storage"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/serial"
)

// MAIN THREAD DUTIES
//

func main() {
	console := serial.NewSerial(machine.Serial) // USB CDC Serial

	// Wait for USB connection
	time.Sleep(3 * time.Second)
	console.Println("")
	console.Println("=== Pico Clock: SSD1306 + DS3231 ===")

	// Optional bus settings record; flash is mounted read-mostly and never formatted.
	var store *storage.Manager
	if m, err := storage.New(machine.Flash, false); err == nil {
		store = m
	}
	settings, fromFlash := storage.Resolve(store)
	if store != nil {
		store.Close()
	}
	if fromFlash {
		console.Println("Using bus settings from flash")
	}

	buses := i2cbus.Machine{}
	loop := app.New(app.Config{
		Buses:    buses,
		Settings: settings,
		Clock:    rtc.NewDS3231(buses.Bus(settings.ClockBus.Bus)),
		OpenPanel: func() oled.Panel {
			return oled.NewSSD1306(buses.Bus(settings.DisplayBus.Bus))
		},
		Console: console,
	})

	if err := loop.Start(); err != nil {
		os.Exit(1)
	}

	// Never cancelled: the clock runs until power is removed.
	loop.Run(context.Background())
}
