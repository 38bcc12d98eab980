// Package app runs the clock: bring up both buses and devices, show the
// splash screen, then read, compose and render once per second forever.
//
// States:
//
//	Starting -> Running  after bus/device init, splash and settle delay
//	Starting -> Fatal    bus init failed, or the RTC is missing
//
// Running has no exit of its own. The context given to Run is the only way
// out and is checked between cycles; the firmware never cancels it.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/display"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/i2cbus"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/oled"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/render"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/rtc"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/serial"
)

const (
	// PollInterval is the pause between two cycles.
	PollInterval = time.Second
	// SettleDelay keeps the splash screen up before the first cycle.
	SettleDelay = 2 * time.Second
	// LogEvery is the cycle modulus of the status line. Cycle 0 logs.
	LogEvery = 30
)

// State of the main loop.
type State uint8

const (
	StateStarting State = iota
	StateRunning
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var ErrNotRunning = errors.New("main loop not running")

// Config wires the loop to its devices.
type Config struct {
	// Buses brings up both I2C controllers.
	Buses    i2cbus.Peripheral
	Settings config.Settings
	// Clock is only touched after the buses are up.
	Clock rtc.Clock
	// OpenPanel initializes the display once the buses are up.
	OpenPanel func() oled.Panel
	Console   *serial.Serial
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Loop is the firmware main loop. It is single threaded: every step of a
// cycle completes before the next begins.
type Loop struct {
	cfg      Config
	state    State
	reader   *rtc.Reader
	pipeline *render.Pipeline
	cycles   int
}

// New creates a loop in StateStarting.
func New(cfg Config) *Loop {
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Loop{
		cfg:    cfg,
		state:  StateStarting,
		reader: rtc.NewReader(cfg.Clock),
	}
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Cycles returns the number of completed Running cycles.
func (l *Loop) Cycles() int { return l.cycles }

func (l *Loop) fatal(err error) error {
	l.state = StateFatal
	l.cfg.Console.Printf("ERROR: %v", err)
	return err
}

// Start performs the one-time startup sequence. Any error is fatal: the
// loop moves to StateFatal and the caller should exit non-zero.
func (l *Loop) Start() error {
	if l.state != StateStarting {
		return errors.New("main loop already started")
	}
	con := l.cfg.Console
	s := l.cfg.Settings

	if err := i2cbus.Configure(l.cfg.Buses, s.DisplayBus, s.ClockBus); err != nil {
		return l.fatal(err)
	}
	con.Println(i2cbus.Describe(s.DisplayBus) + " initialized for SSD1306")
	con.Println(i2cbus.Describe(s.ClockBus) + " initialized for DS3231")

	con.Println("Initializing SSD1306 OLED...")
	l.pipeline = render.New(l.cfg.OpenPanel())
	con.Println("SSD1306 initialized successfully")

	con.Println("Initializing DS3231 RTC...")
	if err := l.reader.Start(); err != nil {
		return l.fatal(err)
	}
	con.Println("DS3231 initialized and detected successfully")

	splash := display.Splash()
	if err := l.pipeline.Render(&splash); err != nil {
		con.Printf("ERROR: render failed: %v", err)
	}

	l.cfg.Sleep(SettleDelay)

	con.Println("Starting main loop...")
	l.state = StateRunning
	return nil
}

// Cycle runs one read, compose and render pass. A render error is returned
// for reporting only; the next cycle is unaffected.
func (l *Loop) Cycle() error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	con := l.cfg.Console

	rd := l.reader.Read()
	if rd.HasDateTime {
		con.Println(display.FormatLog(rd.DateTime))
	} else {
		con.Println("ERROR: Failed to read time from DS3231")
	}
	if rd.HasTemperature {
		con.Printf("Temperature: %.1f C", rd.Temperature)
	}

	buf := display.Compose(rd)
	err := l.pipeline.Render(&buf)
	if err != nil {
		con.Printf("ERROR: render failed: %v", err)
	}

	if l.cycles%LogEvery == 0 {
		con.Printf("Display updated - Loop #%d", l.cycles)
	}
	l.cycles++
	return err
}

// Run cycles every PollInterval until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Cycle()
		l.cfg.Sleep(PollInterval)
	}
}
