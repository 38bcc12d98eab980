// Package i2cbus brings up the two independent I2C buses used by the clock:
// one for the OLED panel, one for the RTC.
package i2cbus

import (
	"strconv"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/errcode"
)

// PinFunction selects what a GPIO is muxed to.
type PinFunction uint8

const (
	FuncI2C PinFunction = iota + 1
)

// Peripheral is the low-level bus driver. Init is only called once both pins
// of the bus have been assigned, so drivers that configure pins and clock in
// one step (rp2040) see the full picture.
type Peripheral interface {
	SetPinFunction(pin uint8, fn PinFunction) error
	EnablePullup(pin uint8) error
	Init(bus config.BusID, clockHz uint32, sda, scl uint8) error
}

const opConfigure = "i2cbus.configure"

// Configure initializes both buses. The two configurations must not share a
// controller or a pin, and each needs a non-zero clock.
func Configure(p Peripheral, a, b config.BusConfig) error {
	if err := validate(a, b); err != nil {
		return err
	}
	if err := configureOne(p, a); err != nil {
		return err
	}
	return configureOne(p, b)
}

func configureOne(p Peripheral, c config.BusConfig) error {
	for _, pin := range [2]uint8{c.SDA, c.SCL} {
		if err := p.SetPinFunction(pin, FuncI2C); err != nil {
			return initFailed(c, err)
		}
		if c.PullUp {
			if err := p.EnablePullup(pin); err != nil {
				return initFailed(c, err)
			}
		}
	}
	if err := p.Init(c.Bus, c.ClockHz, c.SDA, c.SCL); err != nil {
		return initFailed(c, err)
	}
	return nil
}

func initFailed(c config.BusConfig, err error) error {
	return &errcode.E{
		C:   errcode.InitFailed,
		Op:  opConfigure,
		Msg: "bus " + strconv.Itoa(int(c.Bus)),
		Err: err,
	}
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: opConfigure, Msg: msg}
}

func validate(a, b config.BusConfig) error {
	if err := config.ValidatePair(a, b); err != nil {
		return invalid(err.Error())
	}
	return nil
}

// Describe returns a one-line summary of a bus for the console.
func Describe(c config.BusConfig) string {
	s := "I2C" + strconv.Itoa(int(c.Bus)) +
		" @ " + strconv.Itoa(int(c.ClockHz/1000)) + "kHz on pins " +
		strconv.Itoa(int(c.SDA)) + "," + strconv.Itoa(int(c.SCL))
	if c.PullUp {
		s += " (pull-up)"
	}
	return s
}
