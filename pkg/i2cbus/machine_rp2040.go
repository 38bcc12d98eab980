//go:build rp2040

package i2cbus

import (
	"errors"
	"machine"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/config"
)

var errUnknownBus = errors.New("unknown I2C controller")

// Machine drives the RP2040 I2C0/I2C1 controllers.
type Machine struct{}

// Bus returns the machine controller for id, or nil.
func (Machine) Bus(id config.BusID) *machine.I2C {
	switch id {
	case config.Bus0:
		return machine.I2C0
	case config.Bus1:
		return machine.I2C1
	}
	return nil
}

func (Machine) SetPinFunction(pin uint8, fn PinFunction) error {
	if fn != FuncI2C {
		return errors.New("unsupported pin function")
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinI2C})
	return nil
}

// EnablePullup is satisfied by PinI2C, which turns the pad pull-up on for
// I2C pins on the RP2040.
func (Machine) EnablePullup(pin uint8) error {
	return nil
}

func (m Machine) Init(bus config.BusID, clockHz uint32, sda, scl uint8) error {
	i2c := m.Bus(bus)
	if i2c == nil {
		return errUnknownBus
	}
	return i2c.Configure(machine.I2CConfig{
		Frequency: clockHz,
		SDA:       machine.Pin(sda),
		SCL:       machine.Pin(scl),
	})
}
