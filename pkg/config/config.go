// Package config defines the bus configuration of the clock firmware.
// All structs are designed for zero-allocation binary serialization.
package config

import (
	"encoding/binary"
	"errors"
	"strconv"
)

// CurrentVersion is the settings format version.
// Bump this when making breaking changes to the settings format.
// When firmware boots and finds a different version in flash, the record is ignored.
const CurrentVersion uint16 = 1

// BusID identifies one of the two I2C controllers.
type BusID uint8

const (
	Bus0 BusID = 0
	Bus1 BusID = 1

	maxBus = Bus1
)

// BusConfig describes one serial bus. One instance per bus, never mutated
// after startup.
// Total size: 8 bytes
// Packed layout: [Bus:1][Flags:1][ClockHz:4][SDA:1][SCL:1]
type BusConfig struct {
	Bus     BusID
	ClockHz uint32
	SDA     uint8 // GPIO number of the data line
	SCL     uint8 // GPIO number of the clock line
	PullUp  bool
}

const busConfigSize = 8

const flagPullUp = 0x01

// Settings holds the configuration of both buses.
// Total size: 18 bytes
// Layout:
//
//	[0-1]:   Version (uint16)
//	[2-9]:   Display bus (BusConfig)
//	[10-17]: Clock bus (BusConfig)
type Settings struct {
	Version    uint16
	DisplayBus BusConfig
	ClockBus   BusConfig
}

// SettingsSize is the encoded size of Settings.
const SettingsSize = 2 + 2*busConfigSize

// Pin assignments and clock rates of the reference board: SSD1306 on I2C0
// (GP16/GP17) at 400kHz and DS3231 on I2C1 (GP18/GP19) at 100kHz.
const (
	DisplayClockHz = 400000
	DisplaySDA     = 16
	DisplaySCL     = 17

	ClockClockHz = 100000
	ClockSDA     = 18
	ClockSCL     = 19
)

// Errors
var (
	ErrInvalidSize = errors.New("invalid settings size")
)

// Default returns the compiled-in settings.
func Default() Settings {
	return Settings{
		Version: CurrentVersion,
		DisplayBus: BusConfig{
			Bus:     Bus0,
			ClockHz: DisplayClockHz,
			SDA:     DisplaySDA,
			SCL:     DisplaySCL,
			PullUp:  true,
		},
		ClockBus: BusConfig{
			Bus:     Bus1,
			ClockHz: ClockClockHz,
			SDA:     ClockSDA,
			SCL:     ClockSCL,
			PullUp:  true,
		},
	}
}

func (b *BusConfig) put(buf []byte) {
	buf[0] = uint8(b.Bus)
	buf[1] = 0
	if b.PullUp {
		buf[1] |= flagPullUp
	}
	binary.LittleEndian.PutUint32(buf[2:], b.ClockHz)
	buf[6] = b.SDA
	buf[7] = b.SCL
}

func (b *BusConfig) get(buf []byte) {
	b.Bus = BusID(buf[0])
	b.PullUp = buf[1]&flagPullUp != 0
	b.ClockHz = binary.LittleEndian.Uint32(buf[2:])
	b.SDA = buf[6]
	b.SCL = buf[7]
}

// MarshalBinary implements encoding.BinaryMarshaler for Settings.
func (s *Settings) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SettingsSize)
	binary.LittleEndian.PutUint16(buf[0:], s.Version)
	s.DisplayBus.put(buf[2:10])
	s.ClockBus.put(buf[10:18])
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for Settings.
func (s *Settings) UnmarshalBinary(data []byte) error {
	if len(data) < SettingsSize {
		return ErrInvalidSize
	}

	s.Version = binary.LittleEndian.Uint16(data[0:])
	s.DisplayBus.get(data[2:10])
	s.ClockBus.get(data[10:18])
	return nil
}

// Validate checks that both buses can be brought up side by side.
func (s *Settings) Validate() error {
	return ValidatePair(s.DisplayBus, s.ClockBus)
}

// ValidatePair checks a pair of bus configurations: each names a known
// controller with a non-zero clock and two distinct pins, and the pair
// shares neither controller nor pin.
func ValidatePair(a, b BusConfig) error {
	for _, c := range [2]BusConfig{a, b} {
		if c.Bus > maxBus {
			return errors.New("unknown bus " + strconv.Itoa(int(c.Bus)))
		}
	}
	if a.Bus == b.Bus {
		return errors.New("bus " + strconv.Itoa(int(a.Bus)) + " used twice")
	}
	for _, c := range [2]BusConfig{a, b} {
		if c.ClockHz == 0 {
			return errors.New("bus " + strconv.Itoa(int(c.Bus)) + " has no clock rate")
		}
		if c.SDA == c.SCL {
			return errors.New("bus " + strconv.Itoa(int(c.Bus)) + " uses pin " + strconv.Itoa(int(c.SDA)) + " for SDA and SCL")
		}
	}
	for _, pa := range [2]uint8{a.SDA, a.SCL} {
		for _, pb := range [2]uint8{b.SDA, b.SCL} {
			if pa == pb {
				return errors.New("pin " + strconv.Itoa(int(pa)) + " shared between buses")
			}
		}
	}
	return nil
}
