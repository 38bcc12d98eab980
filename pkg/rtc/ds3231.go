package rtc

import (
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ds3231"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/errcode"
)

// DS3231 register map bits the driver package does not expose.
const (
	ds3231Address = 0x68
	regSeconds    = 0x00
	regWeekday    = 0x03
	regStatus     = 0x0F

	hour12     = 1 << 6
	hourPM     = 1 << 5
	monthMask  = 0x1F // bit 7 is the century flag
	timeLength = 7
)

// DS3231 adapts the tinygo ds3231 driver to Clock. The bus must already be
// configured.
type DS3231 struct {
	bus drivers.I2C
	dev ds3231.Device
	buf [timeLength]byte
}

// NewDS3231 creates the clock on bus.
func NewDS3231(bus drivers.I2C) *DS3231 {
	return &DS3231{
		bus: bus,
		dev: ds3231.New(bus),
	}
}

func (d *DS3231) Init() bool {
	return d.dev.Configure()
}

// IsPresent reads the status register; any acknowledged read counts.
func (d *DS3231) IsPresent() bool {
	return d.bus.Tx(ds3231Address, []byte{regStatus}, d.buf[:1]) == nil
}

// ReadDateTime reads all seven time registers in one burst and decodes them
// field by field. Values are not range checked: day 0 or 31/02 come back
// as stored.
func (d *DS3231) ReadDateTime() (DateTime, error) {
	if err := d.bus.Tx(ds3231Address, []byte{regSeconds}, d.buf[:]); err != nil {
		return DateTime{}, errcode.Wrap(errcode.ReadFailed, "ds3231.time", err)
	}
	r := d.buf
	return DateTime{
		Hours:   decodeHours(r[2]),
		Minutes: bcdToDec(r[1] & 0x7F),
		Seconds: bcdToDec(r[0] & 0x7F),
		Day:     bcdToDec(r[4] & 0x3F),
		Month:   bcdToDec(r[5] & monthMask),
		Year:    bcdToDec(r[6]),
		Weekday: r[3] & 0x07,
	}, nil
}

// decodeHours returns 0..23 for both the 24h and the 12h AM/PM encoding.
func decodeHours(v uint8) uint8 {
	if v&hour12 == 0 {
		return bcdToDec(v & 0x3F)
	}
	h := bcdToDec(v & 0x1F)
	if h == 12 {
		h = 0
	}
	if v&hourPM != 0 {
		h += 12
	}
	return h
}

func bcdToDec(v uint8) uint8 {
	return (v>>4)*10 + v&0x0F
}

func (d *DS3231) ReadTemperature() (float32, error) {
	mc, err := d.dev.ReadTemperature()
	if err != nil {
		return 0, errcode.Wrap(errcode.ReadFailed, "ds3231.temperature", err)
	}
	return float32(mc) / 1000, nil
}

// SetDateTime writes dt, then overwrites the weekday register with dt.Weekday
// so the 1=Monday numbering survives the driver's own weekday encoding.
func (d *DS3231) SetDateTime(dt DateTime) error {
	t := time.Date(2000+int(dt.Year), time.Month(dt.Month), int(dt.Day),
		int(dt.Hours), int(dt.Minutes), int(dt.Seconds), 0, time.UTC)
	if err := d.dev.SetTime(t); err != nil {
		return err
	}
	return d.bus.Tx(ds3231Address, []byte{regWeekday, dt.Weekday & 0x07}, nil)
}
