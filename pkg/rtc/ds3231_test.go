package rtc

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/errcode"
)

var errNack = errors.New("i2c nack")

// regBus emulates the DS3231 register file behind an I2C bus: the first
// written byte sets the register pointer, further bytes are stored, reads
// continue from the pointer.
type regBus struct {
	regs [0x13]byte
	nack bool
	// failReg makes any transaction starting at that register fail.
	failReg int
	txs     int
}

func newRegBus() *regBus {
	return &regBus{failReg: -1}
}

func (b *regBus) Tx(addr uint16, w, r []byte) error {
	b.txs++
	if b.nack || addr != ds3231Address {
		return errNack
	}
	ptr := 0
	if len(w) > 0 {
		ptr = int(w[0])
		if ptr == b.failReg {
			return errNack
		}
		copy(b.regs[ptr:], w[1:])
	}
	if len(r) > 0 {
		copy(r, b.regs[ptr:])
	}
	return nil
}

func (b *regBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b *regBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func TestDS3231Presence(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	clk := NewDS3231(bus)

	c.Assert(clk.IsPresent(), qt.IsTrue)
	bus.nack = true
	c.Assert(clk.IsPresent(), qt.IsFalse)
}

func TestDS3231ReadDateTime(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	// 10:15:30, Monday, 08/09/25 in BCD
	copy(bus.regs[0:], []byte{0x30, 0x15, 0x10, 0x01, 0x08, 0x09, 0x25})
	clk := NewDS3231(bus)

	dt, err := clk.ReadDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt, qt.Equals, DateTime{
		Hours: 10, Minutes: 15, Seconds: 30,
		Day: 8, Month: 9, Year: 25,
		Weekday: 1,
	})
}

func TestDS3231ReadDateTimeSingleTransaction(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	copy(bus.regs[0:], []byte{0x59, 0x59, 0x23, 0x07, 0x31, 0x12, 0x99})
	clk := NewDS3231(bus)

	dt, err := clk.ReadDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(bus.txs, qt.Equals, 1)
	c.Assert(dt, qt.Equals, DateTime{
		Hours: 23, Minutes: 59, Seconds: 59,
		Day: 31, Month: 12, Year: 99,
		Weekday: 7,
	})
}

func TestDS3231RegistersPassThroughUnvalidated(t *testing.T) {
	tests := []struct {
		name string
		regs []byte
		want DateTime
	}{
		{
			name: "day and month zero",
			regs: []byte{0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x25},
			want: DateTime{Day: 0, Month: 0, Year: 25, Weekday: 3},
		},
		{
			name: "31 february",
			regs: []byte{0x00, 0x30, 0x08, 0x05, 0x31, 0x02, 0x25},
			want: DateTime{Hours: 8, Minutes: 30, Day: 31, Month: 2, Year: 25, Weekday: 5},
		},
		{
			name: "century flag masked",
			regs: []byte{0x00, 0x00, 0x00, 0x01, 0x01, 0x81, 0x00},
			want: DateTime{Day: 1, Month: 1, Year: 0, Weekday: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			bus := newRegBus()
			copy(bus.regs[0:], tt.regs)

			dt, err := NewDS3231(bus).ReadDateTime()
			c.Assert(err, qt.IsNil)
			c.Assert(dt, qt.Equals, tt.want)
		})
	}
}

func TestDS3231TwelveHourMode(t *testing.T) {
	tests := []struct {
		reg  byte
		want uint8
	}{
		{reg: 0x40 | 0x12, want: 0},         // 12 AM
		{reg: 0x40 | 0x09, want: 9},         // 9 AM
		{reg: 0x40 | 0x20 | 0x12, want: 12}, // 12 PM
		{reg: 0x40 | 0x20 | 0x11, want: 23}, // 11 PM
	}

	for _, tt := range tests {
		c := qt.New(t)
		bus := newRegBus()
		bus.regs[2] = tt.reg

		dt, err := NewDS3231(bus).ReadDateTime()
		c.Assert(err, qt.IsNil)
		c.Assert(dt.Hours, qt.Equals, tt.want, qt.Commentf("reg %#x", tt.reg))
	}
}

func TestDS3231UnsetWeekdayPassesThrough(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	copy(bus.regs[0:], []byte{0x00, 0x00, 0x12, 0x00, 0x01, 0x01, 0x24})
	clk := NewDS3231(bus)

	dt, err := clk.ReadDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt.Weekday, qt.Equals, uint8(0))
	_, ok := dt.WeekdayLabel()
	c.Assert(ok, qt.IsFalse)
}

func TestDS3231ReadFailures(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	copy(bus.regs[0:], []byte{0x30, 0x15, 0x10, 0x01, 0x08, 0x09, 0x25})
	clk := NewDS3231(bus)

	bus.failReg = regSeconds
	_, err := clk.ReadDateTime()
	c.Assert(errcode.Of(err), qt.Equals, errcode.ReadFailed)
	c.Assert(errors.Is(err, errNack), qt.IsTrue)

	bus.failReg = -1
	bus.nack = true
	_, err = clk.ReadDateTime()
	c.Assert(errcode.Of(err), qt.Equals, errcode.ReadFailed)
	_, err = clk.ReadTemperature()
	c.Assert(errcode.Of(err), qt.Equals, errcode.ReadFailed)
}

func TestDS3231ReadTemperature(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	// 22.5C: MSB 22, LSB bits 7:6 = 0b10 (0.5)
	bus.regs[0x11] = 0x16
	bus.regs[0x12] = 0x80
	clk := NewDS3231(bus)

	temp, err := clk.ReadTemperature()
	c.Assert(err, qt.IsNil)
	c.Assert(temp, qt.Equals, float32(22.5))
}

func TestDS3231SetDateTimeKeepsWeekday(t *testing.T) {
	c := qt.New(t)
	bus := newRegBus()
	clk := NewDS3231(bus)

	want := DateTime{Hours: 15, Minutes: 30, Seconds: 0, Day: 8, Month: 9, Year: 25, Weekday: 1}
	c.Assert(clk.SetDateTime(want), qt.IsNil)
	c.Assert(bus.regs[regWeekday], qt.Equals, byte(1))

	got, err := clk.ReadDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, want)
}
