// Package rtc reads the battery-backed real-time clock and its temperature
// sensor. Each read is its own bus transaction: a failed time read does not
// prevent the temperature read and vice versa.
package rtc

import (
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/errcode"
)

// DateTime is one decoded clock reading. Fields are passed through from the
// clock registers unvalidated; only Weekday must be range-checked by callers
// (see WeekdayLabel).
type DateTime struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
	Day     uint8
	Month   uint8
	Year    uint8 // offset from 2000
	Weekday uint8 // 1=Monday .. 7=Sunday, 0 reserved
}

var weekdays = [8]string{"", "MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// WeekdayLabel returns the three-letter weekday, or false when Weekday is
// outside 1..7.
func (d DateTime) WeekdayLabel() (string, bool) {
	if d.Weekday < 1 || d.Weekday > 7 {
		return "", false
	}
	return weekdays[d.Weekday], true
}

// Reading is the result of one poll. Either field may be absent.
type Reading struct {
	DateTime       DateTime
	HasDateTime    bool
	Temperature    float32 // degrees Celsius
	HasTemperature bool
}

// Clock is the clock/temperature chip driver.
type Clock interface {
	Init() bool
	IsPresent() bool
	ReadDateTime() (DateTime, error)
	ReadTemperature() (float32, error)
	// SetDateTime is not called by the firmware's runtime path.
	SetDateTime(DateTime) error
}

// Reader wraps a Clock.
type Reader struct {
	clock Clock
}

// NewReader creates a reader for c.
func NewReader(c Clock) *Reader {
	return &Reader{clock: c}
}

// Start initializes the clock and checks it answers. Both failures map to
// errcode.NotPresent.
func (r *Reader) Start() error {
	if !r.clock.Init() {
		return &errcode.E{C: errcode.NotPresent, Op: "rtc.init", Msg: "failed to initialize DS3231"}
	}
	if !r.Probe() {
		return &errcode.E{C: errcode.NotPresent, Op: "rtc.probe", Msg: "DS3231 not detected"}
	}
	return nil
}

// Probe reports whether the clock responds at its address.
func (r *Reader) Probe() bool {
	return r.clock.IsPresent()
}

// ReadDateTime reads the current date and time.
func (r *Reader) ReadDateTime() (DateTime, bool) {
	dt, err := r.clock.ReadDateTime()
	if err != nil {
		return DateTime{}, false
	}
	return dt, true
}

// ReadTemperature reads the die temperature in degrees Celsius.
func (r *Reader) ReadTemperature() (float32, bool) {
	t, err := r.clock.ReadTemperature()
	if err != nil {
		return 0, false
	}
	return t, true
}

// Read performs both reads, always attempting each once.
func (r *Reader) Read() Reading {
	var rd Reading
	rd.DateTime, rd.HasDateTime = r.ReadDateTime()
	rd.Temperature, rd.HasTemperature = r.ReadTemperature()
	return rd
}
