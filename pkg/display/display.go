// Package display lays out a clock reading on the OLED.
//
// Five text rows, 12 pixels apart, all starting at x = 0:
//
//	row 0: time        HH:MM:SS or "RTC ERROR!"
//	row 1: date        DD/MM/20YY, skipped when the time read failed
//	row 2: temperature 22.5C or "TEMP ERR"
//	row 3: weekday     MON..SUN, blank when the weekday is out of range
//	row 4: status      always "RTC + OLED OK"
package display

import (
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/oled"
	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/rtc"
)

const (
	// RowHeight is the vertical pitch of text rows in pixels.
	RowHeight = 12

	// Row assignments
	RowTime    = 0
	RowDate    = 1
	RowTemp    = 2
	RowWeekday = 3
	RowStatus  = 4

	Rows = 5
)

// RowY returns the top pixel row of text row n.
func RowY(n int) int16 {
	return int16(n * RowHeight)
}

// Lines is the text of each row. An empty string means the row is not
// written.
type Lines [Rows]string

// Layout decides the text of every row for r.
func Layout(r rtc.Reading) Lines {
	var l Lines

	if r.HasDateTime {
		l[RowTime] = FormatTime(r.DateTime)
		l[RowDate] = FormatDate(r.DateTime)
	} else {
		l[RowTime] = TimeError
	}

	if r.HasTemperature {
		l[RowTemp] = FormatTemperature(r.Temperature)
	} else {
		l[RowTemp] = TempError
	}

	// Without a time reading there is no weekday either.
	if r.HasDateTime {
		if wd, ok := r.DateTime.WeekdayLabel(); ok {
			l[RowWeekday] = wd
		}
	}

	l[RowStatus] = StatusLine
	return l
}

// Draw clears b and writes every non-empty row.
func Draw(b *oled.Buffer, l Lines) {
	b.Clear()
	for i, s := range l {
		if s == "" {
			continue
		}
		oled.WriteString(b, 0, RowY(i), s)
	}
}

// Compose returns a fresh buffer showing r.
func Compose(r rtc.Reading) oled.Buffer {
	var b oled.Buffer
	Draw(&b, Layout(r))
	return b
}

// Splash returns the startup screen.
func Splash() oled.Buffer {
	var b oled.Buffer
	oled.WriteCentered(&b, 16, SplashTitle)
	oled.WriteCentered(&b, 32, SplashSub)
	return b
}
