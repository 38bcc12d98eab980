package display

import (
	"fmt"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/rtc"
)

// Literals shown in place of a failed reading, and the status line.
const (
	TimeError   = "RTC ERROR!"
	TempError   = "TEMP ERR"
	StatusLine  = "RTC + OLED OK"
	SplashTitle = "RTC Clock"
	SplashSub   = "Starting..."
)

// FormatTime formats the time of day as HH:MM:SS.
func FormatTime(dt rtc.DateTime) string {
	return fmt.Sprintf("%02d:%02d:%02d", dt.Hours, dt.Minutes, dt.Seconds)
}

// FormatDate formats the date as DD/MM/20YY.
func FormatDate(dt rtc.DateTime) string {
	return fmt.Sprintf("%02d/%02d/20%02d", dt.Day, dt.Month, dt.Year%100)
}

// FormatTemperature formats degrees Celsius with one decimal, e.g. 22.5C.
func FormatTemperature(c float32) string {
	return fmt.Sprintf("%.1fC", c)
}

// FormatLog returns the console form of a reading's date and time, using
// the two-digit year.
func FormatLog(dt rtc.DateTime) string {
	return fmt.Sprintf("Time: %02d:%02d:%02d Date: %02d/%02d/%02d",
		dt.Hours, dt.Minutes, dt.Seconds, dt.Day, dt.Month, dt.Year)
}
