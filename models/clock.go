package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for bookings and availability.
const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// ParseDate parses a YYYY-MM-DD date in the given location.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

// ParseClock converts an "HH:MM" wall-clock time into minutes from midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil || len(clock) != 5 {
		return 0, fmt.Errorf("invalid time of day %q", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM", wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes returns clock shifted by the given number of minutes.
func AddMinutes(clock string, minutes int) (string, error) {
	start, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatClock(start + minutes), nil
}
