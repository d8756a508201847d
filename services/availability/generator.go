// Package availability builds the bookable calendar of a provider from its
// weekly opening pattern.
package availability

import (
	"time"

	"tourbook/models"
)

// Calendar maps an ISO date (YYYY-MM-DD) to the ordered start times offered that day.
// Closed days are absent.
type Calendar map[string][]string

// Clone returns a deep copy so cached calendars are never mutated by callers.
func (c Calendar) Clone() Calendar {
	out := make(Calendar, len(c))
	for day, slots := range c {
		out[day] = append([]string(nil), slots...)
	}
	return out
}

// Generate enumerates every day from today through today+horizonDays inclusive
// and lists the pattern's daily slots on open weekdays. today is truncated to
// local midnight in its own location. Unknown weekday names are ignored.
func Generate(today time.Time, pattern models.WeeklyPattern, horizonDays int) Calendar {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	open := make(map[time.Weekday]bool, len(pattern.OpenDays))
	for _, name := range pattern.OpenDays {
		if wd, ok := models.ParseWeekday(name); ok {
			open[wd] = true
		}
	}

	cal := make(Calendar)
	if horizonDays < 0 || len(pattern.DailySlots) == 0 {
		return cal
	}
	for i := 0; i <= horizonDays; i++ {
		// AddDate keeps wall-clock midnight across DST changes.
		day := start.AddDate(0, 0, i)
		if !open[day.Weekday()] {
			continue
		}
		cal[day.Format(models.DateLayout)] = append([]string(nil), pattern.DailySlots...)
	}
	return cal
}
