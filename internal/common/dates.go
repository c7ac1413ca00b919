// Package common holds shared utilities used across the project.
// dates.go covers calendar-day arithmetic: streaks compare calendar days in
// the application timezone, the chat quota compares UTC dates.
package common

import (
	"math"
	"time"
)

// DayStart truncates t to midnight of its calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CalendarDaysBetween returns the number of calendar days from earlier to
// later in loc: 0 for the same day, 1 for adjacent days, negative when
// "later" is actually before "earlier".
//
// This is elapsed calendar days, not elapsed 24-hour periods: 23:59 and 00:01
// of the next day are one day apart.
func CalendarDaysBetween(later, earlier time.Time, loc *time.Location) int {
	a := DayStart(later, loc)
	b := DayStart(earlier, loc)
	// Round instead of truncate: DST makes some calendar days 23 or 25 hours.
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// UTCDayString formats t's UTC calendar date as YYYY-MM-DD.
// Stored in profiles.daily_count_date for the chat quota rollover.
func UTCDayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
