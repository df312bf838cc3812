package utils

import "time"

// WeekdayAbbrev returns the three-letter weekday name ("Mon" .. "Sun") used
// by recurrence descriptors.
func WeekdayAbbrev(t time.Time) string {
	return t.Weekday().String()[:3]
}

// SameClockOn places the time-of-day of src onto the calendar date of day,
// keeping src's location.
func SameClockOn(day, src time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		src.Hour(), src.Minute(), src.Second(), src.Nanosecond(),
		src.Location(),
	)
}
