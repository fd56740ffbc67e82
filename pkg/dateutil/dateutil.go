// Package dateutil provides calendar-day math shared by the review
// scheduler's due-date logic and the gamification ledger's day boundaries.
// All functions take explicit times; nothing reads the ambient clock.
package dateutil

import "time"

// DayKeyLayout is the canonical calendar-date format ("YYYY-MM-DD").
const DayKeyLayout = "2006-01-02"

// DayKey returns the calendar date of now in the given timezone,
// formatted as "YYYY-MM-DD".
func DayKey(now time.Time, tz *time.Location) string {
	return now.In(tz).Format(DayKeyLayout)
}

// PrevDayKey returns the calendar date of the day before now in the given
// timezone. AddDate handles DST transitions correctly, Add(-24h) does not.
func PrevDayKey(now time.Time, tz *time.Location) string {
	userNow := now.In(tz)
	return time.Date(userNow.Year(), userNow.Month(), userNow.Day(), 0, 0, 0, 0, tz).
		AddDate(0, 0, -1).
		Format(DayKeyLayout)
}

// PrevDay returns the day key immediately before key. A malformed key
// yields "", which never equals a real day key.
func PrevDay(key string) string {
	t, err := time.Parse(DayKeyLayout, key)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DayKeyLayout)
}

// DayStart returns the start of the current day in the given timezone,
// converted to UTC.
func DayStart(now time.Time, tz *time.Location) time.Time {
	userNow := now.In(tz)
	dayStart := time.Date(userNow.Year(), userNow.Month(), userNow.Day(), 0, 0, 0, 0, tz)
	return dayStart.UTC()
}

// NextDayStart returns the start of the next day in the given timezone,
// converted to UTC.
func NextDayStart(now time.Time, tz *time.Location) time.Time {
	dayStart := DayStart(now, tz)
	nextDay := dayStart.In(tz).AddDate(0, 0, 1)
	return time.Date(nextDay.Year(), nextDay.Month(), nextDay.Day(), 0, 0, 0, 0, tz).UTC()
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
