// Package dateutil represents calendar dates as midnight UTC time.Time values
// so they compare, key and persist the same regardless of the caller's zone.
package dateutil

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date returns the calendar date of t as seen in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// In returns the calendar date of t in loc.
func In(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Date(t.In(loc))
}

func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// MonthRange returns the first and last day of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := New(year, month, 1)
	return first, first.AddDate(0, 1, -1)
}

// DaysBetween returns whole days from a to b (negative when b is before a).
// Exact for any pair of dates in years 1-9999.
func DaysBetween(a, b time.Time) int {
	return int((Date(b).Unix() - Date(a).Unix()) / secondsPerDay)
}

// EachDay calls fn for every date in [from, to].
func EachDay(from, to time.Time, fn func(day time.Time)) {
	for d := Date(from); !d.After(Date(to)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Within reports whether date lies in the inclusive span [start, end].
func Within(date, start, end time.Time) bool {
	d := Date(date)
	return !d.Before(Date(start)) && !d.After(Date(end))
}
