package dates

import (
	"fmt"
	"time"
)

// Layout is the ISO-8601 calendar date used for every day key.
const Layout = "2006-01-02"

// Accepted ingestion formats, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	Layout,
	"02/01/2006",
}

// Parse reads a date in one of the accepted formats and returns midnight UTC of that day.
func Parse(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISO formats t as a day key.
func ISO(t time.Time) string {
	return t.Format(Layout)
}

// DaysBetween counts calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Range lists every day key from start to end inclusive. An end before start yields nil.
func Range(start, end string) ([]string, error) {
	s, err := time.Parse(Layout, start)
	if err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}
	e, err := time.Parse(Layout, end)
	if err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}
	return Between(s, e), nil
}

// Between is Range over already-parsed days.
func Between(start, end time.Time) []string {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	out := make([]string, 0, DaysBetween(start, end)+1)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		out = append(out, ISO(cur))
	}
	return out
}
