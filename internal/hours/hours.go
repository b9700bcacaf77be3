// Package hours provides pure arithmetic over hour slots. An hour slot is a
// time.Time floored to the top of the hour in its own location; slots are the
// primary keys for recorded activities.
package hours

import (
	"fmt"
	"time"
)

// Floor returns t with minutes, seconds and sub-second precision zeroed.
func Floor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// Between returns every hour slot from Floor(start) through Floor(end)
// inclusive, oldest first. The result is empty when start is after end.
// Identical inputs always produce identical results.
func Between(start, end time.Time) []time.Time {
	first := Floor(start)
	last := Floor(end)

	var result []time.Time
	for h := first; !h.After(last); h = h.Add(time.Hour) {
		result = append(result, h)
	}
	return result
}

// FormatRange formats an hour slot as a human-readable range covering
// [h, h+1h), e.g. "9:00 AM - 10:00 AM". Display only, never parsed back.
func FormatRange(h time.Time) string {
	return fmt.Sprintf("%s - %s", h.Format("3:04 PM"), h.Add(time.Hour).Format("3:04 PM"))
}

// DayStart returns midnight at the start of t's calendar day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable instant of t's calendar day used for
// inclusive range queries (23:59:59).
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
