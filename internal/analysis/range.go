package analysis

import (
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/hours"
	"github.com/julianstephens/accountable/internal/models"
)

// ResolveRange maps a date-range label to concrete day bounds. When
// activities exist their actual span wins over the label, which keeps the
// cache key stable for the same underlying data no matter when the analysis
// is requested.
func ResolveRange(label string, activities []models.Activity, now time.Time) (time.Time, time.Time) {
	if len(activities) > 0 {
		first, last := activities[0].Hour, activities[0].Hour
		for _, a := range activities[1:] {
			if a.Hour.Before(first) {
				first = a.Hour
			}
			if a.Hour.After(last) {
				last = a.Hour
			}
		}
		return hours.DayStart(first), hours.DayEnd(last)
	}

	end := now
	var start time.Time
	switch label {
	case constants.RangeToday:
		start = hours.DayStart(now)
	case constants.RangeYesterday:
		yesterday := now.AddDate(0, 0, -1)
		start = hours.DayStart(yesterday)
		end = hours.DayEnd(yesterday)
	case constants.RangeLast3Days:
		start = hours.DayStart(now.AddDate(0, 0, -3))
	case constants.RangeLastWeek:
		start = hours.DayStart(now.AddDate(0, 0, -7))
	case constants.RangeLastMonth:
		start = hours.DayStart(now.AddDate(0, 0, -30))
	default:
		start = hours.DayStart(now.AddDate(0, 0, -1))
	}
	return start, end
}
