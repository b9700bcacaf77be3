package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/models"
)

// ToText writes a human-readable report grouped by day, with each day's
// note appended after its activities.
func ToText(activities []models.Activity, notes map[string]string, path string) error {
	byDate := make(map[string][]models.Activity)
	for _, a := range activities {
		date := a.Hour.Format(constants.DateFormat)
		byDate[date] = append(byDate[date], a)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	noteCount := 0
	for _, text := range notes {
		if text != "" {
			noteCount++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Accountable - Activity Export\n")
	fmt.Fprintf(&b, "Exported on: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total activities: %d\n", len(activities))
	fmt.Fprintf(&b, "Total daily notes: %d\n\n", noteCount)

	for _, date := range dates {
		fmt.Fprintf(&b, "=== %s ===\n", date)

		entries := byDate[date]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Hour.Before(entries[j].Hour) })
		for _, a := range entries {
			fmt.Fprintf(&b, "%s: %s\n", a.Hour.Format("15:04"), a.Text)
		}

		if note := notes[date]; note != "" {
			fmt.Fprintf(&b, "\nDAILY NOTE:\n%s\n", note)
		}

		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}
