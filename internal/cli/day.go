package cli

import (
	"fmt"

	"github.com/julianstephens/accountable/internal/hours"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *DayCmd) Run(ctx *Context) error {
	day, err := ParseDay(c.Date)
	if err != nil {
		return err
	}

	activities, err := ctx.Store.GetActivitiesForDay(day)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	fmt.Println(titleStyle.Render(day.Format("Monday, January 2, 2006")))
	if len(activities) == 0 {
		fmt.Println(subtleStyle.Render("  no activities recorded"))
	}
	for _, a := range activities {
		fmt.Printf("  %-19s %s\n", hours.FormatRange(a.Hour), a.Text)
	}

	note, err := ctx.Store.GetDailyNote(day)
	if err != nil {
		return fmt.Errorf("failed to load daily note: %w", err)
	}
	if note != "" {
		fmt.Println()
		fmt.Println(titleStyle.Render("Daily Note"))
		fmt.Printf("  %s\n", note)
	}

	return nil
}
