package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/accountable/internal/hours"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	subtleStyle = lipgloss.NewStyle().Faint(true)
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	ctx.Scheduler.Initialize()
	missed := ctx.Scheduler.MissedHours()

	fmt.Println(titleStyle.Render("Accountable Status"))
	fmt.Println()

	if len(missed) == 0 {
		fmt.Println(okStyle.Render("✓ All caught up"))
	} else {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d missed hour(s):", len(missed))))
		for _, h := range missed {
			fmt.Printf("  %s  %s\n", h.Format("2006-01-02"), hours.FormatRange(h))
		}
	}

	now := time.Now()
	activities, err := ctx.Store.GetActivitiesForDay(now)
	if err != nil {
		return fmt.Errorf("failed to load today's activities: %w", err)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Today"))
	if len(activities) == 0 {
		fmt.Println(subtleStyle.Render("  no activities recorded yet"))
		return nil
	}
	for _, a := range activities {
		fmt.Printf("  %s  %s\n", a.Hour.Format("15:04"), a.Text)
	}

	if note, err := ctx.Store.GetDailyNote(now); err == nil && note != "" {
		fmt.Println()
		fmt.Println(titleStyle.Render("Daily Note"))
		fmt.Printf("  %s\n", note)
	}

	return nil
}
