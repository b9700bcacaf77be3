package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/hours"
)

type RecordCmd struct {
	Text string `help:"Activity text. Prompts interactively when omitted."`
	Hour string `help:"Record a specific hour (YYYY-MM-DDTHH) instead of choosing from missed hours."`
	All  bool   `help:"Apply the text to every missed hour."`
}

func (c *RecordCmd) Run(ctx *Context) error {
	ctx.Scheduler.Initialize()

	if c.Hour != "" {
		hour, err := time.ParseInLocation("2006-01-02T15", c.Hour, time.Local)
		if err != nil {
			return fmt.Errorf("invalid hour %q (use YYYY-MM-DDTHH)", c.Hour)
		}
		text, err := c.resolveText()
		if err != nil {
			return err
		}
		if err := ctx.Scheduler.RecordActivity([]time.Time{hour}, text); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		fmt.Printf("✓ Recorded activity for %s\n", hours.FormatRange(hours.Floor(hour)))
		return nil
	}

	missed := ctx.Scheduler.MissedHours()
	if len(missed) == 0 {
		fmt.Println("All caught up! No missed hours to record.")
		return nil
	}

	if c.All {
		text, err := c.resolveText()
		if err != nil {
			return err
		}
		if err := ctx.Scheduler.RecordActivity(missed, text); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		fmt.Printf("✓ Recorded activity for %d hour(s)\n", len(missed))
		return nil
	}

	return PromptAndRecord(ctx, missed, c.Text)
}

func (c *RecordCmd) resolveText() (string, error) {
	if c.Text != "" {
		return c.Text, nil
	}
	return promptForText("")
}

// PromptAndRecord walks the user through the reminder flow: pick hour slots,
// describe the activity, write it. The watch loop and the record command
// share it.
func PromptAndRecord(ctx *Context, missed []time.Time, text string) error {
	options := make([]huh.Option[time.Time], 0, len(missed))
	for _, h := range missed {
		label := fmt.Sprintf("%s (%s)", hours.FormatRange(h), h.Format(constants.DateFormat))
		options = append(options, huh.NewOption(label, h))
	}

	var selected []time.Time
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[time.Time]().
				Title("Which hours would you like to fill in?").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	if len(selected) == 0 {
		fmt.Println("No hours selected, nothing recorded.")
		return nil
	}

	if text == "" {
		var err error
		text, err = promptForText("")
		if err != nil {
			return err
		}
	}

	if err := ctx.Scheduler.RecordActivity(selected, text); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	fmt.Printf("✓ Recorded activity for %d hour(s)\n", len(selected))
	return nil
}

func promptForText(initial string) (string, error) {
	text := initial
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What were you doing?").
				Value(&text).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("activity text cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("interactive form error: %w", err)
	}
	return text, nil
}
