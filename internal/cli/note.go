package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/accountable/internal/constants"
)

type NoteCmd struct {
	Date string `help:"Day the note belongs to (YYYY-MM-DD). Defaults to today."`
	Text string `arg:"" optional:"" help:"Note text. Prompts interactively when omitted."`
	Show bool   `help:"Print the note instead of editing it."`
}

func (c *NoteCmd) Run(ctx *Context) error {
	day, err := ParseDay(c.Date)
	if err != nil {
		return err
	}

	if c.Show {
		note, err := ctx.Store.GetDailyNote(day)
		if err != nil {
			return fmt.Errorf("failed to load daily note: %w", err)
		}
		if note == "" {
			fmt.Printf("No note for %s.\n", day.Format(constants.DateFormat))
			return nil
		}
		fmt.Println(note)
		return nil
	}

	text := c.Text
	if text == "" {
		// Prefill with the existing note so editing appends naturally.
		existing, err := ctx.Store.GetDailyNote(day)
		if err != nil {
			return fmt.Errorf("failed to load daily note: %w", err)
		}

		text = existing
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewText().
					Title(fmt.Sprintf("Note for %s", day.Format(constants.DateFormat))).
					Value(&text),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
	}

	if err := ctx.Store.SaveDailyNote(day, text); err != nil {
		return fmt.Errorf("failed to save daily note: %w", err)
	}

	fmt.Printf("✓ Saved note for %s\n", day.Format(constants.DateFormat))
	return nil
}
