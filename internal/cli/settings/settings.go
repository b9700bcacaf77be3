package settings

import (
	"fmt"

	"github.com/julianstephens/accountable/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	APIType           *string `help:"AI backend to use (ollama or openai)."`
	Model             *string `help:"Model name. Empty means automatic selection."`
	OllamaHost        *string `help:"Base URL of the Ollama server."`
	ReminderWindowMin *int    `help:"Minutes past the top of the hour during which periodic checks may remind."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  API Type:            %s\n", settings.APIType)
		model := settings.Model
		if model == "" {
			model = "(automatic)"
		}
		fmt.Printf("  Model:               %s\n", model)
		fmt.Printf("  Ollama Host:         %s\n", settings.OllamaHost)
		fmt.Printf("  Reminder Window:     %d min\n", settings.ReminderWindowMin)
		return nil
	}

	updated := false
	if c.APIType != nil {
		if *c.APIType != "ollama" && *c.APIType != "openai" {
			return fmt.Errorf("invalid API type %q (use ollama or openai)", *c.APIType)
		}
		settings.APIType = *c.APIType
		updated = true
	}
	if c.Model != nil {
		settings.Model = *c.Model
		updated = true
	}
	if c.OllamaHost != nil {
		settings.OllamaHost = *c.OllamaHost
		updated = true
	}
	if c.ReminderWindowMin != nil {
		if *c.ReminderWindowMin < 1 || *c.ReminderWindowMin > 59 {
			return fmt.Errorf("reminder window must be between 1 and 59 minutes")
		}
		settings.ReminderWindowMin = *c.ReminderWindowMin
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
