package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/export"
	"github.com/julianstephens/accountable/internal/logger"
)

type ExportCmd struct {
	Format string `help:"Export format." default:"json" enum:"json,text"`
	Output string `help:"Output file path. Defaults to accountable-export-<date>.<ext>."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	// Collect the note for every day that has activity.
	notes := make(map[string]string)
	for _, a := range activities {
		date := a.Hour.Format(constants.DateFormat)
		if _, ok := notes[date]; ok {
			continue
		}
		note, err := ctx.Store.GetDailyNote(a.Hour)
		if err != nil {
			logger.Warn("Failed to load note for export", "date", date, "error", err)
			continue
		}
		notes[date] = note
	}

	path := c.Output
	if path == "" {
		ext := "json"
		if c.Format == "text" {
			ext = "txt"
		}
		path = fmt.Sprintf("accountable-export-%s.%s", time.Now().Format("20060102"), ext)
	}

	switch c.Format {
	case "json":
		err = export.ToJSON(activities, notes, path)
	case "text":
		err = export.ToText(activities, notes, path)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Exported %d activities to %s\n", len(activities), path)
	return nil
}
