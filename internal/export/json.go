// Package export writes recorded activities and daily notes to JSON or
// plain-text files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/models"
)

type jsonExport struct {
	ExportedAt      string         `json:"export_date"`
	TotalActivities int            `json:"total_activities"`
	TotalNotes      int            `json:"total_notes"`
	Activities      []jsonActivity `json:"activities"`
	DailyNotes      []jsonNote     `json:"daily_notes"`
}

type jsonActivity struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Activity   string `json:"activity"`
	RecordedAt string `json:"recorded_at"`
}

type jsonNote struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// ToJSON writes all activities plus the non-empty notes to path.
func ToJSON(activities []models.Activity, notes map[string]string, path string) error {
	export := jsonExport{
		ExportedAt:      time.Now().Format(time.RFC3339),
		TotalActivities: len(activities),
		Activities:      []jsonActivity{},
		DailyNotes:      []jsonNote{},
	}

	for _, a := range activities {
		export.Activities = append(export.Activities, jsonActivity{
			ID:         a.ID,
			Date:       a.Hour.Format(constants.DateFormat),
			Time:       a.Hour.Format("15:04"),
			Activity:   a.Text,
			RecordedAt: a.RecordedAt.Format(time.RFC3339),
		})
	}

	for date, text := range notes {
		if text == "" {
			continue
		}
		export.DailyNotes = append(export.DailyNotes, jsonNote{Date: date, Notes: text})
	}
	sort.Slice(export.DailyNotes, func(i, j int) bool {
		return export.DailyNotes[i].Date < export.DailyNotes[j].Date
	})
	export.TotalNotes = len(export.DailyNotes)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
