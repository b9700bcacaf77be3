package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/accountable/internal/models"
)

func sampleData(t *testing.T) ([]models.Activity, map[string]string) {
	t.Helper()

	hour := func(value string) time.Time {
		h, err := time.Parse("2006-01-02T15:04", value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		return h
	}

	activities := []models.Activity{
		{ID: 1, Hour: hour("2024-01-01T09:00"), Text: "standup", RecordedAt: hour("2024-01-01T09:02")},
		{ID: 2, Hour: hour("2024-01-01T10:00"), Text: "code review", RecordedAt: hour("2024-01-01T10:05")},
		{ID: 3, Hour: hour("2024-01-02T14:00"), Text: "planning", RecordedAt: hour("2024-01-02T14:01")},
	}
	notes := map[string]string{
		"2024-01-01": "Good start to the year.",
		"2024-01-02": "",
	}

	return activities, notes
}

func TestToJSON(t *testing.T) {
	activities, notes := sampleData(t)
	path := filepath.Join(t.TempDir(), "export.json")

	if err := ToJSON(activities, notes, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var export struct {
		TotalActivities int `json:"total_activities"`
		TotalNotes      int `json:"total_notes"`
		Activities      []struct {
			Date     string `json:"date"`
			Time     string `json:"time"`
			Activity string `json:"activity"`
		} `json:"activities"`
		DailyNotes []struct {
			Date string `json:"date"`
		} `json:"daily_notes"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if export.TotalActivities != 3 {
		t.Errorf("total_activities = %d, want 3", export.TotalActivities)
	}
	// Empty notes are excluded.
	if export.TotalNotes != 1 || len(export.DailyNotes) != 1 {
		t.Errorf("total_notes = %d, daily_notes = %v", export.TotalNotes, export.DailyNotes)
	}
	if export.Activities[0].Time != "09:00" || export.Activities[0].Activity != "standup" {
		t.Errorf("first activity = %+v", export.Activities[0])
	}
}

func TestToText(t *testing.T) {
	activities, notes := sampleData(t)
	path := filepath.Join(t.TempDir(), "export.txt")

	if err := ToText(activities, notes, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"Total activities: 3",
		"Total daily notes: 1",
		"=== 2024-01-01 ===",
		"09:00: standup",
		"DAILY NOTE:\nGood start to the year.",
		"=== 2024-01-02 ===",
		"14:00: planning",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Day two has no note, so no note section follows it.
	dayTwo := out[strings.Index(out, "=== 2024-01-02 ==="):]
	if strings.Contains(dayTwo, "DAILY NOTE") {
		t.Error("day without a note must not print a note section")
	}
}
