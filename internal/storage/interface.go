package storage

import (
	"time"

	"github.com/julianstephens/accountable/internal/models"
)

// Provider is the persistence contract shared by the SQLite and PostgreSQL
// backends. Hour arguments must be floored to the top of the hour before
// calling; the store matches hour slots exactly.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Activities
	HasActivityForHour(hour time.Time) (bool, error)
	// AddActivity records text for an hour slot. If a row already exists for
	// the slot it is overwritten in place; the write is atomic per slot.
	AddActivity(hour time.Time, text string) error
	// LastActivityHour returns the greatest recorded hour slot. The second
	// return is false when the store holds no activities.
	LastActivityHour() (time.Time, bool, error)
	GetActivitiesForDay(day time.Time) ([]models.Activity, error)
	// GetActivitiesForRange returns activities between the start of startDay
	// and the end of endDay inclusive, ordered by hour ascending. Duplicate
	// physical rows for one hour collapse to the latest write.
	GetActivitiesForRange(startDay, endDay time.Time) ([]models.Activity, error)
	GetAllActivities() ([]models.Activity, error)

	// Daily notes
	SaveDailyNote(date time.Time, text string) error
	// GetDailyNote returns the note text for the date, or "" when none exists.
	GetDailyNote(date time.Time) (string, error)
	GetNotesForRange(startDay, endDay time.Time) (map[string]string, error)

	// Analysis cache
	SaveAnalysis(result models.AnalysisResult) error
	// GetSavedAnalysis returns the most recent cached analysis for the exact
	// (label, start, end) key. The second return is false when no row matches.
	GetSavedAnalysis(label string, start, end time.Time) (models.AnalysisResult, bool, error)
}
