package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/logger"
	"github.com/julianstephens/accountable/internal/models"
	"github.com/julianstephens/accountable/internal/scheduler"
	"github.com/julianstephens/accountable/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
}

// LoadSettings returns the stored settings, falling back to defaults when
// the read fails so commands keep working against a degraded store.
func (c *Context) LoadSettings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		return models.Settings{
			APIType:           constants.DefaultAPIType,
			OllamaHost:        constants.DefaultOllamaHost,
			ReminderWindowMin: constants.ReminderWindowMin,
		}
	}
	if settings.ReminderWindowMin <= 0 {
		settings.ReminderWindowMin = constants.ReminderWindowMin
	}
	return settings
}

// ParseDay parses a YYYY-MM-DD argument. Empty means today.
func ParseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(constants.DateFormat, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", value)
	}
	return day, nil
}
