package sqlite

import (
	"fmt"

	"github.com/julianstephens/accountable/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "api_type":
			settings.APIType = value
		case "model":
			settings.Model = value
		case "ollama_host":
			settings.OllamaHost = value
		case "reminder_window_min":
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderWindowMin); err != nil {
				return models.Settings{}, fmt.Errorf("parsing reminder_window_min: %w", err)
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := map[string]string{
		"api_type":            settings.APIType,
		"model":               settings.Model,
		"ollama_host":         settings.OllamaHost,
		"reminder_window_min": fmt.Sprintf("%d", settings.ReminderWindowMin),
	}
	for key, value := range pairs {
		if _, err := stmt.Exec(key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}
