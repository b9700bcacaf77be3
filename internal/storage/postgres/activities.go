package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/hours"
	"github.com/julianstephens/accountable/internal/models"
)

func hourKey(h time.Time) string {
	return h.Format(constants.HourKeyFormat)
}

func (s *Store) HasActivityForHour(hour time.Time) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM activities WHERE hour = $1`, hourKey(hour)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) AddActivity(hour time.Time, text string) error {
	now := time.Now().Format(time.RFC3339)
	key := hourKey(hour)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE activities SET timestamp = $1, activity = $2 WHERE hour = $3`, now, text, key)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		_, err = tx.Exec(`
			INSERT INTO activities (timestamp, hour, activity, created_at)
			VALUES ($1, $2, $3, $4)`, now, key, text, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) LastActivityHour() (time.Time, bool, error) {
	var key string
	err := s.db.QueryRow(`SELECT hour FROM activities ORDER BY hour DESC LIMIT 1`).Scan(&key)
	if err != nil {
		if isNoRows(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}

	h, err := time.Parse(constants.HourKeyFormat, key)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse hour %q: %w", key, err)
	}
	return h, true, nil
}

func (s *Store) GetActivitiesForDay(day time.Time) ([]models.Activity, error) {
	return s.GetActivitiesForRange(day, day)
}

func (s *Store) GetActivitiesForRange(startDay, endDay time.Time) ([]models.Activity, error) {
	start := hours.DayStart(startDay).Format(constants.HourKeyFormat)
	end := hours.DayEnd(endDay).Format(constants.HourKeyFormat)

	rows, err := s.db.Query(`
		SELECT a.id, a.timestamp, a.hour, a.activity, a.created_at
		FROM activities a
		JOIN (
			SELECT hour, MAX(timestamp) AS max_timestamp
			FROM activities
			WHERE hour BETWEEN $1 AND $2
			GROUP BY hour
		) b ON a.hour = b.hour AND a.timestamp = b.max_timestamp
		ORDER BY a.hour ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (s *Store) GetAllActivities() ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.timestamp, a.hour, a.activity, a.created_at
		FROM activities a
		JOIN (
			SELECT hour, MAX(timestamp) AS max_timestamp
			FROM activities
			GROUP BY hour
		) b ON a.hour = b.hour AND a.timestamp = b.max_timestamp
		ORDER BY a.hour ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

func scanActivities(rows *sql.Rows) ([]models.Activity, error) {
	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		var timestamp, hour, createdAt string

		if err := rows.Scan(&a.ID, &timestamp, &hour, &a.Text, &createdAt); err != nil {
			return nil, err
		}

		var err error
		a.RecordedAt, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp for activity %d: %w", a.ID, err)
		}
		a.Hour, err = time.Parse(constants.HourKeyFormat, hour)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hour for activity %d: %w", a.ID, err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for activity %d: %w", a.ID, err)
		}

		activities = append(activities, a)
	}

	return activities, rows.Err()
}
