package sqlite

import (
	"time"

	"github.com/julianstephens/accountable/internal/constants"
)

// SaveDailyNote upserts the note for a calendar day. A second write for the
// same date overwrites the text and bumps updated_at.
func (s *Store) SaveDailyNote(date time.Time, text string) error {
	dateStr := date.Format(constants.DateFormat)
	now := time.Now().Format(time.RFC3339)

	_, err := s.db.Exec(`
		INSERT INTO daily_notes (date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		dateStr, text, now, now)

	return err
}

func (s *Store) GetDailyNote(date time.Time) (string, error) {
	var text string
	err := s.db.QueryRow(`SELECT notes FROM daily_notes WHERE date = ?`,
		date.Format(constants.DateFormat)).Scan(&text)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return text, nil
}

func (s *Store) GetNotesForRange(startDay, endDay time.Time) (map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT date, notes FROM daily_notes
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC`,
		startDay.Format(constants.DateFormat), endDay.Format(constants.DateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make(map[string]string)
	for rows.Next() {
		var date, text string
		if err := rows.Scan(&date, &text); err != nil {
			return nil, err
		}
		notes[date] = text
	}

	return notes, rows.Err()
}
