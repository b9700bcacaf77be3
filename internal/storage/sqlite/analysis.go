package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/accountable/internal/models"
)

// SaveAnalysis inserts a new cache row for the result's (label, start, end)
// key. Older rows for the same key are superseded by created_at ordering,
// never deleted.
func (s *Store) SaveAnalysis(result models.AnalysisResult) error {
	patterns, err := json.Marshal(result.Analysis.Patterns)
	if err != nil {
		return fmt.Errorf("failed to marshal patterns: %w", err)
	}
	insights, err := json.Marshal(result.Analysis.Insights)
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}
	recommendations, err := json.Marshal(result.Analysis.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(`
		INSERT INTO analysis_results
		(date_range, start_date, end_date, api_type, model, summary, patterns,
		 insights, recommendations, productivity_score, productivity_explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.DateRange,
		result.StartDate.Format(time.RFC3339),
		result.EndDate.Format(time.RFC3339),
		result.APIType,
		result.Model,
		result.Analysis.Summary,
		string(patterns),
		string(insights),
		string(recommendations),
		result.Analysis.ProductivityScore,
		result.Analysis.ProductivityExplanation,
		createdAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetSavedAnalysis(label string, start, end time.Time) (models.AnalysisResult, bool, error) {
	row := s.db.QueryRow(`
		SELECT id, api_type, model, summary, patterns, insights, recommendations,
		       productivity_score, productivity_explanation, created_at
		FROM analysis_results
		WHERE date_range = ? AND start_date = ? AND end_date = ?
		ORDER BY created_at DESC LIMIT 1`,
		label, start.Format(time.RFC3339), end.Format(time.RFC3339))

	var result models.AnalysisResult
	var patterns, insights, recommendations, createdAt string

	err := row.Scan(&result.ID, &result.APIType, &result.Model, &result.Analysis.Summary,
		&patterns, &insights, &recommendations,
		&result.Analysis.ProductivityScore, &result.Analysis.ProductivityExplanation, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return models.AnalysisResult{}, false, nil
		}
		return models.AnalysisResult{}, false, err
	}

	// Malformed stored JSON degrades to a cache miss, not an error.
	if json.Unmarshal([]byte(patterns), &result.Analysis.Patterns) != nil ||
		json.Unmarshal([]byte(insights), &result.Analysis.Insights) != nil ||
		json.Unmarshal([]byte(recommendations), &result.Analysis.Recommendations) != nil {
		return models.AnalysisResult{}, false, nil
	}

	result.DateRange = label
	result.StartDate = start
	result.EndDate = end
	result.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.AnalysisResult{}, false, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return result, true, nil
}
