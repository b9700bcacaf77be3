package models

import "time"

// Analysis holds the structured output of an AI activity analysis. Every
// field is defensively defaulted when absent from the upstream response, so
// callers can always render something.
type Analysis struct {
	Summary                 string   `json:"summary"`
	Patterns                []string `json:"patterns"`
	Insights                []string `json:"insights"`
	Recommendations         []string `json:"recommendations"`
	ProductivityScore       float64  `json:"productivity_score"`
	ProductivityExplanation string   `json:"productivity_explanation"`
}

// AnalysisResult is a cached Analysis row keyed by the label the user asked
// for and the concrete date bounds that label resolved to at computation
// time. Older rows for the same key are superseded, not deleted.
type AnalysisResult struct {
	ID        int64
	DateRange string
	StartDate time.Time
	EndDate   time.Time
	APIType   string
	Model     string
	Analysis  Analysis
	CreatedAt time.Time
}

// DayActivities groups one day's activities with its daily note for
// presentation to the analysis backend.
type DayActivities struct {
	Date       string       `json:"date"`
	Notes      string       `json:"notes,omitempty"`
	Activities []TimedEntry `json:"activities"`
}

// TimedEntry is the minimal {time, activity} pair the analysis prompt is
// built from.
type TimedEntry struct {
	Time     string `json:"time"` // HH:MM
	Activity string `json:"activity"`
}
