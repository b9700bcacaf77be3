package analysis

import (
	"encoding/json"
	"strings"

	"github.com/julianstephens/accountable/internal/models"
)

// ParseKind tags how a model response was interpreted.
type ParseKind int

const (
	// ParseStructured means the response carried a valid JSON document.
	ParseStructured ParseKind = iota
	// ParseFallback means the response was plain text parsed by the line
	// heuristic; the result is best-effort.
	ParseFallback
	// ParseUnparseable means the response looked like JSON but was not
	// decodable; the result carries a placeholder summary and is not
	// worth caching.
	ParseUnparseable
)

type ParseResult struct {
	Kind     ParseKind
	Analysis models.Analysis
}

// ParseResponse interprets a raw model response. Models wrap JSON in prose
// or code fences often enough that the document is located by the outermost
// brace pair rather than decoded directly.
func ParseResponse(raw string) ParseResult {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start < 0 || end <= start {
		return ParseResult{Kind: ParseFallback, Analysis: manualParse(raw)}
	}

	var payload struct {
		Summary                 string   `json:"summary"`
		Patterns                []string `json:"patterns"`
		Insights                []string `json:"insights"`
		Recommendations         []string `json:"recommendations"`
		ProductivityScore       float64  `json:"productivity_score"`
		ProductivityExplanation string   `json:"productivity_explanation"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return ParseResult{
			Kind: ParseUnparseable,
			Analysis: models.Analysis{
				Summary:         "Failed to parse AI analysis.",
				Patterns:        []string{},
				Insights:        []string{},
				Recommendations: []string{},
			},
		}
	}

	a := models.Analysis{
		Summary:                 payload.Summary,
		Patterns:                payload.Patterns,
		Insights:                payload.Insights,
		Recommendations:         payload.Recommendations,
		ProductivityScore:       payload.ProductivityScore,
		ProductivityExplanation: payload.ProductivityExplanation,
	}
	if a.Summary == "" {
		a.Summary = "No analysis available."
	}
	if a.Patterns == nil {
		a.Patterns = []string{}
	}
	if a.Insights == nil {
		a.Insights = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}

	return ParseResult{Kind: ParseStructured, Analysis: a}
}

// manualParse recovers list items from a plain-text response. Section
// headers are matched loosely ("Patterns:", "Key insights:", etc); items
// are bullet or numbered lines, and continuation lines are folded into the
// previous item.
func manualParse(raw string) models.Analysis {
	a := models.Analysis{
		Patterns:        []string{},
		Insights:        []string{},
		Recommendations: []string{},
	}

	var section *[]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		hasColon := strings.Contains(line, ":")
		switch {
		case strings.Contains(lower, "summary") && hasColon:
			section = nil
			if _, rest, ok := strings.Cut(line, ":"); ok {
				a.Summary = strings.TrimSpace(rest)
			}
		case strings.Contains(lower, "pattern") && hasColon:
			section = &a.Patterns
		case strings.Contains(lower, "insight") && hasColon:
			section = &a.Insights
		case strings.Contains(lower, "recommendation") && hasColon:
			section = &a.Recommendations
		case section != nil:
			if item, ok := listItem(line); ok {
				*section = append(*section, item)
			} else if n := len(*section); n > 0 {
				(*section)[n-1] += " " + line
			}
		}
	}

	return a
}

func listItem(line string) (string, bool) {
	numbered := len(line) >= 3 && line[0] >= '0' && line[0] <= '9' &&
		(line[1:3] == ". " || line[1:3] == ") ")
	if !numbered && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
		return "", false
	}

	_, rest, ok := strings.Cut(line, " ")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
