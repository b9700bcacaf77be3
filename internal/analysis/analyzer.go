// Package analysis generates AI-backed summaries of recorded activity,
// talking to a local Ollama instance or the OpenAI API and caching results
// per resolved date range.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/logger"
	"github.com/julianstephens/accountable/internal/models"
)

const systemPrompt = "You are an AI assistant specialized in analyzing time usage and productivity patterns."

// Cache persists analysis results keyed by (label, start, end). Both storage
// backends satisfy it.
type Cache interface {
	SaveAnalysis(result models.AnalysisResult) error
	GetSavedAnalysis(label string, start, end time.Time) (models.AnalysisResult, bool, error)
}

type Config struct {
	// APIType selects the backend, "ollama" or "openai".
	APIType string
	// Model pins a specific model. Empty means pick one: the default
	// OpenAI model, or the best fitting local Ollama model.
	Model string
	// OllamaHost is the base URL of the Ollama server.
	OllamaHost string
	// OpenAIHost is the base URL of the OpenAI-compatible API.
	OpenAIHost string
	// APIKey authenticates against OpenAI. Unused for Ollama.
	APIKey string
	// MaxModelBytes caps automatic Ollama model selection by on-disk
	// size, a rough proxy for memory footprint.
	MaxModelBytes int64
	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

type Analyzer struct {
	cfg    Config
	cache  Cache
	client *http.Client
	now    func() time.Time
}

// Outcome is a completed analysis plus how it was obtained.
type Outcome struct {
	Result models.AnalysisResult
	Kind   ParseKind
	Cached bool
}

func New(cfg Config, cache Cache) *Analyzer {
	if cfg.APIType == "" {
		cfg.APIType = constants.DefaultAPIType
	}
	if cfg.OllamaHost == "" {
		cfg.OllamaHost = constants.DefaultOllamaHost
	}
	if cfg.OpenAIHost == "" {
		cfg.OpenAIHost = constants.DefaultOpenAIHost
	}
	if cfg.MaxModelBytes <= 0 {
		cfg.MaxModelBytes = 8 << 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Analyzer{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
}

// Analyze produces insights for the given activities. A cached result for
// the same resolved range is returned without querying the model; cache
// failures on either path are logged and treated as misses, never as
// analysis failures.
func (a *Analyzer) Analyze(ctx context.Context, activities []models.Activity, label string, notes map[string]string) (Outcome, error) {
	if len(activities) == 0 {
		return Outcome{
			Kind: ParseStructured,
			Result: models.AnalysisResult{
				DateRange: label,
				Analysis: models.Analysis{
					Summary:         "No activities recorded for the selected period.",
					Patterns:        []string{},
					Insights:        []string{},
					Recommendations: []string{},
				},
			},
		}, nil
	}

	start, end := ResolveRange(label, activities, a.now())

	if a.cache != nil {
		cached, ok, err := a.cache.GetSavedAnalysis(label, start, end)
		if err != nil {
			logger.Warn("Analysis cache lookup failed", "error", err)
		} else if ok {
			return Outcome{Result: cached, Kind: ParseStructured, Cached: true}, nil
		}
	}

	model, err := a.resolveModel(ctx)
	if err != nil {
		return Outcome{}, err
	}

	prompt, err := buildPrompt(groupByDay(activities, notes), label)
	if err != nil {
		return Outcome{}, err
	}

	var raw string
	if a.cfg.APIType == "ollama" {
		raw, err = a.queryOllama(ctx, model, prompt)
	} else {
		raw, err = a.queryOpenAI(ctx, model, prompt)
	}
	if err != nil {
		return Outcome{}, err
	}

	parsed := ParseResponse(raw)
	result := models.AnalysisResult{
		DateRange: label,
		StartDate: start,
		EndDate:   end,
		APIType:   a.cfg.APIType,
		Model:     model,
		Analysis:  parsed.Analysis,
		CreatedAt: a.now(),
	}

	if a.cache != nil && parsed.Kind != ParseUnparseable {
		if err := a.cache.SaveAnalysis(result); err != nil {
			logger.Warn("Failed to cache analysis result", "error", err)
		}
	}

	return Outcome{Result: result, Kind: parsed.Kind}, nil
}

func (a *Analyzer) resolveModel(ctx context.Context) (string, error) {
	if a.cfg.Model != "" {
		return a.cfg.Model, nil
	}
	if a.cfg.APIType != "ollama" {
		return constants.DefaultOpenAIModel, nil
	}
	return a.pickOllamaModel(ctx)
}

type ollamaModel struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// pickOllamaModel chooses the most recently updated local model that fits
// the size budget.
func (a *Analyzer) pickOllamaModel(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.OllamaHost+"/api/tags", nil)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to list Ollama models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama model list returned status %d", resp.StatusCode)
	}

	var payload struct {
		Models []ollamaModel `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode Ollama model list: %w", err)
	}

	var candidates []ollamaModel
	for _, m := range payload.Models {
		if m.Size < a.cfg.MaxModelBytes {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no Ollama model fits within %d bytes; set one explicitly", a.cfg.MaxModelBytes)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ModifiedAt.After(candidates[j].ModifiedAt)
	})
	return candidates[0].Name, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (a *Analyzer) queryOllama(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		"format": "json",
		"stream": false,
	})
	if err != nil {
		return "", err
	}

	resp, err := a.post(ctx, a.cfg.OllamaHost+"/api/chat", "", body)
	if err != nil {
		return "", fmt.Errorf("failed to query Ollama: %w", err)
	}

	var payload struct {
		Message chatMessage `json:"message"`
	}
	if err := json.Unmarshal(resp, &payload); err != nil {
		return "", fmt.Errorf("failed to decode Ollama response: %w", err)
	}
	return payload.Message.Content, nil
}

func (a *Analyzer) queryOpenAI(ctx context.Context, model, prompt string) (string, error) {
	if a.cfg.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key not set, run 'accountable key set'")
	}

	body, err := json.Marshal(map[string]any{
		"model": model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		"temperature": 0.7,
	})
	if err != nil {
		return "", err
	}

	resp, err := a.post(ctx, a.cfg.OpenAIHost+"/v1/chat/completions", a.cfg.APIKey, body)
	if err != nil {
		return "", fmt.Errorf("failed to query OpenAI: %w", err)
	}

	var payload struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp, &payload); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("OpenAI response contained no choices")
	}
	return payload.Choices[0].Message.Content, nil
}

func (a *Analyzer) post(ctx context.Context, url, bearer string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(data))
	}
	return data, nil
}

// groupByDay shapes raw activities into per-day documents for the prompt,
// folding in daily notes keyed by date string.
func groupByDay(activities []models.Activity, notes map[string]string) []models.DayActivities {
	byDate := make(map[string][]models.Activity)
	for _, a := range activities {
		date := a.Hour.Format(constants.DateFormat)
		byDate[date] = append(byDate[date], a)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]models.DayActivities, 0, len(dates))
	for _, date := range dates {
		day := models.DayActivities{Date: date, Notes: notes[date]}

		entries := byDate[date]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Hour.Before(entries[j].Hour) })
		for _, a := range entries {
			day.Activities = append(day.Activities, models.TimedEntry{
				Time:     a.Hour.Format("15:04"),
				Activity: a.Text,
			})
		}

		days = append(days, day)
	}

	return days
}

func buildPrompt(days []models.DayActivities, label string) (string, error) {
	if label == "" {
		label = "the selected period"
	}

	data, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze the following daily activities for %s:

`+"```"+`
%s
`+"```"+`

For each day, you have a list of activities with timestamps and possibly daily notes written by the user.

Please provide a comprehensive analysis in JSON format with the following structure:
{
    "summary": "A paragraph summarizing overall patterns and insights",
    "patterns": ["Pattern 1", "Pattern 2"],
    "insights": ["Insight 1", "Insight 2"],
    "recommendations": ["Recommendation 1", "Recommendation 2"],
    "productivity_score": 0,
    "productivity_explanation": "Why the score (0-10) was given"
}

When analyzing, consider:
1. Time management patterns
2. Productivity trends
3. Work-life balance
4. Any user-provided notes and reflections for context
5. Consistency and routine

Make your analysis specific, actionable, and based directly on the data provided.`, label, data), nil
}
