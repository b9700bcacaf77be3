package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/models"
)

type fakeCache struct {
	saved   []models.AnalysisResult
	saveErr error
	getErr  error
}

func (f *fakeCache) SaveAnalysis(result models.AnalysisResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, result)
	return nil
}

func (f *fakeCache) GetSavedAnalysis(label string, start, end time.Time) (models.AnalysisResult, bool, error) {
	if f.getErr != nil {
		return models.AnalysisResult{}, false, f.getErr
	}
	for i := len(f.saved) - 1; i >= 0; i-- {
		r := f.saved[i]
		if r.DateRange == label && r.StartDate.Equal(start) && r.EndDate.Equal(end) {
			return r, true, nil
		}
	}
	return models.AnalysisResult{}, false, nil
}

func activityAt(t *testing.T, value, text string) models.Activity {
	t.Helper()
	h, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return models.Activity{Hour: h, Text: text}
}

func fakeOllama(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]any{
				"models": []map[string]any{
					{"name": "small", "size": 1 << 20, "modified_at": "2024-01-02T00:00:00Z"},
					{"name": "huge", "size": int64(64) << 30, "modified_at": "2024-03-01T00:00:00Z"},
				},
			})
		case "/api/chat":
			var req struct {
				Stream bool   `json:"stream"`
				Format string `json:"format"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			if req.Stream {
				t.Error("streaming must be disabled")
			}
			if req.Format != "json" {
				t.Errorf("format = %q, want json", req.Format)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]string{"role": "assistant", "content": content},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestAnalyzeEmptyActivities(t *testing.T) {
	a := New(Config{}, nil)
	out, err := a.Analyze(context.Background(), nil, constants.RangeToday, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.Result.Analysis.Summary != "No activities recorded for the selected period." {
		t.Errorf("summary = %q", out.Result.Analysis.Summary)
	}
}

func TestAnalyzeQueriesAndCaches(t *testing.T) {
	srv := fakeOllama(t, `{"summary": "Focused day.", "patterns": [], "insights": [], "recommendations": []}`)
	defer srv.Close()

	cache := &fakeCache{}
	a := New(Config{APIType: "ollama", OllamaHost: srv.URL, Model: "test-model"}, cache)

	activities := []models.Activity{
		activityAt(t, "2024-01-01T09:00", "standup"),
		activityAt(t, "2024-01-01T10:00", "code review"),
	}

	out, err := a.Analyze(context.Background(), activities, constants.RangeToday, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.Cached {
		t.Error("first analysis should not come from cache")
	}
	if out.Result.Analysis.Summary != "Focused day." {
		t.Errorf("summary = %q", out.Result.Analysis.Summary)
	}
	if len(cache.saved) != 1 {
		t.Fatalf("expected one cached result, got %d", len(cache.saved))
	}

	// Same activities, same label: served from cache without hitting the
	// model again.
	srv.Close()
	out, err = a.Analyze(context.Background(), activities, constants.RangeToday, nil)
	if err != nil {
		t.Fatalf("cached analyze: %v", err)
	}
	if !out.Cached {
		t.Error("second analysis should come from cache")
	}
}

func TestAnalyzeCacheErrorsAreSoft(t *testing.T) {
	srv := fakeOllama(t, `{"summary": "Fine.", "patterns": [], "insights": [], "recommendations": []}`)
	defer srv.Close()

	cache := &fakeCache{getErr: context.DeadlineExceeded, saveErr: context.DeadlineExceeded}
	a := New(Config{APIType: "ollama", OllamaHost: srv.URL, Model: "test-model"}, cache)

	out, err := a.Analyze(context.Background(), []models.Activity{activityAt(t, "2024-01-01T09:00", "standup")}, constants.RangeToday, nil)
	if err != nil {
		t.Fatalf("analyze should survive cache failures: %v", err)
	}
	if out.Result.Analysis.Summary != "Fine." {
		t.Errorf("summary = %q", out.Result.Analysis.Summary)
	}
}

func TestAnalyzeSkipsCachingUnparseable(t *testing.T) {
	srv := fakeOllama(t, `{"summary": broken}`)
	defer srv.Close()

	cache := &fakeCache{}
	a := New(Config{APIType: "ollama", OllamaHost: srv.URL, Model: "test-model"}, cache)

	out, err := a.Analyze(context.Background(), []models.Activity{activityAt(t, "2024-01-01T09:00", "standup")}, constants.RangeToday, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.Kind != ParseUnparseable {
		t.Fatalf("kind = %v, want unparseable", out.Kind)
	}
	if len(cache.saved) != 0 {
		t.Error("unparseable results must not be cached")
	}
}

func TestPickOllamaModelSkipsOversizedModels(t *testing.T) {
	srv := fakeOllama(t, "")
	defer srv.Close()

	a := New(Config{APIType: "ollama", OllamaHost: srv.URL}, nil)
	model, err := a.pickOllamaModel(context.Background())
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	// "huge" is newer but over budget.
	if model != "small" {
		t.Errorf("model = %q, want small", model)
	}
}

func TestPromptAsksForTenPointScore(t *testing.T) {
	prompt, err := buildPrompt([]models.DayActivities{{Date: "2024-01-01"}}, constants.RangeToday)
	if err != nil {
		t.Fatalf("buildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "(0-10)") {
		t.Error("prompt must ask for a score on the 0-10 scale")
	}
	if strings.Contains(prompt, "0-100") {
		t.Error("prompt must not mention a 0-100 scale")
	}
}

func TestResolveRangeActivitySpanWins(t *testing.T) {
	activities := []models.Activity{
		activityAt(t, "2024-01-03T15:00", "later"),
		activityAt(t, "2024-01-01T09:00", "earlier"),
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	start, end := ResolveRange(constants.RangeLastWeek, activities, now)
	if start.Day() != 1 || start.Hour() != 0 {
		t.Errorf("start = %v, want midnight Jan 1", start)
	}
	if end.Day() != 3 || end.Hour() != 23 {
		t.Errorf("end = %v, want end of Jan 3", end)
	}

	// Same inputs resolve to the same bounds, keeping the cache key stable.
	start2, end2 := ResolveRange(constants.RangeLastWeek, activities, now.Add(48*time.Hour))
	if !start.Equal(start2) || !end.Equal(end2) {
		t.Error("range must be deterministic for fixed activities")
	}
}

func TestResolveRangeLabels(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	start, end := ResolveRange(constants.RangeYesterday, nil, now)
	if start.Day() != 14 || end.Day() != 14 {
		t.Errorf("yesterday = [%v, %v]", start, end)
	}

	start, _ = ResolveRange(constants.RangeLast3Days, nil, now)
	if start.Day() != 12 {
		t.Errorf("last 3 days start = %v", start)
	}

	start, _ = ResolveRange("Bogus", nil, now)
	if start.Day() != 14 {
		t.Errorf("unknown label should default to one day back, got %v", start)
	}
}
