package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/accountable/internal/analysis"
	"github.com/julianstephens/accountable/internal/keyring"
	"github.com/julianstephens/accountable/internal/logger"
)

type AnalyzeCmd struct {
	Range string `help:"Date range to analyze." default:"Today" enum:"Today,Yesterday,Last 3 Days,Last Week,Last Month"`
	Model string `help:"Override the configured model for this run."`
}

type analyzeResult struct {
	out analysis.Outcome
	err error
}

func (c *AnalyzeCmd) Run(ctx *Context) error {
	settings := ctx.LoadSettings()

	start, end := analysis.ResolveRange(c.Range, nil, time.Now())
	activities, err := ctx.Store.GetActivitiesForRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	notes, err := ctx.Store.GetNotesForRange(start, end)
	if err != nil {
		logger.Warn("Failed to load daily notes for analysis", "error", err)
		notes = map[string]string{}
	}

	model := settings.Model
	if c.Model != "" {
		model = c.Model
	}

	cfg := analysis.Config{
		APIType:    settings.APIType,
		Model:      model,
		OllamaHost: settings.OllamaHost,
	}
	if settings.APIType == "openai" {
		key, err := keyring.GetAPIKey()
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to read API key from keyring: %w", err)
		}
		cfg.APIKey = key
	}

	analyzer := analysis.New(cfg, ctx.Store)

	// The model call can take a while; run it off the main goroutine so a
	// future progress UI can sit in front of it.
	ch := make(chan analyzeResult, 1)
	go func() {
		out, err := analyzer.Analyze(context.Background(), activities, c.Range, notes)
		ch <- analyzeResult{out, err}
	}()

	fmt.Printf("Analyzing %s (%d activities)...\n", c.Range, len(activities))
	res := <-ch
	if res.err != nil {
		return res.err
	}

	printOutcome(res.out)
	return nil
}

func printOutcome(out analysis.Outcome) {
	a := out.Result.Analysis

	fmt.Println()
	if out.Cached {
		fmt.Println(subtleStyle.Render(fmt.Sprintf("(cached result from %s)", out.Result.CreatedAt.Format("2006-01-02 15:04"))))
	}
	if out.Kind == analysis.ParseFallback {
		fmt.Println(subtleStyle.Render("(model returned plain text; results are best-effort)"))
	}

	fmt.Println(titleStyle.Render("Summary"))
	fmt.Printf("  %s\n", a.Summary)

	if a.ProductivityScore > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render(fmt.Sprintf("Productivity Score: %.0f/10", a.ProductivityScore)))
		if a.ProductivityExplanation != "" {
			fmt.Printf("  %s\n", a.ProductivityExplanation)
		}
	}

	printSection("Patterns", a.Patterns)
	printSection("Insights", a.Insights)
	printSection("Recommendations", a.Recommendations)
}

func printSection(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(titleStyle.Render(title))
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
