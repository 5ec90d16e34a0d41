package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

// Aggregation: fold the whole library into one synthesis-ready blob without
// blowing the model's context window. Documents are visited in lexicographic
// order; each one is included verbatim while the budget allows, summarized
// through the LLM once it would overflow, and truncated when the
// summarization call itself fails. Every surviving document contributes
// something, and information loss is always marked in the blob itself.

// SummarizeFunc produces the condensed form of one document. It matches
// engine.SummarizeDocument; tests substitute deterministic or failing
// implementations.
type SummarizeFunc func(ctx context.Context, name, content string) (string, error)

// Aggregator combines library documents into a single bounded-size blob.
type Aggregator struct {
	Lib       Library
	Ceiling   int           // approximate token budget; <=0 → engine default
	Summarize SummarizeFunc // nil → every overflow degrades to truncation
}

// Aggregate reads all documents matching the optional topic filter and folds
// them into one blob. Returns the blob and the number of documents appended.
//
// A missing or unreadable library yields ("", 0): callers treat an empty
// blob as "nothing to synthesize" and abort the pipeline stage. A document
// that fails to read is skipped with a log line; the run continues.
func (a Aggregator) Aggregate(ctx context.Context, topic string) (string, int) {
	engine.IncrAggregateRuns()

	if !a.Lib.Exists() {
		slog.Error("aggregate: library directory not found", slog.String("dir", a.Lib.Dir))
		return "", 0
	}
	names, err := a.Lib.List()
	if err != nil {
		slog.Error("aggregate: library unreadable", slog.String("dir", a.Lib.Dir), slog.Any("error", err))
		return "", 0
	}

	var blob strings.Builder
	budget := engine.NewBudget(a.Ceiling)
	count := 0

	for _, name := range names {
		content, err := a.Lib.Read(name)
		if err != nil {
			slog.Warn("aggregate: skipping unreadable document", slog.String("name", name), slog.Any("error", err))
			continue
		}
		if !MatchesTopic(content, name, topic) {
			continue
		}

		var section string
		section, budget = a.renderSection(ctx, name, content, budget)
		blob.WriteString(section)
		count++
	}

	slog.Info("aggregate: done",
		slog.Int("documents", count),
		slog.Int("estimated_tokens", budget.Used),
		slog.Int("ceiling", budget.Ceiling))
	return blob.String(), count
}

// renderSection decides the inclusion mode for one document against the
// current budget, renders its section, and returns the budget with the
// section's cost folded in. Budget is a value, so the fold stays explicit
// in the caller.
func (a Aggregator) renderSection(ctx context.Context, name, content string, budget engine.Budget) (string, engine.Budget) {
	if budget.Decide(content) == engine.ModeRaw {
		section := fmt.Sprintf("\n\n--- DOCUMENT: %s ---\n\n%s", name, content)
		return section, budget.ChargeRaw(content)
	}

	slog.Warn("aggregate: context budget exceeded, summarizing",
		slog.String("name", name), slog.Int("remaining", budget.Remaining()))

	if a.Summarize != nil {
		summary, err := a.Summarize(ctx, name, content)
		if err == nil {
			engine.IncrDocsSummarized()
			section := fmt.Sprintf("\n\n--- SUMMARY OF: %s ---\n\n%s", name, summary)
			return section, budget.Charge(engine.EstimateTokens(section))
		}
		slog.Error("aggregate: summarization failed, truncating",
			slog.String("name", name), slog.Any("error", err))
	}

	engine.IncrDocsTruncated()
	// Rune-safe: a byte slice could split a multibyte character and leak
	// invalid UTF-8 into the blob.
	prefix := engine.TruncateRunes(content, engine.TruncateFallbackChars, "")
	section := fmt.Sprintf("\n\n--- TRUNCATED DOCUMENT: %s ---\n\n%s...", name, prefix)
	return section, budget.Charge(engine.EstimateTokens(section))
}
