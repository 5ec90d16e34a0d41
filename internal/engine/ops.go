package engine

import (
	"context"
	"fmt"
	"time"
)

// Default deadlines for the delegated completion calls. Synthesis reads the
// whole aggregated blob, so it gets twice the room.
const (
	SummarizeTimeout = 300 * time.Second
	SynthesisTimeout = 600 * time.Second
)

// AnalyzeTranscript runs the Librarian analysis over a cleaned transcript.
func AnalyzeTranscript(ctx context.Context, meta VideoMeta, transcript string) (string, error) {
	prompt := fmt.Sprintf(analysisPrompt,
		meta.Title, meta.Channel, meta.URL, meta.Views, meta.Likes, meta.Duration, transcript)
	report, err := CallLLM(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analyze %s: %w", meta.ID, err)
	}
	return report, nil
}

// SummarizeDocument condenses one library document to fit the context budget.
func SummarizeDocument(ctx context.Context, name, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, SummarizeTimeout)
	defer cancel()
	return CallLLM(ctx, fmt.Sprintf(summarizePrompt, name, content))
}

// SynthesizeStrategy sends the aggregated library text to the model for
// multi-document synthesis and unwraps the markdown report.
func SynthesizeStrategy(ctx context.Context, aggregated, topicName string) (string, error) {
	metrics.SynthesisRuns.Add(1)
	ctx, cancel := context.WithTimeout(ctx, SynthesisTimeout)
	defer cancel()
	raw, err := CallLLM(ctx, fmt.Sprintf(synthesisPrompt, aggregated, topicName))
	if err != nil {
		return "", fmt.Errorf("synthesize %q: %w", topicName, err)
	}
	return ExtractMarkdown(raw), nil
}

// EvaluateSkill asks the model whether a skill is worth promoting.
// research is the context extracted around the skill in its source report.
func EvaluateSkill(ctx context.Context, skillName, research string) (string, error) {
	return CallLLM(ctx, fmt.Sprintf(evaluatePrompt, skillName, research))
}

// GenerateSkillFiles asks the model for the three production skill files.
// Returns the raw response; JSON extraction and validation happen in the
// bridge layer.
func GenerateSkillFiles(ctx context.Context, skillName, evaluation, research string) (string, error) {
	return CallLLM(ctx, fmt.Sprintf(generatePrompt, skillName, evaluation, research))
}

// HealCode asks the model for a corrected version of a broken script.
func HealCode(ctx context.Context, path, code, errLog string) (string, error) {
	raw, err := CallLLM(ctx, fmt.Sprintf(healPrompt, path, code, errLog))
	if err != nil {
		return "", fmt.Errorf("heal %s: %w", path, err)
	}
	return ExtractMarkdown(raw), nil
}
