package engine

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/time/rate"
)

// ErrCompletion wraps any failure of the completion capability (unreachable
// endpoint, timeout, bad status). Callers that can degrade — the aggregator's
// truncation fallback — match on it with errors.Is.
var ErrCompletion = errors.New("completion failed")

// limiter throttles outbound LLM calls. nil = unlimited.
var limiter *rate.Limiter

func initLimiter(perMinute int) {
	if perMinute <= 0 {
		limiter = nil
		return
	}
	limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)
}

// thinkRE matches <think>...</think> blocks emitted by reasoning models
// (DeepSeek-R1 and friends).
var thinkRE = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThink removes reasoning blocks from model output.
func StripThink(s string) string {
	return strings.TrimSpace(thinkRE.ReplaceAllString(s, ""))
}

// stripFences removes a wrapping markdown code fence from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
// Reasoning blocks and wrapping fences are stripped from the response.
// All failures come back wrapped in ErrCompletion.
func CallLLM(ctx context.Context, prompt string) (string, error) {
	metrics.LLMCalls.Add(1)
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			metrics.LLMErrors.Add(1)
			return "", errors.Join(ErrCompletion, err)
		}
	}
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", errors.Join(ErrCompletion, err)
	}
	return stripFences(StripThink(resp)), nil
}

// ExtractMarkdown unwraps a markdown document from a fenced model response.
// Returns the input unchanged when no fence is present.
func ExtractMarkdown(s string) string {
	if idx := strings.Index(s, "```markdown"); idx >= 0 {
		rest := s[idx+len("```markdown"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the first top-level {...} object in s, or "".
// Models frequently wrap JSON in prose; find the outermost braces instead of
// trusting the whole response.
func ExtractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
