package engine

// Context budget accounting for library aggregation.
//
// Token counts are approximated as len(text)/4. The ratio is deliberately
// crude — it only needs to keep an aggregated prompt from blowing past the
// model's context window, not to match any particular tokenizer.

const (
	// charsPerToken is the character-to-token heuristic ratio.
	charsPerToken = 4

	// headerOverheadTokens covers the section delimiter wrapped around each
	// document included verbatim.
	headerOverheadTokens = 50

	// TruncateFallbackChars is how much of a document survives when
	// summarization fails and the aggregator falls back to truncation.
	TruncateFallbackChars = 2000

	// DefaultContextTokens is a conservative ceiling for 32k-context local
	// models. Override via CONTEXT_TOKENS.
	DefaultContextTokens = 32000
)

// EstimateTokens returns the approximate token count of s.
func EstimateTokens(s string) int {
	return len(s) / charsPerToken
}

// InclusionMode is the decision for a single document during aggregation.
type InclusionMode int

const (
	// ModeRaw includes the document verbatim.
	ModeRaw InclusionMode = iota
	// ModeSummarize replaces the document with an LLM summary.
	ModeSummarize
	// ModeTruncate replaces the document with a fixed-length prefix.
	// Only reached when a summarization call fails.
	ModeTruncate
)

func (m InclusionMode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeSummarize:
		return "summarize"
	case ModeTruncate:
		return "truncate"
	}
	return "unknown"
}

// Budget is the running accumulator for one aggregation run. It is a value:
// each charge returns an updated copy, so the aggregation loop stays a pure
// fold and tests can replay decision sequences without shared state.
type Budget struct {
	Ceiling int // approximate token ceiling, constant for the run
	Used    int // approximate tokens consumed so far
}

// NewBudget returns a budget with the given ceiling. ceiling <= 0 falls back
// to DefaultContextTokens.
func NewBudget(ceiling int) Budget {
	if ceiling <= 0 {
		ceiling = DefaultContextTokens
	}
	return Budget{Ceiling: ceiling}
}

// Remaining returns the unclaimed portion of the ceiling. Never negative.
func (b Budget) Remaining() int {
	if b.Used >= b.Ceiling {
		return 0
	}
	return b.Ceiling - b.Used
}

// Decide returns how a candidate document should be included given the
// current remaining budget. The decision is re-evaluated per document: a
// short document still qualifies for ModeRaw even after an earlier oversized
// one was summarized.
func (b Budget) Decide(content string) InclusionMode {
	if EstimateTokens(content) <= b.Remaining() {
		return ModeRaw
	}
	return ModeSummarize
}

// Charge returns a copy of b with tokens added to the running total.
func (b Budget) Charge(tokens int) Budget {
	if tokens > 0 {
		b.Used += tokens
	}
	return b
}

// ChargeRaw accounts for a verbatim inclusion: the document estimate plus the
// section header overhead.
func (b Budget) ChargeRaw(content string) Budget {
	return b.Charge(EstimateTokens(content) + headerOverheadTokens)
}
