package engine

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"empty", "", 0},
		{"under one token", "abc", 0},
		{"exactly one token", "abcd", 1},
		{"hundred chars", strings.Repeat("x", 100), 25},
		{"multibyte counts bytes", "日本語", 2}, // 9 bytes / 4
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.s); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

func TestNewBudgetDefault(t *testing.T) {
	if b := NewBudget(0); b.Ceiling != DefaultContextTokens {
		t.Errorf("NewBudget(0).Ceiling = %d, want %d", b.Ceiling, DefaultContextTokens)
	}
	if b := NewBudget(-5); b.Ceiling != DefaultContextTokens {
		t.Errorf("NewBudget(-5).Ceiling = %d, want %d", b.Ceiling, DefaultContextTokens)
	}
	if b := NewBudget(1000); b.Ceiling != 1000 {
		t.Errorf("NewBudget(1000).Ceiling = %d, want 1000", b.Ceiling)
	}
}

func TestBudgetRemaining(t *testing.T) {
	b := Budget{Ceiling: 100, Used: 30}
	if got := b.Remaining(); got != 70 {
		t.Errorf("Remaining() = %d, want 70", got)
	}

	// Overspent budgets report zero, never negative.
	b = Budget{Ceiling: 100, Used: 150}
	if got := b.Remaining(); got != 0 {
		t.Errorf("Remaining() overspent = %d, want 0", got)
	}
}

func TestBudgetDecide(t *testing.T) {
	small := strings.Repeat("a", 40)    // 10 tokens
	large := strings.Repeat("a", 40000) // 10000 tokens

	b := NewBudget(100)
	if got := b.Decide(small); got != ModeRaw {
		t.Errorf("Decide(small) = %v, want raw", got)
	}
	if got := b.Decide(large); got != ModeSummarize {
		t.Errorf("Decide(large) = %v, want summarize", got)
	}

	// Exactly-fitting content is still raw.
	exact := strings.Repeat("a", 400) // 100 tokens
	if got := b.Decide(exact); got != ModeRaw {
		t.Errorf("Decide(exact fit) = %v, want raw", got)
	}
}

func TestBudgetDecideRecovers(t *testing.T) {
	// A short document after an oversized one still goes raw: the decision
	// depends only on the remaining budget, not on earlier outcomes.
	b := NewBudget(100)
	large := strings.Repeat("a", 40000)
	small := strings.Repeat("a", 40)

	if got := b.Decide(large); got != ModeSummarize {
		t.Fatalf("Decide(large) = %v, want summarize", got)
	}
	b = b.Charge(EstimateTokens("summary text"))
	if got := b.Decide(small); got != ModeRaw {
		t.Errorf("Decide(small after large) = %v, want raw", got)
	}
}

func TestBudgetCharge(t *testing.T) {
	b := NewBudget(100)
	b2 := b.Charge(30)
	if b2.Used != 30 {
		t.Errorf("Charge(30).Used = %d, want 30", b2.Used)
	}
	if b.Used != 0 {
		t.Errorf("original budget mutated: Used = %d, want 0", b.Used)
	}
	if b3 := b2.Charge(-10); b3.Used != 30 {
		t.Errorf("negative charge applied: Used = %d, want 30", b3.Used)
	}
}

func TestBudgetChargeRaw(t *testing.T) {
	content := strings.Repeat("a", 400) // 100 tokens
	b := NewBudget(1000).ChargeRaw(content)
	want := 100 + headerOverheadTokens
	if b.Used != want {
		t.Errorf("ChargeRaw().Used = %d, want %d", b.Used, want)
	}
}

func TestInclusionModeString(t *testing.T) {
	tests := []struct {
		mode InclusionMode
		want string
	}{
		{ModeRaw, "raw"},
		{ModeSummarize, "summarize"},
		{ModeTruncate, "truncate"},
		{InclusionMode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("InclusionMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
