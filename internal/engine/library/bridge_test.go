package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "promote",
			in:   "Some reasoning.\nDECISION: [PROMOTE]\nREASONING: solid pattern",
			want: DecisionPromote,
		},
		{
			name: "reject",
			in:   "DECISION: [REJECT]\nREASONING: too vague",
			want: DecisionReject,
		},
		{
			name: "lowercase accepted",
			in:   "decision: [promote]",
			want: DecisionPromote,
		},
		{
			name: "extra spaces",
			in:   "DECISION:   [REJECT]",
			want: DecisionReject,
		},
		{
			name: "mid-line mention ignored",
			in:   "The DECISION: [PROMOTE] marker must start a line",
			want: DecisionUnknown,
		},
		{
			name: "no decision",
			in:   "I think this could go either way.",
			want: DecisionUnknown,
		},
		{
			name: "empty",
			in:   "",
			want: DecisionUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDecision(tt.in); got != tt.want {
				t.Errorf("ParseDecision(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractSkillContext(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "filler line")
	}
	lines = append(lines, "## The Batch-Retry Skill", "detail one", "detail two")
	for i := 0; i < 100; i++ {
		lines = append(lines, "trailing filler")
	}
	source := filepath.Join(dir, "report.md")
	if err := os.WriteFile(source, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, err := ExtractSkillContext(source, "batch-retry")
	if err != nil {
		t.Fatalf("ExtractSkillContext error: %v", err)
	}
	if !strings.HasPrefix(ctx, "## The Batch-Retry Skill") {
		t.Errorf("context does not start at the skill mention:\n%s", ctx[:80])
	}
	if !strings.Contains(ctx, "detail one") {
		t.Error("context missing following lines")
	}
	if got := len(strings.Split(ctx, "\n")); got > skillContextLines+1 {
		t.Errorf("context has %d lines, want at most %d", got, skillContextLines+1)
	}
}

func TestExtractSkillContextNotFound(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "report.md")
	content := "line one\nline two"
	if err := os.WriteFile(source, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Unknown skill name falls back to the whole document.
	ctx, err := ExtractSkillContext(source, "nonexistent skill")
	if err != nil {
		t.Fatal(err)
	}
	if ctx != content {
		t.Errorf("ExtractSkillContext() = %q, want whole document", ctx)
	}
}

func TestExtractSkillContextMissingSource(t *testing.T) {
	if _, err := ExtractSkillContext(filepath.Join(t.TempDir(), "nope.md"), "x"); err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestParseSkillFiles(t *testing.T) {
	response := `Here are your files:
{"SKILL_MD": "# Claude Skill", "RULE_MD": "# Cursor Rule", "README_MD": "# Playbook"}
Let me know if you need changes.`

	files, err := parseSkillFiles(response)
	if err != nil {
		t.Fatalf("parseSkillFiles error: %v", err)
	}
	if files.SkillMD != "# Claude Skill" || files.RuleMD != "# Cursor Rule" || files.ReadmeMD != "# Playbook" {
		t.Errorf("unexpected files: %+v", files)
	}
}

func TestParseSkillFilesMissingKey(t *testing.T) {
	_, err := parseSkillFiles(`{"SKILL_MD": "x", "RULE_MD": "y"}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "README_MD") {
		t.Errorf("error does not name the missing key: %v", err)
	}
}

func TestParseSkillFilesNoJSON(t *testing.T) {
	if _, err := parseSkillFiles("sorry, I cannot do that"); err == nil {
		t.Error("expected error for response without JSON")
	}
}

func TestWriteSkillFiles(t *testing.T) {
	root := t.TempDir()
	files := skillFiles{SkillMD: "s", RuleMD: "r", ReadmeMD: "p"}

	written, err := writeSkillFiles(root, "Batch Retry Helper", files)
	if err != nil {
		t.Fatalf("writeSkillFiles error: %v", err)
	}
	want := []string{
		filepath.Join(root, "claude-skills", "batch-retry-helper", "SKILL.md"),
		filepath.Join(root, "cursor-rules", "batch-retry-helper", "RULE.md"),
		filepath.Join(root, "playbooks", "batch-retry-helper", "README.md"),
	}
	if len(written) != len(want) {
		t.Fatalf("wrote %d files, want %d", len(written), len(want))
	}
	for i, path := range want {
		if written[i] != path {
			t.Errorf("written[%d] = %q, want %q", i, written[i], path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	}
}
