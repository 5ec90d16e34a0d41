package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testIndex = `# Library Index

## 🤖 AI & Automation

## 🥗 Health & Diet

## 💡 Content Strategy & Business
`

func writeIndex(t *testing.T) Library {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, IndexFileName), []byte(testIndex), 0o644); err != nil {
		t.Fatal(err)
	}
	return Library{Dir: dir}
}

func readIndex(t *testing.T, lib Library) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(lib.Dir, IndexFileName))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Building AI Agents", "## 🤖 AI & Automation"},
		{"The Keto Diet Explained", "## 🥗 Health & Diet"},
		{"Burn Fat Fast", "## 🥗 Health & Diet"},
		{"Content Strategy for 2025", "## 💡 Content Strategy & Business"},
		{"How I Run My Business", "## 💡 Content Strategy & Business"},
		{"Something Else Entirely", "## 🤖 AI & Automation"},
	}
	for _, tt := range tests {
		if got := categorize(tt.title); got != tt.want {
			t.Errorf("categorize(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestUpdateIndex(t *testing.T) {
	lib := writeIndex(t)
	if err := lib.UpdateIndex("Building AI Agents", "Tech Channel", "2025-06-15"); err != nil {
		t.Fatalf("UpdateIndex error: %v", err)
	}

	content := readIndex(t, lib)
	entry := "- [[Building AI Agents]] (Tech Channel) - *Analyzed 2025-06-15*"
	if !strings.Contains(content, entry) {
		t.Fatalf("index missing entry, got:\n%s", content)
	}
	// Entry lands under the AI section, before Health.
	if strings.Index(content, entry) > strings.Index(content, "Health & Diet") {
		t.Error("entry placed under wrong section")
	}
}

func TestUpdateIndexDuplicate(t *testing.T) {
	lib := writeIndex(t)
	if err := lib.UpdateIndex("AI Video", "Ch", "2025-01-01"); err != nil {
		t.Fatal(err)
	}
	before := readIndex(t, lib)
	if err := lib.UpdateIndex("AI Video", "Ch", "2025-01-01"); err != nil {
		t.Fatal(err)
	}
	if after := readIndex(t, lib); after != before {
		t.Error("duplicate entry modified the index")
	}
}

func TestUpdateIndexMissingFile(t *testing.T) {
	lib := Library{Dir: t.TempDir()}
	if err := lib.UpdateIndex("Title", "Ch", "2025-01-01"); err != nil {
		t.Errorf("missing index should not error, got %v", err)
	}
}
