package library

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

func testMeta() engine.VideoMeta {
	return engine.VideoMeta{
		ID:         "dQw4w9WgXcQ",
		Title:      "Building AI Agents: The Complete Guide!",
		Channel:    "Tech Channel",
		URL:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		UploadDate: "2025-06-15",
		Duration:   "12:34",
		Views:      150000,
		Likes:      4200,
		Tags:       []string{"AI Agents", "automation", "LLM"},
	}
}

func TestReportFilename(t *testing.T) {
	got := ReportFilename(testMeta())
	want := "2025-06-15_Tech_Channel_Building-AI-Agents-The-Complete-Guide_dQw4w9Wg.md"
	if got != want {
		t.Errorf("ReportFilename() = %q, want %q", got, want)
	}
}

func TestReportFilenameDefaults(t *testing.T) {
	meta := engine.VideoMeta{ID: "abc", Title: "T", Channel: "C"}
	got := ReportFilename(meta)
	if !strings.HasPrefix(got, time.Now().Format("2006-01-02")+"_") {
		t.Errorf("expected today's date prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "_abc.md") {
		t.Errorf("expected short-id suffix, got %q", got)
	}
}

func TestReportFilenameTruncatesLongTitle(t *testing.T) {
	meta := testMeta()
	meta.Title = strings.Repeat("Word ", 30)
	got := ReportFilename(meta)
	for _, part := range strings.Split(got, "_") {
		if len(part) > 50 {
			t.Errorf("filename part too long: %q", part)
		}
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(testMeta(), "## Key Insights\nInsight body", "the full transcript")

	for _, want := range []string{
		"tags:\n",
		"  - p/analyze-youtube-videos\n",
		"  - type/knowledge-extraction\n",
		"  - topic/ai-agents\n",
		"  - topic/automation\n",
		"  - topic/llm\n",
		`url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
		`title: "Building AI Agents: The Complete Guide!"`,
		`channel: "Tech Channel"`,
		"upload_date: 2025-06-15",
		"views: 150000",
		"likes: 4200",
		`duration: "12:34"`,
		"# [[Building AI Agents: The Complete Guide!]]",
		"## Key Insights",
		"## Full Transcript\nthe full transcript",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if !strings.HasPrefix(report, "---\n") {
		t.Error("report must start with frontmatter")
	}
}

func TestBuildReportCapsTopicTags(t *testing.T) {
	meta := testMeta()
	meta.Tags = []string{"a", "b", "c", "d", "e", "f", "g"}
	report := BuildReport(meta, "analysis", "transcript")
	if strings.Contains(report, "topic/f") || strings.Contains(report, "topic/g") {
		t.Error("more than five topic tags included")
	}
	if !strings.Contains(report, "topic/e") {
		t.Error("fifth topic tag missing")
	}
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	lib := Library{Dir: dir}

	path, err := lib.SaveReport(testMeta(), "analysis body", "transcript body")
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if !strings.Contains(string(data), "analysis body") {
		t.Error("saved report missing analysis")
	}
	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left after atomic write")
	}
}
