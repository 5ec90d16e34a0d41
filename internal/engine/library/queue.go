package library

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

// VIDEOS_QUEUE.md section markers. The file is a hand-edited checklist;
// analyzed entries migrate from the priority section to the analyzed one.
const (
	queuePriorityMarker = "### Priority Queue"
	queueAnalyzedMarker = "## Videos Analyzed"
)

// stripShareParam removes YouTube's ?si= share tracking parameter so queue
// entries match regardless of where the link was copied from.
func stripShareParam(url string) string {
	if i := strings.Index(url, "?si="); i >= 0 {
		return url[:i]
	}
	if i := strings.Index(url, "&si="); i >= 0 {
		return url[:i]
	}
	return url
}

// MarkAnalyzed moves a URL from the Priority Queue section to the Videos
// Analyzed section of the queue file, recording where the report landed.
// A missing queue file or an absent URL is not an error.
func MarkAnalyzed(url string, meta engine.VideoMeta, reportPath string) error {
	queueFile := engine.Cfg.QueueFile
	raw, err := os.ReadFile(queueFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("update queue: %w", err)
	}

	cleanURL := stripShareParam(url)
	var out strings.Builder
	found := false
	inPriority := false

	for _, line := range strings.SplitAfter(string(raw), "\n") {
		switch {
		case strings.Contains(line, queuePriorityMarker):
			inPriority = true
			out.WriteString(line)
		case strings.Contains(line, queueAnalyzedMarker):
			inPriority = false
			out.WriteString(line)
			if found {
				fmt.Fprintf(&out, "- [x] **\"%s\"** by %s\n", meta.Title, meta.Channel)
				fmt.Fprintf(&out, "  - **Date analyzed:** %s\n", time.Now().Format("2006-01-02"))
				fmt.Fprintf(&out, "  - **URL:** %s\n", url)
				fmt.Fprintf(&out, "  - **Location:** `%s`\n\n", reportPath)
			}
		case inPriority && strings.Contains(line, cleanURL):
			found = true
		default:
			out.WriteString(line)
		}
	}

	if !found {
		return nil
	}
	if err := atomicWrite(queueFile, out.String()); err != nil {
		return fmt.Errorf("update queue: %w", err)
	}
	return nil
}

// AppendQueued adds a new URL to the Priority Queue section. If the queue
// file does not exist it is created with both sections.
func AppendQueued(url, title, notes string) error {
	queueFile := engine.Cfg.QueueFile
	raw, err := os.ReadFile(queueFile)
	if os.IsNotExist(err) {
		raw = []byte("# Videos Queue\n\n" + queuePriorityMarker + "\n\n" + queueAnalyzedMarker + "\n")
	} else if err != nil {
		return fmt.Errorf("queue add: %w", err)
	}
	content := string(raw)

	if strings.Contains(content, stripShareParam(url)) {
		return nil
	}

	entry := "- [ ] " + url
	if title != "" {
		entry = fmt.Sprintf("- [ ] **\"%s\"** %s", title, url)
	}
	if notes != "" {
		entry += " - " + notes
	}
	entry += "\n"

	idx := strings.Index(content, queuePriorityMarker)
	if idx < 0 {
		content += "\n" + queuePriorityMarker + "\n" + entry
	} else {
		insertAt := idx + len(queuePriorityMarker)
		content = content[:insertAt] + "\n" + entry + content[insertAt:]
	}
	if err := atomicWrite(queueFile, content); err != nil {
		return fmt.Errorf("queue add: %w", err)
	}
	return nil
}
