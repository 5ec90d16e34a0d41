package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

const maxTitleSlugLen = 40

// reportTags are always present in a report's frontmatter; up to five of the
// video's own tags are appended as topic/<slug> entries for later filtering.
var reportTags = []string{"p/analyze-youtube-videos", "type/knowledge-extraction"}

// ReportFilename builds the library filename for one analyzed video:
// YYYY-MM-DD_Channel_Title-Slug_videoid8.md. The video id suffix keeps
// same-day re-uploads from colliding.
func ReportFilename(meta engine.VideoMeta) string {
	date := meta.UploadDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	title := engine.SafeSlug(meta.Title)
	if len(title) > maxTitleSlugLen {
		title = title[:maxTitleSlugLen]
	}
	channel := strings.ReplaceAll(meta.Channel, " ", "_")
	id := meta.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s_%s_%s_%s.md", date, channel, title, id)
}

// BuildReport renders the full library document for one analyzed video:
// YAML frontmatter, the analysis body, and the cleaned transcript.
func BuildReport(meta engine.VideoMeta, analysis, transcript string) string {
	tags := make([]string, 0, len(reportTags)+5)
	tags = append(tags, reportTags...)
	for i, t := range meta.Tags {
		if i >= 5 {
			break
		}
		tags = append(tags, "topic/"+strings.ReplaceAll(strings.ToLower(t), " ", "-"))
	}

	var b strings.Builder
	b.WriteString("---\ntags:\n")
	for _, t := range tags {
		fmt.Fprintf(&b, "  - %s\n", t)
	}
	uploadDate := meta.UploadDate
	if uploadDate == "" {
		uploadDate = time.Now().Format("2006-01-02")
	}
	fmt.Fprintf(&b, "status: #status/active\ncreated: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "url: %q\ntitle: %q\nchannel: %q\n", meta.URL, meta.Title, meta.Channel)
	fmt.Fprintf(&b, "upload_date: %s\nviews: %d\nlikes: %d\nduration: %q\n", uploadDate, meta.Views, meta.Likes, meta.Duration)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# [[%s]]\n\n%s\n\n---\n\n## Full Transcript\n%s\n", meta.Title, analysis, transcript)
	return b.String()
}

// SaveReport writes the rendered report into the library directory and
// returns its path.
func (l Library) SaveReport(meta engine.VideoMeta, analysis, transcript string) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	path := filepath.Join(l.Dir, ReportFilename(meta))
	if err := atomicWrite(path, BuildReport(meta, analysis, transcript)); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

// atomicWrite writes content through a temp file in the same directory and
// renames it into place, so readers never observe a half-written document.
func atomicWrite(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
