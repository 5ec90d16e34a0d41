package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

// SynthesisFilename builds the output filename for a master strategy report.
// A non-empty custom name wins; otherwise YYYY-MM-DD_topic-slug.md.
func SynthesisFilename(topic, custom string) string {
	if custom != "" {
		return custom
	}
	return fmt.Sprintf("%s_%s.md", time.Now().Format("2006-01-02"), engine.SafeSlug(strings.ToLower(topic)))
}

// SaveSynthesis writes a master strategy report with frontmatter into the
// synthesis directory. The filename is guarded against path traversal since
// it can come from tool input.
func SaveSynthesis(dir, topic, filename, report string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save synthesis: %w", err)
	}
	path := filepath.Join(dir, filename)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("save synthesis: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("save synthesis: %w", err)
	}
	if absPath != absDir && !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("save synthesis: path escapes synthesis dir: %s", filename)
	}

	frontmatter := fmt.Sprintf(`---
tags:
  - p/analyze-youtube-videos
  - type/synthesis
  - topic/%s
status: #status/active
created: %s
---

`, engine.SafeSlug(strings.ToLower(topic)), time.Now().Format("2006-01-02"))

	if err := atomicWrite(absPath, frontmatter+report); err != nil {
		return "", fmt.Errorf("save synthesis: %w", err)
	}
	return absPath, nil
}

// Fingerprint returns a cache key identifying the current corpus state for a
// given filter: document names, sizes, and mtimes. Any library change yields
// a new key, so cached syntheses can never go stale.
func (l Library) Fingerprint(topic string) (string, error) {
	names, err := l.List()
	if err != nil {
		return "", err
	}
	parts := []string{"synthesis", topic}
	for _, name := range names {
		info, err := os.Stat(filepath.Join(l.Dir, name))
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", name, info.Size(), info.ModTime().UnixNano()))
	}
	return engine.CacheKey(parts...), nil
}
