package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IndexFileName is the library's human-maintained table of contents. The
// numeric prefix keeps it sorted first and excluded from aggregation.
const IndexFileName = "00_Index_Library.md"

// indexCategory maps title keywords to index section headings. First match
// wins; anything else lands in the AI bucket.
type indexCategory struct {
	heading  string
	keywords []string
}

var indexCategories = []indexCategory{
	{"## 🥗 Health & Diet", []string{"diet", "fat", "health"}},
	{"## 💡 Content Strategy & Business", []string{"business", "strategy"}},
}

const defaultCategory = "## 🤖 AI & Automation"

// categorize picks the index section for a video title.
func categorize(title string) string {
	lower := strings.ToLower(title)
	for _, c := range indexCategories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.heading
			}
		}
	}
	return defaultCategory
}

// UpdateIndex inserts a new entry under the matching category section of the
// library index. Duplicate titles and a missing index file are silently
// ignored: the index is a human convenience, not a source of truth.
func (l Library) UpdateIndex(title, channel, date string) error {
	path := filepath.Join(l.Dir, IndexFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("update index: %w", err)
	}
	content := string(raw)

	if strings.Contains(content, fmt.Sprintf("[[%s]]", title)) {
		return nil
	}
	category := categorize(title)
	idx := strings.Index(content, category)
	if idx < 0 {
		return nil
	}

	entry := fmt.Sprintf("- [[%s]] (%s) - *Analyzed %s*\n", title, channel, date)
	insertAt := idx + len(category)
	updated := content[:insertAt] + "\n" + entry + content[insertAt:]
	if err := atomicWrite(path, updated); err != nil {
		return fmt.Errorf("update index: %w", err)
	}
	return nil
}
