package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "KnowledgeLibrarian/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// Truncate returns the first n bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

var (
	slugDropRe     = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
	wsCollapseRe   = regexp.MustCompile(`\s+`)
	nlCollapseRe   = regexp.MustCompile(`\n{3,}`)
)

// SafeSlug converts free text into a filename-safe slug: drops punctuation,
// collapses whitespace and dashes into single dashes.
func SafeSlug(s string) string {
	s = slugDropRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CollapseSpace squashes all whitespace runs to single spaces and trims.
func CollapseSpace(s string) string {
	return strings.TrimSpace(wsCollapseRe.ReplaceAllString(s, " "))
}

// CollapseNewlines squashes runs of blank lines down to a single blank line.
func CollapseNewlines(s string) string {
	return nlCollapseRe.ReplaceAllString(s, "\n\n")
}
