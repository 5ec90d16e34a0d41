// Package library owns the knowledge library on disk: markdown reports
// produced by video analysis, their aggregation under a context budget, and
// the downstream synthesis, index, queue, and skill-promotion plumbing.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// indexFileRE matches generated index documents ("00_Index_Library.md" and
// friends), which never participate in aggregation.
var indexFileRE = regexp.MustCompile(`^\d+_Index_`)

// IsIndexFile reports whether name denotes a generated index document.
func IsIndexFile(name string) bool {
	return indexFileRE.MatchString(name)
}

// MatchesTopic reports whether a document belongs to a topic: either its
// content carries a topic/<topic> tag token, or its name contains the topic
// string. Both checks are case-insensitive. An empty topic matches every
// document.
func MatchesTopic(content, name, topic string) bool {
	if topic == "" {
		return true
	}
	t := strings.ToLower(topic)
	if strings.Contains(strings.ToLower(content), "topic/"+t) {
		return true
	}
	return strings.Contains(strings.ToLower(name), t)
}

// Library is a directory of markdown knowledge documents.
type Library struct {
	Dir string
}

// Exists reports whether the library directory is present.
func (l Library) Exists() bool {
	info, err := os.Stat(l.Dir)
	return err == nil && info.IsDir()
}

// List returns the names of all primary documents in lexicographic order:
// .md files, index documents excluded. The ordering makes aggregation output
// reproducible byte-for-byte for an unchanged corpus.
func (l Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("list library %s: %w", l.Dir, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") || IsIndexFile(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of one document. Content that is not valid UTF-8
// is rejected so a corrupt file cannot poison an aggregation blob.
func (l Library) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.Dir, name))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: not valid UTF-8", name)
	}
	return string(data), nil
}
