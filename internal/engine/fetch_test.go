package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func initFetchTest(t *testing.T, maxChars int) {
	t.Helper()
	Init(Config{
		FetchTimeout:    5 * time.Second,
		MaxContentChars: maxChars,
		HTTPClient:      &http.Client{Timeout: 5 * time.Second},
	})
}

const testPage = `<!DOCTYPE html>
<html>
<head><title>Agent Patterns</title><style>.x{color:red}</style></head>
<body>
<nav>Home | About</nav>
<article>
<h1>Agent Patterns</h1>
<p>Use <strong>small</strong> focused tools.</p>
</article>
<footer>copyright</footer>
<script>alert(1)</script>
</body>
</html>`

func TestFetchPageMarkdown(t *testing.T) {
	initFetchTest(t, 20000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage)) //nolint:errcheck
	}))
	defer srv.Close()

	title, content, err := FetchPageMarkdown(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPageMarkdown error: %v", err)
	}
	if title != "Agent Patterns" {
		t.Errorf("title = %q, want %q", title, "Agent Patterns")
	}
	if !strings.Contains(content, "Agent Patterns") || !strings.Contains(content, "focused tools") {
		t.Errorf("content missing article text:\n%s", content)
	}
	for _, junk := range []string{"alert(1)", "color:red", "Home | About", "copyright"} {
		if strings.Contains(content, junk) {
			t.Errorf("content contains stripped element %q", junk)
		}
	}
}

func TestFetchPageMarkdownCapsLength(t *testing.T) {
	initFetchTest(t, 50)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + strings.Repeat("words ", 100) + "</p></body></html>")) //nolint:errcheck
	}))
	defer srv.Close()

	_, content, err := FetchPageMarkdown(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) > 50+len("...") {
		t.Errorf("content length = %d, want at most %d", len(content), 50+len("..."))
	}
	if !strings.HasSuffix(content, "...") {
		t.Errorf("capped content missing ellipsis: %q", content)
	}
}

func TestFetchPageMarkdownNotFound(t *testing.T) {
	initFetchTest(t, 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, _, err := FetchPageMarkdown(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 page")
	}
}
