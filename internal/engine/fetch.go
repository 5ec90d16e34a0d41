package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/net/html"
)

// Reference-link fetching. Library reports can pull in pages linked from a
// video description; the page's main content is extracted and converted to
// markdown before it lands in the report appendix.

// FetchPageMarkdown downloads a web page and returns its title and main text
// content as markdown, capped at MaxContentChars.
func FetchPageMarkdown(ctx context.Context, rawURL string) (title, content string, err error) {
	metrics.FetchRequests.Add(1)
	defer func() {
		if err != nil {
			metrics.FetchErrors.Add(1)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	resp, err := fetchWithBackoff(ctx, rawURL)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", rawURL, err)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", rawURL, err)
	}
	doc := goquery.NewDocumentFromNode(root)

	title = strings.TrimSpace(doc.Find("title").First().Text())

	// Strip chrome before extraction.
	doc.Find("script, style, nav, header, footer, aside, noscript").Remove()

	sel := doc.Find("article").First()
	if sel.Length() == 0 {
		sel = doc.Find("main").First()
	}
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}
	inner, err := goquery.OuterHtml(sel)
	if err != nil {
		return title, "", fmt.Errorf("extract %s: %w", rawURL, err)
	}

	md, err := htmltomarkdown.ConvertString(inner)
	if err != nil {
		md = CleanHTML(inner)
	}
	text := CollapseNewlines(strings.TrimSpace(md))
	if len(text) > cfg.MaxContentChars {
		text = text[:cfg.MaxContentChars] + "..."
	}
	return title, text, nil
}

// fetchWithBackoff performs an HTTP GET with exponential backoff on
// transient failures.
func fetchWithBackoff(ctx context.Context, fetchURL string) (*http.Response, error) {
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	operation := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgentChrome)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err := client.Do(req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if IsRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	resp, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3), backoff.WithMaxElapsedTime(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", fetchURL, err)
	}
	return resp, nil
}

// readResponseBody reads the response body, handling gzip decompression.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	body, err := io.ReadAll(io.LimitReader(r, 6*1024*1024))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return body, nil
}
