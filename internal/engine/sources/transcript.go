package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

// Transcript fetching: player response → caption track → timedtext XML.
// Manual captions beat auto-generated ones, preferred language beats English,
// English beats whatever is first.

// ytTimedText is the timedtext caption XML document.
type ytTimedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language
// preferences. Skips tracks that require PoToken.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches and parses a YouTube timedtext caption URL into a
// cleaned plain-text transcript.
func fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	lines := make([]string, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		lines = append(lines, line.Text)
	}
	return CleanTranscript(lines), nil
}

// CleanTranscript normalizes raw caption lines into a single prose string:
// strips inline markup, drops empty lines, deduplicates consecutive repeats
// (auto-captions restate the previous cue), and collapses whitespace.
func CleanTranscript(lines []string) string {
	var sb strings.Builder
	last := ""
	for _, line := range lines {
		line = engine.CleanHTML(line)
		if line == "" || line == last {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
		last = line
	}
	return engine.CollapseSpace(sb.String())
}

// FetchTranscript fetches the cleaned transcript for a YouTube video.
// langs is the caption language preference order; nil means English.
func FetchTranscript(ctx context.Context, videoID string, langs []string) (string, error) {
	engine.IncrTranscriptRequests()
	if len(langs) == 0 {
		langs = []string{"en"}
	}

	resp, err := fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("transcript %s: %w", videoID, err)
	}
	if resp.Captions == nil {
		reason := ""
		if resp.PlayabilityStatus != nil {
			reason = resp.PlayabilityStatus.Reason
		}
		if reason != "" {
			return "", fmt.Errorf("transcript %s: captions unavailable: %s", videoID, reason)
		}
		return "", fmt.Errorf("transcript %s: no captions in player response", videoID)
	}
	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", fmt.Errorf("transcript %s: no caption tracks", videoID)
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}
	text, err := fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("transcript %s: %w", videoID, err)
	}
	if text == "" {
		return "", fmt.Errorf("transcript %s: empty after cleaning", videoID)
	}
	return text, nil
}
