// Package sources fetches video metadata and transcripts from YouTube.
//
// Everything goes through the public watch page and the Innertube API — no
// API key required. Watch page scraping works from any IP; the ANDROID
// Innertube /player endpoint is the fallback for pages that ship without an
// inline player response.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

const (
	ytInnertubeURL   = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"

	// ytInitialPlayerResponseMarker marks the start of the player response
	// JSON in watch page HTML.
	ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "
)

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format.
// Returns "" when the URL does not look like a video link.
func ExtractVideoID(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// --- Innertube player response types ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResp struct {
	VideoDetails *struct {
		VideoID       string   `json:"videoId"`
		Title         string   `json:"title"`
		LengthSeconds string   `json:"lengthSeconds"`
		Keywords      []string `json:"keywords"`
		ShortDesc     string   `json:"shortDescription"`
		ViewCount     string   `json:"viewCount"`
		Author        string   `json:"author"`
	} `json:"videoDetails"`
	Microformat *struct {
		PlayerMicroformatRenderer struct {
			PublishDate string `json:"publishDate"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// FetchVideoMeta returns the metadata for a video: title, channel, views,
// duration, upload date, and the uploader's keyword tags.
func FetchVideoMeta(ctx context.Context, videoID string) (*engine.VideoMeta, error) {
	engine.IncrMetadataRequests()

	resp, err := fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("video meta %s: %w", videoID, err)
	}
	d := resp.VideoDetails
	if d == nil {
		reason := ""
		if resp.PlayabilityStatus != nil {
			reason = resp.PlayabilityStatus.Reason
		}
		if reason != "" {
			return nil, fmt.Errorf("video meta %s: %s", videoID, reason)
		}
		return nil, fmt.Errorf("video meta %s: no videoDetails in player response", videoID)
	}

	meta := &engine.VideoMeta{
		ID:          d.VideoID,
		Title:       d.Title,
		Channel:     d.Author,
		URL:         "https://www.youtube.com/watch?v=" + videoID,
		Description: d.ShortDesc,
		Duration:    formatDuration(d.LengthSeconds),
		Tags:        d.Keywords,
	}
	if meta.ID == "" {
		meta.ID = videoID
	}
	if meta.Title == "" {
		meta.Title = "Untitled"
	}
	if meta.Channel == "" {
		meta.Channel = "Unknown_Channel"
	}
	if v, err := strconv.ParseInt(d.ViewCount, 10, 64); err == nil {
		meta.Views = v
	}
	if resp.Microformat != nil {
		meta.UploadDate = resp.Microformat.PlayerMicroformatRenderer.PublishDate
	}
	return meta, nil
}

// fetchPlayerResponse tries the watch page first (works from any IP), then
// the ANDROID Innertube /player endpoint.
func fetchPlayerResponse(ctx context.Context, videoID string) (*playerResp, error) {
	if resp, err := scrapePlayerResponse(ctx, videoID); err == nil {
		return resp, nil
	}
	return playerViaInnertube(ctx, videoID)
}

// scrapePlayerResponse extracts ytInitialPlayerResponse from watch page HTML.
func scrapePlayerResponse(ctx context.Context, videoID string) (*playerResp, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var pr playerResp
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &pr, nil
}

// playerViaInnertube uses the ANDROID Innertube /player endpoint.
func playerViaInnertube(ctx context.Context, videoID string) (*playerResp, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", strings.NewReader(string(reqBody)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var pr playerResp
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return &pr, nil
}

// extractJSON returns the first balanced top-level JSON object in data,
// respecting string literals and escapes. Returns nil when no complete
// object starts at the first '{'.
func extractJSON(data []byte) []byte {
	start := -1
	for i, b := range data {
		if b == '{' {
			start = i
			break
		}
		// Only whitespace may precede the object.
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return nil
		}
	}
	if start < 0 {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(data); i++ {
		b := data[i]
		switch {
		case escaped:
			escaped = false
		case b == '\\' && inString:
			escaped = true
		case b == '"':
			inString = !inString
		case inString:
		case b == '{':
			depth++
		case b == '}':
			depth--
			if depth == 0 {
				return data[start : i+1]
			}
		}
	}
	return nil
}

// formatDuration renders a lengthSeconds string as M:SS or H:MM:SS.
func formatDuration(lengthSeconds string) string {
	secs, err := strconv.Atoi(lengthSeconds)
	if err != nil || secs < 0 {
		return "0:00"
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
