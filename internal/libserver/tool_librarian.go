package libserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/library"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerAnalyzeVideo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_video",
		Description: "Fetch a YouTube video's metadata and transcript, run the Librarian analysis, and save the report to the knowledge library. Updates the library index and moves the video from the priority queue to the analyzed section.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.AnalyzeVideoInput) (*mcp.CallToolResult, engine.AnalyzeVideoOutput, error) {
		if input.URL == "" {
			return nil, engine.AnalyzeVideoOutput{}, errors.New("url is required")
		}
		videoID := sources.ExtractVideoID(input.URL)
		if videoID == "" {
			return nil, engine.AnalyzeVideoOutput{}, fmt.Errorf("not a YouTube URL: %s", input.URL)
		}

		meta, err := sources.FetchVideoMeta(ctx, videoID)
		if err != nil {
			return nil, engine.AnalyzeVideoOutput{}, fmt.Errorf("fetch metadata: %w", err)
		}
		meta.URL = input.URL

		langs := []string{"en"}
		if input.Language != "" {
			langs = []string{input.Language, "en"}
		}
		transcript, err := sources.FetchTranscript(ctx, videoID, langs)
		if err != nil {
			slog.Warn("analyze_video: no transcript", slog.String("video", videoID), slog.Any("error", err))
		}
		if transcript == "" {
			markFailed(ctx, videoID, input.URL, meta)
			return nil, engine.AnalyzeVideoOutput{}, fmt.Errorf("no transcript available for %s", videoID)
		}

		// A failed analysis must never write a half-report into the library.
		analysis, err := engine.AnalyzeTranscript(ctx, *meta, transcript)
		if err != nil {
			markFailed(ctx, videoID, input.URL, meta)
			return nil, engine.AnalyzeVideoOutput{}, err
		}

		lib := library.Library{Dir: engine.Cfg.LibraryDir}
		reportPath, err := lib.SaveReport(*meta, analysis, transcript)
		if err != nil {
			return nil, engine.AnalyzeVideoOutput{}, err
		}

		date := meta.UploadDate
		if date == "" {
			date = "unknown"
		}
		if err := lib.UpdateIndex(meta.Title, meta.Channel, date); err != nil {
			slog.Warn("analyze_video: index update failed", slog.Any("error", err))
		}
		if err := library.MarkAnalyzed(input.URL, *meta, reportPath); err != nil {
			slog.Warn("analyze_video: queue update failed", slog.Any("error", err))
		}
		if err := library.SetVideoStatus(ctx, videoID, input.URL, library.StatusAnalyzed, meta.Title, meta.Channel, reportPath); err != nil {
			slog.Warn("analyze_video: tracker update failed", slog.Any("error", err))
		}

		topics := make([]string, 0, 5)
		for i, t := range meta.Tags {
			if i >= 5 {
				break
			}
			topics = append(topics, strings.ReplaceAll(strings.ToLower(t), " ", "-"))
		}

		return nil, engine.AnalyzeVideoOutput{
			Title:           meta.Title,
			Channel:         meta.Channel,
			File:            reportPath,
			Topics:          topics,
			TranscriptChars: len(transcript),
		}, nil
	})
}

func markFailed(ctx context.Context, videoID, url string, meta *engine.VideoMeta) {
	title, channel := "", ""
	if meta != nil {
		title, channel = meta.Title, meta.Channel
	}
	if err := library.SetVideoStatus(ctx, videoID, url, library.StatusFailed, title, channel, ""); err != nil {
		slog.Warn("analyze_video: tracker update failed", slog.Any("error", err))
	}
}

// GetTranscriptOutput is the structured output for get_transcript.
type GetTranscriptOutput struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Transcript string `json:"transcript"`
}

func registerGetTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Fetch the cleaned transcript of a YouTube video without running any analysis. Prefers manual captions over auto-generated ones.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.AnalyzeVideoInput) (*mcp.CallToolResult, GetTranscriptOutput, error) {
		if input.URL == "" {
			return nil, GetTranscriptOutput{}, errors.New("url is required")
		}
		videoID := sources.ExtractVideoID(input.URL)
		if videoID == "" {
			return nil, GetTranscriptOutput{}, fmt.Errorf("not a YouTube URL: %s", input.URL)
		}

		langs := []string{"en"}
		if input.Language != "" {
			langs = []string{input.Language, "en"}
		}
		transcript, err := sources.FetchTranscript(ctx, videoID, langs)
		if err != nil {
			return nil, GetTranscriptOutput{}, err
		}

		out := GetTranscriptOutput{VideoID: videoID, Transcript: transcript}
		if meta, err := sources.FetchVideoMeta(ctx, videoID); err == nil {
			out.Title = meta.Title
			out.Channel = meta.Channel
		}
		return nil, out, nil
	})
}
