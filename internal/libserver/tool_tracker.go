package libserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/library"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueueAddResult is the output for queue_add.
type QueueAddResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// QueueListResult is the output for queue_list.
type QueueListResult struct {
	Videos []library.TrackedVideo `json:"videos"`
	Total  int                    `json:"total"`
}

func registerQueueAdd(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "queue_add",
		Description: "Add a YouTube video to the analysis queue. Writes it into the priority section of VIDEOS_QUEUE.md and records it in the local tracker (SQLite).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.QueueAddInput) (*mcp.CallToolResult, *QueueAddResult, error) {
		if input.URL == "" {
			return nil, nil, errors.New("url is required")
		}
		videoID := sources.ExtractVideoID(input.URL)
		if videoID == "" {
			return nil, nil, fmt.Errorf("not a YouTube URL: %s", input.URL)
		}

		id, err := library.TrackVideo(ctx, videoID, input.URL, input.Title, input.Notes)
		if err != nil {
			return nil, nil, err
		}
		if err := library.AppendQueued(input.URL, input.Title, input.Notes); err != nil {
			slog.Warn("queue_add: queue file update failed", slog.Any("error", err))
		}

		return nil, &QueueAddResult{
			ID:      id,
			Message: fmt.Sprintf("Video %s queued for analysis (id=%d)", videoID, id),
		}, nil
	})
}

func registerQueueList(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "queue_list",
		Description: "List tracked videos, sorted by most recent activity. Optionally filter by status: queued, analyzed, failed.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.QueueListInput) (*mcp.CallToolResult, *QueueListResult, error) {
		videos, total, err := library.ListVideos(ctx, input.Status, input.Limit)
		if err != nil {
			return nil, nil, err
		}
		return nil, &QueueListResult{Videos: videos, Total: total}, nil
	})
}
