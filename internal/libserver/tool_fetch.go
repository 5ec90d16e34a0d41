package libserver

import (
	"context"
	"errors"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerFetchPage(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_page",
		Description: "Fetch a web page and convert it to clean markdown. Useful for pulling reference articles mentioned in video descriptions into research context.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.FetchPageInput) (*mcp.CallToolResult, engine.FetchPageOutput, error) {
		if input.URL == "" {
			return nil, engine.FetchPageOutput{}, errors.New("url is required")
		}
		title, content, err := engine.FetchPageMarkdown(ctx, input.URL)
		if err != nil {
			return nil, engine.FetchPageOutput{}, err
		}
		return nil, engine.FetchPageOutput{Title: title, Content: content}, nil
	})
}
