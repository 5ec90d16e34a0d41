package libserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/library"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultTopic = "AI Orchestration & Automation"

func registerSynthesizeStrategy(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "synthesize_strategy",
		Description: "Aggregate all knowledge library reports (optionally filtered by category) and synthesize them into a single Master Strategy document. Documents that exceed the context budget are summarized; the result is written to the synthesis directory. Cached per corpus state.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SynthesizeInput) (*mcp.CallToolResult, engine.SynthesizeOutput, error) {
		topic := input.Topic
		if topic == "" {
			topic = defaultTopic
		}

		lib := library.Library{Dir: engine.Cfg.LibraryDir}

		// The fingerprint covers document names, sizes, and mtimes: any
		// library change invalidates the cached strategy.
		var cacheKey string
		if fp, err := lib.Fingerprint(topic + "|" + input.Category + "|" + input.Output); err == nil {
			cacheKey = fp
			if out, ok := engine.CacheLoadJSON[engine.SynthesizeOutput](ctx, cacheKey); ok {
				out.Cached = true
				return nil, out, nil
			}
		}

		agg := library.Aggregator{
			Lib:       lib,
			Ceiling:   engine.Cfg.ContextTokens,
			Summarize: engine.SummarizeDocument,
		}
		aggregated, docs := agg.Aggregate(ctx, input.Category)
		if aggregated == "" {
			return nil, engine.SynthesizeOutput{}, errors.New("no documents found to synthesize")
		}

		report, err := engine.SynthesizeStrategy(ctx, aggregated, topic)
		if err != nil {
			return nil, engine.SynthesizeOutput{}, err
		}
		if report == "" {
			return nil, engine.SynthesizeOutput{}, fmt.Errorf("empty synthesis for %q", topic)
		}

		filename := library.SynthesisFilename(topic, input.Output)
		path, err := library.SaveSynthesis(engine.Cfg.SynthesisDir, topic, filename, report)
		if err != nil {
			return nil, engine.SynthesizeOutput{}, err
		}
		slog.Info("synthesize_strategy: saved", slog.String("file", path), slog.Int("documents", docs))

		out := engine.SynthesizeOutput{
			File:            path,
			Documents:       docs,
			EstimatedTokens: engine.EstimateTokens(aggregated),
		}
		if cacheKey != "" {
			engine.CacheStoreJSON(ctx, cacheKey, out)
		}
		return nil, out, nil
	})
}
