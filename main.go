// analyze-youtube-videos — Knowledge Library MCP server.
//
// Turns YouTube videos into a curated markdown knowledge library: the
// Librarian analyzes transcripts into reports, the Strategist synthesizes
// the library into master strategy documents under a context budget, the
// Bridge promotes proven skills into a global skills library, and the
// Healer repairs broken skill scripts from their error logs.
//
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine/library"
	"github.com/eriksjaastad/analyze-youtube-videos/internal/libserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting analyze-youtube-videos",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "analyze-youtube-videos",
		Version: version,
	}, nil)

	libserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 9))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "analyze-youtube-videos",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks: env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "http://127.0.0.1:11434/v1"),
		LLMModel:           env.Str("LLM_MODEL", "deepseek-r1:14b"),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", 16384),
		LLMRatePerMinute:   env.Int("LLM_RATE_PER_MINUTE", 0),

		ContextTokens: env.Int("CONTEXT_TOKENS", engine.DefaultContextTokens),

		LibraryDir:   env.Str("LIBRARY_DIR", "library"),
		SynthesisDir: env.Str("SYNTHESIS_DIR", "synthesis"),
		SkillsDir:    env.Str("SKILLS_DIR", "agent-skills-library"),
		QueueFile:    env.Str("QUEUE_FILE", "VIDEOS_QUEUE.md"),

		MaxContentChars:      env.Int("MAX_CONTENT_CHARS", 20000),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 15*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 100),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),

		DatabaseURL: env.Str("DATABASE_URL", ""),

		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	// Local models think slowly over 32k-token prompts; the client timeout
	// has to outlast a full synthesis pass.
	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 600 * time.Second}),
	)

	engine.Init(c)

	// Skill promotion history (PostgreSQL, optional)
	if c.DatabaseURL != "" {
		db, err := library.ConnectSkillDB(context.Background(), c.DatabaseURL)
		if err != nil {
			slog.Warn("skill DB init failed", slog.Any("error", err))
		} else {
			library.SetSkillDB(db)
			slog.Info("skill DB initialized")
		}
	}

	cacheTTL := env.Duration("CACHE_TTL", 24*time.Hour)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
