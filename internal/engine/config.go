package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMRatePerMinute   int // 0 = unlimited

	// ContextTokens is the aggregation budget ceiling in approximate tokens.
	ContextTokens int

	LibraryDir   string
	SynthesisDir string
	SkillsDir    string // global skills library root for bridge promotions
	QueueFile    string

	MaxContentChars      int
	FetchTimeout         time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	DatabaseURL string // optional Postgres for promoted-skill records

	HTTPClient *http.Client
	LLMClient  *llm.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (library, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
	initLimiter(c.LLMRatePerMinute)
}
