package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	TranscriptRequests atomic.Int64
	MetadataRequests   atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	AggregateRuns      atomic.Int64
	SynthesisRuns      atomic.Int64
	DocsSummarized     atomic.Int64
	DocsTruncated      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"metadata_requests":   metrics.MetadataRequests.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"aggregate_runs":      metrics.AggregateRuns.Load(),
		"synthesis_runs":      metrics.SynthesisRuns.Load(),
		"docs_summarized":     metrics.DocsSummarized.Load(),
		"docs_truncated":      metrics.DocsTruncated.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"llm_calls", "llm_errors",
		"transcript_requests", "metadata_requests",
		"fetch_requests", "fetch_errors",
		"aggregate_runs", "synthesis_runs",
		"docs_summarized", "docs_truncated",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources/ and library/ sub-packages.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrMetadataRequests()   { metrics.MetadataRequests.Add(1) }
func IncrAggregateRuns()      { metrics.AggregateRuns.Add(1) }
func IncrDocsSummarized()     { metrics.DocsSummarized.Add(1) }
func IncrDocsTruncated()      { metrics.DocsTruncated.Add(1) }
