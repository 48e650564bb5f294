// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "broadsearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetrievalConfig holds settings for the retrieval stage.
type RetrievalConfig struct {
	HTTPConfig `yaml:",inline"`

	// LimitPerStrategy is the target result count per (query, strategy)
	// pair (default 10). Capped at the backend page maximum; the
	// orchestrator truncates rather than paginating.
	LimitPerStrategy int `json:"limit_per_strategy" yaml:"limit_per_strategy"`

	// Cooldown is the minimum delay between successive external calls
	// (default 3s). The public Semantic Scholar API throttles
	// unauthenticated clients aggressively.
	Cooldown time.Duration `json:"cooldown" yaml:"cooldown"`

	// Concurrent runs both strategies for one query in parallel instead
	// of sequentially with cooldowns. Trades latency for burst load.
	Concurrent bool `json:"concurrent" yaml:"concurrent"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// AIConfig holds shared settings for stages that call the Claude API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ScoreWeights are the relative weights of the three score components.
// They are passed explicitly into scoring and need not sum to 1.
type ScoreWeights struct {
	Semantic float64 `json:"semantic" yaml:"semantic"`
	Citation float64 `json:"citation" yaml:"citation"`
	Recency  float64 `json:"recency" yaml:"recency"`
}

// DefaultWeights returns the standard score weighting (0.6/0.25/0.15).
func DefaultWeights() ScoreWeights {
	return ScoreWeights{Semantic: 0.6, Citation: 0.25, Recency: 0.15}
}

// JudgeConfig holds settings for the judgment stage.
type JudgeConfig struct {
	AIConfig `yaml:",inline"`

	// BatchSize is how many candidates go into one oracle call (default 10).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// SnippetMaxChars bounds the representative excerpt sent per
	// candidate (default 300).
	SnippetMaxChars int `json:"snippet_max_chars" yaml:"snippet_max_chars"`

	// CitationCap is the citation count at which the citation score
	// saturates at 1.0 (default 10000).
	CitationCap int `json:"citation_cap" yaml:"citation_cap"`

	// Weights combines the three score components. Zero value means
	// DefaultWeights.
	Weights ScoreWeights `json:"weights" yaml:"weights"`
}

// PipelineConfig groups all stage configurations for a broadsearch run.
type PipelineConfig struct {
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Judge     JudgeConfig     `json:"judge" yaml:"judge"`

	// Reformulations is how many query paraphrases to request (default 3).
	Reformulations int `json:"reformulations" yaml:"reformulations"`

	// MaxResults is the maximum number of ranked papers returned (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
