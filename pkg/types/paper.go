// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the broadsearch pipeline.
package types

// Strategy identifies a retrieval method. The same paper can be surfaced
// independently by more than one strategy.
type Strategy string

const (
	// StrategySemantic is relevance-ranked search by meaning.
	StrategySemantic Strategy = "semantic"

	// StrategyKeyword is boolean keyword matching.
	StrategyKeyword Strategy = "keyword"
)

// Paper holds the core metadata of a candidate paper as returned by a
// search backend. A Year of 0 means the publication year is unknown.
type Paper struct {
	// ID is the canonical identifier from the source (e.g. a Semantic
	// Scholar paper id). Aggregation dedups on this key.
	ID string `json:"paper_id" yaml:"paper_id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract, empty if the source has none.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Year is the publication year, 0 if unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitationCount is the number of citing papers known to the source.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// URL points at the paper's landing page, empty if unknown.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Excerpt is the retrieval-time matching excerpt, if the backend
	// supplied one. Used to seed evidence snippets.
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`

	// RetrievalScore is the backend's relevance estimate for the query
	// that surfaced this paper, 0 when the backend supplies none. It
	// seeds the evidence snippet score during aggregation.
	RetrievalScore float64 `json:"retrieval_score,omitempty" yaml:"retrieval_score,omitempty"`
}

// RetrievalHit is one (paper, query, strategy) observation prior to
// deduplication. Hits are immutable once created.
type RetrievalHit struct {
	Paper    Paper    `json:"paper" yaml:"paper"`
	Query    string   `json:"query" yaml:"query"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// Snippet is an evidence excerpt with provenance: which query and which
// strategy produced it, and the retrieval-time relevance score (0 when
// the backend supplies none).
type Snippet struct {
	Text     string   `json:"text" yaml:"text"`
	Query    string   `json:"query" yaml:"query"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Score    float64  `json:"score" yaml:"score"`
}

// Candidate is a unique paper after identifier-based aggregation. Snippets
// hold deduplicated evidence ordered by score descending; Strategies and
// Queries record every distinct way the paper was found.
type Candidate struct {
	Paper `yaml:",inline"`

	Snippets   []Snippet  `json:"snippets" yaml:"snippets"`
	Strategies []Strategy `json:"strategies" yaml:"strategies"`
	Queries    []string   `json:"queries" yaml:"queries"`
}

// Label is the discrete relevance tier assigned from the final score.
type Label string

const (
	LabelHighlyRelevant   Label = "highly_relevant"
	LabelRelevant         Label = "relevant"
	LabelSomewhatRelevant Label = "somewhat_relevant"
	LabelNotRelevant      Label = "not_relevant"
)

// ScoredPaper extends Candidate with judgment output. All component scores
// are in [0,1]; FinalScore is their weighted combination. ScoredPapers are
// read-only once produced.
type ScoredPaper struct {
	Candidate `yaml:",inline"`

	// SemanticScore is the oracle's relevance estimate, 0.5 when the
	// oracle could not judge the paper.
	SemanticScore float64 `json:"semantic_score" yaml:"semantic_score"`

	// CitationScore is the log-normalized citation count.
	CitationScore float64 `json:"citation_score" yaml:"citation_score"`

	// RecencyScore reflects publication age, 0.5 when neutral.
	RecencyScore float64 `json:"recency_score" yaml:"recency_score"`

	// FinalScore is the weighted combination of the three components.
	FinalScore float64 `json:"final_score" yaml:"final_score"`

	// Label is the relevance tier derived from FinalScore.
	Label Label `json:"label" yaml:"label"`

	// Reasoning is the oracle's free-text justification.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}
