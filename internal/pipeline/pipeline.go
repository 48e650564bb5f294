// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the broadsearch stages into one run: analyze,
// reformulate, retrieve, aggregate, judge, rank. Every stage degrades on
// failure; a run always terminates with a well-formed result.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/broadsearch/internal/aggregate"
	"github.com/pdiddy/broadsearch/internal/analyze"
	"github.com/pdiddy/broadsearch/internal/judge"
	"github.com/pdiddy/broadsearch/internal/llm"
	"github.com/pdiddy/broadsearch/internal/rank"
	"github.com/pdiddy/broadsearch/internal/reformulate"
	"github.com/pdiddy/broadsearch/internal/retrieve"
	"github.com/pdiddy/broadsearch/pkg/types"
)

// searchStrategyName tags result metadata with the pipeline that produced it.
const searchStrategyName = "broad_semantic_search"

// Agent holds the collaborators and configuration for pipeline runs.
type Agent struct {
	// LLM backs analysis and reformulation. When nil both are skipped
	// and retrieval runs on the raw query alone.
	LLM llm.Client

	// Oracle judges candidate relevance. When nil every candidate gets
	// a neutral semantic score.
	Oracle judge.Oracle

	// Backends are the retrieval strategies, in call order.
	Backends []retrieve.Backend

	// SkipAnalysis disables the query analyzer even when LLM is set.
	SkipAnalysis bool

	Config types.PipelineConfig
}

// ResultPaper is one ranked record in the run result. Scores are rounded
// to three decimal places.
type ResultPaper struct {
	ID            string   `json:"paper_id" yaml:"paper_id"`
	Title         string   `json:"title" yaml:"title"`
	Abstract      string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Year          int      `json:"year,omitempty" yaml:"year,omitempty"`
	CitationCount int      `json:"citation_count" yaml:"citation_count"`
	Authors       []string `json:"authors" yaml:"authors"`
	URL           string   `json:"url,omitempty" yaml:"url,omitempty"`

	Label         types.Label `json:"label" yaml:"label"`
	FinalScore    float64     `json:"final_score" yaml:"final_score"`
	SemanticScore float64     `json:"semantic_score" yaml:"semantic_score"`
	CitationScore float64     `json:"citation_score" yaml:"citation_score"`
	RecencyScore  float64     `json:"recency_score" yaml:"recency_score"`
	Reasoning     string      `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// Metadata summarizes a run.
type Metadata struct {
	TotalRetrieved int              `json:"total_retrieved" yaml:"total_retrieved"`
	UniquePapers   int              `json:"unique_papers" yaml:"unique_papers"`
	Labels         rank.LabelCounts `json:"labels" yaml:"labels"`
	SearchStrategy string           `json:"search_strategy" yaml:"search_strategy"`
	RunID          string           `json:"run_id" yaml:"run_id"`
	Timestamp      time.Time        `json:"timestamp" yaml:"timestamp"`
}

// Result is what a pipeline run returns to its caller.
type Result struct {
	Query    string               `json:"query" yaml:"query"`
	Analysis *types.AnalyzedQuery `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Papers   []ResultPaper        `json:"papers" yaml:"papers"`
	Metadata Metadata             `json:"metadata" yaml:"metadata"`
}

// Run executes the full pipeline on a user query. Progress and warnings
// go to w. The returned error covers only programmer mistakes (no
// backends); collaborator failures degrade and are reported in the result.
func (a *Agent) Run(ctx context.Context, query string, w io.Writer) (*Result, error) {
	if len(a.Backends) == 0 {
		return nil, fmt.Errorf("no retrieval backends configured")
	}

	fmt.Fprintf(w, "starting broad search for %q\n", query)

	// Analyze. Failure degrades to a nil analysis and the raw query.
	var analysis *types.AnalyzedQuery
	if a.LLM != nil && !a.SkipAnalysis {
		var err error
		analysis, err = analyze.Analyze(ctx, a.LLM, query)
		if err != nil {
			fmt.Fprintf(w, "warning: query analysis failed: %v\n", err)
		} else {
			fmt.Fprintf(w, "query type: %s, topic: %q\n", analysis.QueryType, analysis.ContentQuery)
		}
	}

	topic := query
	var criteria []types.Criterion
	recentFirst := false
	if analysis != nil {
		topic = analysis.ContentQuery
		criteria = analysis.Criteria
		recentFirst = analysis.RecentFirst
	}

	// Reformulate. Failure degrades to the topic alone inside Queries.
	queries := []string{topic}
	if a.LLM != nil {
		k := a.Config.Reformulations
		if k <= 0 {
			k = 3
		}
		queries = reformulate.Queries(ctx, a.LLM, topic, k)
	}
	fmt.Fprintf(w, "queries (%d): %v\n", len(queries), queries)

	// Retrieve and aggregate.
	retrieved := retrieve.Run(ctx, queries, a.Backends, a.Config.Retrieval, w)
	candidates := aggregate.Aggregate(retrieved.Hits, w)

	// No candidates short-circuits judgment and ranking: empty but
	// well-formed result.
	if len(candidates) == 0 {
		return a.buildResult(query, analysis, nil, rank.LabelCounts{}, len(retrieved.Hits), 0), nil
	}

	scored := judge.JudgeAll(ctx, a.Oracle, candidates, topic, criteria, recentFirst, a.Config.Judge, w)

	maxResults := a.Config.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	ranked, counts := rank.Rank(scored, maxResults)
	fmt.Fprintf(w, "ranked %d papers, returning top %d\n", len(scored), len(ranked))

	return a.buildResult(query, analysis, ranked, counts, len(retrieved.Hits), len(candidates)), nil
}

func (a *Agent) buildResult(query string, analysis *types.AnalyzedQuery, ranked []types.ScoredPaper, counts rank.LabelCounts, totalHits, unique int) *Result {
	papers := make([]ResultPaper, 0, len(ranked))
	for _, p := range ranked {
		papers = append(papers, ResultPaper{
			ID:            p.ID,
			Title:         p.Title,
			Abstract:      p.Abstract,
			Year:          p.Year,
			CitationCount: p.CitationCount,
			Authors:       p.Authors,
			URL:           p.URL,
			Label:         p.Label,
			FinalScore:    round3(p.FinalScore),
			SemanticScore: round3(p.SemanticScore),
			CitationScore: round3(p.CitationScore),
			RecencyScore:  round3(p.RecencyScore),
			Reasoning:     p.Reasoning,
		})
	}

	return &Result{
		Query:    query,
		Analysis: analysis,
		Papers:   papers,
		Metadata: Metadata{
			TotalRetrieved: totalHits,
			UniquePapers:   unique,
			Labels:         counts,
			SearchStrategy: searchStrategyName,
			RunID:          uuid.NewString(),
			Timestamp:      time.Now().UTC(),
		},
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
