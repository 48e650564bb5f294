// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package judge scores aggregated candidates against the topic and
// weighted criteria. The oracle supplies a semantic estimate per
// candidate; citation and recency signals are computed locally. Judging is
// total: every candidate receives a result even when the oracle fails.
package judge

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// Judgment is the oracle's verdict for one candidate.
type Judgment struct {
	PaperID   string  `json:"paper_id"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Oracle judges a batch of candidates against the topic and criteria.
// Implementations may fail for the whole batch; the engine substitutes
// neutral scores rather than propagating the error.
type Oracle interface {
	JudgeBatch(ctx context.Context, topic string, criteria []types.Criterion, batch []types.Candidate) ([]Judgment, error)
}

// neutralScore is substituted when the oracle cannot judge a candidate.
const neutralScore = 0.5

const defaultBatchSize = 10

// nowYear returns the current year. Tests override it for stable recency scores.
var nowYear = func() int { return time.Now().Year() }

// JudgeAll scores every candidate: the oracle's semantic estimate is
// combined with the local citation and recency signals into a final score
// and label. Candidates are submitted in fixed-size batches; a failed
// batch degrades each of its candidates to a neutral semantic score with
// reasoning that flags the failure. The output has exactly one ScoredPaper
// per input candidate, in input order.
func JudgeAll(ctx context.Context, oracle Oracle, candidates []types.Candidate, topic string, criteria []types.Criterion, recentFirst bool, cfg types.JudgeConfig, w io.Writer) []types.ScoredPaper {
	if len(candidates) == 0 {
		return nil
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	weights := cfg.Weights
	if weights == (types.ScoreWeights{}) {
		weights = types.DefaultWeights()
	}

	judgments := make(map[string]Judgment, len(candidates))
	totalBatches := (len(candidates) + batchSize - 1) / batchSize

	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]
		batchNum := start/batchSize + 1
		fmt.Fprintf(w, "judging batch %d/%d (%d papers)\n", batchNum, totalBatches, len(batch))

		if oracle == nil {
			for _, c := range batch {
				judgments[c.ID] = Judgment{PaperID: c.ID, Score: neutralScore, Reasoning: "no oracle configured"}
			}
			continue
		}

		results, err := oracle.JudgeBatch(ctx, topic, criteria, batch)
		if err != nil {
			fmt.Fprintf(w, "warning: judgment batch %d failed: %v\n", batchNum, err)
			for _, c := range batch {
				judgments[c.ID] = Judgment{PaperID: c.ID, Score: neutralScore, Reasoning: "judgment failed"}
			}
			continue
		}
		for _, j := range results {
			judgments[j.PaperID] = j
		}
	}

	currentYear := nowYear()
	scored := make([]types.ScoredPaper, 0, len(candidates))
	for _, c := range candidates {
		j, ok := judgments[c.ID]
		if !ok {
			// The oracle's response omitted this candidate.
			j = Judgment{PaperID: c.ID, Score: neutralScore, Reasoning: "not judged"}
		}

		semantic := clamp01(j.Score)
		citation := CitationScore(c.CitationCount, cfg.CitationCap)
		recency := RecencyScore(c.Year, currentYear, recentFirst)
		final := FinalScore(weights, semantic, citation, recency)

		scored = append(scored, types.ScoredPaper{
			Candidate:     c,
			SemanticScore: semantic,
			CitationScore: citation,
			RecencyScore:  recency,
			FinalScore:    final,
			Label:         ScoreLabel(final),
			Reasoning:     j.Reasoning,
		})
	}

	return scored
}

// clamp01 bounds an oracle score to [0,1]; oracles occasionally return
// values slightly outside the requested range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
