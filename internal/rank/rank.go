// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders scored papers and summarizes the run.
package rank

import (
	"sort"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// LabelCounts tallies papers per relevance tier.
type LabelCounts struct {
	HighlyRelevant   int `json:"highly_relevant" yaml:"highly_relevant"`
	Relevant         int `json:"relevant" yaml:"relevant"`
	SomewhatRelevant int `json:"somewhat_relevant" yaml:"somewhat_relevant"`
	NotRelevant      int `json:"not_relevant" yaml:"not_relevant"`
}

// Add increments the tally for one label.
func (c *LabelCounts) Add(l types.Label) {
	switch l {
	case types.LabelHighlyRelevant:
		c.HighlyRelevant++
	case types.LabelRelevant:
		c.Relevant++
	case types.LabelSomewhatRelevant:
		c.SomewhatRelevant++
	case types.LabelNotRelevant:
		c.NotRelevant++
	}
}

// Rank sorts papers by final score descending and truncates to maxResults
// (no truncation when maxResults <= 0). The sort is stable: equal scores
// keep their input order. Label counts cover all input papers, including
// any cut by truncation.
func Rank(papers []types.ScoredPaper, maxResults int) ([]types.ScoredPaper, LabelCounts) {
	var counts LabelCounts
	for _, p := range papers {
		counts.Add(p.Label)
	}

	ranked := make([]types.ScoredPaper, len(papers))
	copy(ranked, papers)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked, counts
}
