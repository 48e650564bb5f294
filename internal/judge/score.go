// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judge

import (
	"math"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// DefaultCitationCap is the citation count at which CitationScore saturates.
const DefaultCitationCap = 10000

// CitationScore normalizes a citation count to [0,1] on a log scale.
// Zero or negative counts score 0; counts at or above cap score 1. The
// log scale flattens growth for highly cited papers.
func CitationScore(count, cap int) float64 {
	if count <= 0 {
		return 0.0
	}
	if cap <= 0 {
		cap = DefaultCitationCap
	}
	return math.Min(math.Log(float64(count)+1)/math.Log(float64(cap)+1), 1.0)
}

// RecencyScore scores a publication year in [0,1]. Without a recency
// preference, or when the year is unknown (0), the score is a neutral
// 0.5. With a preference, papers decay by age relative to currentYear.
func RecencyScore(year, currentYear int, recentFirst bool) float64 {
	if year == 0 || !recentFirst {
		return 0.5
	}

	age := currentYear - year
	switch {
	case age <= 0:
		return 1.0
	case age <= 2:
		return 0.9
	case age <= 5:
		return 0.7
	case age <= 10:
		return 0.5
	default:
		return 0.3
	}
}

// FinalScore combines the three components with the given weights. Weights
// are taken as-is and are not required to sum to 1.
func FinalScore(w types.ScoreWeights, semantic, citation, recency float64) float64 {
	return w.Semantic*semantic + w.Citation*citation + w.Recency*recency
}

// ScoreLabel maps a final score onto the relevance ladder. Thresholds are
// evaluated top-down; a boundary value lands in the higher band.
func ScoreLabel(score float64) types.Label {
	switch {
	case score >= 0.8:
		return types.LabelHighlyRelevant
	case score >= 0.6:
		return types.LabelRelevant
	case score >= 0.3:
		return types.LabelSomewhatRelevant
	default:
		return types.LabelNotRelevant
	}
}
