// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate collapses retrieval hits that refer to the same paper
// into one candidate, merging evidence snippets and provenance. It is a
// pure in-memory reduction over already-fetched data.
package aggregate

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// Aggregate folds hits into one Candidate per distinct paper identifier.
//
// The first hit for an identifier seeds the candidate's metadata. Later
// hits add an evidence snippet only when its text differs from every
// existing snippet (exact string equality), and grow the strategy and
// query sets. After the fold each candidate's snippets are sorted by
// score descending; the sort is stable so ties keep encounter order.
// Candidate order follows first-encounter order of identifiers.
func Aggregate(hits []types.RetrievalHit, w io.Writer) []types.Candidate {
	index := make(map[string]int, len(hits))
	var candidates []types.Candidate

	for _, hit := range hits {
		snippet := types.Snippet{
			Text:     snippetText(hit.Paper),
			Query:    hit.Query,
			Strategy: hit.Strategy,
			Score:    hit.Paper.RetrievalScore,
		}

		i, seen := index[hit.Paper.ID]
		if !seen {
			index[hit.Paper.ID] = len(candidates)
			candidates = append(candidates, types.Candidate{
				Paper:      hit.Paper,
				Snippets:   []types.Snippet{snippet},
				Strategies: []types.Strategy{hit.Strategy},
				Queries:    []string{hit.Query},
			})
			continue
		}

		c := &candidates[i]
		if snippet.Text != "" && !hasSnippetText(c.Snippets, snippet.Text) {
			c.Snippets = append(c.Snippets, snippet)
		}
		if !hasStrategy(c.Strategies, hit.Strategy) {
			c.Strategies = append(c.Strategies, hit.Strategy)
		}
		if !hasQuery(c.Queries, hit.Query) {
			c.Queries = append(c.Queries, hit.Query)
		}
	}

	for i := range candidates {
		sort.SliceStable(candidates[i].Snippets, func(a, b int) bool {
			return candidates[i].Snippets[a].Score > candidates[i].Snippets[b].Score
		})
	}

	fmt.Fprintf(w, "aggregated %d hits into %d unique papers (%d duplicates merged)\n",
		len(hits), len(candidates), len(hits)-len(candidates))
	return candidates
}

// snippetText picks the evidence text for a hit: the retrieval excerpt if
// the backend supplied one, else the abstract, else empty.
func snippetText(p types.Paper) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return p.Abstract
}

func hasSnippetText(snippets []types.Snippet, text string) bool {
	for _, s := range snippets {
		if s.Text == text {
			return true
		}
	}
	return false
}

func hasStrategy(strategies []types.Strategy, s types.Strategy) bool {
	for _, have := range strategies {
		if have == s {
			return true
		}
	}
	return false
}

func hasQuery(queries []string, q string) bool {
	for _, have := range queries {
		if have == q {
			return true
		}
	}
	return false
}
