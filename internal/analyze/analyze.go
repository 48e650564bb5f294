// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze turns raw query text into a structured intent
// descriptor: query type, semantic topic, weighted relevance criteria,
// metadata filters, and sort preferences.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/broadsearch/internal/llm"
	"github.com/pdiddy/broadsearch/pkg/types"
)

var analyzePromptTmpl = template.Must(template.New("analyze").Parse(`You are an expert research assistant. Analyze the user's search query.

User Query: "{{.Query}}"

Extract the following:

1. **Query Type**:
   - SPECIFIC_BY_TITLE: Asks for a specific paper by exact title.
   - SPECIFIC_BY_NAME: Asks for a paper by fuzzy name (e.g., "the llama 3 paper").
   - PURE_METADATA: No semantic topic, only filters (e.g., "papers from NeurIPS 2024").
   - CITING_PAPERS: Asks for papers citing a specific paper.
   - BROAD_SEMANTIC: Default. Asks about a topic.

2. **Content Query**:
   Core semantic topic. Remove "papers about", "find me", and metadata filters.
   Example: "papers by LeCun on energy based models" -> "energy based models"

3. **Metadata**:
   Authors, Venues (conferences/journals), Time Range (years).
   Domains: Academic field (e.g., Computer Science, Biology).

4. **Sorting Intent**:
   - recent_first: "new", "latest", "recent"
   - central_first: "seminal", "important", "highly cited", "classic"

5. **Relevance Criteria**:
   Generate 3-5 specific sub-criteria to judge papers by.
   Assign weights summing to 1.0.

Output as JSON matching this schema:
{
  "query_type": {"type": "BROAD_SEMANTIC"},
  "content_query": "...",
  "relevance_criteria": {
    "criteria": [
      {"description": "...", "weight": 0.4}
    ]
  },
  "time_range": {"start_year": 2020, "end_year": 2024} or null,
  "venues": ["NeurIPS", "ICML"] or null,
  "authors": ["Yann LeCun"] or null,
  "domains": {"domains": ["Computer Science"]},
  "recent_first": false,
  "central_first": false
}`))

// Wire structures mirroring the JSON schema the prompt requests. The
// nesting is normalized away before anything downstream sees it.
type analyzedWire struct {
	QueryType struct {
		Type string `json:"type"`
	} `json:"query_type"`
	ContentQuery      string `json:"content_query"`
	RelevanceCriteria struct {
		Criteria []types.Criterion `json:"criteria"`
	} `json:"relevance_criteria"`
	TimeRange *types.YearRange `json:"time_range"`
	Venues    []string         `json:"venues"`
	Authors   []string         `json:"authors"`
	Domains   struct {
		Domains []string `json:"domains"`
	} `json:"domains"`
	RecentFirst  bool `json:"recent_first"`
	CentralFirst bool `json:"central_first"`
}

// validQueryTypes guards against the model inventing a type.
var validQueryTypes = map[types.QueryType]bool{
	types.QueryBroadSemantic:   true,
	types.QuerySpecificByTitle: true,
	types.QuerySpecificByName:  true,
	types.QueryPureMetadata:    true,
	types.QueryCitingPapers:    true,
}

// Analyze asks the model to classify the query and extract criteria and
// filters. The returned descriptor always has a usable ContentQuery: when
// the model omits one, the raw query is used.
func Analyze(ctx context.Context, client llm.Client, query string) (*types.AnalyzedQuery, error) {
	var buf bytes.Buffer
	if err := analyzePromptTmpl.Execute(&buf, struct{ Query string }{Query: query}); err != nil {
		return nil, fmt.Errorf("rendering analysis prompt: %w", err)
	}

	resp, err := client.Complete(ctx, buf.String())
	if err != nil {
		return nil, fmt.Errorf("analysis call: %w", err)
	}

	var wire analyzedWire
	if err := json.Unmarshal([]byte(llm.StripFences(resp)), &wire); err != nil {
		return nil, fmt.Errorf("parsing analysis response: %w", err)
	}

	qt := types.QueryType(wire.QueryType.Type)
	if !validQueryTypes[qt] {
		qt = types.QueryBroadSemantic
	}

	analyzed := &types.AnalyzedQuery{
		QueryType:    qt,
		ContentQuery: wire.ContentQuery,
		Criteria:     clampWeights(wire.RelevanceCriteria.Criteria),
		TimeRange:    wire.TimeRange,
		Venues:       wire.Venues,
		Authors:      wire.Authors,
		Domains:      wire.Domains.Domains,
		RecentFirst:  wire.RecentFirst,
		CentralFirst: wire.CentralFirst,
	}
	if analyzed.ContentQuery == "" {
		analyzed.ContentQuery = query
	}
	return analyzed, nil
}

// clampWeights bounds criterion weights to [0,1]. The list as a whole is
// guidance for the oracle and need not sum to 1.
func clampWeights(criteria []types.Criterion) []types.Criterion {
	for i := range criteria {
		if criteria[i].Weight < 0 {
			criteria[i].Weight = 0
		}
		if criteria[i].Weight > 1 {
			criteria[i].Weight = 1
		}
	}
	return criteria
}
