// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reformulate generates alternate phrasings of a topic so
// retrieval can cast a wider net than the user's exact wording.
package reformulate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/pdiddy/broadsearch/internal/llm"
)

var reformulatePromptTmpl = template.Must(template.New("reformulate").Parse(`Generate {{.K}} alternative phrasings of this search query.
Each should capture the same intent but use different words/terminology.

Original query: "{{.Query}}"

Return JSON: {"reformulations": ["alt1", "alt2", "alt3"]}

Rules:
- Keep same meaning, change wording
- Use synonyms, related terms, different phrasing
- Each should be a standalone search query
- No explanations, just the queries`))

type reformulationsWire struct {
	Reformulations []string `json:"reformulations"`
}

// Queries asks the model for k paraphrases of topic and returns the
// original followed by up to k non-empty, distinct reformulations. On any
// failure it returns just the original so the pipeline degrades to a
// single-query search instead of aborting.
func Queries(ctx context.Context, client llm.Client, topic string, k int) []string {
	if k <= 0 {
		return []string{topic}
	}

	var buf bytes.Buffer
	if err := reformulatePromptTmpl.Execute(&buf, struct {
		Query string
		K     int
	}{Query: topic, K: k}); err != nil {
		return []string{topic}
	}

	resp, err := client.Complete(ctx, buf.String())
	if err != nil {
		return []string{topic}
	}

	var wire reformulationsWire
	if err := json.Unmarshal([]byte(llm.StripFences(resp)), &wire); err != nil {
		return []string{topic}
	}

	queries := []string{topic}
	for _, q := range wire.Reformulations {
		q = strings.TrimSpace(q)
		if q == "" || contains(queries, q) {
			continue
		}
		queries = append(queries, q)
		if len(queries) == k+1 {
			break
		}
	}
	return queries
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
