// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judge

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// mockLLM returns a canned response and records the last prompt.
type mockLLM struct {
	response string
	err      error
	prompt   string
}

func (m *mockLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestParseJudgmentsShapes(t *testing.T) {
	want := []Judgment{{PaperID: "P1", Score: 0.8, Reasoning: "good"}}
	tests := []struct {
		name string
		resp string
	}{
		{"bare array", `[{"paper_id":"P1","score":0.8,"reasoning":"good"}]`},
		{"papers wrapper", `{"papers":[{"paper_id":"P1","score":0.8,"reasoning":"good"}]}`},
		{"judgments wrapper", `{"judgments":[{"paper_id":"P1","score":0.8,"reasoning":"good"}]}`},
		{"results wrapper", `{"results":[{"paper_id":"P1","score":0.8,"reasoning":"good"}]}`},
		{"fenced array", "```json\n[{\"paper_id\":\"P1\",\"score\":0.8,\"reasoning\":\"good\"}]\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJudgments(tt.resp)
			if err != nil {
				t.Fatalf("parseJudgments: %v", err)
			}
			if len(got) != 1 || got[0] != want[0] {
				t.Errorf("parseJudgments = %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseJudgmentsRejectsGarbage(t *testing.T) {
	for _, resp := range []string{"not json at all", `{"unexpected":"shape"}`, `{}`} {
		if _, err := parseJudgments(resp); err == nil {
			t.Errorf("parseJudgments(%q) succeeded, want error", resp)
		}
	}
}

func TestRepresentativeSnippet(t *testing.T) {
	longText := strings.Repeat("x", 400)
	tests := []struct {
		name      string
		candidate types.Candidate
		want      string
	}{
		{
			"first snippet wins",
			types.Candidate{
				Paper:    types.Paper{Abstract: "abstract"},
				Snippets: []types.Snippet{{Text: "snippet"}, {Text: "second"}},
			},
			"snippet",
		},
		{
			"abstract fallback",
			types.Candidate{Paper: types.Paper{Abstract: "abstract"}},
			"abstract",
		},
		{
			"marker fallback",
			types.Candidate{},
			"no summary available",
		},
		{
			"truncated to limit",
			types.Candidate{Snippets: []types.Snippet{{Text: longText}}},
			longText[:300],
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := representativeSnippet(tt.candidate, 300); got != tt.want {
				t.Errorf("representativeSnippet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClaudeOracleRendersPrompt(t *testing.T) {
	m := &mockLLM{response: `[{"paper_id":"P1","score":0.7,"reasoning":"ok"}]`}
	o := &ClaudeOracle{LLM: m}

	batch := []types.Candidate{{
		Paper:    types.Paper{ID: "P1", Title: "Attention Is All You Need", Year: 2017},
		Snippets: []types.Snippet{{Text: "the transformer architecture"}},
	}}
	criteria := []types.Criterion{{Description: "uses transformers", Weight: 0.6}}

	got, err := o.JudgeBatch(context.Background(), "transformer models", criteria, batch)
	if err != nil {
		t.Fatalf("JudgeBatch: %v", err)
	}
	if len(got) != 1 || got[0].Score != 0.7 {
		t.Errorf("judgments = %+v, want one with score 0.7", got)
	}

	for _, part := range []string{
		`"transformer models"`,
		"uses transformers (weight: 0.6)",
		"ID: P1",
		"Title: Attention Is All You Need",
		"Year: 2017",
		"Snippet: the transformer architecture",
	} {
		if !strings.Contains(m.prompt, part) {
			t.Errorf("prompt missing %q\nprompt:\n%s", part, m.prompt)
		}
	}
}

func TestClaudeOracleUnknownYear(t *testing.T) {
	m := &mockLLM{response: `[]`}
	o := &ClaudeOracle{LLM: m}

	_, err := o.JudgeBatch(context.Background(), "topic", nil, []types.Candidate{{Paper: types.Paper{ID: "P1"}}})
	if err != nil {
		t.Fatalf("JudgeBatch: %v", err)
	}
	if !strings.Contains(m.prompt, "Year: unknown") {
		t.Errorf("prompt should mark missing year as unknown:\n%s", m.prompt)
	}
}

func TestClaudeOraclePropagatesCallError(t *testing.T) {
	o := &ClaudeOracle{LLM: &mockLLM{err: fmt.Errorf("boom")}}
	_, err := o.JudgeBatch(context.Background(), "topic", nil, []types.Candidate{{Paper: types.Paper{ID: "P1"}}})
	if err == nil {
		t.Fatal("expected error from failing LLM call")
	}
}

func TestClaudeOracleEmptyBatch(t *testing.T) {
	o := &ClaudeOracle{LLM: &mockLLM{}}
	got, err := o.JudgeBatch(context.Background(), "topic", nil, nil)
	if err != nil || got != nil {
		t.Errorf("JudgeBatch(empty) = %v, %v; want nil, nil", got, err)
	}
}
