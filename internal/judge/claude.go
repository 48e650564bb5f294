// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/broadsearch/internal/llm"
	"github.com/pdiddy/broadsearch/pkg/types"
)

// judgePromptTmpl asks the model to score each paper in a batch against
// the topic and weighted criteria and respond with a JSON array.
var judgePromptTmpl = template.Must(template.New("judge").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`You are a research paper relevance judge.

Query: "{{.Topic}}"
{{if .Criteria}}
Relevance criteria:
{{range .Criteria}}- {{.Description}} (weight: {{.Weight}})
{{end}}{{end}}
Papers to judge:
{{range $i, $p := .Papers}}
Paper {{inc $i}}:
- ID: {{$p.ID}}
- Title: {{$p.Title}}
- Year: {{if $p.Year}}{{$p.Year}}{{else}}unknown{{end}}
- Snippet: {{$p.Snippet}}
{{end}}
For each paper, score its relevance from 0.0 to 1.0 based on how well it matches the query and criteria.

Respond with a JSON array:
[
  {"paper_id": "...", "score": 0.85, "reasoning": "brief explanation"},
  ...
]

Only output the JSON array, nothing else.`))

// DefaultSnippetMaxChars bounds the excerpt sent per candidate.
const DefaultSnippetMaxChars = 300

// noSummaryMarker is sent when a candidate has neither snippets nor an abstract.
const noSummaryMarker = "no summary available"

// ClaudeOracle judges batches via the Claude API.
type ClaudeOracle struct {
	LLM llm.Client

	// SnippetMaxChars bounds the per-paper excerpt (default 300).
	SnippetMaxChars int
}

// promptPaper is the per-candidate view rendered into the prompt.
type promptPaper struct {
	ID      string
	Title   string
	Year    int
	Snippet string
}

// JudgeBatch renders the judgment prompt for one batch, calls the model,
// and normalizes the response into Judgments.
func (o *ClaudeOracle) JudgeBatch(ctx context.Context, topic string, criteria []types.Criterion, batch []types.Candidate) ([]Judgment, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	maxChars := o.SnippetMaxChars
	if maxChars <= 0 {
		maxChars = DefaultSnippetMaxChars
	}

	papers := make([]promptPaper, 0, len(batch))
	for _, c := range batch {
		papers = append(papers, promptPaper{
			ID:      c.ID,
			Title:   c.Title,
			Year:    c.Year,
			Snippet: representativeSnippet(c, maxChars),
		})
	}

	var buf bytes.Buffer
	err := judgePromptTmpl.Execute(&buf, struct {
		Topic    string
		Criteria []types.Criterion
		Papers   []promptPaper
	}{Topic: topic, Criteria: criteria, Papers: papers})
	if err != nil {
		return nil, fmt.Errorf("rendering judgment prompt: %w", err)
	}

	resp, err := o.LLM.Complete(ctx, buf.String())
	if err != nil {
		return nil, fmt.Errorf("judgment call: %w", err)
	}

	judgments, err := parseJudgments(resp)
	if err != nil {
		return nil, fmt.Errorf("parsing judgment response: %w", err)
	}
	return judgments, nil
}

// representativeSnippet picks the excerpt sent to the oracle for one
// candidate: the first evidence snippet if present, else the abstract,
// else a literal marker. The result is truncated to maxChars runes.
func representativeSnippet(c types.Candidate, maxChars int) string {
	text := ""
	if len(c.Snippets) > 0 {
		text = c.Snippets[0].Text
	}
	if text == "" {
		text = c.Abstract
	}
	if text == "" {
		return noSummaryMarker
	}
	runes := []rune(text)
	if len(runes) > maxChars {
		return string(runes[:maxChars])
	}
	return text
}

// judgmentWrapper covers the wrapper-object shapes models produce instead
// of a bare array. Exactly one of the keys is expected to be populated.
type judgmentWrapper struct {
	Papers    []Judgment `json:"papers"`
	Judgments []Judgment `json:"judgments"`
	Results   []Judgment `json:"results"`
}

// parseJudgments normalizes the oracle response: a bare JSON array of
// judgments, or an object wrapping that array under "papers", "judgments",
// or "results". Anything else is an error, which the engine recovers from
// with neutral scores.
func parseJudgments(resp string) ([]Judgment, error) {
	text := llm.StripFences(resp)

	var direct []Judgment
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return direct, nil
	}

	var wrapped judgmentWrapper
	if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
		return nil, fmt.Errorf("response is neither a judgment array nor a known wrapper: %w", err)
	}
	switch {
	case len(wrapped.Papers) > 0:
		return wrapped.Papers, nil
	case len(wrapped.Judgments) > 0:
		return wrapped.Judgments, nil
	case len(wrapped.Results) > 0:
		return wrapped.Results, nil
	}
	return nil, fmt.Errorf("response contains no judgments")
}
