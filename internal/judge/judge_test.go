// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judge

import (
	"context"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// mockOracle returns scripted judgments per batch, or an error.
type mockOracle struct {
	judgments map[string]Judgment
	err       error
	batches   [][]types.Candidate
}

func (m *mockOracle) JudgeBatch(_ context.Context, _ string, _ []types.Criterion, batch []types.Candidate) ([]Judgment, error) {
	m.batches = append(m.batches, batch)
	if m.err != nil {
		return nil, m.err
	}
	var out []Judgment
	for _, c := range batch {
		if j, ok := m.judgments[c.ID]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func candidates(n int) []types.Candidate {
	var out []types.Candidate
	for i := 0; i < n; i++ {
		out = append(out, types.Candidate{Paper: types.Paper{ID: fmt.Sprintf("P%d", i)}})
	}
	return out
}

func testJudgeCfg() types.JudgeConfig {
	return types.JudgeConfig{BatchSize: 10}
}

func TestJudgeAllBatching(t *testing.T) {
	oracle := &mockOracle{judgments: map[string]Judgment{}}
	JudgeAll(context.Background(), oracle, candidates(23), "topic", nil, false, testJudgeCfg(), io.Discard)

	if len(oracle.batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(oracle.batches))
	}
	sizes := []int{len(oracle.batches[0]), len(oracle.batches[1]), len(oracle.batches[2])}
	if sizes[0] != 10 || sizes[1] != 10 || sizes[2] != 3 {
		t.Errorf("batch sizes = %v, want [10 10 3]", sizes)
	}
}

func TestJudgeAllTotalFunction(t *testing.T) {
	// Oracle only judges P0; everyone else must still get a result.
	oracle := &mockOracle{judgments: map[string]Judgment{
		"P0": {PaperID: "P0", Score: 0.9, Reasoning: "on topic"},
	}}

	scored := JudgeAll(context.Background(), oracle, candidates(3), "topic", nil, false, testJudgeCfg(), io.Discard)
	if len(scored) != 3 {
		t.Fatalf("len(scored) = %d, want 3", len(scored))
	}

	if scored[0].SemanticScore != 0.9 {
		t.Errorf("P0 semantic = %f, want 0.9", scored[0].SemanticScore)
	}
	for _, p := range scored[1:] {
		if p.SemanticScore != 0.5 {
			t.Errorf("%s semantic = %f, want neutral 0.5", p.ID, p.SemanticScore)
		}
		if p.Reasoning != "not judged" {
			t.Errorf("%s reasoning = %q, want %q", p.ID, p.Reasoning, "not judged")
		}
	}
}

func TestJudgeAllNeutralSubstitutionOnBatchFailure(t *testing.T) {
	oracle := &mockOracle{err: fmt.Errorf("oracle unreachable")}

	scored := JudgeAll(context.Background(), oracle, candidates(12), "topic", nil, false, testJudgeCfg(), io.Discard)
	if len(scored) != 12 {
		t.Fatalf("len(scored) = %d, want 12 (batch failure never drops candidates)", len(scored))
	}
	for _, p := range scored {
		if p.SemanticScore != 0.5 {
			t.Errorf("%s semantic = %f, want neutral 0.5", p.ID, p.SemanticScore)
		}
		if p.Reasoning != "judgment failed" {
			t.Errorf("%s reasoning = %q, want %q", p.ID, p.Reasoning, "judgment failed")
		}
	}
}

func TestJudgeAllNilOracle(t *testing.T) {
	scored := JudgeAll(context.Background(), nil, candidates(2), "topic", nil, false, testJudgeCfg(), io.Discard)
	if len(scored) != 2 {
		t.Fatalf("len(scored) = %d, want 2", len(scored))
	}
	for _, p := range scored {
		if p.SemanticScore != 0.5 {
			t.Errorf("%s semantic = %f, want 0.5", p.ID, p.SemanticScore)
		}
	}
}

func TestJudgeAllClampsOracleScores(t *testing.T) {
	oracle := &mockOracle{judgments: map[string]Judgment{
		"P0": {PaperID: "P0", Score: 1.4},
		"P1": {PaperID: "P1", Score: -0.2},
	}}

	scored := JudgeAll(context.Background(), oracle, candidates(2), "topic", nil, false, testJudgeCfg(), io.Discard)
	if scored[0].SemanticScore != 1.0 {
		t.Errorf("P0 semantic = %f, want clamped 1.0", scored[0].SemanticScore)
	}
	if scored[1].SemanticScore != 0.0 {
		t.Errorf("P1 semantic = %f, want clamped 0.0", scored[1].SemanticScore)
	}
}

func TestJudgeAllScenario(t *testing.T) {
	// Candidate with no citations and unknown year, oracle score 0.9,
	// default weights: final = 0.6*0.9 + 0.25*0 + 0.15*0.5 = 0.615.
	oracle := &mockOracle{judgments: map[string]Judgment{
		"P0": {PaperID: "P0", Score: 0.9, Reasoning: "matches"},
	}}
	input := []types.Candidate{{Paper: types.Paper{ID: "P0", CitationCount: 0}}}

	scored := JudgeAll(context.Background(), oracle, input, "topic", nil, false, testJudgeCfg(), io.Discard)
	p := scored[0]

	if math.Abs(p.FinalScore-0.615) > 1e-9 {
		t.Errorf("final = %f, want 0.615", p.FinalScore)
	}
	if p.Label != types.LabelRelevant {
		t.Errorf("label = %s, want relevant", p.Label)
	}
	if p.CitationScore != 0.0 || p.RecencyScore != 0.5 {
		t.Errorf("citation/recency = %f/%f, want 0.0/0.5", p.CitationScore, p.RecencyScore)
	}
}

func TestJudgeAllEmptyInput(t *testing.T) {
	if got := JudgeAll(context.Background(), &mockOracle{}, nil, "topic", nil, false, testJudgeCfg(), io.Discard); got != nil {
		t.Errorf("JudgeAll(nil candidates) = %v, want nil", got)
	}
}

func TestJudgeAllRecencyUsesPreference(t *testing.T) {
	old := nowYear
	nowYear = func() int { return 2026 }
	defer func() { nowYear = old }()

	oracle := &mockOracle{judgments: map[string]Judgment{}}
	input := []types.Candidate{{Paper: types.Paper{ID: "P0", Year: 2026}}}

	scored := JudgeAll(context.Background(), oracle, input, "topic", nil, true, testJudgeCfg(), io.Discard)
	if scored[0].RecencyScore != 1.0 {
		t.Errorf("recency = %f, want 1.0 for a current-year paper with recency preference", scored[0].RecencyScore)
	}
}
