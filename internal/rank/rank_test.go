// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"testing"

	"github.com/pdiddy/broadsearch/pkg/types"
)

func scored(id string, final float64, label types.Label) types.ScoredPaper {
	return types.ScoredPaper{
		Candidate:  types.Candidate{Paper: types.Paper{ID: id}},
		FinalScore: final,
		Label:      label,
	}
}

func TestRankSortsDescending(t *testing.T) {
	papers := []types.ScoredPaper{
		scored("low", 0.2, types.LabelNotRelevant),
		scored("high", 0.9, types.LabelHighlyRelevant),
		scored("mid", 0.6, types.LabelRelevant),
	}

	ranked, _ := Rank(papers, 0)

	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d].ID = %q, want %q", i, ranked[i].ID, id)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].FinalScore > ranked[i-1].FinalScore {
			t.Errorf("ranking not descending at %d", i)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	papers := []types.ScoredPaper{
		scored("first", 0.5, types.LabelSomewhatRelevant),
		scored("second", 0.5, types.LabelSomewhatRelevant),
		scored("third", 0.5, types.LabelSomewhatRelevant),
	}

	ranked, _ := Rank(papers, 0)
	for i, id := range []string{"first", "second", "third"} {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d].ID = %q, want %q (ties keep input order)", i, ranked[i].ID, id)
		}
	}
}

func TestRankTruncates(t *testing.T) {
	var papers []types.ScoredPaper
	for i := 0; i < 30; i++ {
		papers = append(papers, scored("P", float64(i)/30, types.LabelRelevant))
	}

	ranked, counts := Rank(papers, 20)
	if len(ranked) != 20 {
		t.Errorf("len(ranked) = %d, want 20", len(ranked))
	}
	// Counts cover the full input, not just the returned page.
	if counts.Relevant != 30 {
		t.Errorf("counts.Relevant = %d, want 30", counts.Relevant)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	papers := []types.ScoredPaper{
		scored("a", 0.1, types.LabelNotRelevant),
		scored("b", 0.9, types.LabelHighlyRelevant),
	}

	Rank(papers, 0)
	if papers[0].ID != "a" || papers[1].ID != "b" {
		t.Error("Rank reordered its input slice")
	}
}

func TestRankLabelCounts(t *testing.T) {
	papers := []types.ScoredPaper{
		scored("a", 0.9, types.LabelHighlyRelevant),
		scored("b", 0.7, types.LabelRelevant),
		scored("c", 0.65, types.LabelRelevant),
		scored("d", 0.4, types.LabelSomewhatRelevant),
		scored("e", 0.1, types.LabelNotRelevant),
	}

	_, counts := Rank(papers, 0)
	want := LabelCounts{HighlyRelevant: 1, Relevant: 2, SomewhatRelevant: 1, NotRelevant: 1}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
}

func TestRankEmptyInput(t *testing.T) {
	ranked, counts := Rank(nil, 20)
	if len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0", len(ranked))
	}
	if counts != (LabelCounts{}) {
		t.Errorf("counts = %+v, want zero", counts)
	}
}
