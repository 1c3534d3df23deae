package assemble

import (
	"strings"
	"testing"

	"github.com/avolkov/tessera/internal/model"
)

func TestFinalize_HighQualityBatchIsCourtReady(t *testing.T) {
	types := []model.FragmentType{
		model.FragmentTestimony, model.FragmentDocument, model.FragmentFinancialTrace,
		model.FragmentTemporalMarker, model.FragmentLocationData, model.FragmentRelationshipLink,
		model.FragmentPhysical, model.FragmentMedia, model.FragmentRecord, model.FragmentDocument,
	}
	frags := make([]model.Fragment, len(types))
	for i, ft := range types {
		frags[i] = fragment(frid(i), ft, 9, 95)
	}
	components := engineered(t, frags)

	picture, _ := testAssembler().Assemble(components, "case-r1", model.CaseHumanTrafficking, "High quality")
	final := Finalize(picture, NewAnalyzer(model.NewSequenceSource()))

	if !final.CourtReady {
		t.Error("expected court-ready picture for a fully placed high-weight batch")
	}
	if final.CourtReadinessScore < 75 {
		t.Errorf("readiness score = %f, want >= 75", final.CourtReadinessScore)
	}
	if !final.HumanReviewRequired {
		t.Error("completion >= 95 must require human review")
	}

	var certainty, finding bool
	for _, c := range final.Conclusions {
		switch c.Type {
		case model.ConclusionCertainty:
			certainty = true
			if !c.RequiresHumanReview {
				t.Error("certainty conclusions must require human verification")
			}
		case model.ConclusionFinding:
			finding = true
			if len(c.SupportingComponents) < 3 {
				t.Errorf("finding supported by %d components, want >= 3", len(c.SupportingComponents))
			}
		}
	}
	if !certainty {
		t.Error("expected a certainty conclusion at >= 90% completion")
	}
	if !finding {
		t.Error("expected a finding conclusion with >= 3 high-weight placements")
	}
	if final.IntegrityHash == "" {
		t.Error("finalized picture must carry an integrity hash")
	}
}

func TestFinalize_GapsYieldRecommendation(t *testing.T) {
	components := pairedComponents()
	components[0].Edges = append(components[0].Edges, model.Edge{
		Direction: model.DirEast, Pattern: "pa-e", Strength: 40,
		CompatibleWith: []string{"comp-b"},
	})

	picture, _ := testAssembler().Assemble(components, "case-r2", model.CaseCorruption, "Gappy")
	final := Finalize(picture, NewAnalyzer(model.NewSequenceSource()))

	var recommendation bool
	for _, c := range final.Conclusions {
		if c.Type == model.ConclusionRecommendation {
			recommendation = true
			if c.CourtReady {
				t.Error("recommendations are not court-ready conclusions")
			}
		}
	}
	if !recommendation {
		t.Error("expected a recommendation conclusion while gaps remain")
	}
	if !strings.Contains(final.Narrative, "Gap (priority") {
		t.Errorf("narrative should enumerate gaps:\n%s", final.Narrative)
	}
}

func TestFinalize_NarrativeDeterministic(t *testing.T) {
	build := func() string {
		components := pairedComponents()
		picture, _ := testAssembler().Assemble(components, "case-r3", model.CaseCorruption, "Stable")
		return Finalize(picture, NewAnalyzer(model.NewSequenceSource())).Narrative
	}
	if build() != build() {
		t.Error("narrative differs across identical runs")
	}
}

func TestScoreReadiness_EmptyPicture(t *testing.T) {
	picture := &model.Picture{CaseID: "case-empty"}
	r := ScoreReadiness(picture)
	if r.CourtReady {
		t.Error("empty picture cannot be court-ready")
	}
	if r.Score < 0 || r.Score > 100 {
		t.Errorf("score out of bounds: %f", r.Score)
	}
	if r.HumanReviewRequired {
		t.Error("empty picture needs no human review")
	}
}

func TestScoreReadiness_ZeroGapBonus(t *testing.T) {
	base := model.Picture{
		CompletionPercentage: 80,
		PlacedIDs:            []string{"c1"},
		Components: []model.Component{
			{ID: "c1", Weight: 60, State: model.PlacementPlaced},
		},
		Conclusions: []model.Conclusion{{Type: model.ConclusionFinding, CourtReady: true}},
	}
	withGaps := base
	withGaps.Gaps = []model.Gap{{Priority: 5}}

	noGapScore := ScoreReadiness(&base).Score
	gapScore := ScoreReadiness(&withGaps).Score
	if noGapScore-gapScore != 10 {
		t.Errorf("zero-gap bonus = %f, want 10", noGapScore-gapScore)
	}
}
