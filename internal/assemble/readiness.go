package assemble

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/avolkov/tessera/internal/model"
)

// Readiness aggregates completion, conclusion quality and component
// weight distribution into the court-readiness verdict.
type Readiness struct {
	CourtReady          bool    `json:"court_ready"`
	Score               float64 `json:"score"` // 0-100
	HumanReviewRequired bool    `json:"human_review_required"`
}

// ScoreReadiness computes the picture-level readiness verdict. Advisory
// output: downstream consumers decide whether to block on it.
func ScoreReadiness(picture *model.Picture) Readiness {
	completion := picture.CompletionPercentage

	highWeightPlaced := 0
	for _, id := range picture.PlacedIDs {
		comp := picture.ComponentByID(id)
		if comp != nil && comp.Weight >= 70 {
			highWeightPlaced++
		}
	}

	courtReadyConclusions := 0
	anyCertainty := false
	for _, c := range picture.Conclusions {
		if c.CourtReady {
			courtReadyConclusions++
		}
		if c.Type == model.ConclusionCertainty {
			anyCertainty = true
		}
	}

	courtReady := completion >= 80 &&
		courtReadyConclusions >= 1 &&
		highWeightPlaced >= 3

	conclusionRatio := 0.0
	if len(picture.Conclusions) > 0 {
		conclusionRatio = float64(courtReadyConclusions) / float64(len(picture.Conclusions))
	}
	weightRatio := 0.0
	if len(picture.PlacedIDs) > 0 {
		weightRatio = float64(highWeightPlaced) / float64(len(picture.PlacedIDs))
	}

	score := completion*0.40 + conclusionRatio*100*0.30 + weightRatio*100*0.20
	if len(picture.Gaps) == 0 {
		score += 10
	}
	score = math.Min(score, 100)

	return Readiness{
		CourtReady:          courtReady,
		Score:               math.Round(score*100) / 100,
		HumanReviewRequired: anyCertainty || completion >= 95,
	}
}

// IntegrityHash computes the tamper-evidence hash over the picture's own
// contents. Computed once at publication.
func IntegrityHash(picture *model.Picture) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%.4f|%t|%.2f\n",
		picture.ID, picture.CaseID, picture.CaseType,
		picture.CompletionPercentage, picture.CourtReady, picture.CourtReadinessScore)
	for i := range picture.Components {
		comp := &picture.Components[i]
		fmt.Fprintf(h, "%s|%s|%s\n", comp.ID, comp.Hash, comp.State)
		if comp.Position != nil {
			fmt.Fprintf(h, "%d,%d,%d\n", comp.Position.X, comp.Position.Y, comp.Position.Z)
		}
	}
	for _, g := range picture.Gaps {
		fmt.Fprintf(h, "gap|%s|%d\n", g.Description, g.Priority)
	}
	for _, c := range picture.Conclusions {
		fmt.Fprintf(h, "conclusion|%s|%.2f\n", c.Type, c.Confidence)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Finalize runs gap analysis, conclusions, narrative, readiness and the
// integrity hash over an assembled picture and returns the completed
// snapshot. The input picture is not mutated.
func Finalize(picture *model.Picture, analyzer *Analyzer) *model.Picture {
	final := *picture

	final.Gaps = analyzer.FindGaps(&final)
	final.Conclusions = analyzer.Conclusions(&final, final.Gaps)
	final.Narrative = analyzer.Narrative(&final, final.Gaps, final.Conclusions)

	readiness := ScoreReadiness(&final)
	final.CourtReady = readiness.CourtReady
	final.CourtReadinessScore = readiness.Score
	final.HumanReviewRequired = readiness.HumanReviewRequired

	final.IntegrityHash = IntegrityHash(&final)
	return &final
}
