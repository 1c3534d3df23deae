package assemble

import (
	"fmt"
	"math"
	"strings"

	"github.com/avolkov/tessera/internal/model"
)

// Conclusions derives the typed conclusions for an analyzed picture.
// Rules are threshold-based and deterministic: a certainty at >= 90%
// completion, a recommendation whenever gaps remain, and a finding when
// at least three placed components carry weight >= 80.
func (a *Analyzer) Conclusions(picture *model.Picture, gaps []model.Gap) []model.Conclusion {
	var conclusions []model.Conclusion

	if picture.CompletionPercentage >= 90 {
		conclusions = append(conclusions, model.Conclusion{
			Type: model.ConclusionCertainty,
			Statement: fmt.Sprintf("reconstruction is %.0f%% complete; the assembled structure supports the case narrative",
				picture.CompletionPercentage),
			SupportingComponents: append([]string(nil), picture.PlacedIDs...),
			Confidence:           picture.CompletionPercentage,
			CourtReady:           true,
			RequiresHumanReview:  true,
		})
	}

	if len(gaps) > 0 {
		conf := math.Max(100-float64(len(gaps))*5, 50)
		conclusions = append(conclusions, model.Conclusion{
			Type: model.ConclusionRecommendation,
			Statement: fmt.Sprintf("%d evidentiary gaps remain; pursue the suggested source categories before filing",
				len(gaps)),
			Confidence: conf,
		})
	}

	var heavy []string
	heavySum := 0.0
	for _, id := range picture.PlacedIDs {
		comp := picture.ComponentByID(id)
		if comp != nil && comp.Weight >= 80 {
			heavy = append(heavy, id)
			heavySum += comp.Weight
		}
	}
	if len(heavy) >= 3 {
		conf := heavySum / float64(len(heavy))
		conclusions = append(conclusions, model.Conclusion{
			Type: model.ConclusionFinding,
			Statement: fmt.Sprintf("%d high-weight components anchor the reconstruction",
				len(heavy)),
			SupportingComponents: heavy,
			Confidence:           conf,
			CourtReady:           conf >= 80,
		})
	}

	return conclusions
}

// Narrative renders the deterministic narrative string: case metadata,
// every conclusion, every gap. Identical pictures yield identical
// narratives.
func (a *Analyzer) Narrative(picture *model.Picture, gaps []model.Gap, conclusions []model.Conclusion) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Case %s (%s): %s.\n", picture.CaseID, picture.CaseType, picture.Title)
	fmt.Fprintf(&b, "Reconstruction %.1f%% complete: %d of %d components placed",
		picture.CompletionPercentage, len(picture.PlacedIDs), len(picture.Components))
	if len(picture.UnplaceableIDs) > 0 {
		fmt.Fprintf(&b, ", %d excluded as unplaceable", len(picture.UnplaceableIDs))
	}
	b.WriteString(".\n")

	for _, c := range conclusions {
		fmt.Fprintf(&b, "[%s] %s (confidence %.0f%%, court-ready: %t)\n",
			c.Type, c.Statement, c.Confidence, c.CourtReady)
	}
	for _, g := range gaps {
		fmt.Fprintf(&b, "Gap (priority %d): %s; suggested sources: %s\n",
			g.Priority, g.Description, strings.Join(g.SuggestedSources, ", "))
	}

	return b.String()
}
