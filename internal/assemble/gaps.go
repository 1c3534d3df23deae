package assemble

import (
	"fmt"
	"math"

	"github.com/avolkov/tessera/internal/model"
)

// suggestedSourcesFor maps a gap's direction to the evidence-source
// categories most likely to fill it.
func suggestedSourcesFor(dir model.Direction) []string {
	switch dir {
	case model.DirTemporal:
		return []string{"historical_archive", "government_record", "travel_record"}
	case model.DirCausal:
		return []string{"financial_record", "communication_log", "digital_communication"}
	default:
		return []string{"osint", "legal_document", "witness_statement"}
	}
}

// Analyzer inspects an assembled picture for unmet edges and derives
// scored conclusions and the deterministic narrative.
type Analyzer struct {
	ids model.IDSource
}

// NewAnalyzer creates a gap and conclusion analyzer.
func NewAnalyzer(ids model.IDSource) *Analyzer {
	return &Analyzer{ids: ids}
}

// FindGaps returns one gap per placed component edge that has compatible
// partners in the batch but no neighbor seated in that direction, plus
// one exclusion gap per unplaceable component so the narrative explains
// why evidence is absent from the reconstruction.
func (a *Analyzer) FindGaps(picture *model.Picture) []model.Gap {
	occupied := make(map[coord]string)
	for _, id := range picture.PlacedIDs {
		comp := picture.ComponentByID(id)
		if comp == nil || comp.Position == nil {
			continue
		}
		occupied[coord{comp.Position.X, comp.Position.Y, comp.Position.Z}] = id
	}

	var gaps []model.Gap
	for _, id := range picture.PlacedIDs {
		comp := picture.ComponentByID(id)
		if comp == nil || comp.Position == nil {
			continue
		}
		for _, edge := range comp.Edges {
			if len(edge.CompatibleWith) == 0 {
				continue
			}
			dx, dy, dz := edge.Direction.Offset()
			c := coord{comp.Position.X + dx, comp.Position.Y + dy, comp.Position.Z + dz}
			if _, taken := occupied[c]; taken {
				continue
			}
			gaps = append(gaps, model.Gap{
				ID:       a.ids.NewID("gap"),
				Location: model.GapLocation{X: c.x, Y: c.y, Z: c.z},
				RequiredShape: model.Shape{
					Topology:   model.TopologyInterior,
					Complexity: comp.Shape.Complexity,
					Symmetric:  false,
				},
				RequiredEdge: model.RequiredEdge{
					Direction: edge.Direction.Opposite(),
					Pattern:   edge.Pattern,
					Strength:  edge.Strength,
				},
				SuggestedSources: suggestedSourcesFor(edge.Direction),
				Priority:         gapPriority(comp.Weight),
				Description: fmt.Sprintf("missing %s neighbor of component %s",
					edge.Direction, comp.ID),
			})
		}
	}

	for _, id := range picture.UnplaceableIDs {
		comp := picture.ComponentByID(id)
		if comp == nil {
			continue
		}
		gaps = append(gaps, model.Gap{
			ID:            a.ids.NewID("gap"),
			Location:      model.GapLocation{},
			RequiredShape: comp.Shape,
			RequiredEdge:  strongestEdge(comp),
			SuggestedSources: []string{
				"osint", "witness_statement", "government_record",
			},
			Priority: gapPriority(comp.Weight),
			Description: fmt.Sprintf("component %s excluded: no compatible seat found in a full pass",
				comp.ID),
		})
	}

	return gaps
}

// gapPriority derives the 1-10 priority from the requesting component's
// weight.
func gapPriority(weight float64) int {
	p := int(math.Ceil(weight / 10))
	if p < 1 {
		return 1
	}
	if p > 10 {
		return 10
	}
	return p
}

// strongestEdge picks the component's highest-strength edge as the one
// a connecting piece would most plausibly attach to.
func strongestEdge(comp *model.Component) model.RequiredEdge {
	var best model.Edge
	for _, e := range comp.Edges {
		if e.Strength > best.Strength {
			best = e
		}
	}
	return model.RequiredEdge{
		Direction: best.Direction.Opposite(),
		Pattern:   best.Pattern,
		Strength:  best.Strength,
	}
}
