package compress

import (
	"crypto/sha256"
	"encoding/hex"
	"math"

	"github.com/avolkov/tessera/internal/model"
)

// EdgeEngineer computes directional edges and pairwise compatibility for
// a batch of components. Pairwise compatibility is O(n^2); acceptable at
// expected batch sizes of tens to low hundreds per case.
type EdgeEngineer struct{}

// NewEdgeEngineer creates an edge engineer.
func NewEdgeEngineer() *EdgeEngineer {
	return &EdgeEngineer{}
}

// Engineer fills in every component's edges: a deterministic pattern,
// a strength score, and the compatible/incompatible identifier sets
// against every other component in the batch. Mutates only the edge
// lists of the given slice.
func (e *EdgeEngineer) Engineer(components []model.Component) {
	for i := range components {
		components[i].Edges = e.buildEdges(&components[i], components)
	}
}

// buildEdges computes the six directional edges for one component.
func (e *EdgeEngineer) buildEdges(comp *model.Component, all []model.Component) []model.Edge {
	edges := make([]model.Edge, 0, len(model.Directions))
	for _, dir := range model.Directions {
		edge := model.Edge{
			Direction: dir,
			Pattern:   edgePattern(comp.ID, dir, comp.Shape.Fingerprint),
			Strength:  edgeStrength(dir, comp.Shape),
		}
		for j := range all {
			other := &all[j]
			if other.ID == comp.ID {
				continue
			}
			if Compatible(comp.Shape, other.Shape, dir) {
				edge.CompatibleWith = append(edge.CompatibleWith, other.ID)
			} else {
				edge.IncompatibleWith = append(edge.IncompatibleWith, other.ID)
			}
		}
		edges = append(edges, edge)
	}
	return edges
}

// Compatible is the pure compatibility rule over two shapes for a
// direction. Temporal connections always fit; causal connections fit
// only across small complexity differences; the remaining planar
// directions follow topology pairing rules.
func Compatible(a, b model.Shape, dir model.Direction) bool {
	switch dir {
	case model.DirTemporal:
		return true
	case model.DirCausal:
		diff := a.Complexity - b.Complexity
		if diff < 0 {
			diff = -diff
		}
		return diff <= 2
	}

	return topologiesFit(a, b) || topologiesFit(b, a)
}

// topologiesFit checks the directional topology pairings from one side.
func topologiesFit(a, b model.Shape) bool {
	switch a.Topology {
	case model.TopologyBridge:
		return true
	case model.TopologyKeystone:
		return b.Complexity >= 7
	case model.TopologyCorner:
		return b.Topology == model.TopologyEdge
	case model.TopologyEdge:
		return b.Topology == model.TopologyCorner || b.Topology == model.TopologyInterior
	case model.TopologyInterior:
		return b.Topology == model.TopologyEdge || b.Topology == model.TopologyInterior
	default:
		return false
	}
}

// edgeStrength scores a directional connection surface 0-100.
func edgeStrength(dir model.Direction, shape model.Shape) float64 {
	strength := 50.0
	switch dir {
	case model.DirTemporal:
		strength += 20
	case model.DirCausal:
		strength += 25
	}
	strength += float64(shape.Complexity) * 3
	if !shape.Symmetric {
		strength += 10
	}
	return math.Min(strength, 100)
}

// edgePattern is the deterministic directional fingerprint.
func edgePattern(componentID string, dir model.Direction, shapeFingerprint string) string {
	h := sha256.Sum256([]byte(componentID + "|" + string(dir) + "|" + shapeFingerprint))
	return hex.EncodeToString(h[:])[:16]
}
