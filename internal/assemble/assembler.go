// Package assemble places engineered components into a connected 3-D
// structure, detects the gaps the structure leaves open, derives scored
// conclusions, and computes the court-readiness verdict.
package assemble

import (
	"sort"
	"time"

	"github.com/avolkov/tessera/internal/model"
)

// coord is an occupancy key; z encodes temporal/causal layering.
type coord struct{ x, y, z int }

// Assembler greedily places components by weight and edge compatibility.
// Placement is inherently sequential per case: each decision depends on
// the current placed set. Stateless between calls; create per run.
type Assembler struct {
	ids model.IDSource
	now func() time.Time
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// NewAssembler creates an assembler.
func NewAssembler(ids model.IDSource, opts ...Option) *Assembler {
	a := &Assembler{ids: ids, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble places the components and returns the resulting picture and
// run statistics. The input slice is not mutated; the picture owns its
// own copies. Components that survive a full no-progress pass are marked
// unplaceable, a terminal state for this run.
func (a *Assembler) Assemble(components []model.Component, caseID string, caseType model.CaseType, title string) (*model.Picture, model.AssemblyStats) {
	start := a.now()

	working := make([]model.Component, len(components))
	copy(working, components)

	// Heaviest first; stable keeps insertion order on ties.
	order := make([]int, len(working))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return working[order[i]].Weight > working[order[j]].Weight
	})

	occupied := make(map[coord]string)
	byID := make(map[string]*model.Component, len(working))
	for i := range working {
		byID[working[i].ID] = &working[i]
	}

	var placedIDs []string
	queue := order
	passes := 0

	for len(queue) > 0 {
		passes++
		progressed := false
		var remaining []int

		for _, idx := range queue {
			comp := &working[idx]

			if len(placedIDs) == 0 {
				place(comp, model.Position{X: 0, Y: 0, Z: 0, Confidence: 100}, occupied)
				placedIDs = append(placedIDs, comp.ID)
				progressed = true
				continue
			}

			pos, ok := a.bestPosition(comp, placedIDs, byID, occupied)
			if !ok {
				remaining = append(remaining, idx)
				continue
			}
			place(comp, pos, occupied)
			placedIDs = append(placedIDs, comp.ID)
			progressed = true
		}

		if !progressed {
			for _, idx := range remaining {
				working[idx].State = model.PlacementUnplaceable
			}
			queue = nil
			break
		}
		queue = remaining
	}

	var unplaceableIDs []string
	for i := range working {
		if working[i].State == model.PlacementUnplaceable {
			unplaceableIDs = append(unplaceableIDs, working[i].ID)
		}
	}

	completion := 0.0
	if len(working) > 0 {
		completion = float64(len(placedIDs)) / float64(len(working)) * 100
	}

	picture := &model.Picture{
		ID:                   a.ids.NewID("pic"),
		CaseID:               caseID,
		CaseType:             caseType,
		Title:                title,
		Components:           working,
		PlacedIDs:            placedIDs,
		UnplaceableIDs:       unplaceableIDs,
		CompletionPercentage: completion,
		AssembledAt:          a.now(),
	}

	stats := model.AssemblyStats{
		TotalComponents: len(working),
		Placed:          len(placedIDs),
		Unplaceable:     len(unplaceableIDs),
		Passes:          passes,
		Duration:        a.now().Sub(start),
	}
	return picture, stats
}

// bestPosition scans every placed component's edges for one naming this
// component as compatible, and returns the free adjacent coordinate with
// the highest placement score. Deterministic: placed components are
// scanned in placement order and only a strictly better score replaces
// the current candidate.
func (a *Assembler) bestPosition(comp *model.Component, placedIDs []string, byID map[string]*model.Component, occupied map[coord]string) (model.Position, bool) {
	bestScore := -1.0
	var best model.Position

	for _, pid := range placedIDs {
		anchor := byID[pid]
		for _, edge := range anchor.Edges {
			if !contains(edge.CompatibleWith, comp.ID) {
				continue
			}
			dx, dy, dz := edge.Direction.Offset()
			c := coord{anchor.Position.X + dx, anchor.Position.Y + dy, anchor.Position.Z + dz}
			if _, taken := occupied[c]; taken {
				continue
			}
			score := edge.Strength * comp.Weight / 100
			if score > bestScore {
				bestScore = score
				best = model.Position{X: c.x, Y: c.y, Z: c.z, Confidence: score}
			}
		}
	}

	if bestScore < 0 {
		return model.Position{}, false
	}
	return best, true
}

// place seats and locks a component. Locked components never move again
// for the lifetime of the picture.
func place(comp *model.Component, pos model.Position, occupied map[coord]string) {
	p := pos
	comp.Position = &p
	comp.State = model.PlacementPlaced
	comp.Locked = true
	occupied[coord{pos.X, pos.Y, pos.Z}] = comp.ID
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
