package model

import "time"

// Topology is the structural role of a component, governing which other
// components it may sit next to.
type Topology string

const (
	TopologyCorner   Topology = "corner"
	TopologyEdge     Topology = "edge"
	TopologyInterior Topology = "interior"
	TopologyBridge   Topology = "bridge"
	TopologyKeystone Topology = "keystone"
)

// Direction is one of the six canonical connection directions. North,
// south, east and west move on the x/y plane; temporal and causal move on
// z, which encodes layering rather than elevation.
type Direction string

const (
	DirNorth    Direction = "north"
	DirSouth    Direction = "south"
	DirEast     Direction = "east"
	DirWest     Direction = "west"
	DirTemporal Direction = "temporal"
	DirCausal   Direction = "causal"
)

// Directions lists the canonical directions in fixed order.
var Directions = []Direction{DirNorth, DirSouth, DirEast, DirWest, DirTemporal, DirCausal}

// Opposite returns the direction a neighboring component would connect
// back along.
func (d Direction) Opposite() Direction {
	switch d {
	case DirNorth:
		return DirSouth
	case DirSouth:
		return DirNorth
	case DirEast:
		return DirWest
	case DirWest:
		return DirEast
	case DirTemporal:
		return DirCausal
	case DirCausal:
		return DirTemporal
	default:
		return d
	}
}

// Offset returns the unit coordinate offset for the direction.
func (d Direction) Offset() (dx, dy, dz int) {
	switch d {
	case DirNorth:
		return 0, 1, 0
	case DirSouth:
		return 0, -1, 0
	case DirEast:
		return 1, 0, 0
	case DirWest:
		return -1, 0, 0
	case DirTemporal:
		return 0, 0, 1
	case DirCausal:
		return 0, 0, -1
	default:
		return 0, 0, 0
	}
}

// Shape is the engineered form of a component. Fingerprint is derived
// purely from fragment content so identical fragments produce identical
// shapes across engine instances.
type Shape struct {
	Topology    Topology `json:"topology"`
	Complexity  int      `json:"complexity"` // 1-10
	Symmetric   bool     `json:"symmetric"`
	Fingerprint string   `json:"fingerprint"`
}

// Edge is one directional connection surface on a component, with the
// precomputed compatibility sets against the rest of the batch.
type Edge struct {
	Direction        Direction `json:"direction"`
	Pattern          string    `json:"pattern"`  // Deterministic directional fingerprint
	Strength         float64   `json:"strength"` // 0-100
	CompatibleWith   []string  `json:"compatible_with"`
	IncompatibleWith []string  `json:"incompatible_with"`
}

// Position is an integer placement coordinate. Z encodes temporal/causal
// layering, not literal elevation.
type Position struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Z          int     `json:"z"`
	Confidence float64 `json:"confidence"` // 0-100
}

// PlacementState tracks where a component is in the assembly lifecycle.
// Unplaceable is terminal: a full assembly pass could not seat the
// component and it will not be retried this run.
type PlacementState string

const (
	PlacementUnplaced    PlacementState = "unplaced"
	PlacementPlaced      PlacementState = "placed"
	PlacementUnplaceable PlacementState = "unplaceable"
)

// Component is the compressed, placeable representation of exactly one
// fragment. Once Locked is true, Position and Shape are immutable for the
// lifetime of the picture.
type Component struct {
	ID         string         `json:"id"`
	FragmentID string         `json:"fragment_id"`
	Shape      Shape          `json:"shape"`
	Weight     float64        `json:"weight"` // 0-100 importance
	Edges      []Edge         `json:"edges"`
	Position   *Position      `json:"position,omitempty"`
	State      PlacementState `json:"state"`
	Locked     bool           `json:"locked"`
	Hash       string         `json:"hash"`      // Integrity hash (tamper evidence)
	Signature  string         `json:"signature"` // Per-run provenance signature; never used for placement
	CreatedAt  time.Time      `json:"created_at"`
}

// EdgeFor returns the component's edge for the given direction, or nil.
func (c *Component) EdgeFor(dir Direction) *Edge {
	for i := range c.Edges {
		if c.Edges[i].Direction == dir {
			return &c.Edges[i]
		}
	}
	return nil
}
