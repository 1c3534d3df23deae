// Package compress turns verified fragments into engineered components:
// a deterministic shape, an importance weight, and directional edges
// with precomputed compatibility against the rest of the batch.
package compress

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/tessera/internal/model"
)

// ErrNotEligible marks a fragment that passed verification but does not
// clear the stricter reconstruction gate (all three flags set and
// verification level >= 5).
var ErrNotEligible = errors.New("fragment not eligible for reconstruction")

// Compressor maps verified fragments 1:1 to components. Stateless apart
// from the per-run provenance signature seed; create one per pipeline
// call.
type Compressor struct {
	ids    model.IDSource
	runTag string
	now    func() time.Time
}

// Option customizes a Compressor.
type Option func(*Compressor)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Compressor) { c.now = now }
}

// WithRunTag fixes the per-run signature seed, for reproducible tests.
// The signature is tamper evidence only; it never influences shapes,
// compatibility or placement.
func WithRunTag(tag string) Option {
	return func(c *Compressor) { c.runTag = tag }
}

// NewCompressor creates a compressor with a fresh run signature seed.
func NewCompressor(ids model.IDSource, opts ...Option) *Compressor {
	c := &Compressor{
		ids:    ids,
		runTag: uuid.NewString(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress engineers one component from one fragment. Returns
// ErrNotEligible when the fragment does not clear the reconstruction
// gate.
func (c *Compressor) Compress(frag model.Fragment) (*model.Component, error) {
	if !frag.ReconstructionEligible() {
		return nil, fmt.Errorf("fragment %s (level %d): %w", frag.ID, frag.VerificationLevel, ErrNotEligible)
	}

	now := c.now()
	shape := model.Shape{
		Topology:    topologyFor(frag.Type),
		Complexity:  complexity(frag.VerificationLevel, frag.Confidence),
		Symmetric:   symmetric(frag.Type),
		Fingerprint: shapeFingerprint(frag),
	}

	comp := &model.Component{
		ID:         c.ids.NewID("comp"),
		FragmentID: frag.ID,
		Shape:      shape,
		Weight:     weight(frag),
		State:      model.PlacementUnplaced,
		CreatedAt:  now,
	}
	comp.Hash = integrityHash(frag, shape, now)
	comp.Signature = signature(c.runTag, comp.ID)
	return comp, nil
}

// CompressBatch compresses every eligible fragment, silently skipping
// the rest (they remain auditable as fragments), and returns the skipped
// fragment identifiers.
func (c *Compressor) CompressBatch(frags []model.Fragment) ([]model.Component, []string) {
	components := make([]model.Component, 0, len(frags))
	var skipped []string
	for _, frag := range frags {
		comp, err := c.Compress(frag)
		if err != nil {
			skipped = append(skipped, frag.ID)
			continue
		}
		components = append(components, *comp)
	}
	return components, skipped
}

// topologyFor assigns the structural role from the fragment type.
func topologyFor(t model.FragmentType) model.Topology {
	switch t {
	case model.FragmentTemporalMarker:
		return model.TopologyEdge
	case model.FragmentLocationData:
		return model.TopologyCorner
	case model.FragmentRelationshipLink:
		return model.TopologyBridge
	case model.FragmentTestimony:
		return model.TopologyKeystone
	default:
		return model.TopologyInterior
	}
}

// complexity derives the 1-10 complexity from verification quality.
func complexity(level int, confidence float64) int {
	c := int(math.Ceil((float64(level) + confidence/10) / 2))
	if c < 1 {
		return 1
	}
	if c > 10 {
		return 10
	}
	return c
}

// symmetric flags the types most at risk of mis-fit: temporal markers
// and location data interlock identically in several directions.
func symmetric(t model.FragmentType) bool {
	return t == model.FragmentTemporalMarker || t == model.FragmentLocationData
}

// weight scores importance 0-100 from verification quality, fragment
// type and chain of custody.
func weight(frag model.Fragment) float64 {
	w := float64(frag.VerificationLevel)*10 + frag.Confidence/10
	switch frag.Type {
	case model.FragmentTestimony:
		w += 20
	case model.FragmentPhysical:
		w += 15
	case model.FragmentDocument:
		w += 10
	}
	if len(frag.ChainOfCustody) > 0 {
		w += 5
	}
	return math.Min(w, 100)
}

// shapeFingerprint is derived purely from fragment content so identical
// fragments produce identical shapes across engine instances.
func shapeFingerprint(frag model.Fragment) string {
	h := sha256.Sum256([]byte(frag.ID + "|" + frag.Content + "|" + frag.Timestamp.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(h[:])[:16]
}

// integrityHash is the tamper-evidence hash over fragment, shape and
// generation time. Distinct from the shape fingerprint.
func integrityHash(frag model.Fragment, shape model.Shape, generated time.Time) string {
	h := sha256.Sum256([]byte(
		frag.ID + "|" + frag.Content + "|" + shape.Fingerprint + "|" + generated.UTC().Format(time.RFC3339Nano),
	))
	return hex.EncodeToString(h[:])
}

// signature is the per-run provenance mark. Non-deterministic across
// runs; consulted by nothing in placement or compatibility.
func signature(runTag, componentID string) string {
	h := sha256.Sum256([]byte(runTag + "|" + componentID))
	return hex.EncodeToString(h[:])[:16]
}
