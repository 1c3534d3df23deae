package assemble

import (
	"testing"
	"time"

	"github.com/avolkov/tessera/internal/compress"
	"github.com/avolkov/tessera/internal/model"
)

var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func testAssembler() *Assembler {
	return NewAssembler(
		model.NewSequenceSource(),
		WithClock(func() time.Time { return testNow }),
	)
}

// engineered builds real components through the compressor and edge
// engineer so placement operates on production-shaped data.
func engineered(t *testing.T, frags []model.Fragment) []model.Component {
	t.Helper()
	c := compress.NewCompressor(
		model.NewSequenceSource(),
		compress.WithClock(func() time.Time { return testNow }),
		compress.WithRunTag("test-run"),
	)
	components, skipped := c.CompressBatch(frags)
	if len(skipped) > 0 {
		t.Fatalf("unexpected skipped fragments: %v", skipped)
	}
	compress.NewEdgeEngineer().Engineer(components)
	return components
}

func fragment(id string, ftype model.FragmentType, level int, confidence float64) model.Fragment {
	return model.Fragment{
		ID:                id,
		Type:              ftype,
		Content:           "content of " + id,
		VerificationLevel: level,
		Confidence:        confidence,
		Timestamp:         testNow.AddDate(0, -1, 0),
		ChainOfCustody:    []model.CustodyEntry{{Actor: "officer"}},
		IsReal:            true,
		IsTrue:            true,
		IsNeeded:          true,
	}
}

func TestAssemble_SingleKeystoneAtOrigin(t *testing.T) {
	components := engineered(t, []model.Fragment{
		fragment("frag-1", model.FragmentTestimony, 9, 95),
	})

	picture, stats := testAssembler().Assemble(components, "case-001", model.CaseHumanTrafficking, "Single testimony")

	if stats.Placed != 1 || stats.TotalComponents != 1 {
		t.Fatalf("placed %d of %d, want 1 of 1", stats.Placed, stats.TotalComponents)
	}
	comp := picture.ComponentByID(picture.PlacedIDs[0])
	if comp.Shape.Topology != model.TopologyKeystone {
		t.Errorf("topology = %s, want keystone", comp.Shape.Topology)
	}
	if comp.Position == nil || comp.Position.X != 0 || comp.Position.Y != 0 || comp.Position.Z != 0 {
		t.Errorf("position = %+v, want origin", comp.Position)
	}
	if comp.Position.Confidence != 100 {
		t.Errorf("origin confidence = %f, want 100", comp.Position.Confidence)
	}
	if !comp.Locked {
		t.Error("placed component must be locked")
	}
	if picture.CompletionPercentage != 100 {
		t.Errorf("completion = %f, want 100", picture.CompletionPercentage)
	}
}

func TestAssemble_AllHighQualityComponentsPlace(t *testing.T) {
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

	picture, stats := testAssembler().Assemble(components, "case-002", model.CaseFinancialFraud, "Varied batch")

	// Temporal edges are always compatible, so every component can stack.
	if stats.Placed != 10 {
		t.Fatalf("placed = %d, want 10 (unplaceable: %v)", stats.Placed, picture.UnplaceableIDs)
	}
	if picture.CompletionPercentage != 100 {
		t.Errorf("completion = %f, want 100", picture.CompletionPercentage)
	}

	// No two components share a coordinate.
	seen := make(map[[3]int]string)
	for _, id := range picture.PlacedIDs {
		comp := picture.ComponentByID(id)
		key := [3]int{comp.Position.X, comp.Position.Y, comp.Position.Z}
		if other, dup := seen[key]; dup {
			t.Errorf("components %s and %s share position %v", id, other, key)
		}
		seen[key] = id
	}
}

func TestAssemble_CompletionWithinBounds(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7} {
		frags := make([]model.Fragment, n)
		for i := range frags {
			frags[i] = fragment(frid(i), model.FragmentDocument, 8, 80)
		}
		components := engineered(t, frags)
		picture, _ := testAssembler().Assemble(components, "case-b", model.CaseCorruption, "bounds")
		if picture.CompletionPercentage < 0 || picture.CompletionPercentage > 100 {
			t.Errorf("n=%d completion out of bounds: %f", n, picture.CompletionPercentage)
		}
	}
}

func TestAssemble_IsolatedComponentBecomesUnplaceable(t *testing.T) {
	// Hand-built components: B appears in none of A's compatibility sets,
	// so after A seats at the origin no pass can place B.
	a := model.Component{
		ID: "comp-a", FragmentID: "frag-a", Weight: 90,
		Shape: model.Shape{Topology: model.TopologyInterior, Complexity: 5},
		State: model.PlacementUnplaced,
		Edges: []model.Edge{
			{Direction: model.DirNorth, Pattern: "p1", Strength: 60, IncompatibleWith: []string{"comp-b"}},
		},
	}
	b := model.Component{
		ID: "comp-b", FragmentID: "frag-b", Weight: 50,
		Shape: model.Shape{Topology: model.TopologyCorner, Complexity: 2},
		State: model.PlacementUnplaced,
		Edges: []model.Edge{
			{Direction: model.DirSouth, Pattern: "p2", Strength: 55, IncompatibleWith: []string{"comp-a"}},
		},
	}

	picture, stats := testAssembler().Assemble([]model.Component{a, b}, "case-003", model.CaseCybercrime, "Isolated")

	if stats.Placed != 1 {
		t.Fatalf("placed = %d, want 1", stats.Placed)
	}
	if stats.Unplaceable != 1 {
		t.Fatalf("unplaceable = %d, want 1", stats.Unplaceable)
	}
	if len(picture.UnplaceableIDs) != 1 || picture.UnplaceableIDs[0] != "comp-b" {
		t.Errorf("unplaceable ids = %v, want [comp-b]", picture.UnplaceableIDs)
	}
	if picture.CompletionPercentage != 50 {
		t.Errorf("completion = %f, want 50", picture.CompletionPercentage)
	}
	excluded := picture.ComponentByID("comp-b")
	if excluded.State != model.PlacementUnplaceable {
		t.Errorf("state = %s, want unplaceable", excluded.State)
	}
	if excluded.Locked || excluded.Position != nil {
		t.Error("unplaceable component must stay unlocked and unpositioned")
	}
}

func TestAssemble_HeaviestComponentSeatsFirst(t *testing.T) {
	components := engineered(t, []model.Fragment{
		fragment("frag-light", model.FragmentRecord, 5, 55),
		fragment("frag-heavy", model.FragmentTestimony, 9, 95),
	})

	picture, _ := testAssembler().Assemble(components, "case-004", model.CaseWarCrime, "Ordering")

	first := picture.ComponentByID(picture.PlacedIDs[0])
	if first.FragmentID != "frag-heavy" {
		t.Errorf("first placed fragment = %s, want frag-heavy", first.FragmentID)
	}
	if first.Position.X != 0 || first.Position.Y != 0 || first.Position.Z != 0 {
		t.Errorf("heaviest component not at origin: %+v", first.Position)
	}
}

func TestAssemble_LockedPositionsNeverMove(t *testing.T) {
	frags := make([]model.Fragment, 5)
	for i := range frags {
		frags[i] = fragment(frid(i), model.FragmentDocument, 8, 80)
	}
	components := engineered(t, frags)

	picture, _ := testAssembler().Assemble(components, "case-005", model.CaseCorruption, "Idempotence")

	type fix struct{ x, y, z int }
	fixed := make(map[string]fix)
	for _, id := range picture.PlacedIDs {
		comp := picture.ComponentByID(id)
		fixed[id] = fix{comp.Position.X, comp.Position.Y, comp.Position.Z}
	}

	// Finalization builds a new snapshot; the locked placements survive
	// untouched.
	final := Finalize(picture, NewAnalyzer(model.NewSequenceSource()))
	for _, id := range final.PlacedIDs {
		comp := final.ComponentByID(id)
		if !comp.Locked {
			t.Errorf("component %s no longer locked", id)
		}
		want := fixed[id]
		if comp.Position.X != want.x || comp.Position.Y != want.y || comp.Position.Z != want.z {
			t.Errorf("component %s moved after locking", id)
		}
	}
}

func frid(i int) string {
	return "frag-" + string(rune('a'+i))
}
