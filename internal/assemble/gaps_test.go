package assemble

import (
	"strings"
	"testing"

	"github.com/avolkov/tessera/internal/model"
)

// pairedComponents builds two hand-wired components whose only
// compatibility is A.north <-> B.south.
func pairedComponents() []model.Component {
	return []model.Component{
		{
			ID: "comp-a", FragmentID: "frag-a", Weight: 85,
			Shape: model.Shape{Topology: model.TopologyInterior, Complexity: 6},
			State: model.PlacementUnplaced,
			Edges: []model.Edge{
				{Direction: model.DirNorth, Pattern: "pa-n", Strength: 70, CompatibleWith: []string{"comp-b"}},
				{Direction: model.DirSouth, Pattern: "pa-s", Strength: 60},
			},
		},
		{
			ID: "comp-b", FragmentID: "frag-b", Weight: 75,
			Shape: model.Shape{Topology: model.TopologyInterior, Complexity: 6},
			State: model.PlacementUnplaced,
			Edges: []model.Edge{
				{Direction: model.DirSouth, Pattern: "pb-s", Strength: 65, CompatibleWith: []string{"comp-a"}},
			},
		},
	}
}

func TestFindGaps_SatisfiedEdgesProduceNoGaps(t *testing.T) {
	picture, _ := testAssembler().Assemble(pairedComponents(), "case-g1", model.CaseCorruption, "Paired")
	gaps := NewAnalyzer(model.NewSequenceSource()).FindGaps(picture)

	if len(gaps) != 0 {
		t.Errorf("gaps = %d, want 0 (every compatible edge satisfied): %+v", len(gaps), gaps)
	}
}

func TestFindGaps_UnmetEdgeProducesGap(t *testing.T) {
	components := pairedComponents()
	// Give A an eastern compatibility weaker than the northern one, so B
	// still seats north and the eastern requirement stays unmet.
	components[0].Edges = append(components[0].Edges, model.Edge{
		Direction:      model.DirEast,
		Pattern:        "pa-e",
		Strength:       40,
		CompatibleWith: []string{"comp-b"},
	})

	picture, _ := testAssembler().Assemble(components, "case-g2", model.CaseCorruption, "Unmet east")
	gaps := NewAnalyzer(model.NewSequenceSource()).FindGaps(picture)

	if len(gaps) != 1 {
		t.Fatalf("gaps = %d, want 1", len(gaps))
	}
	gap := gaps[0]
	if gap.Location.X != 1 || gap.Location.Y != 0 || gap.Location.Z != 0 {
		t.Errorf("gap location = %+v, want (1,0,0)", gap.Location)
	}
	if gap.RequiredEdge.Direction != model.DirWest {
		t.Errorf("required direction = %s, want west (opposite of east)", gap.RequiredEdge.Direction)
	}
	if gap.RequiredEdge.Pattern != "pa-e" || gap.RequiredEdge.Strength != 40 {
		t.Errorf("required edge = %+v, want pattern pa-e strength 40", gap.RequiredEdge)
	}
	if gap.RequiredShape.Topology != model.TopologyInterior || gap.RequiredShape.Symmetric {
		t.Errorf("required shape = %+v, want asymmetric interior", gap.RequiredShape)
	}
	// ceil(85/10) = 9
	if gap.Priority != 9 {
		t.Errorf("priority = %d, want 9", gap.Priority)
	}
}

func TestFindGaps_DirectionalSourceSuggestions(t *testing.T) {
	tests := []struct {
		dir  model.Direction
		want string
	}{
		{model.DirTemporal, "historical_archive"},
		{model.DirCausal, "financial_record"},
		{model.DirNorth, "osint"},
	}
	for _, tt := range tests {
		sources := suggestedSourcesFor(tt.dir)
		if len(sources) == 0 || sources[0] != tt.want {
			t.Errorf("suggestedSourcesFor(%s) = %v, want leading %s", tt.dir, sources, tt.want)
		}
	}
}

func TestFindGaps_UnplaceableComponentGetsExclusionGap(t *testing.T) {
	a := model.Component{
		ID: "comp-a", Weight: 90, State: model.PlacementUnplaced,
		Shape: model.Shape{Topology: model.TopologyInterior, Complexity: 5},
		Edges: []model.Edge{{Direction: model.DirNorth, Strength: 60}},
	}
	isolated := model.Component{
		ID: "comp-x", Weight: 72, State: model.PlacementUnplaced,
		Shape: model.Shape{Topology: model.TopologyCorner, Complexity: 3},
		Edges: []model.Edge{{Direction: model.DirSouth, Pattern: "px-s", Strength: 55}},
	}

	picture, _ := testAssembler().Assemble([]model.Component{a, isolated}, "case-g3", model.CaseCybercrime, "Excluded")
	gaps := NewAnalyzer(model.NewSequenceSource()).FindGaps(picture)

	if len(gaps) != 1 {
		t.Fatalf("gaps = %d, want 1 exclusion gap", len(gaps))
	}
	gap := gaps[0]
	if !strings.Contains(gap.Description, "excluded") {
		t.Errorf("description %q should explain the exclusion", gap.Description)
	}
	if gap.Priority != 8 { // ceil(72/10)
		t.Errorf("priority = %d, want 8", gap.Priority)
	}
	if gap.RequiredShape.Topology != model.TopologyCorner {
		t.Errorf("exclusion gap should request the excluded component's shape, got %s", gap.RequiredShape.Topology)
	}
}
