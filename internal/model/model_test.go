package model

import (
	"testing"
)

func TestDirection_Opposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{DirNorth, DirSouth},
		{DirSouth, DirNorth},
		{DirEast, DirWest},
		{DirWest, DirEast},
		{DirTemporal, DirCausal},
		{DirCausal, DirTemporal},
	}
	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.want {
			t.Errorf("%s.Opposite() = %s, want %s", tt.dir, got, tt.want)
		}
	}
}

func TestDirection_OffsetsAreInverse(t *testing.T) {
	for _, dir := range Directions {
		dx, dy, dz := dir.Offset()
		ox, oy, oz := dir.Opposite().Offset()
		if dx+ox != 0 || dy+oy != 0 || dz+oz != 0 {
			t.Errorf("%s offset %v is not inverted by %s offset %v",
				dir, [3]int{dx, dy, dz}, dir.Opposite(), [3]int{ox, oy, oz})
		}
	}
}

func TestFragmentTypeFor(t *testing.T) {
	tests := []struct {
		source SourceType
		want   FragmentType
	}{
		{SourceWitnessStatement, FragmentTestimony},
		{SourceExpertReport, FragmentTestimony},
		{SourceTravelRecord, FragmentTemporalMarker},
		{SourceLocationRecord, FragmentLocationData},
		{SourceDigitalCommunication, FragmentRelationshipLink},
		{SourceFinancialRecord, FragmentFinancialTrace},
		{SourceCourtFiling, FragmentDocument},
		{SourcePhysicalEvidence, FragmentPhysical},
		{SourcePhotograph, FragmentMedia},
		{SourceType("osint"), FragmentRecord},
	}
	for _, tt := range tests {
		if got := FragmentTypeFor(tt.source); got != tt.want {
			t.Errorf("FragmentTypeFor(%s) = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestFragment_ReconstructionEligible(t *testing.T) {
	base := Fragment{IsReal: true, IsTrue: true, IsNeeded: true, VerificationLevel: 5}

	if !base.ReconstructionEligible() {
		t.Error("level 5 fragment with all flags must be eligible")
	}

	low := base
	low.VerificationLevel = 4
	if low.ReconstructionEligible() {
		t.Error("level 4 fragment must not be eligible")
	}

	untrue := base
	untrue.IsTrue = false
	if untrue.ReconstructionEligible() {
		t.Error("fragment failing any flag must not be eligible")
	}
}

func TestCaseContext_HasJurisdiction(t *testing.T) {
	ctx := CaseContext{Jurisdictions: []string{"UK", "RO"}}

	if !ctx.HasJurisdiction("UK") {
		t.Error("listed jurisdiction must match")
	}
	if ctx.HasJurisdiction("US") {
		t.Error("unlisted jurisdiction must not match")
	}
	if !ctx.HasJurisdiction("international") {
		t.Error("international evidence applies to every case")
	}

	open := CaseContext{}
	if !open.HasJurisdiction("anywhere") {
		t.Error("case without jurisdiction list accepts everything")
	}
}

func TestSourceType_IsKnown(t *testing.T) {
	if !SourceWitnessStatement.IsKnown() {
		t.Error("witness_statement is a recognized source type")
	}
	if SourceType("carrier_pigeon").IsKnown() {
		t.Error("unknown source types must not be recognized")
	}
	if len(KnownSourceTypes) != 16 {
		t.Errorf("recognized source types = %d, want 16", len(KnownSourceTypes))
	}
}

func TestIDSources(t *testing.T) {
	seq := NewSequenceSource()
	if got := seq.NewID("frag"); got != "frag_1" {
		t.Errorf("first sequence ID = %s, want frag_1", got)
	}
	if got := seq.NewID("frag"); got != "frag_2" {
		t.Errorf("second sequence ID = %s, want frag_2", got)
	}

	uid := UUIDSource{}
	a, b := uid.NewID("comp"), uid.NewID("comp")
	if a == b {
		t.Error("UUID source must not repeat identifiers")
	}
}

func TestComponent_EdgeFor(t *testing.T) {
	comp := Component{Edges: []Edge{
		{Direction: DirNorth, Pattern: "pn"},
		{Direction: DirTemporal, Pattern: "pt"},
	}}

	if edge := comp.EdgeFor(DirTemporal); edge == nil || edge.Pattern != "pt" {
		t.Errorf("EdgeFor(temporal) = %+v, want pattern pt", edge)
	}
	if edge := comp.EdgeFor(DirWest); edge != nil {
		t.Errorf("EdgeFor(west) = %+v, want nil", edge)
	}
}

func TestPicture_ComponentByID(t *testing.T) {
	picture := Picture{Components: []Component{{ID: "comp-1"}, {ID: "comp-2"}}}

	if c := picture.ComponentByID("comp-2"); c == nil || c.ID != "comp-2" {
		t.Error("expected lookup to find comp-2")
	}
	if c := picture.ComponentByID("comp-9"); c != nil {
		t.Error("expected nil for unknown component")
	}
}
