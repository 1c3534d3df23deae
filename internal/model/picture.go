package model

import "time"

// GapLocation is the coordinate a missing component would occupy.
type GapLocation struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// RequiredEdge describes the edge a missing component would need to
// present in order to fill a gap.
type RequiredEdge struct {
	Direction Direction `json:"direction"`
	Pattern   string    `json:"pattern"`
	Strength  float64   `json:"strength"`
}

// Gap is an unmet edge requirement in the assembled structure, with
// suggestions for the evidence that could fill it.
type Gap struct {
	ID               string       `json:"id"`
	Location         GapLocation  `json:"location"`
	RequiredShape    Shape        `json:"required_shape"`
	RequiredEdge     RequiredEdge `json:"required_edge"`
	SuggestedSources []string     `json:"suggested_sources"`
	Priority         int          `json:"priority"` // 1-10, from the requesting component's weight
	Description      string       `json:"description"`
}

// ConclusionType classifies a derived conclusion.
type ConclusionType string

const (
	ConclusionFinding        ConclusionType = "finding"
	ConclusionInference      ConclusionType = "inference"
	ConclusionRecommendation ConclusionType = "recommendation"
	ConclusionWarning        ConclusionType = "warning"
	ConclusionCertainty      ConclusionType = "certainty"
)

// Conclusion is a typed statement derived from the assembled structure.
type Conclusion struct {
	Type                  ConclusionType `json:"type"`
	Statement             string         `json:"statement"`
	SupportingComponents  []string       `json:"supporting_components,omitempty"`
	Confidence            float64        `json:"confidence"` // 0-100
	CourtReady            bool           `json:"court_ready"`
	RequiresHumanReview   bool           `json:"requires_human_review"`
}

// Picture is the aggregate reconstruction for one case: every component,
// the placement partition, detected gaps, derived conclusions and the
// readiness verdict. Published atomically once per assembly run.
type Picture struct {
	ID                   string       `json:"id"`
	CaseID               string       `json:"case_id"`
	CaseType             CaseType     `json:"case_type"`
	Title                string       `json:"title"`
	Components           []Component  `json:"components"`
	PlacedIDs            []string     `json:"placed_ids"`
	UnplacedIDs          []string     `json:"unplaced_ids"`
	UnplaceableIDs       []string     `json:"unplaceable_ids"`
	CompletionPercentage float64      `json:"completion_percentage"`
	Gaps                 []Gap        `json:"gaps"`
	Conclusions          []Conclusion `json:"conclusions"`
	Narrative            string       `json:"narrative"`
	CourtReady           bool         `json:"court_ready"`
	CourtReadinessScore  float64      `json:"court_readiness_score"`
	HumanReviewRequired  bool         `json:"human_review_required"`
	IntegrityHash        string       `json:"integrity_hash"`
	AssembledAt          time.Time    `json:"assembled_at"`
}

// ComponentByID returns the component with the given identifier, or nil.
func (p *Picture) ComponentByID(id string) *Component {
	for i := range p.Components {
		if p.Components[i].ID == id {
			return &p.Components[i]
		}
	}
	return nil
}

// AssemblyStats summarizes one assembly run.
type AssemblyStats struct {
	TotalComponents int           `json:"total_components"`
	Placed          int           `json:"placed"`
	Unplaceable     int           `json:"unplaceable"`
	Passes          int           `json:"passes"`
	GapCount        int           `json:"gap_count"`
	ConclusionCount int           `json:"conclusion_count"`
	Duration        time.Duration `json:"duration_ns"`
}
