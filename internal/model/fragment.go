package model

import "time"

// FragmentType is the structural classification a verified fragment
// receives, mapped deterministically from its source type.
type FragmentType string

const (
	FragmentDocument         FragmentType = "document"
	FragmentTestimony        FragmentType = "testimony"
	FragmentPhysical         FragmentType = "physical"
	FragmentMedia            FragmentType = "media"
	FragmentTemporalMarker   FragmentType = "temporal_marker"
	FragmentLocationData     FragmentType = "location_data"
	FragmentRelationshipLink FragmentType = "relationship_link"
	FragmentFinancialTrace   FragmentType = "financial_trace"
	FragmentRecord           FragmentType = "record"
)

// FragmentTypeFor maps a source type to its fragment type. The mapping is
// total: unrecognized source types fall back to the generic record kind.
func FragmentTypeFor(source SourceType) FragmentType {
	switch source {
	case SourceWitnessStatement, SourceSurvivorTestimony, SourceExpertReport:
		return FragmentTestimony
	case SourcePhysicalEvidence:
		return FragmentPhysical
	case SourcePhotograph, SourceAudioRecording, SourceVideoRecording:
		return FragmentMedia
	case SourceTravelRecord:
		return FragmentTemporalMarker
	case SourceLocationRecord:
		return FragmentLocationData
	case SourceDigitalCommunication, SourceCommunicationLog:
		return FragmentRelationshipLink
	case SourceFinancialRecord:
		return FragmentFinancialTrace
	case SourceLegalDocument, SourceCourtFiling, SourceGovernmentRecord, SourceMedicalRecord:
		return FragmentDocument
	default:
		return FragmentRecord
	}
}

// CustodyEntry is one append-only link in a fragment's chain of custody.
type CustodyEntry struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Verified  bool      `json:"verified"`
}

// Fragment is an evidentiary record that passed reality, truth and
// necessity verification. Immutable once created.
type Fragment struct {
	ID                string         `json:"id"`
	InputID           string         `json:"input_id"` // RawInput this fragment was verified from
	Type              FragmentType   `json:"type"`
	Content           string         `json:"content"`
	VerificationLevel int            `json:"verification_level"` // 1-10
	Confidence        float64        `json:"confidence"`         // 0-100
	Timestamp         time.Time      `json:"timestamp"`
	Jurisdiction      string         `json:"jurisdiction"`
	ChainOfCustody    []CustodyEntry `json:"chain_of_custody"`
	IsReal            bool           `json:"is_real"`
	IsTrue            bool           `json:"is_true"`
	IsNeeded          bool           `json:"is_needed"`
}

// ReconstructionEligible reports whether the fragment clears the second,
// stricter gate into component compression. Acceptance as a fragment only
// requires verification level >= 1; reconstruction requires >= 5.
func (f Fragment) ReconstructionEligible() bool {
	return f.IsReal && f.IsTrue && f.IsNeeded && f.VerificationLevel >= 5
}

// CheckResult is one individual verification check with its confidence
// contribution, kept so scoring stays fully explainable.
type CheckResult struct {
	Name       string  `json:"name"`
	Passed     bool    `json:"passed"`
	Confidence float64 `json:"confidence"` // 0-100 contribution
	Detail     string  `json:"detail,omitempty"`
}

// NecessityCheck is one necessity-stage check; unlike reality and truth
// checks it reports whether the input is needed rather than pass/fail.
type NecessityCheck struct {
	Name      string  `json:"name"`
	Needed    bool    `json:"needed"`
	Relevance float64 `json:"relevance"` // 0-100, meaningful for the relevance check
	Detail    string  `json:"detail,omitempty"`
}

// CrossReference scores one corroborating source consulted during
// verification: one entry per provenance source plus one synthetic entry
// for the case itself.
type CrossReference struct {
	Source   string  `json:"source"`
	Verified bool    `json:"verified"`
	Score    float64 `json:"score"` // 0-100
}

// AnomalySeverity grades a detected anomaly.
type AnomalySeverity string

const (
	SeverityLow      AnomalySeverity = "low"
	SeverityMedium   AnomalySeverity = "medium"
	SeverityHigh     AnomalySeverity = "high"
	SeverityCritical AnomalySeverity = "critical"
)

// AnomalyType classifies what kind of inconsistency was detected.
type AnomalyType string

const (
	AnomalyTemporal    AnomalyType = "temporal"
	AnomalyLogical     AnomalyType = "logical"
	AnomalyDocumentary AnomalyType = "documentary"
)

// Anomaly is a detected inconsistency in an input. RequiresHumanReview is
// independent of severity.
type Anomaly struct {
	Type                AnomalyType     `json:"type"`
	Severity            AnomalySeverity `json:"severity"`
	Description         string          `json:"description"`
	RequiresHumanReview bool            `json:"requires_human_review"`
}

// RejectionCategory states why an input did not produce a fragment.
type RejectionCategory string

const (
	RejectionNotReal                RejectionCategory = "not_real"
	RejectionNotTrue                RejectionCategory = "not_true"
	RejectionNotNeeded              RejectionCategory = "not_needed"
	RejectionInsufficientConfidence RejectionCategory = "insufficient_confidence"
)

// VerificationOutcome is the complete per-input verification result with
// full reasoning. Fragment is non-nil only when the input was accepted.
type VerificationOutcome struct {
	InputID           string            `json:"input_id"`
	IsReal            bool              `json:"is_real"`
	IsTrue            bool              `json:"is_true"`
	IsNeeded          bool              `json:"is_needed"`
	VerificationLevel int               `json:"verification_level"` // 1-10
	Confidence        float64           `json:"confidence"`         // 0-100
	RealityChecks     []CheckResult     `json:"reality_checks"`
	TruthChecks       []CheckResult     `json:"truth_checks"`
	NecessityChecks   []NecessityCheck  `json:"necessity_checks"`
	CrossReferences   []CrossReference  `json:"cross_references"`
	Anomalies         []Anomaly         `json:"anomalies,omitempty"`
	Accepted          bool              `json:"accepted"`
	Rejection         RejectionCategory `json:"rejection,omitempty"`
	Fragment          *Fragment         `json:"fragment,omitempty"`
}

// RejectedInput is the audit record kept for an input that failed
// verification. Rejected inputs are never purged by the pipeline.
type RejectedInput struct {
	InputID    string            `json:"input_id"`
	Category   RejectionCategory `json:"category"`
	Confidence float64           `json:"confidence"`
	Reasons    []string          `json:"reasons,omitempty"`
}

// ReviewItem is one entry in the human-in-the-loop review queue.
type ReviewItem struct {
	InputID  string    `json:"input_id"`
	CaseID   string    `json:"case_id"`
	Reason   string    `json:"reason"`
	Priority int       `json:"priority"` // 1-10, 10 most urgent
	Deadline time.Time `json:"deadline"`
}
