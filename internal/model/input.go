package model

import "time"

// SourceType identifies the kind of evidentiary record an input claims to be.
type SourceType string

const (
	SourceLegalDocument        SourceType = "legal_document"
	SourceCourtFiling          SourceType = "court_filing"
	SourceFinancialRecord      SourceType = "financial_record"
	SourceWitnessStatement     SourceType = "witness_statement"
	SourceSurvivorTestimony    SourceType = "survivor_testimony"
	SourceExpertReport         SourceType = "expert_report"
	SourcePhysicalEvidence     SourceType = "physical_evidence"
	SourcePhotograph           SourceType = "photograph"
	SourceAudioRecording       SourceType = "audio_recording"
	SourceVideoRecording       SourceType = "video_recording"
	SourceDigitalCommunication SourceType = "digital_communication"
	SourceCommunicationLog     SourceType = "communication_log"
	SourceLocationRecord       SourceType = "location_record"
	SourceTravelRecord         SourceType = "travel_record"
	SourceGovernmentRecord     SourceType = "government_record"
	SourceMedicalRecord        SourceType = "medical_record"
)

// KnownSourceTypes lists every recognized source type.
var KnownSourceTypes = []SourceType{
	SourceLegalDocument, SourceCourtFiling, SourceFinancialRecord,
	SourceWitnessStatement, SourceSurvivorTestimony, SourceExpertReport,
	SourcePhysicalEvidence, SourcePhotograph, SourceAudioRecording,
	SourceVideoRecording, SourceDigitalCommunication, SourceCommunicationLog,
	SourceLocationRecord, SourceTravelRecord, SourceGovernmentRecord,
	SourceMedicalRecord,
}

// IsKnown reports whether the source type is one of the recognized kinds.
func (s SourceType) IsKnown() bool {
	for _, known := range KnownSourceTypes {
		if s == known {
			return true
		}
	}
	return false
}

// CaseType categorizes the investigation a pipeline run belongs to.
type CaseType string

const (
	CaseHumanTrafficking   CaseType = "human_trafficking"
	CaseFinancialFraud     CaseType = "financial_fraud"
	CaseMissingPerson      CaseType = "missing_person"
	CaseOrganizedCrime     CaseType = "organized_crime"
	CaseWarCrime           CaseType = "war_crime"
	CaseCybercrime         CaseType = "cybercrime"
	CaseDomesticAbuse      CaseType = "domestic_abuse"
	CaseCorruption         CaseType = "corruption"
	CaseAsylumClaim        CaseType = "asylum_claim"
	CaseWrongfulConviction CaseType = "wrongful_conviction"
	CasePropertyDispute    CaseType = "property_dispute"
	CaseEnvironmentalCrime CaseType = "environmental_crime"
)

// KnownCaseTypes lists every recognized case type.
var KnownCaseTypes = []CaseType{
	CaseHumanTrafficking, CaseFinancialFraud, CaseMissingPerson,
	CaseOrganizedCrime, CaseWarCrime, CaseCybercrime, CaseDomesticAbuse,
	CaseCorruption, CaseAsylumClaim, CaseWrongfulConviction,
	CasePropertyDispute, CaseEnvironmentalCrime,
}

// IsKnown reports whether the case type is one of the recognized kinds.
func (c CaseType) IsKnown() bool {
	for _, known := range KnownCaseTypes {
		if c == known {
			return true
		}
	}
	return false
}

// ProvenanceEntry records one handler in an input's chain of provenance.
type ProvenanceEntry struct {
	Source                string    `json:"source" yaml:"source"`                                 // Who touched or supplied the record
	Timestamp             time.Time `json:"timestamp" yaml:"timestamp"`                           // When
	IndependentlyVerified bool      `json:"independently_verified" yaml:"independently_verified"` // Confirmed by a party outside the chain
	Note                  string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// RawInput is an unverified evidentiary record as supplied by ingestion.
// It is read-only to the pipeline; every later stage produces new records
// referencing it by identifier.
type RawInput struct {
	ID           string            `json:"id" yaml:"id" validate:"required"`
	Source       string            `json:"source" yaml:"source"`             // Originating source description
	SourceType   SourceType        `json:"source_type" yaml:"source_type"`   // One of the 16 recognized kinds
	Content      string            `json:"content" yaml:"content"`           // Free-text evidentiary content
	Timestamp    time.Time         `json:"timestamp" yaml:"timestamp"`       // When the record was created
	Jurisdiction string            `json:"jurisdiction" yaml:"jurisdiction"` // Jurisdiction tag (e.g. "UK", "international")
	Provenance   []ProvenanceEntry `json:"provenance" yaml:"provenance"`
}

// CaseContext carries the immutable per-case parameters every
// verification decision is made against.
type CaseContext struct {
	CaseID        string    `json:"case_id" yaml:"case_id" validate:"required"`
	CaseType      CaseType  `json:"case_type" yaml:"case_type" validate:"required"`
	StartDate     time.Time `json:"start_date" yaml:"start_date"`
	Jurisdictions []string  `json:"jurisdictions" yaml:"jurisdictions"`
	SubjectHints  []string  `json:"subject_hints,omitempty" yaml:"subject_hints,omitempty"` // Keywords used for relevance scoring
}

// HasJurisdiction reports whether the given jurisdiction applies to the case.
// The "international" tag and an empty case list are always valid.
func (c CaseContext) HasJurisdiction(jurisdiction string) bool {
	if len(c.Jurisdictions) == 0 || jurisdiction == "international" {
		return true
	}
	for _, j := range c.Jurisdictions {
		if j == jurisdiction {
			return true
		}
	}
	return false
}
