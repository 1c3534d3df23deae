package model

import "time"

// VerificationSummary aggregates one verification batch.
type VerificationSummary struct {
	TotalInputs    int     `json:"total_inputs"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	MeanConfidence float64 `json:"mean_confidence"`
	ReviewItems    int     `json:"review_items"`
}

// VerificationReport is the output of the verify entry point: the
// accepted fragments, the audit trail for everything else, and the
// human-review obligations the batch produced.
type VerificationReport struct {
	CaseID      string                `json:"case_id"`
	Fragments   []Fragment            `json:"fragments"`
	Rejections  []RejectedInput       `json:"rejections"`
	Outcomes    []VerificationOutcome `json:"outcomes"`
	HumanReview []ReviewItem          `json:"human_review"`
	Summary     VerificationSummary   `json:"summary"`
	VerifiedAt  time.Time             `json:"verified_at"`
}

// AssemblyReport is the output of the assemble entry point.
type AssemblyReport struct {
	Picture *Picture      `json:"picture"`
	Stats   AssemblyStats `json:"stats"`
}

// CaseResult is the combined output of the full pipeline for one case.
type CaseResult struct {
	CaseID         string              `json:"case_id"`
	Title          string              `json:"title"`
	Verification   *VerificationReport `json:"verification"`
	Picture        *Picture            `json:"picture"`
	Stats          AssemblyStats       `json:"stats"`
	HumanReview    []ReviewItem        `json:"human_review"` // Merged verifier + picture obligations
	Recommendation string              `json:"recommendation"`
	NextSteps      []string            `json:"next_steps"`
	Narrative      *CaseNarrative      `json:"narrative,omitempty"` // Optional LLM summary, never affects scores
	ProcessedAt    time.Time           `json:"processed_at"`
}

// CaseNarrative is an optional LLM-generated prose summary of a case
// result. It is generated after all scoring and never feeds back into
// readiness, placement or verification.
type CaseNarrative struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
