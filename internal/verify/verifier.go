// Package verify implements the staged fragment verification pipeline:
// reality, truth and necessity checks, cross-referencing, anomaly
// detection, and the derived verification level and confidence.
package verify

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/avolkov/tessera/internal/model"
	"github.com/avolkov/tessera/internal/normalize"
)

const (
	// minCheckConfidence is the mean confidence a check stage must reach.
	minCheckConfidence = 70.0

	// earliestTimestamp rejects records predating modern record-keeping.
	earliestTimestampYear = 1900
)

// Corroborator consults an external registry about a source. Advisory
// only: errors and misses never fail a verification check.
type Corroborator interface {
	Corroborate(ctx context.Context, source string) (bool, error)
}

// Verifier runs the full check pipeline over one raw input at a time.
// Stateless; safe for concurrent use across inputs of a batch.
type Verifier struct {
	cfg          model.VerifyConfig
	ids          model.IDSource
	corroborator Corroborator
	now          func() time.Time
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithClock injects the time source, for reproducible tests.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// WithCorroborator attaches an external registry collaborator.
func WithCorroborator(c Corroborator) Option {
	return func(v *Verifier) { v.corroborator = c }
}

// NewVerifier creates a verifier with the given thresholds and
// identifier source.
func NewVerifier(cfg model.VerifyConfig, ids model.IDSource, opts ...Option) *Verifier {
	v := &Verifier{
		cfg: cfg,
		ids: ids,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify evaluates one raw input against the case context and returns
// the complete outcome with full reasoning. A pure function of
// (input, caseCtx, clock); it never mutates its arguments.
func (v *Verifier) Verify(ctx context.Context, input model.RawInput, caseCtx model.CaseContext) model.VerificationOutcome {
	now := v.now()
	content := normalize.Content(input.Content)

	realityChecks := v.realityChecks(input, content, now)
	truthChecks, contradictions := v.truthChecks(ctx, input, caseCtx, now)
	necessityChecks, relevance := v.necessityChecks(input, caseCtx, content, now)
	crossRefs := v.crossReferences(input, caseCtx)
	anomalies := v.detectAnomalies(input, realityChecks, contradictions, now)

	realityMean := meanConfidence(realityChecks)
	truthMean := meanConfidence(truthChecks)
	xrefMean := meanScore(crossRefs)

	isReal := allPassed(realityChecks) && realityMean >= minCheckConfidence
	isTrue := contradictions == 0 && truthMean >= minCheckConfidence
	isNeeded := anyNeeded(necessityChecks) && relevance >= 50

	level := verificationLevel(realityChecks, truthChecks, xrefMean, anomalies)
	confidence := realityMean*0.30 + truthMean*0.30 + relevance*0.20 + xrefMean*0.20

	outcome := model.VerificationOutcome{
		InputID:           input.ID,
		IsReal:            isReal,
		IsTrue:            isTrue,
		IsNeeded:          isNeeded,
		VerificationLevel: level,
		Confidence:        round2(confidence),
		RealityChecks:     realityChecks,
		TruthChecks:       truthChecks,
		NecessityChecks:   necessityChecks,
		CrossReferences:   crossRefs,
		Anomalies:         anomalies,
	}

	switch {
	case !isReal:
		outcome.Rejection = model.RejectionNotReal
	case !isTrue:
		outcome.Rejection = model.RejectionNotTrue
	case !isNeeded:
		outcome.Rejection = model.RejectionNotNeeded
	case confidence < v.cfg.MinConfidence:
		outcome.Rejection = model.RejectionInsufficientConfidence
	default:
		outcome.Accepted = true
		outcome.Fragment = v.buildFragment(input, content, outcome, now)
	}

	return outcome
}

// realityChecks answers: does this record exist as what it claims to be?
func (v *Verifier) realityChecks(input model.RawInput, content string, now time.Time) []model.CheckResult {
	checks := make([]model.CheckResult, 0, 5)

	checks = append(checks, check("source_present", input.Source != "", 85, 10,
		"originating source identified"))

	minLen := v.cfg.MinContentLength
	if minLen <= 0 {
		minLen = 10
	}
	checks = append(checks, check("content_substantive", len(content) >= minLen, 85, 20,
		fmt.Sprintf("content length %d (minimum %d)", len(content), minLen)))

	tsOK := !input.Timestamp.After(now) && input.Timestamp.Year() >= earliestTimestampYear
	checks = append(checks, check("timestamp_plausible", tsOK, 90, 15,
		fmt.Sprintf("timestamp %s", input.Timestamp.Format(time.RFC3339))))

	provConf := 75 + 5*float64(min(len(input.Provenance), 4))
	c := check("provenance_present", len(input.Provenance) > 0, provConf, 10,
		fmt.Sprintf("%d provenance entries", len(input.Provenance)))
	checks = append(checks, c)

	checks = append(checks, check("source_type_recognized", input.SourceType.IsKnown(), 90, 10,
		string(input.SourceType)))

	return checks
}

// truthChecks answers: is the record's content consistent with the case?
// Returns the checks and the number of contradictions found. A failed
// corroboration lowers confidence but is not a contradiction.
func (v *Verifier) truthChecks(ctx context.Context, input model.RawInput, caseCtx model.CaseContext, now time.Time) ([]model.CheckResult, int) {
	checks := make([]model.CheckResult, 0, 4)
	contradictions := 0

	// Placeholder for forensic content analysis.
	checks = append(checks, model.CheckResult{
		Name:       "internal_consistency",
		Passed:     true,
		Confidence: 75,
		Detail:     "assumed consistent pending deeper content analysis",
	})

	corroborated := false
	for _, p := range input.Provenance {
		if p.IndependentlyVerified {
			corroborated = true
			break
		}
	}
	corrDetail := "independently verified provenance entry found"
	if !corroborated && v.corroborator != nil {
		if ok, err := v.corroborator.Corroborate(ctx, input.Source); err == nil && ok {
			corroborated = true
			corrDetail = "corroborated by external registry"
		}
	}
	checks = append(checks, check("external_corroboration", corroborated, 90, 40, corrDetail))

	margin := v.cfg.TemporalMarginYrs
	if margin <= 0 {
		margin = 10
	}
	temporalOK := !input.Timestamp.After(now)
	if temporalOK && !caseCtx.StartDate.IsZero() {
		temporalOK = input.Timestamp.After(caseCtx.StartDate.AddDate(-margin, 0, 0))
	}
	if !temporalOK {
		contradictions++
	}
	checks = append(checks, check("temporal_consistency", temporalOK, 85, 25,
		fmt.Sprintf("timestamp vs case start %s", caseCtx.StartDate.Format("2006-01-02"))))

	jurisdictionOK := input.Jurisdiction == "" || caseCtx.HasJurisdiction(input.Jurisdiction)
	if !jurisdictionOK {
		contradictions++
	}
	checks = append(checks, check("jurisdictional_validity", jurisdictionOK, 85, 30,
		fmt.Sprintf("jurisdiction %q", input.Jurisdiction)))

	return checks, contradictions
}

// necessityChecks answers: does the case need this record? Returns the
// checks and the relevance score.
func (v *Verifier) necessityChecks(input model.RawInput, caseCtx model.CaseContext, content string, now time.Time) ([]model.NecessityCheck, float64) {
	relevance := 50.0
	detail := "base relevance"
	if relevantSource(caseCtx.CaseType, input.SourceType) {
		relevance += 30
		detail += ", source type relevant to case type"
	}
	for _, p := range input.Provenance {
		if p.IndependentlyVerified {
			relevance += 15
			detail += ", independently verified"
			break
		}
	}
	window := v.cfg.RecentWindowDays
	if window <= 0 {
		window = 365
	}
	if !input.Timestamp.IsZero() && now.Sub(input.Timestamp) <= time.Duration(window)*24*time.Hour {
		relevance += 10
		detail += ", recent"
	}
	if hintMatch(content, caseCtx.SubjectHints) {
		relevance += 5
		detail += ", matches subject hints"
	}
	relevance = math.Min(relevance, 100)

	checks := []model.NecessityCheck{
		{
			Name:      "case_relevance",
			Needed:    relevance >= 50,
			Relevance: relevance,
			Detail:    detail,
		},
		{
			// Placeholder for deduplication against existing evidence.
			Name:   "uniqueness",
			Needed: true,
			Detail: "assumed unique pending deduplication",
		},
	}

	intel := DetectIntel(content)
	intelDetail := "no actionable patterns"
	if len(intel) > 0 {
		intelDetail = ""
		for i, m := range intel {
			if i > 0 {
				intelDetail += ", "
			}
			intelDetail += fmt.Sprintf("%s x%d", m.Kind, m.Count)
		}
	}
	checks = append(checks, model.NecessityCheck{
		Name:   "actionable_intelligence",
		Needed: len(intel) > 0,
		Detail: intelDetail,
	})

	return checks, relevance
}

// crossReferences scores one entry per provenance source plus one
// synthetic entry for the case itself.
func (v *Verifier) crossReferences(input model.RawInput, caseCtx model.CaseContext) []model.CrossReference {
	refs := make([]model.CrossReference, 0, len(input.Provenance)+1)
	for _, p := range input.Provenance {
		score := 50.0
		if p.IndependentlyVerified {
			score = 90
		}
		refs = append(refs, model.CrossReference{
			Source:   p.Source,
			Verified: p.IndependentlyVerified,
			Score:    score,
		})
	}
	refs = append(refs, model.CrossReference{
		Source:   "case:" + caseCtx.CaseID,
		Verified: true,
		Score:    75,
	})
	return refs
}

// detectAnomalies flags inconsistencies that raise verification level
// penalties and human-review requirements.
func (v *Verifier) detectAnomalies(input model.RawInput, reality []model.CheckResult, contradictions int, now time.Time) []model.Anomaly {
	var anomalies []model.Anomaly

	if input.Timestamp.After(now) {
		anomalies = append(anomalies, model.Anomaly{
			Type:                model.AnomalyTemporal,
			Severity:            model.SeverityCritical,
			Description:         "record timestamp is in the future",
			RequiresHumanReview: true,
		})
	}

	failedReality := 0
	for _, c := range reality {
		if !c.Passed {
			failedReality++
		}
	}
	if failedReality > 2 {
		anomalies = append(anomalies, model.Anomaly{
			Type:        model.AnomalyLogical,
			Severity:    model.SeverityHigh,
			Description: fmt.Sprintf("%d of %d reality checks failed", failedReality, len(reality)),
		})
	}

	if contradictions > 0 {
		anomalies = append(anomalies, model.Anomaly{
			Type:                model.AnomalyDocumentary,
			Severity:            model.SeverityHigh,
			Description:         fmt.Sprintf("%d truth-check contradictions", contradictions),
			RequiresHumanReview: true,
		})
	}

	return anomalies
}

// verificationLevel derives the 1-10 level: base 5, up to +2 for reality
// pass ratio, up to +2 for truth pass ratio, up to +1 for cross-reference
// score, -2 per critical anomaly, -1 per high anomaly.
func verificationLevel(reality, truth []model.CheckResult, xrefScore float64, anomalies []model.Anomaly) int {
	level := 5.0
	level += passRatio(reality) * 2
	level += passRatio(truth) * 2
	level += xrefScore / 100

	for _, a := range anomalies {
		switch a.Severity {
		case model.SeverityCritical:
			level -= 2
		case model.SeverityHigh:
			level -= 1
		}
	}

	return clampInt(int(math.Round(level)), 1, 10)
}

// buildFragment creates the immutable verified fragment for an accepted
// input, seeding the chain of custody from provenance.
func (v *Verifier) buildFragment(input model.RawInput, content string, outcome model.VerificationOutcome, now time.Time) *model.Fragment {
	custody := make([]model.CustodyEntry, 0, len(input.Provenance)+1)
	for _, p := range input.Provenance {
		custody = append(custody, model.CustodyEntry{
			Actor:     p.Source,
			Action:    "handled",
			Timestamp: p.Timestamp,
			Verified:  p.IndependentlyVerified,
		})
	}
	custody = append(custody, model.CustodyEntry{
		Actor:     "tessera",
		Action:    "verified",
		Timestamp: now,
		Verified:  true,
	})

	return &model.Fragment{
		ID:                v.ids.NewID("frag"),
		InputID:           input.ID,
		Type:              model.FragmentTypeFor(input.SourceType),
		Content:           content,
		VerificationLevel: outcome.VerificationLevel,
		Confidence:        outcome.Confidence,
		Timestamp:         input.Timestamp,
		Jurisdiction:      input.Jurisdiction,
		ChainOfCustody:    custody,
		IsReal:            outcome.IsReal,
		IsTrue:            outcome.IsTrue,
		IsNeeded:          outcome.IsNeeded,
	}
}

// ReviewItemFor derives the human-review obligation for an outcome, or
// nil when no review is required. Review triggers on verification level
// >= 7 or any anomaly that demands it.
func (v *Verifier) ReviewItemFor(outcome model.VerificationOutcome, caseCtx model.CaseContext) *model.ReviewItem {
	anomalyReview := false
	criticals := 0
	for _, a := range outcome.Anomalies {
		if a.RequiresHumanReview {
			anomalyReview = true
		}
		if a.Severity == model.SeverityCritical {
			criticals++
		}
	}
	if outcome.VerificationLevel < 7 && !anomalyReview {
		return nil
	}

	priority := 5
	switch {
	case outcome.VerificationLevel >= 9:
		priority = 10
	case outcome.VerificationLevel >= 7:
		priority = 8
	}
	priority = clampInt(priority+2*criticals, 1, 10)

	reason := "high verification level"
	if anomalyReview {
		reason = "anomaly requires review"
		if outcome.VerificationLevel >= 7 {
			reason = "high verification level and anomaly"
		}
	}

	now := v.now()
	var deadline time.Time
	switch {
	case priority >= 9:
		deadline = now.Add(24 * time.Hour)
	case priority >= 7:
		deadline = now.Add(72 * time.Hour)
	default:
		deadline = now.Add(7 * 24 * time.Hour)
	}

	return &model.ReviewItem{
		InputID:  outcome.InputID,
		CaseID:   caseCtx.CaseID,
		Reason:   reason,
		Priority: priority,
		Deadline: deadline,
	}
}

// --- helpers ---

func check(name string, passed bool, passConf, failConf float64, detail string) model.CheckResult {
	conf := failConf
	if passed {
		conf = passConf
	}
	return model.CheckResult{Name: name, Passed: passed, Confidence: conf, Detail: detail}
}

func meanConfidence(checks []model.CheckResult) float64 {
	if len(checks) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range checks {
		sum += c.Confidence
	}
	return sum / float64(len(checks))
}

func meanScore(refs []model.CrossReference) float64 {
	if len(refs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range refs {
		sum += r.Score
	}
	return sum / float64(len(refs))
}

func allPassed(checks []model.CheckResult) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func anyNeeded(checks []model.NecessityCheck) bool {
	for _, c := range checks {
		if c.Needed {
			return true
		}
	}
	return false
}

func passRatio(checks []model.CheckResult) float64 {
	if len(checks) == 0 {
		return 0
	}
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(checks))
}

func hintMatch(content string, hints []string) bool {
	if len(hints) == 0 {
		return false
	}
	lower := strings.ToLower(content)
	for _, h := range hints {
		if h != "" && strings.Contains(lower, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
