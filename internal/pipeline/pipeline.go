// Package pipeline orchestrates the full reconstruction flow: verify
// raw inputs into fragments, compress fragments into components, and
// assemble components into a finalized picture.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/tessera/internal/assemble"
	"github.com/avolkov/tessera/internal/cache"
	"github.com/avolkov/tessera/internal/compress"
	"github.com/avolkov/tessera/internal/llm"
	"github.com/avolkov/tessera/internal/model"
	"github.com/avolkov/tessera/internal/registry"
	"github.com/avolkov/tessera/internal/verify"
)

// Pipeline wires the pipeline stages together. It is safe for
// concurrent use; each call carries its own state.
type Pipeline struct {
	cfg        *model.Config
	logger     *zap.Logger
	ids        model.IDSource
	verifier   *verify.Verifier
	compressor *compress.Compressor
	engineer   *compress.EdgeEngineer
	assembler  *assemble.Assembler
	analyzer   *assemble.Analyzer
	outcomes   cache.Cache
	summarizer *llm.Summarizer
	now        func() time.Time
}

// Option customizes pipeline construction.
type Option func(*options)

type options struct {
	ids          model.IDSource
	now          func() time.Time
	corroborator verify.Corroborator
}

// WithIDSource overrides the identifier source (tests use a sequence).
func WithIDSource(ids model.IDSource) Option {
	return func(o *options) { o.ids = ids }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCorroborator overrides the registry collaborator.
func WithCorroborator(c verify.Corroborator) Option {
	return func(o *options) { o.corroborator = c }
}

// New creates a pipeline from configuration.
func New(cfg *model.Config, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	o := options{
		ids: model.UUIDSource{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.corroborator == nil && cfg.Registry.Enabled {
		o.corroborator = registry.NewClient(cfg.Registry, logger)
	}

	var outcomes cache.Cache
	if cfg.Cache.Enabled {
		outcomes = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	var summarizer *llm.Summarizer
	if provider != nil {
		summarizer = llm.NewSummarizer(provider, logger)
	}

	verifyOpts := []verify.Option{verify.WithClock(o.now)}
	if o.corroborator != nil {
		verifyOpts = append(verifyOpts, verify.WithCorroborator(o.corroborator))
	}

	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		ids:        o.ids,
		verifier:   verify.NewVerifier(cfg.Verify, o.ids, verifyOpts...),
		compressor: compress.NewCompressor(o.ids, compress.WithClock(o.now)),
		engineer:   compress.NewEdgeEngineer(),
		assembler:  assemble.NewAssembler(o.ids, assemble.WithClock(o.now)),
		analyzer:   assemble.NewAnalyzer(o.ids),
		outcomes:   outcomes,
		summarizer: summarizer,
		now:        o.now,
	}, nil
}

// Verify runs the verification stage for one case. Input validation is
// fail-fast: a malformed case context or input aborts the whole batch
// before any verification runs.
func (p *Pipeline) Verify(ctx context.Context, caseCtx model.CaseContext, inputs []model.RawInput) (*model.VerificationReport, error) {
	if err := verify.ValidateContext(caseCtx); err != nil {
		return nil, err
	}
	for _, input := range inputs {
		if err := verify.ValidateInput(input); err != nil {
			return nil, err
		}
	}

	outcomes := make([]model.VerificationOutcome, len(inputs))

	workers := p.cfg.Concurrency.VerificationWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input model.RawInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = p.verifyOne(ctx, input, caseCtx)
		}(i, input)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &model.VerificationReport{
		CaseID:     caseCtx.CaseID,
		Outcomes:   outcomes,
		VerifiedAt: p.now().UTC(),
	}

	var confidenceSum float64
	for _, outcome := range outcomes {
		confidenceSum += outcome.Confidence
		if outcome.Accepted {
			report.Fragments = append(report.Fragments, *outcome.Fragment)
		} else {
			report.Rejections = append(report.Rejections, rejectionFor(outcome))
		}
		if item := p.verifier.ReviewItemFor(outcome, caseCtx); item != nil {
			report.HumanReview = append(report.HumanReview, *item)
		}
	}

	report.Summary = model.VerificationSummary{
		TotalInputs: len(inputs),
		Accepted:    len(report.Fragments),
		Rejected:    len(report.Rejections),
		ReviewItems: len(report.HumanReview),
	}
	if len(inputs) > 0 {
		report.Summary.MeanConfidence = confidenceSum / float64(len(inputs))
	}

	p.logger.Info("verification complete",
		zap.String("case_id", caseCtx.CaseID),
		zap.Int("inputs", len(inputs)),
		zap.Int("accepted", report.Summary.Accepted),
		zap.Int("rejected", report.Summary.Rejected),
		zap.Int("review_items", report.Summary.ReviewItems))

	return report, nil
}

// verifyOne verifies a single input, consulting the outcome cache when
// enabled. Verification is pure over (input, case context), so cached
// outcomes are exact.
func (p *Pipeline) verifyOne(ctx context.Context, input model.RawInput, caseCtx model.CaseContext) model.VerificationOutcome {
	if p.outcomes == nil {
		return p.verifier.Verify(ctx, input, caseCtx)
	}

	key := cache.OutcomeKey(caseCtx.CaseID, input.ID, input.Content)
	if data, found := p.outcomes.Get(key); found {
		var cached model.VerificationOutcome
		if err := json.Unmarshal(data, &cached); err == nil {
			p.logger.Debug("outcome cache hit", zap.String("input_id", input.ID))
			return cached
		}
		_ = p.outcomes.Delete(key)
	}

	outcome := p.verifier.Verify(ctx, input, caseCtx)
	if data, err := json.Marshal(outcome); err == nil {
		_ = p.outcomes.Set(key, data, p.cfg.Cache.TTL)
	}
	return outcome
}

// rejectionFor builds the audit record for a rejected input.
func rejectionFor(outcome model.VerificationOutcome) model.RejectedInput {
	var reasons []string
	for _, check := range outcome.RealityChecks {
		if !check.Passed {
			reasons = append(reasons, "reality: "+check.Name)
		}
	}
	for _, check := range outcome.TruthChecks {
		if !check.Passed {
			reasons = append(reasons, "truth: "+check.Name)
		}
	}
	for _, check := range outcome.NecessityChecks {
		if !check.Needed {
			reasons = append(reasons, "necessity: "+check.Name)
		}
	}

	return model.RejectedInput{
		InputID:    outcome.InputID,
		Category:   outcome.Rejection,
		Confidence: outcome.Confidence,
		Reasons:    reasons,
	}
}

// Assemble runs compression, edge engineering, placement and finishing
// for one set of verified fragments. Cancellation between stages
// abandons the run; no partial picture is returned.
func (p *Pipeline) Assemble(ctx context.Context, fragments []model.Fragment, caseCtx model.CaseContext, title string) (*model.AssemblyReport, error) {
	components, skipped := p.compressor.CompressBatch(fragments)
	for _, fragID := range skipped {
		p.logger.Warn("fragment not eligible for reconstruction",
			zap.String("case_id", caseCtx.CaseID),
			zap.String("fragment_id", fragID))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.engineer.Engineer(components)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	picture, stats := p.assembler.Assemble(components, caseCtx.CaseID, caseCtx.CaseType, title)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	final := assemble.Finalize(picture, p.analyzer)
	stats.GapCount = len(final.Gaps)
	stats.ConclusionCount = len(final.Conclusions)

	p.logger.Info("assembly complete",
		zap.String("case_id", caseCtx.CaseID),
		zap.Float64("completion", final.CompletionPercentage),
		zap.Int("gaps", len(final.Gaps)),
		zap.Bool("court_ready", final.CourtReady))

	return &model.AssemblyReport{Picture: final, Stats: stats}, nil
}

// Process runs the full pipeline for one case bundle.
func (p *Pipeline) Process(ctx context.Context, cf *CaseFile) (*model.CaseResult, error) {
	verification, err := p.Verify(ctx, cf.Case, cf.Inputs)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	assembly, err := p.Assemble(ctx, verification.Fragments, cf.Case, cf.Title)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	picture := assembly.Picture

	review := mergeReview(verification, picture, cf.Case, p.now().UTC())

	result := &model.CaseResult{
		CaseID:         cf.Case.CaseID,
		Title:          cf.Title,
		Verification:   verification,
		Picture:        picture,
		Stats:          assembly.Stats,
		HumanReview:    review,
		Recommendation: recommendationFor(picture),
		NextSteps:      nextStepsFor(picture, review),
		ProcessedAt:    p.now().UTC(),
	}

	// Narrative last: generated after all scoring, never feeds back.
	if p.summarizer != nil {
		result.Narrative = p.summarizer.Summarize(ctx, cf.Case, *picture)
	}

	return result, nil
}

// mergeReview combines verifier review items with the picture's own
// review obligation, ordered by descending priority; equal priorities
// surface the earlier deadline first.
func mergeReview(verification *model.VerificationReport, picture *model.Picture, caseCtx model.CaseContext, now time.Time) []model.ReviewItem {
	review := make([]model.ReviewItem, len(verification.HumanReview))
	copy(review, verification.HumanReview)

	if picture.HumanReviewRequired {
		review = append(review, model.ReviewItem{
			CaseID:   caseCtx.CaseID,
			Reason:   "assembled picture requires human review before any conclusion is acted on",
			Priority: 9,
			Deadline: now.Add(24 * time.Hour),
		})
	}

	sort.SliceStable(review, func(i, j int) bool {
		if review[i].Priority != review[j].Priority {
			return review[i].Priority > review[j].Priority
		}
		return review[i].Deadline.Before(review[j].Deadline)
	})
	return review
}

func recommendationFor(picture *model.Picture) string {
	switch {
	case picture.CourtReady:
		return "Picture is court-ready: hand over to prosecutorial review."
	case picture.CompletionPercentage >= 80:
		return "Picture is nearly complete: close the remaining gaps before handover."
	case picture.CompletionPercentage >= 50:
		return "Picture is partial: prioritize gap-filling collection before drawing conclusions."
	default:
		return "Picture is sparse: substantially more verified evidence is needed."
	}
}

func nextStepsFor(picture *model.Picture, review []model.ReviewItem) []string {
	var steps []string

	seen := make(map[string]bool)
	for _, gap := range picture.Gaps {
		for _, src := range gap.SuggestedSources {
			if !seen[src] {
				seen[src] = true
				steps = append(steps, fmt.Sprintf("collect %s evidence to fill open gaps", src))
			}
		}
	}
	if len(review) > 0 {
		steps = append(steps, fmt.Sprintf("work the human review queue (%d items)", len(review)))
	}
	if len(picture.UnplaceableIDs) > 0 {
		steps = append(steps, fmt.Sprintf("re-examine %d excluded components for missing connective evidence", len(picture.UnplaceableIDs)))
	}
	if len(steps) == 0 {
		steps = append(steps, "archive the case bundle and schedule periodic re-verification")
	}
	return steps
}
