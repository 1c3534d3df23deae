package worker

import (
	"context"
	"fmt"

	"github.com/avolkov/tessera/internal/model"
	"github.com/avolkov/tessera/internal/pipeline"
)

// Processor runs the full pipeline for one case bundle.
type Processor interface {
	Process(ctx context.Context, cf *pipeline.CaseFile) (*model.CaseResult, error)
}

// CaseJob processes a single case file.
type CaseJob struct {
	Path      string
	Processor Processor
}

// Execute loads and processes the case file.
func (j *CaseJob) Execute(ctx context.Context) Result {
	cf, err := pipeline.LoadCaseFile(j.Path)
	if err != nil {
		return &CaseOutcome{Path: j.Path, Error: err}
	}

	result, err := j.Processor.Process(ctx, cf)
	if err != nil {
		return &CaseOutcome{Path: j.Path, Error: err}
	}
	return &CaseOutcome{Path: j.Path, Result: result}
}

// CaseOutcome is the result of one case job.
type CaseOutcome struct {
	Path   string
	Result *model.CaseResult
	Error  error
}

// GetError returns the job's error, if any.
func (o *CaseOutcome) GetError() error {
	return o.Error
}

// BatchProcessor processes multiple case files concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given case files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CaseOutcome {
	if len(paths) == 0 {
		return []*CaseOutcome{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&CaseJob{Path: path, Processor: b.processor})
	}
	results := pool.Wait()

	outcomes := make([]*CaseOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*CaseOutcome)
	}
	return outcomes
}

// ProcessManifest reads case file paths from a manifest and processes
// them concurrently.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*CaseOutcome, error) {
	paths, err := pipeline.ReadCasePathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}
