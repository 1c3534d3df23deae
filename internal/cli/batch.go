package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/tessera/internal/pipeline"
	"github.com/avolkov/tessera/internal/worker"
)

var (
	batchOutDir      string
	batchConcurrency int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Process multiple case bundles concurrently",
	Long: `Batch reads case file paths from a manifest (one per line, # for
comments) and runs the full pipeline for each concurrently. Results are
written as JSON into the output directory, one file per case.

Example:
  tessera batch cases.txt --out results/ --concurrency 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutDir, "out", "results", "output directory for per-case JSON results")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent cases (default: config batch_workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency.BatchWorkers
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	outcomes, err := processor.ProcessManifest(ctx, args[0])
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	var succeeded, failed int
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Path, outcome.Error)
			continue
		}

		outPath := filepath.Join(batchOutDir, resultFileName(outcome.Path))
		if err := renderer.RenderJSON(outcome.Result, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Path, err)
			continue
		}

		succeeded++
		fmt.Printf("✓ %s → %s (%.1f%% complete, readiness %.1f)\n",
			outcome.Path, outPath,
			outcome.Result.Picture.CompletionPercentage,
			outcome.Result.Picture.CourtReadinessScore)
	}

	fmt.Printf("\nProcessed %d cases: %d succeeded, %d failed\n", len(outcomes), succeeded, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(outcomes))
	}
	return nil
}

// resultFileName derives the output name from the case file path.
func resultFileName(casePath string) string {
	base := filepath.Base(casePath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".result.json"
}
