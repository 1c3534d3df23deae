package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/tessera/internal/pipeline"
)

var (
	verifyJSON    string
	verifyTimeout time.Duration
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <case-file>",
	Short: "Verify the raw inputs of a case bundle",
	Long: `Verify runs the verification stage only: every raw input in the case
bundle is checked for reality, truth and necessity, and either becomes
a verified fragment or a rejection with its audit trail.

Example:
  tessera verify case.yaml
  tessera verify case.json --json verification.json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyJSON, "json", "verification.json", "output JSON path")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cf, err := pipeline.LoadCaseFile(args[0])
	if err != nil {
		return err
	}

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

	report, err := p.Verify(ctx, cf.Case, cf.Inputs)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if verifyJSON != "" {
		if err := pipeline.NewRenderer(cfg.Output.IncludeFooter).RenderJSON(report, verifyJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", verifyJSON)
		}
	}

	fmt.Printf("Case %s: %d/%d inputs accepted, %d rejected, %d review items (mean confidence %.1f)\n",
		report.CaseID, report.Summary.Accepted, report.Summary.TotalInputs,
		report.Summary.Rejected, report.Summary.ReviewItems, report.Summary.MeanConfidence)
	return nil
}
