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
	assembleJSON    string
	assembleTimeout time.Duration
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble <case-file>",
	Short: "Verify a case bundle and assemble its picture",
	Long: `Assemble verifies the case bundle, compresses the accepted fragments
into components, engineers their edges and places them into a
three-dimensional picture with gaps and conclusions.

Example:
  tessera assemble case.yaml --json picture.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().StringVar(&assembleJSON, "json", "picture.json", "output JSON path")
	assembleCmd.Flags().DurationVar(&assembleTimeout, "timeout", 2*time.Minute, "overall assembly timeout")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), assembleTimeout)
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

	verification, err := p.Verify(ctx, cf.Case, cf.Inputs)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	assembly, err := p.Assemble(ctx, verification.Fragments, cf.Case, cf.Title)
	if err != nil {
		return fmt.Errorf("assemble failed: %w", err)
	}

	if assembleJSON != "" {
		if err := pipeline.NewRenderer(cfg.Output.IncludeFooter).RenderJSON(assembly, assembleJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", assembleJSON)
		}
	}

	picture := assembly.Picture
	fmt.Printf("Case %s: %.1f%% complete, %d placed, %d unplaceable, %d gaps, readiness %.1f\n",
		picture.CaseID, picture.CompletionPercentage, len(picture.PlacedIDs),
		len(picture.UnplaceableIDs), len(picture.Gaps), picture.CourtReadinessScore)
	return nil
}
