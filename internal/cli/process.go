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
	processJSON    string
	processMD      string
	processTimeout time.Duration
	noCache        bool
	noFooter       bool
	llmEnabled     bool
	llmModel       string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <case-file>",
	Short: "Run the full pipeline for one case bundle",
	Long: `Process runs verification, compression, assembly and finishing for a
case bundle, producing the combined case result: the picture, the merged
human-review queue, a recommendation and next steps.

Example:
  tessera process case.yaml --json result.json --md result.md
  tessera process case.yaml --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processJSON, "json", "result.json", "output JSON path")
	processCmd.Flags().StringVar(&processMD, "md", "", "output Markdown path (optional)")
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 5*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the verification outcome cache")
	processCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	cf, err := pipeline.LoadCaseFile(args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.Process(ctx, cf)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if processJSON != "" {
		if err := renderer.RenderJSON(result, processJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", processJSON)
		}
	}
	if processMD != "" {
		if err := renderer.RenderMarkdown(result, processMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", processMD)
		}
	}

	renderer.WriteSummary(os.Stdout, result)
	return nil
}
