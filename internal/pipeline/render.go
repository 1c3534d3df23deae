package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avolkov/tessera/internal/model"
)

// Renderer writes pipeline results to disk and to the console.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes any result as indented JSON.
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable case report.
func (r *Renderer) RenderMarkdown(result *model.CaseResult, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Case %s: %s\n\n", result.CaseID, result.Title)
	fmt.Fprintf(&b, "Processed: %s\n\n", result.ProcessedAt.Format("2006-01-02 15:04 UTC"))

	if v := result.Verification; v != nil {
		b.WriteString("## Verification\n\n")
		fmt.Fprintf(&b, "| Inputs | Accepted | Rejected | Mean confidence | Review items |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %d | %d | %d | %.1f | %d |\n\n",
			v.Summary.TotalInputs, v.Summary.Accepted, v.Summary.Rejected,
			v.Summary.MeanConfidence, v.Summary.ReviewItems)

		if len(v.Rejections) > 0 {
			b.WriteString("### Rejections\n\n")
			for _, rej := range v.Rejections {
				fmt.Fprintf(&b, "- `%s` — %s (confidence %.1f)\n", rej.InputID, rej.Category, rej.Confidence)
			}
			b.WriteString("\n")
		}
	}

	if p := result.Picture; p != nil {
		b.WriteString("## Assembled picture\n\n")
		fmt.Fprintf(&b, "- Completion: %.1f%%\n", p.CompletionPercentage)
		fmt.Fprintf(&b, "- Placed components: %d (unplaceable: %d)\n", len(p.PlacedIDs), len(p.UnplaceableIDs))
		fmt.Fprintf(&b, "- Court ready: %t (readiness %.1f)\n", p.CourtReady, p.CourtReadinessScore)
		fmt.Fprintf(&b, "- Integrity hash: `%s`\n\n", p.IntegrityHash)

		if len(p.Conclusions) > 0 {
			b.WriteString("### Conclusions\n\n")
			for _, c := range p.Conclusions {
				fmt.Fprintf(&b, "- **%s** (confidence %.0f%%): %s\n", c.Type, c.Confidence, c.Statement)
			}
			b.WriteString("\n")
		}

		if len(p.Gaps) > 0 {
			b.WriteString("### Gaps\n\n")
			for _, g := range p.Gaps {
				fmt.Fprintf(&b, "- Priority %d: %s\n", g.Priority, g.Description)
			}
			b.WriteString("\n")
		}

		if p.Narrative != "" {
			b.WriteString("### Assembly narrative\n\n")
			b.WriteString("```\n")
			b.WriteString(p.Narrative)
			b.WriteString("```\n\n")
		}
	}

	fmt.Fprintf(&b, "## Recommendation\n\n%s\n\n", result.Recommendation)
	if len(result.NextSteps) > 0 {
		b.WriteString("### Next steps\n\n")
		for _, step := range result.NextSteps {
			fmt.Fprintf(&b, "1. %s\n", step)
		}
		b.WriteString("\n")
	}

	if len(result.HumanReview) > 0 {
		b.WriteString("## Human review queue\n\n")
		for _, item := range result.HumanReview {
			fmt.Fprintf(&b, "- [P%d] %s (due %s)\n", item.Priority, item.Reason,
				item.Deadline.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	if n := result.Narrative; n != nil && n.Enabled && n.SummaryMD != "" {
		fmt.Fprintf(&b, "## Narrative (%s)\n\n%s\n\n", n.Provider, n.SummaryMD)
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by tessera. Conclusions describe evidentiary structure, not guilt.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteSummary prints a short console summary of a case result.
func (r *Renderer) WriteSummary(w io.Writer, result *model.CaseResult) {
	fmt.Fprintf(w, "Case %s (%s)\n", result.CaseID, result.Title)
	if v := result.Verification; v != nil {
		fmt.Fprintf(w, "  verified: %d/%d accepted, mean confidence %.1f\n",
			v.Summary.Accepted, v.Summary.TotalInputs, v.Summary.MeanConfidence)
	}
	if p := result.Picture; p != nil {
		fmt.Fprintf(w, "  picture:  %.1f%% complete, %d gaps, readiness %.1f\n",
			p.CompletionPercentage, len(p.Gaps), p.CourtReadinessScore)
		if p.CourtReady {
			fmt.Fprintln(w, "  status:   COURT READY (pending human review)")
		} else {
			fmt.Fprintln(w, "  status:   not court ready")
		}
	}
	fmt.Fprintf(w, "  advice:   %s\n", result.Recommendation)
}
