// Package llm generates optional prose narratives for assembled case
// pictures. The narrative is produced after all scoring and never feeds
// back into verification, placement or readiness. Providers run in
// strict-grounding mode: a narrative may only reference component and
// fragment identifiers that exist in the picture.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/avolkov/tessera/internal/model"
)

// Provider defines the interface for narrative backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Narrate generates a prose narrative for an assembled picture.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest is the input for narrative generation.
type NarrateRequest struct {
	// Picture is the assembled picture to narrate.
	Picture model.Picture

	// CaseContext describes the investigation the picture belongs to.
	CaseContext model.CaseContext

	// AllowedIDs is the strict allowlist of component and fragment
	// identifiers the narrative may reference.
	AllowedIDs []string

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the provider-specific model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// NarrateResponse is the provider's output.
type NarrateResponse struct {
	Narrative  string
	CitedIDs   []string
	Model      string
	TokensUsed int
}

// NewProvider creates a provider from configuration. An empty provider
// name means narratives are disabled and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// BuildPrompt constructs the default narration prompt.
func BuildPrompt(picture model.Picture, caseCtx model.CaseContext, allowedIDs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are narrating the assembled evidence picture of an investigation. The picture describes how verified evidence fragments fit together - it NEVER asserts guilt or innocence.

CRITICAL RULES:
1. You MUST ONLY reference component and fragment identifiers from this list:
%s

2. Do not speculate beyond the placed components, gaps and conclusions below.
3. If the picture is incomplete, state that explicitly.
4. Describe evidentiary structure, not truth. Use phrases like:
   - "Component X corroborates..."
   - "A gap remains at..."
   - "The assembly suggests..."
5. Never name individuals as guilty. Only describe how the evidence connects.

Case:
- ID: %s
- Type: %s
- Completion: %.1f%%
- Placed components: %d
- Gaps: %d
- Court ready: %t (readiness %.1f)

Conclusions:
`, joinIDs(allowedIDs), picture.CaseID, caseCtx.CaseType, picture.CompletionPercentage,
		len(picture.PlacedIDs), len(picture.Gaps), picture.CourtReady, picture.CourtReadinessScore)

	for i, c := range picture.Conclusions {
		if i >= 5 {
			fmt.Fprintf(&b, "... and %d more conclusions\n", len(picture.Conclusions)-5)
			break
		}
		fmt.Fprintf(&b, "- [%s] %s (confidence %.0f%%)\n", c.Type, c.Statement, c.Confidence)
	}

	b.WriteString("\nGaps:\n")
	for i, g := range picture.Gaps {
		if i >= 5 {
			fmt.Fprintf(&b, "... and %d more gaps\n", len(picture.Gaps)-5)
			break
		}
		fmt.Fprintf(&b, "- priority %d: %s\n", g.Priority, g.Description)
	}

	b.WriteString("\nProvide a 4-6 sentence narrative of how the evidence fits together and what is still missing.")
	return b.String()
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "(no identifiers available)"
	}
	var b strings.Builder
	for i, id := range ids {
		if i >= 40 {
			fmt.Fprintf(&b, "\n... and %d more", len(ids)-40)
			break
		}
		fmt.Fprintf(&b, "\n- %s", id)
	}
	return b.String()
}
