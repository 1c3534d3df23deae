package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/avolkov/tessera/internal/model"
)

// Summarizer turns an assembled picture into an optional CaseNarrative.
// A nil provider means narratives are disabled; failures degrade to a
// warning rather than an error, since the narrative is advisory.
type Summarizer struct {
	provider Provider
	logger   *zap.Logger
}

// NewSummarizer creates a summarizer around a provider.
func NewSummarizer(provider Provider, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{provider: provider, logger: logger}
}

// Summarize generates a narrative for a finished picture. It is called
// after readiness scoring and its output never feeds back into scores.
func (s *Summarizer) Summarize(ctx context.Context, caseCtx model.CaseContext, picture model.Picture) *model.CaseNarrative {
	if s.provider == nil {
		return &model.CaseNarrative{Enabled: false}
	}

	allowed := make([]string, 0, len(picture.Components)*2)
	for _, comp := range picture.Components {
		allowed = append(allowed, comp.ID, comp.FragmentID)
	}

	resp, err := s.provider.Narrate(ctx, NarrateRequest{
		Picture:     picture,
		CaseContext: caseCtx,
		AllowedIDs:  allowed,
	})
	if err != nil {
		s.logger.Warn("narrative generation failed",
			zap.String("case_id", picture.CaseID),
			zap.String("provider", s.provider.Name()),
			zap.Error(err))
		return &model.CaseNarrative{
			Enabled:  true,
			Provider: s.provider.Name(),
			Warnings: []string{"narrative generation failed: " + err.Error()},
		}
	}

	s.logger.Debug("narrative generated",
		zap.String("case_id", picture.CaseID),
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokensUsed))

	return &model.CaseNarrative{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Narrative,
	}
}
