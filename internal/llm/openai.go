package llm

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/avolkov/tessera/internal/model"
)

// OpenAIProvider implements Provider against OpenAI chat models.
type OpenAIProvider struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks whether the API is reachable with the configured key.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.ListModels(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Narrate generates a narrative via the Chat Completions API.
func (p *OpenAIProvider) Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Picture, req.CaseContext, req.AllowedIDs)
	}

	modelName := req.Model
	if modelName == "" {
		modelName = p.cfg.Model
	}
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.cfg.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You narrate assembled evidence pictures with strict adherence to grounding constraints.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	narrative := strings.TrimSpace(resp.Choices[0].Message.Content)
	citedIDs := extractIDs(narrative)

	for _, id := range citedIDs {
		if !containsString(req.AllowedIDs, id) {
			return nil, fmt.Errorf("grounding violation: narrative cited unknown identifier %s", id)
		}
	}

	return &NarrateResponse{
		Narrative:  narrative,
		CitedIDs:   citedIDs,
		Model:      modelName,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

var idPattern = regexp.MustCompile(`\b(?:comp|frag)_[A-Za-z0-9-]+\b`)

// extractIDs collects the component and fragment identifiers a
// narrative references.
func extractIDs(text string) []string {
	matches := idPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, id := range matches {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
