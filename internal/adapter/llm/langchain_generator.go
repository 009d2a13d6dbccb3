package llm

import (
	"context"
	"errors"
	"fmt"

	"pdf-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// LangchainGenerator implements domain.TextGenerator over any langchaingo chat model.
type LangchainGenerator struct {
	model       llms.Model
	temperature float64
}

// NewLangchainGenerator wraps a langchaingo model with a fixed sampling temperature.
func NewLangchainGenerator(model llms.Model, temperature float64) *LangchainGenerator {
	return &LangchainGenerator{model: model, temperature: temperature}
}

// Generate sends a system message and a human message and returns the first choice.
func (g *LangchainGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("LLM returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ domain.TextGenerator = (*LangchainGenerator)(nil)
