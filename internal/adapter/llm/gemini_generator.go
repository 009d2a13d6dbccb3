package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdf-quiz/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator implements domain.TextGenerator with the Gemini SDK.
type GeminiGenerator struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiGenerator creates a Gemini client authenticated with apiKey.
// Close must be called to release the client.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string, temperature float64) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
	}, nil
}

// Generate implements domain.TextGenerator
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("Gemini call failed: %w", err)
	}
	return responseText(resp)
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("Gemini returned no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("Gemini returned an empty candidate (finish reason %s)", cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

var _ domain.TextGenerator = (*GeminiGenerator)(nil)
