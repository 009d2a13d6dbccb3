package llm

import (
	"context"
	"fmt"
	"net/http"

	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

var defaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"ollama":    "llama3.2",
	"anthropic": "claude-3-5-haiku-latest",
	"gemini":    "gemini-2.0-flash",
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// NewTextGenerator builds the generator for the configured provider.
// The returned close function releases provider resources and is never nil.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, func() error, error) {
	noop := func() error { return nil }

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel(cfg.Provider)
	}
	// zero timeout leaves the transport defaults in place
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case "openai":
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(modelName),
			openai.WithHTTPClient(httpClient),
		)
	case "ollama":
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(modelName),
			ollama.WithHTTPClient(httpClient),
		)
	case "anthropic":
		model, err = anthropic.New(
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(modelName),
			anthropic.WithHTTPClient(httpClient),
		)
	case "gemini":
		gen, gerr := NewGeminiGenerator(ctx, cfg.APIKey, modelName, cfg.Temperature)
		if gerr != nil {
			return nil, noop, gerr
		}
		return gen, gen.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create %s LLM client: %w", cfg.Provider, err)
	}
	return NewLangchainGenerator(model, cfg.Temperature), noop, nil
}
