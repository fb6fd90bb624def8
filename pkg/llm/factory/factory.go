package factory

import (
	"bible-study-be/pkg/llm"
	"bible-study-be/pkg/llm/gemini"
	"bible-study-be/pkg/llm/mock"
	"bible-study-be/pkg/llm/ollama"
	"context"
	"fmt"
)

func NewStructuredGenerator(ctx context.Context, providerType, modelName, apiKey, baseURL string) (llm.StructuredGenerator, error) {
	switch providerType {
	case "gemini", "":
		return gemini.NewGeminiProvider(ctx, apiKey, modelName)
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "mock":
		return mock.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
