package factory

import (
	"context"
	"testing"

	"bible-study-be/pkg/llm/mock"
	"bible-study-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructuredGenerator(t *testing.T) {
	g, err := NewStructuredGenerator(context.Background(), "mock", "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &mock.MockProvider{}, g)

	g, err = NewStructuredGenerator(context.Background(), "ollama", "llama3", "", "")
	require.NoError(t, err)
	require.IsType(t, &ollama.OllamaProvider{}, g)
	assert.Equal(t, "http://localhost:11434", g.(*ollama.OllamaProvider).BaseURL)

	_, err = NewStructuredGenerator(context.Background(), "gemini", "", "", "")
	assert.Error(t, err)

	_, err = NewStructuredGenerator(context.Background(), "openai", "", "", "")
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
