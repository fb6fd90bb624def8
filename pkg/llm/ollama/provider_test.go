package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bible-study-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStructuredSendsSchemaAsFormat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: ollamaMessage{Role: "assistant", Content: `{"ok":"yes"}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	text, err := p.GenerateStructured(context.Background(), llm.StructuredRequest{
		SystemInstruction: "system",
		UserContent:       "user",
		Temperature:       0.5,
		TopP:              0.95,
		Schema: &llm.Schema{
			Type:       llm.TypeObject,
			Required:   []string{"ok"},
			Properties: map[string]*llm.Schema{"ok": {Type: llm.TypeString}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"ok":"yes"}`, text)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
	assert.Equal(t, "object", got.Format["type"])
	assert.InDelta(t, 0.95, got.Options.TopP, 1e-9)
}

func TestGenerateStructuredStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	_, err := p.GenerateStructured(context.Background(), llm.StructuredRequest{UserContent: "x"})

	assert.ErrorContains(t, err, "status 404")
}
