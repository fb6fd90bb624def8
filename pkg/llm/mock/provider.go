package mock

import (
	"context"
	"strings"
	"sync"

	"bible-study-be/pkg/llm"
)

// CannedResponse is a valid exploration document used when no model is
// reachable during local development.
const CannedResponse = `{
  "explanation": "Respuesta de desarrollo generada sin conexión al modelo. El texto consultado se explora aquí con fines de prueba.",
  "key_verses": [
    {"reference": "Salmo 23:1", "text": "Jehová es mi pastor; nada me faltará."}
  ],
  "related_verses": [
    {"reference": "Juan 10:11", "text": "Yo soy el buen pastor; el buen pastor su vida da por las ovejas."}
  ],
  "further_study_topics": [
    {"topic": "El Buen Pastor", "description": "La imagen del pastor a lo largo de las Escrituras."}
  ]
}`

// MockProvider records every request and answers with a fixed text or error.
type MockProvider struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.StructuredRequest
}

var _ llm.StructuredGenerator = &MockProvider{}

func NewMockProvider() *MockProvider {
	return &MockProvider{response: CannedResponse}
}

func NewMockProviderWith(response string, err error) *MockProvider {
	return &MockProvider{response: response, err: err}
}

func (m *MockProvider) GenerateStructured(ctx context.Context, req llm.StructuredRequest, opts ...llm.Option) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	return strings.TrimSpace(m.response), nil
}

func (m *MockProvider) Requests() []llm.StructuredRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]llm.StructuredRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
