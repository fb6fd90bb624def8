package gemini

import (
	"context"
	"errors"
	"testing"

	"bible-study-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	calls    int

	response *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.response, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

func testRequest() llm.StructuredRequest {
	return llm.StructuredRequest{
		SystemInstruction: "system",
		UserContent:       "explora: \"Salmo 23\"",
		ResponseMIMEType:  "application/json",
		Temperature:       0.5,
		TopP:              0.95,
		Schema: &llm.Schema{
			Type:     llm.TypeObject,
			Required: []string{"items"},
			Properties: map[string]*llm.Schema{
				"items": {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
			},
		},
	}
}

func TestGenerateStructuredMapsRequest(t *testing.T) {
	fake := &fakeModels{response: textResponse(`{"items":[]}`)}
	p := &GeminiProvider{models: fake, modelName: DefaultModel}

	text, err := p.GenerateStructured(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, `{"items":[]}`, text)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, DefaultModel, fake.model)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "explora: \"Salmo 23\"", fake.contents[0].Parts[0].Text)

	cfg := fake.config
	require.NotNil(t, cfg)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-6)
	assert.InDelta(t, 0.95, *cfg.TopP, 1e-6)
	assert.Equal(t, "system", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
	assert.Equal(t, []string{"items"}, cfg.ResponseSchema.Required)
	assert.Equal(t, genai.TypeArray, cfg.ResponseSchema.Properties["items"].Type)
	assert.Equal(t, genai.TypeString, cfg.ResponseSchema.Properties["items"].Items.Type)
}

func TestGenerateStructuredModelOverride(t *testing.T) {
	fake := &fakeModels{response: textResponse("{}")}
	p := &GeminiProvider{models: fake, modelName: DefaultModel}

	_, err := p.GenerateStructured(context.Background(), testRequest(), llm.WithModel("gemini-2.5-flash"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", fake.model)
}

func TestGenerateStructuredErrors(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		p := &GeminiProvider{models: &fakeModels{err: errors.New("quota exceeded")}, modelName: DefaultModel}
		_, err := p.GenerateStructured(context.Background(), testRequest())
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("empty text", func(t *testing.T) {
		p := &GeminiProvider{models: &fakeModels{response: &genai.GenerateContentResponse{}}, modelName: DefaultModel}
		_, err := p.GenerateStructured(context.Background(), testRequest())
		assert.ErrorContains(t, err, "empty text")
	})
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "")
	assert.Error(t, err)
}
