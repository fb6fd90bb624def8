package gemini

import (
	"context"
	"errors"
	"fmt"

	"bible-study-be/pkg/llm"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-pro"

// modelsAPI is the slice of *genai.Models the provider calls.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiProvider struct {
	models    modelsAPI
	modelName string
}

// Ensure GeminiProvider implements StructuredGenerator
var _ llm.StructuredGenerator = &GeminiProvider{}

// NewGeminiProvider creates a structured generator on the Gemini Developer API.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}

	return &GeminiProvider{
		models:    client.Models,
		modelName: modelName,
	}, nil
}

func (g *GeminiProvider) GenerateStructured(ctx context.Context, req llm.StructuredRequest, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)
	model := g.modelName
	if options.Model != "" {
		model = options.Model
	}

	res, err := g.models.GenerateContent(ctx, model, genai.Text(req.UserContent), buildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	return text, nil
}

func buildConfig(req llm.StructuredRequest) *genai.GenerateContentConfig {
	temp := float32(req.Temperature)
	topP := float32(req.TopP)

	cfg := &genai.GenerateContentConfig{
		Temperature:      &temp,
		TopP:             &topP,
		ResponseMIMEType: req.ResponseMIMEType,
		ResponseSchema:   toGenaiSchema(req.Schema),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return cfg
}

func toGenaiSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             toGenaiType(s.Type),
		Description:      s.Description,
		PropertyOrdering: s.PropertyOrdering,
		Items:            toGenaiSchema(s.Items),
		Required:         s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(t llm.SchemaType) genai.Type {
	switch t {
	case llm.TypeObject:
		return genai.TypeObject
	case llm.TypeArray:
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}
