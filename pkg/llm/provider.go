package llm

import (
	"context"
)

// StructuredRequest is one provider-agnostic structured-output generation.
type StructuredRequest struct {
	SystemInstruction string
	UserContent       string
	Schema            *Schema
	ResponseMIMEType  string
	Temperature       float64
	TopP              float64
}

// Option allows for optional parameters like the model override.
type Option func(*Options)

type Options struct {
	Model string // Override default model
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func ApplyOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// StructuredGenerator defines the contract for any backend able to return a
// single JSON document conforming to a schema.
type StructuredGenerator interface {
	// GenerateStructured sends one request and returns the raw response text.
	GenerateStructured(ctx context.Context, req StructuredRequest, options ...Option) (string, error)
}
