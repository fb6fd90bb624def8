package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/pkg/events"
	"bible-study-be/pkg/llm"

	"github.com/go-playground/validator/v10"
)

const explorationModule = "ExplorationService"

var ErrExplorationFailed = errors.New(constant.MessageExplorationFailed)

// IExplorationService turns one query into one structured result. The query
// is embedded as given; rejecting blank text is the caller's job.
type IExplorationService interface {
	Explore(ctx context.Context, query string) (*entity.ExplorationResult, error)
}

type explorationService struct {
	generator llm.StructuredGenerator
	validate  *validator.Validate
	logger    logger.ILogger
	publisher events.Publisher
}

// NewExplorationService builds the client. publisher may be nil.
func NewExplorationService(generator llm.StructuredGenerator, log logger.ILogger, publisher events.Publisher) IExplorationService {
	return &explorationService{
		generator: generator,
		validate:  validator.New(),
		logger:    log,
		publisher: publisher,
	}
}

func (s *explorationService) Explore(ctx context.Context, query string) (*entity.ExplorationResult, error) {
	start := time.Now()
	req := BuildExplorationRequest(query)

	s.logger.Info(explorationModule, "Sending exploration request", map[string]interface{}{"query": query})

	raw, err := s.generator.GenerateStructured(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, query, "Generator call failed", err)
	}

	result, err := s.decode(raw)
	if err != nil {
		return nil, s.fail(ctx, query, "Rejected generator response", err)
	}

	s.logger.Info(explorationModule, "Exploration completed", map[string]interface{}{
		"query":          query,
		"key_verses":     len(result.KeyVerses),
		"related_verses": len(result.RelatedVerses),
		"topics":         len(result.FurtherStudyTopics),
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	s.publish(ctx, events.New(events.TypeExplorationCompleted, map[string]interface{}{"query": query}))

	return result, nil
}

// BuildExplorationRequest assembles the fixed request around the literal query.
func BuildExplorationRequest(query string) llm.StructuredRequest {
	return llm.StructuredRequest{
		SystemInstruction: constant.ExplorationSystemInstruction,
		UserContent:       fmt.Sprintf(constant.ExplorationUserPromptTemplate, query),
		Schema:            ExplorationSchema(),
		ResponseMIMEType:  constant.ExplorationResponseMIMEType,
		Temperature:       constant.ExplorationTemperature,
		TopP:              constant.ExplorationTopP,
	}
}

// ExplorationSchema is the output schema every response must satisfy.
func ExplorationSchema() *llm.Schema {
	verse := func(referenceDescription string) *llm.Schema {
		return &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"reference": {Type: llm.TypeString, Description: referenceDescription},
				"text":      {Type: llm.TypeString, Description: constant.SchemaVerseTextDescription},
			},
			PropertyOrdering: []string{"reference", "text"},
			Required:         []string{"reference", "text"},
		}
	}

	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"explanation": {
				Type:        llm.TypeString,
				Description: constant.SchemaExplanationDescription,
			},
			"key_verses": {
				Type:        llm.TypeArray,
				Description: constant.SchemaKeyVersesDescription,
				Items:       verse(constant.SchemaKeyVerseReferenceDescription),
			},
			"related_verses": {
				Type:        llm.TypeArray,
				Description: constant.SchemaRelatedVersesDescription,
				Items:       verse(constant.SchemaRelatedReferenceDescription),
			},
			"further_study_topics": {
				Type:        llm.TypeArray,
				Description: constant.SchemaFurtherStudyDescription,
				Items: &llm.Schema{
					Type: llm.TypeObject,
					Properties: map[string]*llm.Schema{
						"topic":       {Type: llm.TypeString, Description: constant.SchemaTopicNameDescription},
						"description": {Type: llm.TypeString, Description: constant.SchemaTopicDescriptionDescription},
					},
					PropertyOrdering: []string{"topic", "description"},
					Required:         []string{"topic", "description"},
				},
			},
		},
		PropertyOrdering: []string{"explanation", "key_verses", "related_verses", "further_study_topics"},
		Required:         []string{"explanation", "key_verses", "related_verses", "further_study_topics"},
	}
}

// decode accepts exactly one JSON document of the result shape.
func (s *explorationService) decode(raw string) (*entity.ExplorationResult, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(raw))))
	dec.DisallowUnknownFields()

	var result entity.ExplorationResult
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parse response: trailing content after JSON document")
	}
	if err := s.validate.Struct(result); err != nil {
		return nil, fmt.Errorf("validate response: %w", err)
	}
	return &result, nil
}

func (s *explorationService) fail(ctx context.Context, query, message string, cause error) error {
	s.logger.Error(explorationModule, message, map[string]interface{}{"query": query, "error": cause})
	s.publish(ctx, events.New(events.TypeExplorationFailed, map[string]interface{}{"query": query}))
	return ErrExplorationFailed
}

func (s *explorationService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(explorationModule, "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err})
	}
}
