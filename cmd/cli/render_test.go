package main

import (
	"bytes"
	"testing"
	"time"

	"bible-study-be/internal/entity"
	"bible-study-be/internal/service"
	"bible-study-be/pkg/auth"
	"bible-study-be/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestRenderView(t *testing.T) {
	tests := []struct {
		name     string
		view     service.View
		contains []string
	}{
		{
			name: "showing",
			view: service.View{
				State: service.StateShowing,
				Query: "Salmo 23",
				Result: &entity.ExplorationResult{
					Explanation:        "Dios como pastor.",
					KeyVerses:          []entity.Verse{{Reference: "Salmo 23:1", Text: "Jehová es mi pastor."}},
					RelatedVerses:      []entity.Verse{},
					FurtherStudyTopics: []entity.Topic{{Topic: "El Buen Pastor", Description: "Juan 10."}},
				},
			},
			contains: []string{"Salmo 23\n", "Dios como pastor.", "Versículos Clave", "Salmo 23:1", "“Jehová es mi pastor.”", "• El Buen Pastor", "Potenciado por IA"},
		},
		{
			name:     "error",
			view:     service.View{State: service.StateError, Error: "Por favor, introduce un término de búsqueda."},
			contains: []string{"Error\n", "Por favor, introduce un término de búsqueda."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderView(&buf, tt.view)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRenderView_SkipsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	renderView(&buf, service.View{
		State:  service.StateShowing,
		Query:  "x",
		Result: &entity.ExplorationResult{Explanation: "y", KeyVerses: []entity.Verse{}, RelatedVerses: []entity.Verse{}, FurtherStudyTopics: []entity.Topic{}},
	})

	assert.NotContains(t, buf.String(), "Versículos Relacionados")
	assert.NotContains(t, buf.String(), "Temas para Estudio Adicional")
}

func TestRenderSession(t *testing.T) {
	var buf bytes.Buffer
	renderSession(&buf, auth.TestSession())
	assert.Equal(t, "Sesión: Usuario de Prueba <test@example.com>\n", buf.String())

	buf.Reset()
	renderSession(&buf, nil)
	assert.Equal(t, "Sin sesión iniciada.\n", buf.String())
}

func TestRenderEvent(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	renderEvent(&buf, events.BaseEvent{Type: events.TypeSessionSignedIn, Data: map[string]interface{}{"uid": "12345abcde"}, OccurredAt: at})

	assert.Equal(t, "2026-01-02T03:04:05Z session.signed_in uid=12345abcde\n", buf.String())
}
