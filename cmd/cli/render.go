package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/service"
	"bible-study-be/pkg/events"

	"github.com/fatih/color"
)

// errExplorationShown signals a non-zero exit once the error view is printed.
var errExplorationShown = errors.New("exploration failed")

var (
	headingColor = color.New(color.FgYellow, color.Bold)
	verseColor   = color.New(color.FgCyan, color.Bold)
	topicColor   = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.Faint)
)

func renderView(w io.Writer, v service.View) {
	switch v.State {
	case service.StateError:
		errorColor.Fprintln(w, "Error")
		fmt.Fprintln(w, v.Error)
	case service.StateShowing:
		renderResult(w, v.Query, v.Result)
	default:
		fmt.Fprintf(w, "Estado: %s\n", v.State)
	}
	fmt.Fprintln(w)
	mutedColor.Fprintln(w, constant.MessageFooterNotice)
}

func renderResult(w io.Writer, query string, r *entity.ExplorationResult) {
	headingColor.Fprintln(w, query)
	fmt.Fprintln(w, r.Explanation)

	if len(r.KeyVerses) > 0 {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Versículos Clave")
		renderVerses(w, r.KeyVerses)
	}
	if len(r.RelatedVerses) > 0 {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Versículos Relacionados")
		renderVerses(w, r.RelatedVerses)
	}
	if len(r.FurtherStudyTopics) > 0 {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Temas para Estudio Adicional")
		for _, t := range r.FurtherStudyTopics {
			topicColor.Fprintf(w, "• %s\n", t.Topic)
			fmt.Fprintf(w, "  %s\n", t.Description)
		}
	}
}

func renderVerses(w io.Writer, verses []entity.Verse) {
	for _, v := range verses {
		verseColor.Fprintln(w, v.Reference)
		fmt.Fprintf(w, "  “%s”\n", v.Text)
	}
}

func renderSession(w io.Writer, s *entity.Session) {
	if s == nil {
		fmt.Fprintln(w, "Sin sesión iniciada.")
		return
	}
	name := s.Uid
	if s.DisplayName != nil {
		name = *s.DisplayName
	}
	fmt.Fprintf(w, "Sesión: %s", name)
	if s.Email != nil {
		fmt.Fprintf(w, " <%s>", *s.Email)
	}
	fmt.Fprintln(w)
}

func renderSuggestions(w io.Writer, suggestions []string) {
	headingColor.Fprintln(w, "Sugerencias para comenzar")
	for i, s := range suggestions {
		fmt.Fprintf(w, "%d. %s\n", i+1, s)
	}
}

func renderEvent(w io.Writer, e events.Event) {
	payload := e.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, payload[k]))
	}
	mutedColor.Fprintf(w, "%s ", e.Timestamp().Format(time.RFC3339))
	headingColor.Fprintf(w, "%s", e.EventType())
	fmt.Fprintf(w, " %s\n", strings.Join(parts, " "))
}
