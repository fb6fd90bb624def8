package mapper

import (
	"bible-study-be/internal/constant"
	"bible-study-be/internal/dto"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/service"
	"bible-study-be/pkg/markdown"
	"bible-study-be/pkg/suggestion"
)

type ViewMapper struct {
	catalog *suggestion.Catalog
	logger  logger.ILogger
}

func NewViewMapper(catalog *suggestion.Catalog, log logger.ILogger) *ViewMapper {
	return &ViewMapper{catalog: catalog, logger: log}
}

// ToResponse renders one shell snapshot. Every Idle render is a fresh
// mount of the welcome view and draws new suggestions.
func (m *ViewMapper) ToResponse(v service.View) dto.ViewResponse {
	res := dto.ViewResponse{
		State:         string(v.State),
		Query:         v.Query,
		Error:         v.Error,
		Result:        m.ToExploration(v.Result),
		Session:       ToSession(v.Session),
		SubmitEnabled: v.State.SignedIn() && v.State != service.StateLoading,
		SignInEnabled: v.State == service.StateSignedOut,
		Footer:        constant.MessageFooterNotice,
	}
	if v.State == service.StateIdle {
		res.Suggestions = m.catalog.Pick(suggestion.DefaultPickSize)
	}
	return res
}

func (m *ViewMapper) ToExploration(r *entity.ExplorationResult) *dto.ExplorationResponse {
	if r == nil {
		return nil
	}

	html, err := markdown.ToHTML(r.Explanation)
	if err != nil {
		m.logger.Warn("ViewMapper", "Failed to render explanation", map[string]interface{}{"error": err})
	}

	res := &dto.ExplorationResponse{
		Explanation:        r.Explanation,
		ExplanationHTML:    html,
		KeyVerses:          toVerses(r.KeyVerses),
		RelatedVerses:      toVerses(r.RelatedVerses),
		FurtherStudyTopics: make([]dto.TopicResponse, 0, len(r.FurtherStudyTopics)),
	}
	for _, t := range r.FurtherStudyTopics {
		res.FurtherStudyTopics = append(res.FurtherStudyTopics, dto.TopicResponse{
			Topic:       t.Topic,
			Description: t.Description,
		})
	}
	return res
}

func ToSession(s *entity.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		Uid:         s.Uid,
		DisplayName: s.DisplayName,
		Email:       s.Email,
		PhotoURL:    s.PhotoURL,
	}
}

func toVerses(verses []entity.Verse) []dto.VerseResponse {
	out := make([]dto.VerseResponse, 0, len(verses))
	for _, v := range verses {
		out = append(out, dto.VerseResponse{Reference: v.Reference, Text: v.Text})
	}
	return out
}
