// FILE: internal/dto/exploration_dto.go
package dto

// ExploreRequest carries the raw query. Only a missing field is rejected
// here; blank text is the shell's validation error.
type ExploreRequest struct {
	Query *string `json:"query" validate:"required"`
}

type VerseResponse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

type TopicResponse struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type ExplorationResponse struct {
	Explanation        string          `json:"explanation"`
	ExplanationHTML    string          `json:"explanation_html"`
	KeyVerses          []VerseResponse `json:"key_verses"`
	RelatedVerses      []VerseResponse `json:"related_verses"`
	FurtherStudyTopics []TopicResponse `json:"further_study_topics"`
}

// ViewResponse is the whole shell as one screen: state, content and which
// controls are live.
type ViewResponse struct {
	State         string               `json:"state"`
	Query         string               `json:"query"`
	Error         string               `json:"error,omitempty"`
	Result        *ExplorationResponse `json:"result"`
	Session       *SessionResponse     `json:"session"`
	SubmitEnabled bool                 `json:"submit_enabled"`
	SignInEnabled bool                 `json:"sign_in_enabled"`
	Suggestions   []string             `json:"suggestions,omitempty"`
	Footer        string               `json:"footer"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
