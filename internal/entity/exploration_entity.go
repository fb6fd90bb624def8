package entity

// ExplorationResult is the structured answer to one query. Every field is
// mandatory; an empty array is valid, a missing or null one is not.
type ExplorationResult struct {
	Explanation        string  `json:"explanation" validate:"required"`
	KeyVerses          []Verse `json:"key_verses" validate:"required,dive"`
	RelatedVerses      []Verse `json:"related_verses" validate:"required,dive"`
	FurtherStudyTopics []Topic `json:"further_study_topics" validate:"required,dive"`
}

type Verse struct {
	Reference string `json:"reference" validate:"required"`
	Text      string `json:"text" validate:"required"`
}

type Topic struct {
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description" validate:"required"`
}
