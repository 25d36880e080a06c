package dto

import "time"

type AnswerView struct {
	Ref                string `json:"ref"`
	ID                 uint   `json:"id,omitempty"`
	Label              string `json:"label"`
	SortOrder          int    `json:"sort_order"`
	SecondaryInputType string `json:"secondary_input_type,omitempty"`
	MutuallyExclusive  bool   `json:"mutually_exclusive"`
	Tooltip            string `json:"tooltip,omitempty"`
	LibraryID          uint   `json:"library_id,omitempty"`
	IsUnsaved          bool   `json:"is_unsaved"`
	IsDeleted          bool   `json:"is_deleted"`
}

type QuestionView struct {
	Ref       string       `json:"ref"`
	ID        uint         `json:"id,omitempty"`
	Label     string       `json:"label"`
	Type      string       `json:"type"`
	Required  bool         `json:"required"`
	Tooltip   string       `json:"tooltip,omitempty"`
	Voice     string       `json:"voice,omitempty"`
	SortOrder int          `json:"sort_order"`
	LibraryID uint         `json:"library_id,omitempty"`
	IsUnsaved bool         `json:"is_unsaved"`
	IsDeleted bool         `json:"is_deleted"`
	Answers   []AnswerView `json:"answers,omitempty"`
}

type SectionView struct {
	Ref         string         `json:"ref"`
	ID          uint           `json:"id,omitempty"`
	Label       string         `json:"label"`
	SortOrder   int            `json:"sort_order"`
	LibraryID   uint           `json:"library_id,omitempty"`
	IsUnsaved   bool           `json:"is_unsaved"`
	IsDeleted   bool           `json:"is_deleted"`
	Subsections []SectionView  `json:"subsections,omitempty"`
	Questions   []QuestionView `json:"questions,omitempty"`
}

type MessageView struct {
	Time     time.Time `json:"time"`
	Severity string    `json:"severity"`
	Text     string    `json:"text"`
	Stage    string    `json:"stage,omitempty"`
}

// SessionResponse is the full session snapshot the UI renders from. Every
// mutating endpoint returns it, so the caller never has to refetch.
type SessionResponse struct {
	SessionID    string        `json:"session_id"`
	AssessmentID uint          `json:"assessment_id"`
	Title        string        `json:"title"`
	Status       string        `json:"status"`
	Sections     []SectionView `json:"sections"`
	HasPending   bool          `json:"has_pending"`
	Messages     []MessageView `json:"messages,omitempty"`
	// Ref is set by creation endpoints to the new entity's local ref.
	Ref string `json:"ref,omitempty"`
}

type CandidateView struct {
	ID         uint   `json:"id"`
	Label      string `json:"label"`
	ExactMatch bool   `json:"exact_match"`
	MasterID   uint   `json:"master_id,omitempty"`
}

type SearchResponse struct {
	Slot       string          `json:"slot"`
	Candidates []CandidateView `json:"candidates"`
}

type RelationshipSummaryView struct {
	Guidelines         int `json:"guidelines"`
	TriggeredQuestions int `json:"triggered_questions"`
	Problems           int `json:"problems"`
	Barriers           int `json:"barriers"`
}

type GuidelineView struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

type TriggeredQuestionView struct {
	ID        uint   `json:"id"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

type BarrierView struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type InterventionView struct {
	ID                 uint   `json:"id"`
	Label              string `json:"label"`
	Tooltip            string `json:"tooltip,omitempty"`
	AlternativeWording string `json:"alternative_wording,omitempty"`
}

type GoalView struct {
	ID                 uint               `json:"id"`
	Label              string             `json:"label"`
	Tooltip            string             `json:"tooltip,omitempty"`
	AlternativeWording string             `json:"alternative_wording,omitempty"`
	Expanded           bool               `json:"expanded"`
	InterventionsState string             `json:"interventions_state"`
	Interventions      []InterventionView `json:"interventions,omitempty"`
}

type ProblemView struct {
	ID                 uint       `json:"id"`
	Label              string     `json:"label"`
	Tooltip            string     `json:"tooltip,omitempty"`
	AlternativeWording string     `json:"alternative_wording,omitempty"`
	Expanded           bool       `json:"expanded"`
	GoalsState         string     `json:"goals_state"`
	Goals              []GoalView `json:"goals,omitempty"`
}

type RelationshipResponse struct {
	AnswerRef          string                  `json:"answer_ref"`
	State              string                  `json:"state"`
	Summary            RelationshipSummaryView `json:"summary"`
	Guidelines         []GuidelineView         `json:"guidelines,omitempty"`
	TriggeredQuestions []TriggeredQuestionView `json:"triggered_questions,omitempty"`
	Problems           []ProblemView           `json:"problems,omitempty"`
	Barriers           []BarrierView           `json:"barriers,omitempty"`
}

type ScoringModelResponse struct {
	ID          uint   `json:"id"`
	Label       string `json:"label"`
	ScoringType string `json:"scoring_type"`
}

type ScoreView struct {
	AnswerRef string `json:"answer_ref"`
	ModelID   uint   `json:"model_id"`
	Value     string `json:"value"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
