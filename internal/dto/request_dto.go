package dto

type OpenSessionRequest struct {
	AssessmentID uint `json:"assessment_id" binding:"required"`
}

type CreateSectionRequest struct {
	ParentRef string `json:"parent_ref,omitempty"`
	Label     string `json:"label" binding:"required"`
}

type UpdateSectionRequest struct {
	Label *string `json:"label,omitempty"`
}

type CreateQuestionRequest struct {
	SectionRef string `json:"section_ref" binding:"required"`
	Label      string `json:"label" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Required   bool   `json:"required"`
	Tooltip    string `json:"tooltip,omitempty"`
	Voice      string `json:"voice,omitempty"`
}

type UpdateQuestionRequest struct {
	Label    *string `json:"label,omitempty"`
	Required *bool   `json:"required,omitempty"`
	Tooltip  *string `json:"tooltip,omitempty"`
	Voice    *string `json:"voice,omitempty"`
}

type CreateAnswerRequest struct {
	QuestionRef        string `json:"question_ref" binding:"required"`
	Label              string `json:"label" binding:"required"`
	SecondaryInputType string `json:"secondary_input_type,omitempty"`
	MutuallyExclusive  bool   `json:"mutually_exclusive"`
	Tooltip            string `json:"tooltip,omitempty"`
}

type UpdateAnswerRequest struct {
	Label              *string `json:"label,omitempty"`
	SecondaryInputType *string `json:"secondary_input_type,omitempty"`
	MutuallyExclusive  *bool   `json:"mutually_exclusive,omitempty"`
	Tooltip            *string `json:"tooltip,omitempty"`
}

type MoveQuestionRequest struct {
	TargetSectionRef string `json:"target_section_ref" binding:"required"`
}

// ReorderRequest carries the full new ordering of one sibling group. Kind is
// section, question or answer; ParentRef scopes the group (empty for
// top-level sections, the question ref for answers).
type ReorderRequest struct {
	Kind        string   `json:"kind" binding:"required"`
	ParentRef   string   `json:"parent_ref,omitempty"`
	OrderedRefs []string `json:"ordered_refs" binding:"required"`
}

type RelationshipRequest struct {
	Type     string `json:"type" binding:"required"`
	TargetID uint   `json:"target_id" binding:"required"`
}

type LoadGoalsRequest struct {
	ProblemID uint `json:"problem_id" binding:"required"`
}

type LoadInterventionsRequest struct {
	ProblemID uint `json:"problem_id" binding:"required"`
	GoalID    uint `json:"goal_id" binding:"required"`
}

type ToggleRequest struct {
	ProblemID uint  `json:"problem_id" binding:"required"`
	GoalID    *uint `json:"goal_id,omitempty"`
}

type SearchRequest struct {
	Slot    string `json:"slot" binding:"required"`
	Type    string `json:"type" binding:"required"`
	ScopeID uint   `json:"scope_id,omitempty"`
	Text    string `json:"text"`
}

type ActivateModelRequest struct {
	ModelID uint `json:"model_id" binding:"required"`
}

type SetScoreRequest struct {
	Value string `json:"value" binding:"required"`
}

type ScoringModelRequest struct {
	Label       string `json:"label" binding:"required"`
	ScoringType string `json:"scoring_type" binding:"required"`
}
