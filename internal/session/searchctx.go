package session

import "github.com/lumahealth/authoring/internal/library"

// SearchSlot names an interactive search field. Each slot owns an independent
// current-context record.
type SearchSlot string

const (
	SlotSectionName        SearchSlot = "section_name"
	SlotQuestionName       SearchSlot = "question_name"
	SlotAnswerName         SearchSlot = "answer_name"
	SlotRelationshipTarget SearchSlot = "relationship_target"
	SlotProblem            SearchSlot = "problem"
	SlotGoal               SearchSlot = "goal"
	SlotIntervention       SearchSlot = "intervention"
)

// SearchContext is the slot's current in-flight query. A response is applied
// only while the slot still holds the context that originated it; a cleared
// or replaced context makes the response a discard.
type SearchContext struct {
	Type    library.ContentType `json:"contentType"`
	ScopeID uint                `json:"scopeId,omitempty"`
	Text    string              `json:"searchText"`
}

// current reports whether ctx is still the slot's registered context.
func (s *State) currentSearch(slot SearchSlot, ctx SearchContext) bool {
	registered := s.Searches[slot]
	return registered != nil && *registered == ctx
}
