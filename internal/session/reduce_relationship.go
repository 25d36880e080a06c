package session

import (
	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/model"
)

func (s *State) relationshipSet(answerRef string) *RelationshipSet {
	set, ok := s.Relationships[answerRef]
	if !ok {
		set = &RelationshipSet{State: LoadUnloaded}
		s.Relationships[answerRef] = set
	}
	return set
}

func (s *State) applyLoadRelationships(a LoadRelationships) []Effect {
	if !s.Persisted(a.AnswerRef) {
		// An unsaved answer has no server-side links yet.
		return nil
	}
	set := s.relationshipSet(a.AnswerRef)
	if set.State == LoadLoading {
		return nil
	}
	set.State = LoadLoading
	return []Effect{LoadRelationshipsEffect{
		AnswerRef: a.AnswerRef,
		AnswerID:  s.IDOf(a.AnswerRef),
	}}
}

func (s *State) applyRelationshipsLoaded(a RelationshipsLoaded) {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok || set.State != LoadLoading {
		return
	}
	if a.Err != nil {
		set.State = LoadUnloaded
		s.pushMessage(SeverityError, "could not load relationships: "+a.Err.Error(), "relationships")
		return
	}
	set.fromBundle(a.Bundle)
}

func (s *State) applyLoadGoals(a LoadGoals) []Effect {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok {
		return nil
	}
	problem := set.problem(a.ProblemID)
	if problem == nil || problem.GoalsState == LoadLoading {
		return nil
	}
	problem.GoalsState = LoadLoading
	return []Effect{LoadGoalsEffect{AnswerRef: a.AnswerRef, ProblemID: a.ProblemID}}
}

func (s *State) applyGoalsLoaded(a GoalsLoaded) {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok {
		return
	}
	problem := set.problem(a.ProblemID)
	if problem == nil || problem.GoalsState != LoadLoading {
		return
	}
	if a.Err != nil {
		problem.GoalsState = LoadUnloaded
		s.pushMessage(SeverityError, "could not load goals: "+a.Err.Error(), "relationships")
		return
	}
	problem.Goals = problem.Goals[:0]
	for _, g := range a.Goals {
		problem.Goals = append(problem.Goals, GoalEntry{
			ID:                 g.ID,
			Label:              g.Label,
			Tooltip:            g.Tooltip,
			AlternativeWording: g.AlternativeWording,
			InterventionsState: LoadUnloaded,
		})
	}
	if len(problem.Goals) == 0 {
		problem.GoalsState = LoadEmpty
	} else {
		problem.GoalsState = LoadLoaded
	}
}

func (s *State) applyLoadInterventions(a LoadInterventions) []Effect {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok {
		return nil
	}
	goal := set.goal(a.ProblemID, a.GoalID)
	if goal == nil || goal.InterventionsState == LoadLoading {
		return nil
	}
	goal.InterventionsState = LoadLoading
	return []Effect{LoadInterventionsEffect{
		AnswerRef: a.AnswerRef,
		ProblemID: a.ProblemID,
		GoalID:    a.GoalID,
	}}
}

func (s *State) applyInterventionsLoaded(a InterventionsLoaded) {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok {
		return
	}
	goal := set.goal(a.ProblemID, a.GoalID)
	if goal == nil || goal.InterventionsState != LoadLoading {
		return
	}
	if a.Err != nil {
		goal.InterventionsState = LoadUnloaded
		s.pushMessage(SeverityError, "could not load interventions: "+a.Err.Error(), "relationships")
		return
	}
	goal.Interventions = goal.Interventions[:0]
	for _, record := range a.Interventions {
		goal.Interventions = append(goal.Interventions, InterventionEntry{
			ID:                 record.ID,
			Label:              record.Label,
			Tooltip:            record.Tooltip,
			AlternativeWording: record.AlternativeWording,
		})
	}
	if len(goal.Interventions) == 0 {
		goal.InterventionsState = LoadEmpty
	} else {
		goal.InterventionsState = LoadLoaded
	}
}

// Collapsing keeps fetched data; re-expanding shows it without a refetch.

func (s *State) applyToggleProblem(a ToggleProblem) {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok {
		return
	}
	if problem := set.problem(a.ProblemID); problem != nil {
		problem.Expanded = !problem.Expanded
	}
}

func (s *State) applyToggleGoal(a ToggleGoal) {
	set, ok := s.Relationships[a.AnswerRef]
	if !ok {
		return
	}
	if goal := set.goal(a.ProblemID, a.GoalID); goal != nil {
		goal.Expanded = !goal.Expanded
	}
}

// Adding a link is allowed even on a published assessment; link additions do
// not alter published content, only enrich it.
func (s *State) applyAddLink(a AddLink) []Effect {
	if !s.Persisted(a.AnswerRef) {
		s.pushMessage(SeverityError, "save the answer before linking to it", "validate")
		return nil
	}
	if a.Type == model.RelTriggeredQuestion {
		if err := s.validateTriggerTarget(a.AnswerRef, a.TargetID); err != nil {
			s.pushMessage(SeverityError, err.Reason, "validate")
			return nil
		}
	}
	return []Effect{MutateLinkEffect{
		AnswerRef: a.AnswerRef,
		Req: contentapi.RelationshipChange{
			AnswerID: s.IDOf(a.AnswerRef),
			Type:     string(a.Type),
			TargetID: a.TargetID,
		},
	}}
}

// validateTriggerTarget enforces forward-only triggering: a triggered
// question must sit after the question owning the triggering answer, so a
// trigger can never point backwards in presentation order.
func (s *State) validateTriggerTarget(answerRef string, targetID uint) *ValidationError {
	answer, ok := s.Answers[answerRef]
	if !ok {
		return validationf("unknown answer")
	}
	source, ok := s.Questions[answer.QuestionRef]
	if !ok {
		return validationf("answer has no question")
	}
	targetRef := s.QuestionRefByID(targetID)
	if targetRef == "" {
		// Cross-assessment targets are not ordered against this tree.
		return nil
	}
	target := s.Questions[targetRef]
	if targetRef == answer.QuestionRef {
		return validationf("a question cannot trigger itself")
	}
	if target.SectionRef == source.SectionRef && target.SortOrder <= source.SortOrder {
		return validationf("a triggered question must come after the question that triggers it")
	}
	return nil
}

func (s *State) applyRemoveLink(a RemoveLink) []Effect {
	if !s.editable() {
		return nil
	}
	if !s.Persisted(a.AnswerRef) {
		return nil
	}
	return []Effect{MutateLinkEffect{
		AnswerRef: a.AnswerRef,
		Remove:    true,
		Req: contentapi.RelationshipChange{
			AnswerID: s.IDOf(a.AnswerRef),
			Type:     string(a.Type),
			TargetID: a.TargetID,
		},
	}}
}

// applyLinkMutated always refetches the whole bundle after a successful
// mutation rather than patching locally, so badge counts and ordering stay
// server-authoritative.
func (s *State) applyLinkMutated(a LinkMutated) []Effect {
	if a.Err != nil {
		verb := "add"
		if a.Remove {
			verb = "remove"
		}
		s.pushMessage(SeverityError, "could not "+verb+" relationship: "+a.Err.Error(), "relationships")
		return nil
	}
	set := s.relationshipSet(a.AnswerRef)
	set.State = LoadLoading
	return []Effect{LoadRelationshipsEffect{
		AnswerRef: a.AnswerRef,
		AnswerID:  s.IDOf(a.AnswerRef),
	}}
}
