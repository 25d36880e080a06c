package session

import (
	"errors"
	"testing"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/model"
)

// twoQuestionTree extends the basic fixture with a second persisted question
// so trigger ordering has something to point forwards at.
func twoQuestionTree() *contentapi.AssessmentTree {
	tree := testTree()
	walking := &tree.Sections[0].Subsections[0]
	walking.Questions = append(walking.Questions, contentapi.TreeQuestion{
		ID:        101,
		Label:     "Does the patient use a walking aid?",
		Type:      "single_select",
		SortOrder: 2,
		Answers: []contentapi.TreeAnswer{
			{ID: 1002, Label: "Yes", SortOrder: 1},
		},
	})
	return tree
}

func sampleBundle() *contentapi.RelationshipBundle {
	return &contentapi.RelationshipBundle{
		Guidelines: []contentapi.GuidelineRecord{{ID: 5, Label: "Fall prevention guideline"}},
		Problems: []contentapi.ProblemRecord{
			{ID: 70, Label: "Impaired mobility"},
			{ID: 71, Label: "Risk of falls"},
		},
	}
}

func TestLoadRelationshipsIsLazy(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, effects := Reduce(s, LoadRelationships{AnswerRef: yes})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	load := effects[0].(LoadRelationshipsEffect)
	if load.AnswerID != 1000 {
		t.Fatalf("load targets answer %d, want 1000", load.AnswerID)
	}
	if s.Relationships[yes].State != LoadLoading {
		t.Fatal("load should mark the set as loading")
	}

	// A second request while in flight is dropped.
	_, effects = Reduce(s, LoadRelationships{AnswerRef: yes})
	if len(effects) != 0 {
		t.Fatalf("in-flight load must not refetch, got %d effects", len(effects))
	}
}

func TestUnsavedAnswerHasNoRelationshipsToLoad(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")
	s, _ = Reduce(s, AddAnswer{Ref: "a-local", QuestionRef: question, Label: "Maybe"})

	_, effects := Reduce(s, LoadRelationships{AnswerRef: "a-local"})
	if len(effects) != 0 {
		t.Fatalf("unsaved answer cannot be queried, got %d effects", len(effects))
	}
}

func TestEmptyBundleLandsAsLoadedEmpty(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, _ = Reduce(s, LoadRelationships{AnswerRef: yes})
	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Bundle: &contentapi.RelationshipBundle{}})

	if s.Relationships[yes].State != LoadEmpty {
		t.Fatalf("state = %s, want %s", s.Relationships[yes].State, LoadEmpty)
	}
	_, effects := Reduce(s, LoadRelationships{AnswerRef: yes})
	if len(effects) != 1 {
		// Re-requesting an empty set is allowed but goes back through the
		// loading state; the caller decides whether to bother.
		t.Fatalf("effects = %d, want 1", len(effects))
	}
}

func TestBundleLoadPopulatesSummary(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, _ = Reduce(s, LoadRelationships{AnswerRef: yes})
	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Bundle: sampleBundle()})

	set := s.Relationships[yes]
	if set.State != LoadLoaded {
		t.Fatalf("state = %s, want %s", set.State, LoadLoaded)
	}
	if set.Summary.Guidelines != 1 || set.Summary.Problems != 2 {
		t.Fatalf("unexpected summary %+v", set.Summary)
	}
	if set.Problems[0].GoalsState != LoadUnloaded {
		t.Fatal("nested goals stay unloaded until expanded")
	}
}

func TestFailedLoadRevertsToUnloaded(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, _ = Reduce(s, LoadRelationships{AnswerRef: yes})
	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Err: errors.New("gateway timeout")})

	if s.Relationships[yes].State != LoadUnloaded {
		t.Fatal("failure must allow a retry")
	}
	if lastMessage(t, s).Severity != SeverityError {
		t.Fatal("expected a load failure message")
	}
}

func TestGoalsLoadDistinguishesEmpty(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, _ = Reduce(s, LoadRelationships{AnswerRef: yes})
	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Bundle: sampleBundle()})
	s, _ = Reduce(s, LoadGoals{AnswerRef: yes, ProblemID: 70})
	s, _ = Reduce(s, GoalsLoaded{AnswerRef: yes, ProblemID: 70})

	if s.Relationships[yes].Problems[0].GoalsState != LoadEmpty {
		t.Fatal("no goals should land as loaded_empty, not unloaded")
	}

	s, _ = Reduce(s, LoadGoals{AnswerRef: yes, ProblemID: 71})
	s, _ = Reduce(s, GoalsLoaded{AnswerRef: yes, ProblemID: 71, Goals: []contentapi.GoalRecord{
		{ID: 7, ProblemID: 71, Label: "Walk 50 feet unassisted"},
	}})

	problem := s.Relationships[yes].Problems[1]
	if problem.GoalsState != LoadLoaded || len(problem.Goals) != 1 {
		t.Fatalf("unexpected goals %+v", problem)
	}
	if problem.Goals[0].InterventionsState != LoadUnloaded {
		t.Fatal("interventions start unloaded")
	}
}

func TestCollapseKeepsFetchedGoals(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, _ = Reduce(s, LoadRelationships{AnswerRef: yes})
	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Bundle: sampleBundle()})
	s, _ = Reduce(s, ToggleProblem{AnswerRef: yes, ProblemID: 70})
	s, _ = Reduce(s, LoadGoals{AnswerRef: yes, ProblemID: 70})
	s, _ = Reduce(s, GoalsLoaded{AnswerRef: yes, ProblemID: 70, Goals: []contentapi.GoalRecord{
		{ID: 7, ProblemID: 70, Label: "Walk 50 feet unassisted"},
	}})

	s, _ = Reduce(s, ToggleProblem{AnswerRef: yes, ProblemID: 70})
	s, _ = Reduce(s, ToggleProblem{AnswerRef: yes, ProblemID: 70})

	problem := s.Relationships[yes].Problems[0]
	if !problem.Expanded {
		t.Fatal("problem should be expanded again")
	}
	if problem.GoalsState != LoadLoaded || len(problem.Goals) != 1 {
		t.Fatal("collapsing must not discard fetched goals")
	}
}

func TestExpansionSurvivesFullReload(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	s, _ = Reduce(s, LoadRelationships{AnswerRef: yes})
	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Bundle: sampleBundle()})
	s, _ = Reduce(s, ToggleProblem{AnswerRef: yes, ProblemID: 70})

	// A link mutation forces the set back through a full load.
	s, effects := Reduce(s, LinkMutated{AnswerRef: yes})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	if _, ok := effects[0].(LoadRelationshipsEffect); !ok {
		t.Fatalf("mutation must trigger a full reload, got %T", effects[0])
	}

	s, _ = Reduce(s, RelationshipsLoaded{AnswerRef: yes, Bundle: sampleBundle()})
	if !s.Relationships[yes].Problems[0].Expanded {
		t.Fatal("expansion must survive the reload")
	}
}

func TestAddLinkEmitsMutation(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	_, effects := Reduce(s, AddLink{AnswerRef: yes, Type: model.RelGuideline, TargetID: 5})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	mutate := effects[0].(MutateLinkEffect)
	if mutate.Remove || mutate.Req.AnswerID != 1000 || mutate.Req.TargetID != 5 {
		t.Fatalf("unexpected mutation %+v", mutate)
	}
}

func TestTriggerCannotPointAtOwnQuestion(t *testing.T) {
	s := NewState(twoQuestionTree())
	yes := refByLabel(t, s, "Yes")

	next, effects := Reduce(s, AddLink{AnswerRef: yes, Type: model.RelTriggeredQuestion, TargetID: 100})
	if len(effects) != 0 {
		t.Fatalf("self-trigger must be refused, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityError {
		t.Fatal("expected a validation message")
	}
}

func TestTriggerMustPointForwards(t *testing.T) {
	s := NewState(twoQuestionTree())
	var laterYes string
	for ref := range s.Answers {
		if s.IDOf(ref) == 1002 {
			laterYes = ref
		}
	}

	// Question 101 sits after question 100, so its answer cannot trigger 100.
	_, effects := Reduce(s, AddLink{AnswerRef: laterYes, Type: model.RelTriggeredQuestion, TargetID: 100})
	if len(effects) != 0 {
		t.Fatalf("backward trigger must be refused, got %d effects", len(effects))
	}

	// The earlier question's answer may trigger the later question.
	earlierYes := ""
	for ref := range s.Answers {
		if s.IDOf(ref) == 1000 {
			earlierYes = ref
		}
	}
	_, effects = Reduce(s, AddLink{AnswerRef: earlierYes, Type: model.RelTriggeredQuestion, TargetID: 101})
	if len(effects) != 1 {
		t.Fatalf("forward trigger should pass validation, got %d effects", len(effects))
	}
}

func TestTriggerOutsideTreePassesOrderingCheck(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	_, effects := Reduce(s, AddLink{AnswerRef: yes, Type: model.RelTriggeredQuestion, TargetID: 9999})
	if len(effects) != 1 {
		t.Fatalf("cross-assessment target cannot be ordered locally, got %d effects", len(effects))
	}
}

func TestPublishedAssessmentAllowsAdditiveLinksOnly(t *testing.T) {
	tree := testTree()
	tree.Status = "published"
	s := NewState(tree)
	yes := refByLabel(t, s, "Yes")

	_, effects := Reduce(s, AddLink{AnswerRef: yes, Type: model.RelGuideline, TargetID: 5})
	if len(effects) != 1 {
		t.Fatalf("adding a link does not alter published content, got %d effects", len(effects))
	}

	_, effects = Reduce(s, RemoveLink{AnswerRef: yes, Type: model.RelGuideline, TargetID: 5})
	if len(effects) != 0 {
		t.Fatalf("removal stays gated on an editable status, got %d effects", len(effects))
	}
}

func TestFailedMutationDoesNotReload(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	next, effects := Reduce(s, LinkMutated{AnswerRef: yes, Err: errors.New("conflict"), Remove: true})
	if len(effects) != 0 {
		t.Fatalf("failed mutation must not reload, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityError {
		t.Fatal("expected a mutation failure message")
	}
}
