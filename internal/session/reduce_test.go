package session

import (
	"errors"
	"testing"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/lumahealth/authoring/internal/model"
)

func strPtr(v string) *string { return &v }

// testTree is one published-shape assessment: a parent section with one
// subsection holding a persisted select question with two answers.
func testTree() *contentapi.AssessmentTree {
	return &contentapi.AssessmentTree{
		ID:     42,
		Title:  "Fall Risk Assessment",
		Status: "draft",
		Sections: []contentapi.TreeSection{
			{
				ID:        10,
				Label:     "Mobility",
				SortOrder: 1,
				Subsections: []contentapi.TreeSection{
					{
						ID:        11,
						Label:     "Walking",
						SortOrder: 1,
						Questions: []contentapi.TreeQuestion{
							{
								ID:        100,
								Label:     "Can the patient walk unassisted?",
								Type:      "single_select",
								SortOrder: 1,
								Answers: []contentapi.TreeAnswer{
									{ID: 1000, Label: "Yes", SortOrder: 1},
									{ID: 1001, Label: "No", SortOrder: 2},
								},
							},
						},
					},
					{ID: 12, Label: "Balance", SortOrder: 2},
				},
			},
		},
	}
}

func refByLabel(t *testing.T, s *State, label string) string {
	t.Helper()
	for ref, node := range s.Sections {
		if node.Label == label {
			return ref
		}
	}
	for ref, node := range s.Questions {
		if node.Label == label {
			return ref
		}
	}
	for ref, node := range s.Answers {
		if node.Label == label {
			return ref
		}
	}
	t.Fatalf("no entity labelled %q", label)
	return ""
}

func lastMessage(t *testing.T, s *State) Message {
	t.Helper()
	if len(s.Messages) == 0 {
		t.Fatal("expected a message")
	}
	return s.Messages[len(s.Messages)-1]
}

func TestNewStateBindsTree(t *testing.T) {
	s := NewState(testTree())

	if s.AssessmentID != 42 || s.Status != model.AssessmentDraft {
		t.Fatalf("unexpected header: id=%d status=%s", s.AssessmentID, s.Status)
	}
	if len(s.Sections) != 3 || len(s.Questions) != 1 || len(s.Answers) != 2 {
		t.Fatalf("unexpected node counts: %d/%d/%d", len(s.Sections), len(s.Questions), len(s.Answers))
	}
	walking := refByLabel(t, s, "Walking")
	if s.IDOf(walking) != 11 {
		t.Fatalf("Walking bound to %d, want 11", s.IDOf(walking))
	}
	question := refByLabel(t, s, "Can the patient walk unassisted?")
	if !s.Persisted(question) {
		t.Fatal("loaded question should be persisted")
	}
	if got := len(s.Questions[question].AnswerRefs); got != 2 {
		t.Fatalf("answer refs = %d, want 2", got)
	}
}

func TestAddQuestionIsLocalOnly(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")

	next, effects := Reduce(s, AddQuestion{
		Ref:        "q-new",
		SectionRef: walking,
		Label:      "Pain Level",
		Type:       model.QuestionSingleSelect,
	})

	if len(effects) != 0 {
		t.Fatalf("adding a question must not touch the network, got %d effects", len(effects))
	}
	node := next.Questions["q-new"]
	if node == nil || !node.Unsaved || next.Persisted("q-new") {
		t.Fatal("new question should exist locally as unsaved")
	}
	if node.SortOrder != 2 {
		t.Fatalf("sort order = %d, want 2", node.SortOrder)
	}
	if mutation := next.Tracker.Get("q-new"); mutation == nil || mutation.Action != MutationAdd {
		t.Fatal("expected a pending add mutation")
	}
	// The input snapshot is untouched.
	if _, ok := s.Questions["q-new"]; ok {
		t.Fatal("Reduce mutated its input state")
	}
}

func TestEditLockRefusesSecondEntity(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")
	balance := refByLabel(t, s, "Balance")

	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionText})

	next, effects := Reduce(s, EditSection{Ref: balance, Label: strPtr("Renamed")})
	if len(effects) != 0 {
		t.Fatalf("locked edit must be refused without effects, got %d", len(effects))
	}
	if next.Sections[balance].Label != "Balance" {
		t.Fatal("locked edit still applied")
	}
	if lastMessage(t, next).Severity != SeverityWarning {
		t.Fatal("expected a warning about the pending edit")
	}
}

func TestEditLockAllowsAnswersOfSameQuestion(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")

	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionSingleSelect})
	next, _ := Reduce(s, AddAnswer{Ref: "a-new", QuestionRef: "q-new", Label: "Mild"})

	if next.Answers["a-new"] == nil {
		t.Fatal("answers of the question being edited must not be locked out")
	}
}

func TestEditLockStillBlocksOtherQuestionsAnswers(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionSingleSelect})
	next, _ := Reduce(s, AddAnswer{Ref: "a-other", QuestionRef: question, Label: "Sometimes"})

	if next.Answers["a-other"] != nil {
		t.Fatal("answers of an unrelated question belong to a different edit unit")
	}
	if lastMessage(t, next).Severity != SeverityWarning {
		t.Fatal("expected the edit-lock warning")
	}
}

func TestReloadCarriesUnsavedQuestion(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")

	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionSingleSelect})
	s, _ = Reduce(s, AddAnswer{Ref: "a-new", QuestionRef: "q-new", Label: "Mild"})

	next, _ := Reduce(s, TreeReloaded{Tree: testTree()})

	question := next.Questions["q-new"]
	if question == nil {
		t.Fatal("an unsaved question must survive a full reload")
	}
	newWalking := refByLabel(t, next, "Walking")
	if question.SectionRef != newWalking {
		t.Fatal("the carried question must reparent onto the reloaded subsection")
	}
	if question.SortOrder != 2 {
		t.Fatalf("carried question sort order = %d, want 2", question.SortOrder)
	}
	if next.Answers["a-new"] == nil || next.Answers["a-new"].QuestionRef != "q-new" {
		t.Fatal("the unsaved answer rides along with its question")
	}
	if !next.Tracker.Has("q-new") || !next.Tracker.Has("a-new") {
		t.Fatal("pending marks must survive the reload")
	}
}

func TestReloadReappliesPendingEdit(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	s, _ = Reduce(s, EditQuestion{Ref: question, Label: strPtr("Can the patient walk alone?")})
	next, _ := Reduce(s, TreeReloaded{Tree: testTree()})

	newRef := next.QuestionRefByID(100)
	if newRef == "" {
		t.Fatal("reloaded tree should still hold question 100")
	}
	if got := next.Questions[newRef].Label; got != "Can the patient walk alone?" {
		t.Fatalf("label = %q, pending edit must be replayed onto the reloaded node", got)
	}
	if !next.Questions[newRef].Unsaved || !next.Tracker.Has(newRef) {
		t.Fatal("the pending mark must follow the entity's new ref")
	}
}

func TestDiscardRestoresPriorValues(t *testing.T) {
	s := NewState(testTree())
	balance := refByLabel(t, s, "Balance")

	s, _ = Reduce(s, EditSection{Ref: balance, Label: strPtr("Renamed once")})
	s, _ = Reduce(s, EditSection{Ref: balance, Label: strPtr("Renamed twice")})
	next, _ := Reduce(s, DiscardEdits{Ref: balance})

	if got := next.Sections[balance].Label; got != "Balance" {
		t.Fatalf("discard restored %q, want the value before the first edit", got)
	}
	if next.Tracker.Has(balance) {
		t.Fatal("discard should clear the pending mutation")
	}
}

func TestDiscardRemovesNeverPersistedEntity(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")

	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionSingleSelect})
	s, _ = Reduce(s, AddAnswer{Ref: "a-new", QuestionRef: "q-new", Label: "Mild"})
	next, _ := Reduce(s, DiscardEdits{Ref: "q-new"})

	if _, ok := next.Questions["q-new"]; ok {
		t.Fatal("discarded new question should disappear")
	}
	if _, ok := next.Answers["a-new"]; ok {
		t.Fatal("discarding a new question should drop its answers too")
	}
}

func TestDeleteUnpersistedIsLocal(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")
	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionText})

	next, effects := Reduce(s, DeleteEntity{Kind: KindQuestion, Ref: "q-new"})
	if len(effects) != 0 {
		t.Fatalf("deleting a never-persisted entity must make no network call, got %d effects", len(effects))
	}
	if _, ok := next.Questions["q-new"]; ok {
		t.Fatal("entity should be gone locally")
	}
}

func TestDeletePersistedEmitsDeleteEffect(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	next, effects := Reduce(s, DeleteEntity{Kind: KindQuestion, Ref: question})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	del, ok := effects[0].(DeleteEffect)
	if !ok || del.ID != 100 || del.ForMove {
		t.Fatalf("unexpected delete effect %+v", effects[0])
	}
	if !next.Questions[question].Deleted {
		t.Fatal("question should be optimistically marked deleted")
	}

	next, effects = Reduce(next, DeleteResolved{Kind: KindQuestion, Ref: question})
	if len(effects) != 0 {
		t.Fatalf("delete confirmation should not emit effects, got %d", len(effects))
	}
	if _, ok := next.Questions[question]; ok {
		t.Fatal("confirmed delete should remove the node")
	}
}

func TestFailedDeleteReconciledByReload(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	s, _ = Reduce(s, DeleteEntity{Kind: KindQuestion, Ref: question})
	s, _ = Reduce(s, DeleteResolved{Kind: KindQuestion, Ref: question, Err: errors.New("connection reset")})

	if !s.Questions[question].Deleted {
		t.Fatal("the optimistic mark stays until a reload settles it")
	}
	if s.Tracker.Has(question) {
		t.Fatal("a failed delete must not hold the edit lock")
	}

	next, _ := Reduce(s, TreeReloaded{Tree: testTree()})
	newRef := next.QuestionRefByID(100)
	if newRef == "" || next.Questions[newRef].Deleted {
		t.Fatal("the reload should restore the server's view of the question")
	}
}

func TestPublishedAssessmentRefusesEdits(t *testing.T) {
	tree := testTree()
	tree.Status = "published"
	s := NewState(tree)
	walking := refByLabel(t, s, "Walking")

	next, effects := Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "Pain Level", Type: model.QuestionText})
	if len(effects) != 0 {
		t.Fatalf("effects = %d, want 0", len(effects))
	}
	if _, ok := next.Questions["q-new"]; ok {
		t.Fatal("published assessments must not accept edits")
	}
}

func TestStaleSearchResultDiscarded(t *testing.T) {
	s := NewState(testTree())
	ctx := SearchContext{Type: "question", Text: "pain"}

	s, effects := Reduce(s, SearchChanged{Slot: SlotQuestionName, Type: "question", Text: "pain"})
	if len(effects) != 1 {
		t.Fatalf("expected one typeahead effect, got %d", len(effects))
	}
	// The field is retyped before the first lookup resolves.
	s, _ = Reduce(s, SearchChanged{Slot: SlotQuestionName, Type: "question", Text: "pain level"})

	next, _ := Reduce(s, SearchResolved{Slot: SlotQuestionName, Ctx: ctx, Candidates: []library.Candidate{{ID: 7, Label: "Pain"}}})
	if len(next.Results[SlotQuestionName]) != 0 {
		t.Fatal("stale search result must be discarded")
	}

	current := SearchContext{Type: "question", Text: "pain level"}
	next, _ = Reduce(next, SearchResolved{Slot: SlotQuestionName, Ctx: current, Candidates: []library.Candidate{{ID: 7, Label: "Pain level"}}})
	if len(next.Results[SlotQuestionName]) != 1 {
		t.Fatal("current search result must be applied")
	}
}

func TestClearedSearchDropsResponse(t *testing.T) {
	s := NewState(testTree())
	ctx := SearchContext{Type: "question", Text: "pain"}

	s, _ = Reduce(s, SearchChanged{Slot: SlotQuestionName, Type: "question", Text: "pain"})
	s, _ = Reduce(s, SearchCleared{Slot: SlotQuestionName})

	next, _ := Reduce(s, SearchResolved{Slot: SlotQuestionName, Ctx: ctx, Candidates: []library.Candidate{{ID: 7, Label: "Pain"}}})
	if len(next.Results[SlotQuestionName]) != 0 {
		t.Fatal("response to a cleared search must be dropped")
	}
}

func TestSetScoreRequiresActiveModel(t *testing.T) {
	s := NewState(testTree())
	yes := refByLabel(t, s, "Yes")

	next, effects := Reduce(s, SetScore{AnswerRef: yes, Value: "1"})
	if len(effects) != 0 {
		t.Fatalf("score without an active model must not persist, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityWarning {
		t.Fatal("expected a warning about the missing active model")
	}

	next, _ = Reduce(next, ActivateScoringModel{ModelID: 5})
	next, effects = Reduce(next, SetScore{AnswerRef: yes, Value: "1"})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	set, ok := effects[0].(SetScoreEffect)
	if !ok || set.Req.ModelID != 5 || set.Req.AnswerID != 1000 || set.Req.Value != "1" {
		t.Fatalf("unexpected score effect %+v", effects[0])
	}
	if next.Scores[ScoreKey{AnswerRef: yes, ModelID: 5}] != "1" {
		t.Fatal("score should be recorded optimistically")
	}
}
