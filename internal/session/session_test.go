package session

import (
	"context"
	"testing"
	"time"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
)

// stubClient counts calls and hands out sequential ids. Unused operations
// are inherited no-ops so each test only wires what it exercises.
type stubClient struct {
	tree *contentapi.AssessmentTree

	createQuestionCalls int
	attachCalls         int
	publishCalls        int
	deleteQuestionCalls int
	batchSortCalls      int
	getAssessmentCalls  int

	nextID uint
}

func newStubClient(tree *contentapi.AssessmentTree) *stubClient {
	return &stubClient{tree: tree, nextID: 500}
}

func (c *stubClient) GetAssessment(ctx context.Context, id uint) (*contentapi.AssessmentTree, error) {
	c.getAssessmentCalls++
	return c.tree, nil
}

func (c *stubClient) CreateSection(ctx context.Context, req contentapi.SectionCreate) (uint, error) {
	c.nextID++
	return c.nextID, nil
}

func (c *stubClient) UpdateSection(ctx context.Context, id uint, req contentapi.SectionUpdate) error {
	return nil
}

func (c *stubClient) DeleteSection(ctx context.Context, id uint) error { return nil }

func (c *stubClient) CreateQuestion(ctx context.Context, req contentapi.QuestionCreate) (uint, error) {
	c.createQuestionCalls++
	c.nextID++
	return c.nextID, nil
}

func (c *stubClient) UpdateQuestion(ctx context.Context, id uint, req contentapi.QuestionUpdate) error {
	return nil
}

func (c *stubClient) DeleteQuestion(ctx context.Context, id uint) error {
	c.deleteQuestionCalls++
	return nil
}

func (c *stubClient) AttachAnswers(ctx context.Context, questionID uint, answers []contentapi.AnswerCreate) (*contentapi.AttachResult, error) {
	c.attachCalls++
	items := make([]contentapi.AttachOutcome, len(answers))
	for i, a := range answers {
		c.nextID++
		items[i] = contentapi.AttachOutcome{Label: a.Label, ID: c.nextID}
	}
	return &contentapi.AttachResult{Items: items}, nil
}

func (c *stubClient) UpdateAnswer(ctx context.Context, id uint, req contentapi.AnswerUpdate) error {
	return nil
}

func (c *stubClient) DeleteAnswer(ctx context.Context, id uint) error { return nil }

func (c *stubClient) BatchSortOrder(ctx context.Context, kind string, updates []contentapi.SortUpdate) error {
	c.batchSortCalls++
	return nil
}

func (c *stubClient) PublishBundle(ctx context.Context, req contentapi.BundlePublish) error {
	c.publishCalls++
	return nil
}

func (c *stubClient) Relationships(ctx context.Context, answerID uint) (*contentapi.RelationshipBundle, error) {
	return &contentapi.RelationshipBundle{}, nil
}

func (c *stubClient) AddRelationship(ctx context.Context, req contentapi.RelationshipChange) error {
	return nil
}

func (c *stubClient) RemoveRelationship(ctx context.Context, req contentapi.RelationshipChange) error {
	return nil
}

func (c *stubClient) Goals(ctx context.Context, problemID uint) ([]contentapi.GoalRecord, error) {
	return nil, nil
}

func (c *stubClient) Interventions(ctx context.Context, goalID uint) ([]contentapi.InterventionRecord, error) {
	return nil, nil
}

func (c *stubClient) CreateScoringModel(ctx context.Context, req contentapi.ScoringModelCreate) (uint, error) {
	c.nextID++
	return c.nextID, nil
}

func (c *stubClient) UpdateScoringModel(ctx context.Context, id uint, req contentapi.ScoringModelUpdate) error {
	return nil
}

func (c *stubClient) SetScore(ctx context.Context, req contentapi.ScoreSet) error { return nil }

// stubSearcher returns a fixed candidate list for every query.
type stubSearcher struct {
	candidates []library.Candidate
	calls      int
}

func (s *stubSearcher) Search(ctx context.Context, q library.Query) ([]library.Candidate, error) {
	s.calls++
	return append([]library.Candidate(nil), s.candidates...), nil
}

func newTestSession(t *testing.T, client *stubClient, searcher library.Searcher) *Session {
	t.Helper()
	if searcher == nil {
		searcher = &stubSearcher{}
	}
	sess, err := New(context.Background(), "test-session", 42, client,
		library.NewMatcher(searcher), time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(sess.Close)
	return sess
}

func TestDispatchDrivesSaveToCompletion(t *testing.T) {
	client := newStubClient(testTree())
	sess := newTestSession(t, client, nil)

	walking := refByLabel(t, sess.State(), "Walking")
	sess.Dispatch(AddQuestion{Ref: "q-pain", SectionRef: walking, Label: "Pain Level", Type: "single_select"})
	sess.Dispatch(AddAnswer{Ref: "a-mild", QuestionRef: "q-pain", Label: "Mild"})
	sess.Dispatch(AddAnswer{Ref: "a-severe", QuestionRef: "q-pain", Label: "Severe"})

	state := sess.Dispatch(SaveEntity{Kind: KindQuestion, Ref: "q-pain"})

	if client.createQuestionCalls != 1 {
		t.Fatalf("create question calls = %d, want 1", client.createQuestionCalls)
	}
	if client.attachCalls != 1 {
		t.Fatalf("answers go up in one bulk attach, got %d calls", client.attachCalls)
	}
	if !state.Persisted("q-pain") || !state.Persisted("a-mild") || !state.Persisted("a-severe") {
		t.Fatal("the returned snapshot should already carry the new bindings")
	}
	if state.Tracker.HasPending() {
		t.Fatal("a completed save leaves nothing pending")
	}
}

func TestValidationFailureMakesNoNetworkCall(t *testing.T) {
	client := newStubClient(testTree())
	sess := newTestSession(t, client, nil)

	walking := refByLabel(t, sess.State(), "Walking")
	sess.Dispatch(AddQuestion{Ref: "q-blank", SectionRef: walking, Label: "  ", Type: "text"})
	sess.Dispatch(SaveEntity{Kind: KindQuestion, Ref: "q-blank"})

	if client.createQuestionCalls != 0 {
		t.Fatalf("invalid entity must never reach the backend, got %d calls", client.createQuestionCalls)
	}
}

func TestSaveAdoptsExactLibraryMatch(t *testing.T) {
	client := newStubClient(testTree())
	searcher := &stubSearcher{candidates: []library.Candidate{
		{ID: 88, Label: " pain level "},
	}}
	sess := newTestSession(t, client, searcher)

	walking := refByLabel(t, sess.State(), "Walking")
	sess.Dispatch(AddQuestion{Ref: "q-pain", SectionRef: walking, Label: "Pain Level", Type: "text"})
	state := sess.Dispatch(SaveEntity{Kind: KindQuestion, Ref: "q-pain"})

	if searcher.calls != 1 {
		t.Fatalf("searcher calls = %d, want 1", searcher.calls)
	}
	if state.Questions["q-pain"].LibraryID != 88 {
		t.Fatal("normalized comparison should classify the candidate as exact")
	}
	if client.createQuestionCalls != 1 {
		t.Fatal("the create still happens, with the reduced payload")
	}
}

func TestMoveRunsFullWorkflowInOneDispatch(t *testing.T) {
	client := newStubClient(testTree())
	sess := newTestSession(t, client, nil)

	state := sess.State()
	question := refByLabel(t, state, "Can the patient walk unassisted?")
	balance := refByLabel(t, state, "Balance")

	sess.Dispatch(MoveQuestion{Ref: question, TargetSectionRef: balance})

	if client.createQuestionCalls != 1 || client.attachCalls != 1 || client.deleteQuestionCalls != 1 {
		t.Fatalf("move = create+attach+delete, got %d/%d/%d",
			client.createQuestionCalls, client.attachCalls, client.deleteQuestionCalls)
	}
	// Initial open plus the post-move reconciliation reload.
	if client.getAssessmentCalls != 2 {
		t.Fatalf("assessment loads = %d, want 2", client.getAssessmentCalls)
	}
}

func TestReorderSettlesWithReload(t *testing.T) {
	client := newStubClient(testTree())
	sess := newTestSession(t, client, nil)

	state := sess.State()
	parent := refByLabel(t, state, "Mobility")
	walking := refByLabel(t, state, "Walking")
	balance := refByLabel(t, state, "Balance")

	sess.Dispatch(Reorder{Kind: KindSection, ParentRef: parent, OrderedRefs: []string{balance, walking}})

	if client.batchSortCalls != 1 {
		t.Fatalf("batch calls = %d, want 1", client.batchSortCalls)
	}
	if client.getAssessmentCalls != 2 {
		t.Fatalf("settlement must reload the tree, got %d loads", client.getAssessmentCalls)
	}
}

func TestTypeaheadResolvesThroughDebounce(t *testing.T) {
	client := newStubClient(testTree())
	searcher := &stubSearcher{candidates: []library.Candidate{
		{ID: 3, Label: "Pain Level"},
	}}
	sess := newTestSession(t, client, searcher)

	sess.Dispatch(SearchChanged{Slot: SlotQuestionName, Type: library.TypeQuestion, Text: "pain"})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if results := sess.State().Results[SlotQuestionName]; len(results) > 0 {
			if results[0].ID != 3 {
				t.Fatalf("unexpected results %+v", results)
			}
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("debounced search never resolved")
}
