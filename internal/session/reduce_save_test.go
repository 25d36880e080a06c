package session

import (
	"errors"
	"testing"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/lumahealth/authoring/internal/model"
)

// withNewSelectQuestion stages the exercise the save workflow is built for:
// an unsaved select question with three unsaved answers.
func withNewSelectQuestion(t *testing.T) *State {
	t.Helper()
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")

	s, _ = Reduce(s, AddQuestion{Ref: "q-pain", SectionRef: walking, Label: "Pain Level", Type: model.QuestionSingleSelect})
	s, _ = Reduce(s, AddAnswer{Ref: "a-mild", QuestionRef: "q-pain", Label: "Mild"})
	s, _ = Reduce(s, AddAnswer{Ref: "a-moderate", QuestionRef: "q-pain", Label: "Moderate"})
	s, _ = Reduce(s, AddAnswer{Ref: "a-severe", QuestionRef: "q-pain", Label: "Severe"})
	return s
}

func TestSaveBlankLabelMakesNoCall(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")
	s, _ = Reduce(s, AddQuestion{Ref: "q-blank", SectionRef: walking, Label: "   ", Type: model.QuestionText})

	next, effects := Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-blank"})
	if len(effects) != 0 {
		t.Fatalf("validation failure must produce zero network calls, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityError {
		t.Fatal("expected a validation error message")
	}
	if !next.Tracker.Has("q-blank") {
		t.Fatal("validation failure must not clear the pending edit")
	}
}

func TestSaveRunsSequentialLibraryChecksThenPersists(t *testing.T) {
	s := withNewSelectQuestion(t)

	s, effects := Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	if len(effects) != 1 {
		t.Fatalf("save should start with exactly one check in flight, got %d effects", len(effects))
	}
	check, ok := effects[0].(CheckLibraryEffect)
	if !ok || check.TargetRef != "q-pain" || check.Query.Type != library.TypeQuestion {
		t.Fatalf("unexpected first check %+v", effects[0])
	}

	// Four checks total: the question and its three answers, one at a time.
	targets := []string{"q-pain", "a-mild", "a-moderate", "a-severe"}
	for i, target := range targets {
		s, effects = Reduce(s, LibraryChecked{OwnerRef: "q-pain", TargetRef: target})
		if i < len(targets)-1 {
			if len(effects) != 1 {
				t.Fatalf("check %d should queue exactly the next check, got %d effects", i, len(effects))
			}
			next := effects[0].(CheckLibraryEffect)
			if next.TargetRef != targets[i+1] {
				t.Fatalf("check %d queued %q, want %q", i, next.TargetRef, targets[i+1])
			}
		}
	}

	// After the last check resolves, persistence starts exactly once.
	if len(effects) != 1 {
		t.Fatalf("drained queue should release one persist effect, got %d", len(effects))
	}
	create, ok := effects[0].(CreateQuestionEffect)
	if !ok || create.Req.SectionID != 11 || create.Req.Label != "Pain Level" {
		t.Fatalf("unexpected create effect %+v", effects[0])
	}

	s, effects = Reduce(s, PersistResolved{Ref: "q-pain", ID: 200})
	if s.IDOf("q-pain") != 200 {
		t.Fatal("question ref should bind to the new canonical id")
	}
	if len(effects) != 1 {
		t.Fatalf("persist completion should emit one attach, got %d effects", len(effects))
	}
	attach := effects[0].(AttachAnswersEffect)
	if attach.QuestionID != 200 || len(attach.Answers) != 3 {
		t.Fatalf("unexpected attach %+v", attach)
	}
	for i, want := range []int{1, 2, 3} {
		if attach.Answers[i].SortOrder != want {
			t.Fatalf("answer %d sort order = %d, want %d", i, attach.Answers[i].SortOrder, want)
		}
	}

	s, effects = Reduce(s, AnswersAttached{OwnerRef: "q-pain", Result: &contentapi.AttachResult{Items: []contentapi.AttachOutcome{
		{Label: "Mild", ID: 201}, {Label: "Moderate", ID: 202}, {Label: "Severe", ID: 203},
	}}})
	if s.IDOf("a-moderate") != 202 {
		t.Fatal("attached answers should bind in order")
	}
	if s.Tracker.HasPending() {
		t.Fatal("a completed save should clear all pending mutations")
	}
	// A brand-new select question built from scratch publishes its bundle.
	if len(effects) != 1 {
		t.Fatalf("expected the bundle publication, got %d effects", len(effects))
	}
	publish := effects[0].(PublishBundleEffect)
	if publish.Req.Label != "Pain Level" || len(publish.Req.Answers) != 3 {
		t.Fatalf("unexpected bundle %+v", publish.Req)
	}
	if _, ok := s.Saves["q-pain"]; ok {
		t.Fatal("finished save should be dropped from the workflow map")
	}
}

func TestExactLibraryMatchReducesCreatePayload(t *testing.T) {
	s := withNewSelectQuestion(t)

	s, _ = Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	s, _ = Reduce(s, LibraryChecked{
		OwnerRef:  "q-pain",
		TargetRef: "q-pain",
		Candidate: &library.Candidate{ID: 77, Label: "pain level", ExactMatch: true},
	})

	if s.Questions["q-pain"].LibraryID != 77 {
		t.Fatal("exact match should swap creation for a library reference")
	}

	var effects []Effect
	for _, target := range []string{"a-mild", "a-moderate", "a-severe"} {
		s, effects = Reduce(s, LibraryChecked{OwnerRef: "q-pain", TargetRef: target})
	}
	create := effects[0].(CreateQuestionEffect)
	if create.Req.LibraryID != 77 {
		t.Fatalf("create should reference library item 77, got %+v", create.Req)
	}
	if create.Req.Label != "" || create.Req.Type != "" {
		t.Fatal("library-backed create must carry the reduced payload")
	}
}

func TestFailedLibraryCheckIsNonFatal(t *testing.T) {
	s := withNewSelectQuestion(t)

	s, _ = Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	s, effects := Reduce(s, LibraryChecked{OwnerRef: "q-pain", TargetRef: "q-pain", Err: errors.New("search timeout")})

	if len(effects) != 1 {
		t.Fatalf("a failed check must not block the save, got %d effects", len(effects))
	}
	if _, ok := effects[0].(CheckLibraryEffect); !ok {
		t.Fatalf("expected the next queued check, got %T", effects[0])
	}
	if s.Questions["q-pain"].LibraryID != 0 {
		t.Fatal("a failed check must leave the entity as new content")
	}
	if lastMessage(t, s).Severity != SeverityWarning {
		t.Fatal("expected a non-fatal warning")
	}
}

func TestStaleLibraryCheckIgnored(t *testing.T) {
	s := withNewSelectQuestion(t)
	s, _ = Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})

	// Out-of-order completion for an item that is not the cursor's target.
	next, effects := Reduce(s, LibraryChecked{OwnerRef: "q-pain", TargetRef: "a-severe"})
	if len(effects) != 0 {
		t.Fatalf("stale check completion must be ignored, got %d effects", len(effects))
	}
	if next.Saves["q-pain"].Cursor != 0 {
		t.Fatal("cursor must not advance on a stale completion")
	}
}

func TestPersistRejectionKeepsEdits(t *testing.T) {
	s := withNewSelectQuestion(t)

	s, _ = Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	for _, target := range []string{"q-pain", "a-mild", "a-moderate", "a-severe"} {
		s, _ = Reduce(s, LibraryChecked{OwnerRef: "q-pain", TargetRef: target})
	}

	rejection := &contentapi.BackendRejection{Operation: "create question", Detail: "duplicate question in section"}
	s, effects := Reduce(s, PersistResolved{Ref: "q-pain", Err: rejection})

	if len(effects) != 0 {
		t.Fatalf("failed persist must stop the workflow, got %d effects", len(effects))
	}
	if s.Persisted("q-pain") {
		t.Fatal("rejected create must not bind an id")
	}
	if !s.Tracker.Has("q-pain") {
		t.Fatal("failure must keep the pending edit for retry")
	}
	save := s.Saves["q-pain"]
	if save == nil || save.Phase != PhaseFailed || save.FailedStage != "persist" {
		t.Fatalf("unexpected workflow state %+v", save)
	}
}

func TestUpdatePersistedQuestionSkipsLibraryCheck(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	s, _ = Reduce(s, EditQuestion{Ref: question, Label: strPtr("Can the patient walk without help?")})
	s, effects := Reduce(s, SaveEntity{Kind: KindQuestion, Ref: question})

	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	update, ok := effects[0].(UpdateQuestionEffect)
	if !ok || update.ID != 100 {
		t.Fatalf("persisted question should go straight to update, got %+v", effects[0])
	}

	s, effects = Reduce(s, PersistResolved{Ref: question, ID: 100})
	if len(effects) != 0 {
		t.Fatalf("plain update completes in one hop, got %d effects", len(effects))
	}
	if s.Tracker.Has(question) {
		t.Fatal("completed update should clear the pending edit")
	}
}

func TestUpdateSaveAttachesNewAnswers(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	s, _ = Reduce(s, AddAnswer{Ref: "a-maybe", QuestionRef: question, Label: "Maybe"})
	s, effects := Reduce(s, SaveEntity{Kind: KindQuestion, Ref: question})

	// The question itself is persisted; only the new answer gets checked.
	check, ok := effects[0].(CheckLibraryEffect)
	if !ok || check.TargetRef != "a-maybe" {
		t.Fatalf("expected the new answer's check, got %+v", effects[0])
	}

	s, effects = Reduce(s, LibraryChecked{OwnerRef: question, TargetRef: "a-maybe"})
	if _, ok := effects[0].(UpdateQuestionEffect); !ok {
		t.Fatalf("persisted question persists as an update, got %T", effects[0])
	}

	s, effects = Reduce(s, PersistResolved{Ref: question, ID: 100})
	if len(effects) != 1 {
		t.Fatalf("the update must still attach the new answer, got %d effects", len(effects))
	}
	attach, ok := effects[0].(AttachAnswersEffect)
	if !ok || attach.QuestionID != 100 || len(attach.Answers) != 1 {
		t.Fatalf("unexpected attach %+v", effects[0])
	}

	s, _ = Reduce(s, AnswersAttached{OwnerRef: question, Result: &contentapi.AttachResult{
		Items: []contentapi.AttachOutcome{{Label: "Maybe", ID: 1002}},
	}})
	if s.IDOf("a-maybe") != 1002 {
		t.Fatal("the attached answer should bind its new id")
	}
	if s.Tracker.HasPending() {
		t.Fatal("nothing may stay pending after the workflow completes")
	}
}

func TestSkippedAttachKeepsBindingsAligned(t *testing.T) {
	s := withNewSelectQuestion(t)

	s, _ = Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	for _, target := range []string{"q-pain", "a-mild", "a-moderate", "a-severe"} {
		s, _ = Reduce(s, LibraryChecked{OwnerRef: "q-pain", TargetRef: target})
	}
	s, _ = Reduce(s, PersistResolved{Ref: "q-pain", ID: 200})

	s, _ = Reduce(s, AnswersAttached{OwnerRef: "q-pain", Result: &contentapi.AttachResult{
		Items: []contentapi.AttachOutcome{
			{Label: "Mild", ID: 201},
			{Label: "Moderate", Skipped: true},
			{Label: "Severe", ID: 203},
		},
		Detail: `answer "Moderate" already present, skipped`,
	}})

	if s.IDOf("a-mild") != 201 || s.IDOf("a-severe") != 203 {
		t.Fatalf("ids shifted across the skip: mild=%d severe=%d", s.IDOf("a-mild"), s.IDOf("a-severe"))
	}
	if s.Persisted("a-moderate") {
		t.Fatal("a skipped answer must not bind an id")
	}
	if !s.Answers["a-moderate"].Unsaved || !s.Tracker.Has("a-moderate") {
		t.Fatal("a skipped answer stays unsaved with its pending mark")
	}
	if !s.Tracker.HasPending() {
		t.Fatal("the lock must stay held while anything is unsaved")
	}
}

func TestMoveRefusedWhileOtherEditPending(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")
	balance := refByLabel(t, s, "Balance")

	s, _ = Reduce(s, EditSection{Ref: balance, Label: strPtr("Balance & Gait")})
	next, effects := Reduce(s, MoveQuestion{Ref: question, TargetSectionRef: balance})

	if len(effects) != 0 {
		t.Fatalf("a move during someone else's edit must be refused, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityWarning {
		t.Fatal("expected the edit-lock warning")
	}
}

func TestMoveRecreatesAttachesThenDeletes(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")
	balance := refByLabel(t, s, "Balance")

	s, effects := Reduce(s, MoveQuestion{Ref: question, TargetSectionRef: balance})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	create, ok := effects[0].(CreateQuestionEffect)
	if !ok || create.Req.SectionID != 12 {
		t.Fatalf("move should create in the target subsection, got %+v", effects[0])
	}
	if create.Req.Label != "Can the patient walk unassisted?" {
		t.Fatal("move create should carry the full payload")
	}

	s, effects = Reduce(s, PersistResolved{Ref: question, ID: 300})
	if s.Questions[question].SectionRef != balance {
		t.Fatal("question should reparent once the target copy exists")
	}
	attach, ok := effects[0].(AttachAnswersEffect)
	if !ok || len(attach.Answers) != 2 {
		t.Fatalf("move should copy both answers, got %+v", effects[0])
	}

	s, effects = Reduce(s, AnswersAttached{OwnerRef: question, Result: &contentapi.AttachResult{Items: []contentapi.AttachOutcome{{Label: "Yes", ID: 301}, {Label: "No", ID: 302}}}})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	del, ok := effects[0].(DeleteEffect)
	if !ok || !del.ForMove || del.ID != 100 {
		t.Fatalf("move should delete the original id 100, got %+v", effects[0])
	}

	s, effects = Reduce(s, SourceDeleted{Ref: question})
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	if _, ok := effects[0].(ReloadTreeEffect); !ok {
		t.Fatalf("completed move should reconcile with a reload, got %T", effects[0])
	}
}

func TestMoveDeleteFailureLeavesBothCopies(t *testing.T) {
	s := NewState(testTree())
	question := refByLabel(t, s, "Can the patient walk unassisted?")
	balance := refByLabel(t, s, "Balance")

	s, _ = Reduce(s, MoveQuestion{Ref: question, TargetSectionRef: balance})
	s, _ = Reduce(s, PersistResolved{Ref: question, ID: 300})
	s, _ = Reduce(s, AnswersAttached{OwnerRef: question, Result: &contentapi.AttachResult{Items: []contentapi.AttachOutcome{{Label: "Yes", ID: 301}, {Label: "No", ID: 302}}}})

	next, effects := Reduce(s, SourceDeleted{Ref: question, Err: errors.New("connection refused")})
	if len(effects) != 0 {
		t.Fatalf("there is no rollback; effects = %d, want 0", len(effects))
	}
	// The copy stays in the target; the stale original is the backend's.
	if next.Questions[question].SectionRef != balance {
		t.Fatal("target copy must survive the failed source delete")
	}
	save := next.Saves[question]
	if save == nil || save.Phase != PhaseFailed {
		t.Fatal("workflow should park in its failed phase")
	}
	if lastMessage(t, next).Severity != SeverityWarning {
		t.Fatal("expected the both-copies warning")
	}
}

func TestDoubleSaveRefused(t *testing.T) {
	s := withNewSelectQuestion(t)

	s, _ = Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	next, effects := Reduce(s, SaveEntity{Kind: KindQuestion, Ref: "q-pain"})
	if len(effects) != 0 {
		t.Fatalf("a second save while one is in flight must be refused, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityWarning {
		t.Fatal("expected an in-progress warning")
	}
}
