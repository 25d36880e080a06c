package session

import (
	"errors"
	"testing"
)

func TestReorderAssignsContiguousOrders(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")
	balance := refByLabel(t, s, "Balance")
	parent := refByLabel(t, s, "Mobility")

	s, effects := Reduce(s, Reorder{Kind: KindSection, ParentRef: parent, OrderedRefs: []string{balance, walking}})

	if s.Sections[balance].SortOrder != 1 || s.Sections[walking].SortOrder != 2 {
		t.Fatalf("orders = %d,%d, want 1,2", s.Sections[balance].SortOrder, s.Sections[walking].SortOrder)
	}
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	batch := effects[0].(BatchSortEffect)
	if len(batch.Updates) != 2 {
		t.Fatalf("updates = %d, want 2", len(batch.Updates))
	}
	if batch.Updates[0].ID != 12 || batch.Updates[0].SortOrder != 1 {
		t.Fatalf("unexpected first update %+v", batch.Updates[0])
	}
}

func TestReorderBatchesOnlyPersistedMembers(t *testing.T) {
	s := NewState(testTree())
	walking := refByLabel(t, s, "Walking")
	question := refByLabel(t, s, "Can the patient walk unassisted?")

	s, _ = Reduce(s, AddQuestion{Ref: "q-new", SectionRef: walking, Label: "How far?", Type: "text"})
	s, effects := Reduce(s, Reorder{Kind: KindQuestion, ParentRef: walking, OrderedRefs: []string{"q-new", question}})

	if s.Questions["q-new"].SortOrder != 1 || s.Questions[question].SortOrder != 2 {
		t.Fatal("all members get new local orders, persisted or not")
	}
	batch := effects[0].(BatchSortEffect)
	if len(batch.Updates) != 1 || batch.Updates[0].ID != 100 {
		t.Fatalf("only the persisted question belongs in the batch, got %+v", batch.Updates)
	}
}

func TestReorderOfUnsavedOnlyMakesNoCall(t *testing.T) {
	s := NewState(testTree())

	s, _ = Reduce(s, AddQuestion{Ref: "q-extra", SectionRef: refByLabel(t, s, "Balance"), Label: "Steadiness", Type: "single_select"})
	s, _ = Reduce(s, AddAnswer{Ref: "a-x", QuestionRef: "q-extra", Label: "Steady"})
	s, _ = Reduce(s, AddAnswer{Ref: "a-y", QuestionRef: "q-extra", Label: "Unsteady"})

	s, effects := Reduce(s, Reorder{Kind: KindAnswer, ParentRef: "q-extra", OrderedRefs: []string{"a-y", "a-x"}})
	if len(effects) != 0 {
		t.Fatalf("no persisted member means no batch, got %d effects", len(effects))
	}
	if got := s.Questions["q-extra"].AnswerRefs; got[0] != "a-y" || got[1] != "a-x" {
		t.Fatalf("answer display order not applied: %v", got)
	}
}

func TestReorderRejectsIncompleteSet(t *testing.T) {
	s := NewState(testTree())
	parent := refByLabel(t, s, "Mobility")
	walking := refByLabel(t, s, "Walking")

	next, effects := Reduce(s, Reorder{Kind: KindSection, ParentRef: parent, OrderedRefs: []string{walking}})
	if len(effects) != 0 {
		t.Fatalf("partial reorder must be refused, got %d effects", len(effects))
	}
	if lastMessage(t, next).Severity != SeverityError {
		t.Fatal("expected a rejection message")
	}
	if next.Sections[walking].SortOrder != s.Sections[walking].SortOrder {
		t.Fatal("a refused reorder must not touch sort orders")
	}
}

func TestReorderSettledClearsMarksAndReloads(t *testing.T) {
	s := NewState(testTree())
	parent := refByLabel(t, s, "Mobility")
	walking := refByLabel(t, s, "Walking")
	balance := refByLabel(t, s, "Balance")

	s, _ = Reduce(s, Reorder{Kind: KindSection, ParentRef: parent, OrderedRefs: []string{balance, walking}})
	if !s.Tracker.Has(walking) {
		t.Fatal("persisted member should carry a pending sort mark")
	}

	s, effects := Reduce(s, ReorderSettled{Kind: KindSection, ParentRef: parent})
	if s.Tracker.Has(walking) || s.Tracker.Has(balance) {
		t.Fatal("settled batch should clear the pending sort marks")
	}
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	if _, ok := effects[0].(ReloadTreeEffect); !ok {
		t.Fatalf("settlement must always reload, got %T", effects[0])
	}
}

func TestReorderSettledReloadsEvenOnFailure(t *testing.T) {
	s := NewState(testTree())
	parent := refByLabel(t, s, "Mobility")
	walking := refByLabel(t, s, "Walking")
	balance := refByLabel(t, s, "Balance")

	s, _ = Reduce(s, Reorder{Kind: KindSection, ParentRef: parent, OrderedRefs: []string{balance, walking}})
	s, effects := Reduce(s, ReorderSettled{Kind: KindSection, ParentRef: parent, Err: errors.New("timeout")})

	if _, ok := effects[0].(ReloadTreeEffect); !ok {
		t.Fatal("the reload is what reconciles a partially applied batch")
	}
	if lastMessage(t, s).Severity != SeverityError {
		t.Fatal("expected a failure message")
	}
}
