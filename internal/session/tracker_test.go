package session

import "testing"

func TestRecordMergesFieldsAcrossEdits(t *testing.T) {
	tracker := make(Tracker)

	tracker.Record("q1", MutationUpdate, map[string]any{"label": "A"}, map[string]any{"label": "Original"})
	tracker.Record("q1", MutationUpdate, map[string]any{"required": true}, map[string]any{"required": false})

	mutation := tracker.Get("q1")
	if mutation.Fields["label"] != "A" || mutation.Fields["required"] != true {
		t.Fatalf("fields not merged: %+v", mutation.Fields)
	}
}

func TestPriorIsCapturedOncePerField(t *testing.T) {
	tracker := make(Tracker)

	tracker.Record("q1", MutationUpdate, map[string]any{"label": "A"}, map[string]any{"label": "Original"})
	tracker.Record("q1", MutationUpdate, map[string]any{"label": "B"}, map[string]any{"label": "A"})

	if got := tracker.Get("q1").Prior["label"]; got != "Original" {
		t.Fatalf("prior = %v, want the pre-edit value", got)
	}
}

func TestAddKeepsPrecedenceOverUpdate(t *testing.T) {
	tracker := make(Tracker)

	tracker.Record("q1", MutationAdd, map[string]any{"label": "New"}, nil)
	tracker.Record("q1", MutationUpdate, map[string]any{"label": "Renamed"}, map[string]any{"label": "New"})

	mutation := tracker.Get("q1")
	if mutation.Action != MutationAdd {
		t.Fatalf("action = %s, an unpersisted entity must stay an add", mutation.Action)
	}
	if mutation.Fields["label"] != "Renamed" {
		t.Fatal("the merged fields still carry the latest value")
	}
}

func TestDeleteAlwaysWins(t *testing.T) {
	tracker := make(Tracker)

	tracker.Record("q1", MutationUpdate, map[string]any{"label": "A"}, map[string]any{"label": "Original"})
	tracker.Record("q1", MutationDelete, nil, nil)
	tracker.Record("q1", MutationUpdate, map[string]any{"label": "B"}, nil)

	if tracker.Get("q1").Action != MutationDelete {
		t.Fatal("a recorded delete must not be downgraded")
	}
}

func TestHasPendingOutsideEditGroup(t *testing.T) {
	tracker := make(Tracker)
	tracker.Record("q1", MutationUpdate, map[string]any{"label": "A"}, nil)
	tracker.Record("a1", MutationUpdate, map[string]any{"label": "Yes!"}, nil)

	group := map[string]bool{"q1": true, "a1": true}
	if tracker.HasPendingOutside(group) {
		t.Fatal("a question and its answers edit as one unit")
	}
	if !tracker.HasPendingOutside(map[string]bool{"q2": true}) {
		t.Fatal("pending work elsewhere must block a different entity's edit")
	}
}
