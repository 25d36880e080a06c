package session

import "github.com/lumahealth/authoring/internal/contentapi"

// applyReorder reassigns contiguous sort orders across one sibling group and
// emits a single batch for the persisted members. Unsaved members keep their
// new position locally and persist it whenever they are saved.
func (s *State) applyReorder(a Reorder) []Effect {
	if !s.editable() {
		return nil
	}

	var current []string
	switch a.Kind {
	case KindSection:
		current = s.SubsectionRefs(a.ParentRef)
	case KindQuestion:
		current = s.QuestionRefs(a.ParentRef)
	case KindAnswer:
		question, ok := s.Questions[a.ParentRef]
		if !ok {
			return nil
		}
		for _, aRef := range question.AnswerRefs {
			if answer, ok := s.Answers[aRef]; ok && !answer.Deleted {
				current = append(current, aRef)
			}
		}
	}
	if !sameMembers(current, a.OrderedRefs) {
		s.pushMessage(SeverityError, "reorder does not match the current item set", "reorder")
		return nil
	}

	var updates []contentapi.SortUpdate
	for i, ref := range a.OrderedRefs {
		order := i + 1
		switch a.Kind {
		case KindSection:
			s.Sections[ref].SortOrder = order
		case KindQuestion:
			s.Questions[ref].SortOrder = order
		case KindAnswer:
			s.Answers[ref].SortOrder = order
		}
		if id := s.IDOf(ref); id != 0 {
			s.Tracker.Record(ref, MutationUpdate, map[string]any{"sort_order": order}, nil)
			updates = append(updates, contentapi.SortUpdate{ID: id, SortOrder: order})
		}
	}
	if a.Kind == KindAnswer {
		if question, ok := s.Questions[a.ParentRef]; ok {
			question.AnswerRefs = append(question.AnswerRefs[:0], a.OrderedRefs...)
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return []Effect{BatchSortEffect{Kind: a.Kind, ParentRef: a.ParentRef, Updates: updates}}
}

// applyReorderSettled clears the batch's pending marks and requests a full
// reload. The reload, not the individual update responses, is what restores
// consistency after a batch whose parts may land in any order.
func (s *State) applyReorderSettled(a ReorderSettled) []Effect {
	if a.Err != nil {
		s.pushMessage(SeverityError, "reorder failed: "+a.Err.Error(), "reorder")
	}

	for ref, mutation := range s.Tracker {
		if mutation.Action != MutationUpdate {
			continue
		}
		if _, ok := mutation.Fields["sort_order"]; !ok {
			continue
		}
		delete(mutation.Fields, "sort_order")
		delete(mutation.Prior, "sort_order")
		if len(mutation.Fields) == 0 {
			s.Tracker.Clear(ref)
		}
	}

	return []Effect{ReloadTreeEffect{}}
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, ref := range a {
		set[ref] = true
	}
	for _, ref := range b {
		if !set[ref] {
			return false
		}
	}
	return true
}
