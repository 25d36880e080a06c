package session

import (
	"strings"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/rs/zerolog/log"
)

// Reduce folds one action into a snapshot, returning the next snapshot and
// the effects to execute. The input state is never mutated.
func Reduce(prev *State, action Action) (*State, []Effect) {
	s := prev.Clone()
	var effects []Effect

	switch a := action.(type) {
	case TreeLoaded:
		s = NewState(a.Tree)

	case TreeReloaded:
		s = s.reloadTree(a)

	case AddSection:
		effects = s.applyAddSection(a)
	case EditSection:
		effects = s.applyEditSection(a)
	case AddQuestion:
		effects = s.applyAddQuestion(a)
	case EditQuestion:
		effects = s.applyEditQuestion(a)
	case AddAnswer:
		effects = s.applyAddAnswer(a)
	case EditAnswer:
		effects = s.applyEditAnswer(a)
	case DiscardEdits:
		s.applyDiscard(a.Ref)
	case DeleteEntity:
		effects = s.applyDelete(a)
	case DeleteResolved:
		effects = s.applyDeleteResolved(a)

	case SaveEntity:
		effects = s.applySave(a)
	case MoveQuestion:
		effects = s.applyMove(a)
	case LibraryChecked:
		effects = s.applyLibraryChecked(a)
	case PersistResolved:
		effects = s.applyPersistResolved(a)
	case AnswersAttached:
		effects = s.applyAnswersAttached(a)
	case BundlePublished:
		s.applyBundlePublished(a)
	case SourceDeleted:
		effects = s.applySourceDeleted(a)

	case Reorder:
		effects = s.applyReorder(a)
	case ReorderSettled:
		effects = s.applyReorderSettled(a)

	case LoadRelationships:
		effects = s.applyLoadRelationships(a)
	case RelationshipsLoaded:
		s.applyRelationshipsLoaded(a)
	case LoadGoals:
		effects = s.applyLoadGoals(a)
	case GoalsLoaded:
		s.applyGoalsLoaded(a)
	case LoadInterventions:
		effects = s.applyLoadInterventions(a)
	case InterventionsLoaded:
		s.applyInterventionsLoaded(a)
	case ToggleProblem:
		s.applyToggleProblem(a)
	case ToggleGoal:
		s.applyToggleGoal(a)
	case AddLink:
		effects = s.applyAddLink(a)
	case RemoveLink:
		effects = s.applyRemoveLink(a)
	case LinkMutated:
		effects = s.applyLinkMutated(a)

	case SearchChanged:
		effects = s.applySearchChanged(a)
	case SearchCleared:
		s.applySearchCleared(a.Slot)
	case SearchResolved:
		s.applySearchResolved(a)

	case ActivateScoringModel:
		s.ActiveModelID = a.ModelID
	case SetScore:
		effects = s.applySetScore(a)
	case ScoreSaved:
		s.applyScoreSaved(a)

	default:
		log.Warn().Msgf("session: unhandled action %T", action)
	}

	return s, effects
}

// editable gates mutations by assessment status; published content is
// read-only.
func (s *State) editable() bool {
	if !s.Status.Editable() {
		s.pushMessage(SeverityWarning, "this assessment is published and cannot be edited", "")
		return false
	}
	return true
}

// lockFree enforces single-writer editing: while one entity (and its answer
// group) has unsaved work, edits to anything else are refused.
func (s *State) lockFree(ref string) bool {
	if s.Tracker.HasPendingOutside(s.editGroup(ref)) {
		s.pushMessage(SeverityWarning, "finish or discard the current edit before changing another item", "")
		return false
	}
	return true
}

func (s *State) applyAddSection(a AddSection) []Effect {
	if !s.editable() || !s.lockFree(a.Ref) {
		return nil
	}
	if a.ParentRef != "" {
		if _, ok := s.Sections[a.ParentRef]; !ok {
			s.pushMessage(SeverityError, "parent section not found", "")
			return nil
		}
	}
	node := &SectionNode{
		Ref:       a.Ref,
		ParentRef: a.ParentRef,
		Label:     a.Label,
		SortOrder: len(s.SubsectionRefs(a.ParentRef)) + 1,
		Unsaved:   true,
	}
	s.Sections[a.Ref] = node
	s.Tracker.Record(a.Ref, MutationAdd, map[string]any{"label": a.Label}, nil)
	return nil
}

func (s *State) applyEditSection(a EditSection) []Effect {
	section, ok := s.Sections[a.Ref]
	if !ok {
		return nil
	}
	if !s.editable() || !s.lockFree(a.Ref) {
		return nil
	}
	if a.Label != nil {
		s.Tracker.Record(a.Ref, MutationUpdate,
			map[string]any{"label": *a.Label},
			map[string]any{"label": section.Label})
		section.Label = *a.Label
		section.Unsaved = true
	}
	return nil
}

func (s *State) applyAddQuestion(a AddQuestion) []Effect {
	if !s.editable() || !s.lockFree(a.Ref) {
		return nil
	}
	section, ok := s.Sections[a.SectionRef]
	if !ok || section.ParentRef == "" {
		s.pushMessage(SeverityError, "questions can only be added to a subsection", "")
		return nil
	}
	node := &QuestionNode{
		Ref:        a.Ref,
		SectionRef: a.SectionRef,
		Label:      a.Label,
		Type:       a.Type,
		Required:   a.Required,
		Tooltip:    a.Tooltip,
		Voice:      a.Voice,
		SortOrder:  len(s.QuestionRefs(a.SectionRef)) + 1,
		Unsaved:    true,
	}
	s.Questions[a.Ref] = node
	s.Tracker.Record(a.Ref, MutationAdd, map[string]any{"label": a.Label, "type": string(a.Type)}, nil)
	return nil
}

func (s *State) applyEditQuestion(a EditQuestion) []Effect {
	question, ok := s.Questions[a.Ref]
	if !ok {
		return nil
	}
	if !s.editable() || !s.lockFree(a.Ref) {
		return nil
	}
	fields := map[string]any{}
	prior := map[string]any{}
	if a.Label != nil {
		fields["label"], prior["label"] = *a.Label, question.Label
		question.Label = *a.Label
	}
	if a.Required != nil {
		fields["required"], prior["required"] = *a.Required, question.Required
		question.Required = *a.Required
	}
	if a.Tooltip != nil {
		fields["tooltip"], prior["tooltip"] = *a.Tooltip, question.Tooltip
		question.Tooltip = *a.Tooltip
	}
	if a.Voice != nil {
		fields["voice"], prior["voice"] = *a.Voice, question.Voice
		question.Voice = *a.Voice
	}
	if len(fields) == 0 {
		return nil
	}
	question.Unsaved = true
	s.Tracker.Record(a.Ref, MutationUpdate, fields, prior)
	return nil
}

func (s *State) applyAddAnswer(a AddAnswer) []Effect {
	// The lock group is the owning question's; the answer's own ref does not
	// exist yet and would resolve to a group of one.
	if !s.editable() || !s.lockFree(a.QuestionRef) {
		return nil
	}
	question, ok := s.Questions[a.QuestionRef]
	if !ok {
		s.pushMessage(SeverityError, "question not found", "")
		return nil
	}
	if !question.Type.Selectable() {
		s.pushMessage(SeverityError, "answers are only valid on select questions", "")
		return nil
	}
	node := &AnswerNode{
		Ref:                a.Ref,
		QuestionRef:        a.QuestionRef,
		Label:              a.Label,
		SortOrder:          len(question.AnswerRefs) + 1,
		SecondaryInputType: a.SecondaryInputType,
		MutuallyExclusive:  a.MutuallyExclusive,
		Tooltip:            a.Tooltip,
		Unsaved:            true,
	}
	s.Answers[a.Ref] = node
	question.AnswerRefs = append(question.AnswerRefs, a.Ref)
	s.Tracker.Record(a.Ref, MutationAdd, map[string]any{"label": a.Label}, nil)
	return nil
}

func (s *State) applyEditAnswer(a EditAnswer) []Effect {
	answer, ok := s.Answers[a.Ref]
	if !ok {
		return nil
	}
	if !s.editable() || !s.lockFree(a.Ref) {
		return nil
	}
	fields := map[string]any{}
	prior := map[string]any{}
	if a.Label != nil {
		fields["label"], prior["label"] = *a.Label, answer.Label
		answer.Label = *a.Label
	}
	if a.SecondaryInputType != nil {
		fields["secondary_input_type"], prior["secondary_input_type"] = *a.SecondaryInputType, answer.SecondaryInputType
		answer.SecondaryInputType = *a.SecondaryInputType
	}
	if a.MutuallyExclusive != nil {
		fields["mutually_exclusive"], prior["mutually_exclusive"] = *a.MutuallyExclusive, answer.MutuallyExclusive
		answer.MutuallyExclusive = *a.MutuallyExclusive
	}
	if a.Tooltip != nil {
		fields["tooltip"], prior["tooltip"] = *a.Tooltip, answer.Tooltip
		answer.Tooltip = *a.Tooltip
	}
	if len(fields) == 0 {
		return nil
	}
	answer.Unsaved = true
	s.Tracker.Record(a.Ref, MutationUpdate, fields, prior)
	return nil
}

// applyDiscard reverts an entity to its last-saved snapshot.
func (s *State) applyDiscard(ref string) {
	mutation := s.Tracker.Get(ref)
	if mutation == nil {
		return
	}
	if mutation.Action == MutationAdd {
		s.removeLocal(ref)
		return
	}
	if section, ok := s.Sections[ref]; ok {
		if v, ok := mutation.Prior["label"].(string); ok {
			section.Label = v
		}
		section.Unsaved = false
	}
	if question, ok := s.Questions[ref]; ok {
		if v, ok := mutation.Prior["label"].(string); ok {
			question.Label = v
		}
		if v, ok := mutation.Prior["required"].(bool); ok {
			question.Required = v
		}
		if v, ok := mutation.Prior["tooltip"].(string); ok {
			question.Tooltip = v
		}
		if v, ok := mutation.Prior["voice"].(string); ok {
			question.Voice = v
		}
		question.Unsaved = false
	}
	if answer, ok := s.Answers[ref]; ok {
		if v, ok := mutation.Prior["label"].(string); ok {
			answer.Label = v
		}
		if v, ok := mutation.Prior["secondary_input_type"].(string); ok {
			answer.SecondaryInputType = v
		}
		if v, ok := mutation.Prior["mutually_exclusive"].(bool); ok {
			answer.MutuallyExclusive = v
		}
		if v, ok := mutation.Prior["tooltip"].(string); ok {
			answer.Tooltip = v
		}
		answer.Unsaved = false
	}
	s.Tracker.Clear(ref)
}

// removeLocal drops a never-persisted entity and its descendants from memory.
func (s *State) removeLocal(ref string) {
	if question, ok := s.Questions[ref]; ok {
		for _, aRef := range question.AnswerRefs {
			delete(s.Answers, aRef)
			s.Tracker.Clear(aRef)
		}
		sectionRef := question.SectionRef
		delete(s.Questions, ref)
		s.Tracker.Clear(ref)
		s.resequenceQuestions(sectionRef)
		return
	}
	if answer, ok := s.Answers[ref]; ok {
		if question, ok := s.Questions[answer.QuestionRef]; ok {
			question.AnswerRefs = removeRef(question.AnswerRefs, ref)
		}
		delete(s.Answers, ref)
		s.Tracker.Clear(ref)
		s.resequenceAnswers(answer.QuestionRef)
		return
	}
	if section, ok := s.Sections[ref]; ok {
		for _, qRef := range s.QuestionRefs(ref) {
			s.removeLocal(qRef)
		}
		for _, subRef := range s.SubsectionRefs(ref) {
			s.removeLocal(subRef)
		}
		parentRef := section.ParentRef
		delete(s.Sections, ref)
		s.Tracker.Clear(ref)
		s.resequenceSections(parentRef)
	}
}

func removeRef(refs []string, ref string) []string {
	out := refs[:0]
	for _, r := range refs {
		if r != ref {
			out = append(out, r)
		}
	}
	return out
}

func (s *State) resequenceAnswers(questionRef string) {
	question, ok := s.Questions[questionRef]
	if !ok {
		return
	}
	order := 1
	for _, aRef := range question.AnswerRefs {
		if answer, ok := s.Answers[aRef]; ok && !answer.Deleted {
			answer.SortOrder = order
			order++
		}
	}
}

func (s *State) resequenceQuestions(sectionRef string) {
	for i, qRef := range s.QuestionRefs(sectionRef) {
		s.Questions[qRef].SortOrder = i + 1
	}
}

func (s *State) resequenceSections(parentRef string) {
	for i, ref := range s.SubsectionRefs(parentRef) {
		s.Sections[ref].SortOrder = i + 1
	}
}

// applyDelete removes purely local entities immediately with no network
// call; persisted entities are marked deleted and confirmed by the backend.
func (s *State) applyDelete(a DeleteEntity) []Effect {
	if !s.editable() {
		return nil
	}
	if save, ok := s.Saves[a.Ref]; ok && !save.finished() {
		s.pushMessage(SeverityWarning, "a save is in progress for this item", "")
		return nil
	}
	if !s.Persisted(a.Ref) {
		s.removeLocal(a.Ref)
		return nil
	}

	id := s.IDOf(a.Ref)
	switch a.Kind {
	case KindSection:
		if section, ok := s.Sections[a.Ref]; ok {
			section.Deleted = true
		}
	case KindQuestion:
		if question, ok := s.Questions[a.Ref]; ok {
			question.Deleted = true
		}
	case KindAnswer:
		if answer, ok := s.Answers[a.Ref]; ok {
			answer.Deleted = true
		}
	}
	s.Tracker.Record(a.Ref, MutationDelete, nil, nil)
	return []Effect{DeleteEffect{Kind: a.Kind, Ref: a.Ref, ID: id}}
}

func (s *State) applyDeleteResolved(a DeleteResolved) []Effect {
	if a.Err != nil {
		// The optimistic mark stays until the next reload reconciles it.
		// The tracker entry goes now so the failed delete is not replayed
		// across reloads and does not hold the edit lock.
		s.Tracker.Clear(a.Ref)
		s.pushMessage(SeverityError, "delete failed: "+a.Err.Error(), "delete")
		return nil
	}
	delete(s.Bindings, a.Ref)
	s.removeLocal(a.Ref)
	s.pushMessage(SeveritySuccess, "deleted", "")
	return nil
}

func (s *State) applySearchChanged(a SearchChanged) []Effect {
	if strings.TrimSpace(a.Text) == "" {
		s.applySearchCleared(a.Slot)
		return nil
	}
	ctx := SearchContext{Type: a.Type, ScopeID: a.ScopeID, Text: a.Text}
	s.Searches[a.Slot] = &ctx
	return []Effect{TypeaheadEffect{Slot: a.Slot, Ctx: ctx}}
}

func (s *State) applySearchCleared(slot SearchSlot) {
	s.Searches[slot] = nil
	delete(s.Results, slot)
}

func (s *State) applySearchResolved(a SearchResolved) {
	if !s.currentSearch(a.Slot, a.Ctx) {
		// The field was cleared or retyped while this search was in flight.
		return
	}
	if a.Err != nil {
		log.Warn().Err(a.Err).Str("slot", string(a.Slot)).Msg("session: typeahead failed")
		delete(s.Results, a.Slot)
		return
	}
	s.Results[a.Slot] = a.Candidates
}

func (s *State) applySetScore(a SetScore) []Effect {
	if s.ActiveModelID == 0 {
		s.pushMessage(SeverityWarning, "no scoring model is active for editing", "")
		return nil
	}
	if !s.Persisted(a.AnswerRef) {
		s.pushMessage(SeverityWarning, "save the answer before scoring it", "")
		return nil
	}
	key := ScoreKey{AnswerRef: a.AnswerRef, ModelID: s.ActiveModelID}
	s.Scores[key] = a.Value
	return []Effect{SetScoreEffect{
		AnswerRef: a.AnswerRef,
		Req: contentapi.ScoreSet{
			ModelID:  s.ActiveModelID,
			AnswerID: s.IDOf(a.AnswerRef),
			Value:    a.Value,
		},
	}}
}

func (s *State) applyScoreSaved(a ScoreSaved) {
	if a.Err != nil {
		s.pushMessage(SeverityError, "score not saved: "+a.Err.Error(), "score")
	}
}

// reloadTree swaps in fresh tree content while carrying over session-scoped
// state. Relationship caches survive by canonical answer id, and pending
// local work is grafted back in so a reload never costs unsaved edits.
func (s *State) reloadTree(a TreeReloaded) *State {
	if a.Err != nil {
		s.pushMessage(SeverityError, "reload failed: "+a.Err.Error(), "reload")
		return s
	}

	relByID := make(map[uint]*RelationshipSet, len(s.Relationships))
	for ref, set := range s.Relationships {
		if id := s.Bindings[ref]; id != 0 {
			relByID[id] = set
		}
	}
	scoreByID := make(map[uint]map[uint]string)
	for key, value := range s.Scores {
		if id := s.Bindings[key.AnswerRef]; id != 0 {
			if scoreByID[id] == nil {
				scoreByID[id] = make(map[uint]string)
			}
			scoreByID[id][key.ModelID] = value
		}
	}

	next := NewState(a.Tree)
	next.Messages = s.Messages
	next.Searches = s.Searches
	next.Results = s.Results
	next.ActiveModelID = s.ActiveModelID

	newRefByID := make(map[uint]string, len(next.Bindings))
	for ref, id := range next.Bindings {
		newRefByID[id] = ref
	}

	for ref, id := range next.Bindings {
		if set, ok := relByID[id]; ok {
			if _, isAnswer := next.Answers[ref]; isAnswer {
				next.Relationships[ref] = set
			}
		}
		if byModel, ok := scoreByID[id]; ok {
			if _, isAnswer := next.Answers[ref]; isAnswer {
				for modelID, value := range byModel {
					next.Scores[ScoreKey{AnswerRef: ref, ModelID: modelID}] = value
				}
			}
		}
	}

	s.carryPending(next, newRefByID)
	return next
}

// carryPending grafts never-persisted local entities onto the reloaded
// snapshot and replays pending mutations onto persisted ones. The edit lock
// keeps at most one edit group pending, so no ordering between grafts
// matters beyond section before question before answer.
func (s *State) carryPending(next *State, newRefByID map[uint]string) {
	for ref, node := range s.Sections {
		if s.Bindings[ref] != 0 {
			continue
		}
		copied := *node
		if node.ParentRef != "" {
			parentRef, ok := newRefByID[s.Bindings[node.ParentRef]]
			if !ok {
				continue
			}
			copied.ParentRef = parentRef
		}
		copied.SortOrder = len(next.SubsectionRefs(copied.ParentRef)) + 1
		next.Sections[ref] = &copied
	}
	for ref, node := range s.Questions {
		if s.Bindings[ref] != 0 {
			continue
		}
		sectionRef, ok := newRefByID[s.Bindings[node.SectionRef]]
		if !ok {
			continue
		}
		copied := *node
		copied.SectionRef = sectionRef
		copied.AnswerRefs = append([]string(nil), node.AnswerRefs...)
		copied.SortOrder = len(next.QuestionRefs(sectionRef)) + 1
		next.Questions[ref] = &copied
	}
	for ref, node := range s.Answers {
		if s.Bindings[ref] != 0 {
			continue
		}
		copied := *node
		if id := s.Bindings[node.QuestionRef]; id != 0 {
			questionRef, ok := newRefByID[id]
			if !ok {
				continue
			}
			copied.QuestionRef = questionRef
			question := next.Questions[questionRef]
			question.AnswerRefs = append(question.AnswerRefs, ref)
			copied.SortOrder = len(question.AnswerRefs)
		} else if _, ok := next.Questions[node.QuestionRef]; !ok {
			// The owning question was neither persisted nor carried.
			continue
		}
		next.Answers[ref] = &copied
	}

	for ref, mutation := range s.Tracker {
		target := ref
		if id := s.Bindings[ref]; id != 0 {
			newRef, ok := newRefByID[id]
			if !ok {
				continue
			}
			target = newRef
		} else if !next.hasNode(ref) {
			continue
		}
		next.Tracker.Record(target, mutation.Action, mutation.Fields, mutation.Prior)
		next.reapplyPending(target, mutation)
	}
}

func (s *State) hasNode(ref string) bool {
	if _, ok := s.Sections[ref]; ok {
		return true
	}
	if _, ok := s.Questions[ref]; ok {
		return true
	}
	_, ok := s.Answers[ref]
	return ok
}

// reapplyPending replays a pending mutation's visible effect onto a reloaded
// node so the snapshot matches what the tracker says is outstanding.
func (s *State) reapplyPending(ref string, mutation *Mutation) {
	if mutation.Action == MutationDelete {
		switch {
		case s.Sections[ref] != nil:
			s.Sections[ref].Deleted = true
		case s.Questions[ref] != nil:
			s.Questions[ref].Deleted = true
		case s.Answers[ref] != nil:
			s.Answers[ref].Deleted = true
		}
		return
	}
	if mutation.Action != MutationUpdate {
		return
	}
	switch {
	case s.Sections[ref] != nil:
		section := s.Sections[ref]
		if v, ok := mutation.Fields["label"].(string); ok {
			section.Label = v
		}
		section.Unsaved = true
	case s.Questions[ref] != nil:
		question := s.Questions[ref]
		if v, ok := mutation.Fields["label"].(string); ok {
			question.Label = v
		}
		if v, ok := mutation.Fields["required"].(bool); ok {
			question.Required = v
		}
		if v, ok := mutation.Fields["tooltip"].(string); ok {
			question.Tooltip = v
		}
		if v, ok := mutation.Fields["voice"].(string); ok {
			question.Voice = v
		}
		question.Unsaved = true
	case s.Answers[ref] != nil:
		answer := s.Answers[ref]
		if v, ok := mutation.Fields["label"].(string); ok {
			answer.Label = v
		}
		if v, ok := mutation.Fields["secondary_input_type"].(string); ok {
			answer.SecondaryInputType = v
		}
		if v, ok := mutation.Fields["mutually_exclusive"].(bool); ok {
			answer.MutuallyExclusive = v
		}
		if v, ok := mutation.Fields["tooltip"].(string); ok {
			answer.Tooltip = v
		}
		answer.Unsaved = true
	}
}

// libraryTypeFor maps an entity kind to its library content type.
func libraryTypeFor(kind EntityKind) library.ContentType {
	switch kind {
	case KindSection:
		return library.TypeSection
	case KindQuestion:
		return library.TypeQuestion
	default:
		return library.TypeAnswer
	}
}
