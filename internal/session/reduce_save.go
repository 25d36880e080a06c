package session

import (
	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
)

// SavePhase tracks where a save workflow currently sits. Phases advance only
// when the matching completion action folds back in.
type SavePhase string

const (
	PhaseLibraryChecking SavePhase = "library_checking"
	PhasePersisting      SavePhase = "persisting"
	PhaseAttaching       SavePhase = "attaching"
	PhaseDeletingSource  SavePhase = "deleting_source"
	PhaseDone            SavePhase = "done"
	PhaseFailed          SavePhase = "failed"
)

// SaveState is one in-flight save or move workflow, keyed by the owning
// entity's ref. Queue holds the refs still awaiting a library check; Cursor
// points at the one currently in flight. Persistence resumes exactly once,
// after the last queued check resolves.
type SaveState struct {
	Kind  EntityKind
	Ref   string
	Phase SavePhase

	Queue  []string
	Cursor int

	IsNew bool

	Move             bool
	TargetSectionRef string
	OriginalID       uint

	FailedStage string
}

func (w *SaveState) finished() bool {
	return w.Phase == PhaseDone || w.Phase == PhaseFailed
}

func (s *State) applySave(a SaveEntity) []Effect {
	if !s.editable() {
		return nil
	}
	if save, ok := s.Saves[a.Ref]; ok && !save.finished() {
		s.pushMessage(SeverityWarning, "a save is already in progress for this item", "")
		return nil
	}

	switch a.Kind {
	case KindSection:
		return s.startSectionSave(a.Ref)
	case KindQuestion:
		return s.startQuestionSave(a.Ref)
	case KindAnswer:
		return s.startAnswerSave(a.Ref)
	}
	return nil
}

func (s *State) startSectionSave(ref string) []Effect {
	section, ok := s.Sections[ref]
	if !ok {
		return nil
	}
	if err := s.validateSection(ref); err != nil {
		s.pushMessage(SeverityError, err.Reason, "validate")
		return nil
	}
	if section.ParentRef != "" && !s.Persisted(section.ParentRef) {
		s.pushMessage(SeverityError, "save the parent section first", "validate")
		return nil
	}

	save := &SaveState{Kind: KindSection, Ref: ref, IsNew: !s.Persisted(ref)}
	s.Saves[ref] = save

	if save.IsNew && section.LibraryID == 0 {
		save.Phase = PhaseLibraryChecking
		save.Queue = []string{ref}
		return []Effect{s.checkEffect(save, ref)}
	}
	return s.proceedToPersist(save)
}

func (s *State) startQuestionSave(ref string) []Effect {
	question, ok := s.Questions[ref]
	if !ok {
		return nil
	}
	if err := s.validateQuestion(ref, question.SectionRef); err != nil {
		s.pushMessage(SeverityError, err.Reason, "validate")
		return nil
	}
	if !s.Persisted(question.SectionRef) {
		s.pushMessage(SeverityError, "save the subsection first", "validate")
		return nil
	}

	save := &SaveState{Kind: KindQuestion, Ref: ref, IsNew: !s.Persisted(ref)}
	s.Saves[ref] = save

	// One sequential check per unsaved item that is not already a library
	// pick: the question itself, then each of its answers.
	if save.IsNew && question.LibraryID == 0 {
		save.Queue = append(save.Queue, ref)
	}
	for _, aRef := range question.AnswerRefs {
		answer, ok := s.Answers[aRef]
		if !ok || answer.Deleted || s.Persisted(aRef) {
			continue
		}
		if answer.LibraryID == 0 {
			save.Queue = append(save.Queue, aRef)
		}
	}
	if len(save.Queue) > 0 {
		save.Phase = PhaseLibraryChecking
		return []Effect{s.checkEffect(save, save.Queue[0])}
	}
	return s.proceedToPersist(save)
}

func (s *State) startAnswerSave(ref string) []Effect {
	answer, ok := s.Answers[ref]
	if !ok {
		return nil
	}
	if err := s.validateAnswer(ref); err != nil {
		s.pushMessage(SeverityError, err.Reason, "validate")
		return nil
	}
	if !s.Persisted(answer.QuestionRef) {
		s.pushMessage(SeverityError, "save the question first", "validate")
		return nil
	}

	save := &SaveState{Kind: KindAnswer, Ref: ref, IsNew: !s.Persisted(ref)}
	s.Saves[ref] = save

	if save.IsNew && answer.LibraryID == 0 {
		save.Phase = PhaseLibraryChecking
		save.Queue = []string{ref}
		return []Effect{s.checkEffect(save, ref)}
	}
	return s.proceedToPersist(save)
}

// applyMove starts a move workflow: recreate in the target subsection, copy
// answers across, then delete the original. There is no rollback; a failure
// part-way leaves both copies visible until the user resolves it.
func (s *State) applyMove(a MoveQuestion) []Effect {
	if !s.editable() || !s.lockFree(a.Ref) {
		return nil
	}
	question, ok := s.Questions[a.Ref]
	if !ok {
		return nil
	}
	if save, ok := s.Saves[a.Ref]; ok && !save.finished() {
		s.pushMessage(SeverityWarning, "a save is already in progress for this item", "")
		return nil
	}
	if !s.Persisted(a.Ref) {
		// Never persisted, so a move is just a local reparent.
		oldSection := question.SectionRef
		question.SectionRef = a.TargetSectionRef
		question.SortOrder = len(s.QuestionRefs(a.TargetSectionRef))
		s.resequenceQuestions(oldSection)
		return nil
	}
	target, ok := s.Sections[a.TargetSectionRef]
	if !ok || target.ParentRef == "" || !s.Persisted(a.TargetSectionRef) {
		s.pushMessage(SeverityError, "move target must be a saved subsection", "validate")
		return nil
	}
	if a.TargetSectionRef == question.SectionRef {
		return nil
	}
	if err := s.validateQuestion(a.Ref, a.TargetSectionRef); err != nil {
		s.pushMessage(SeverityError, err.Reason, "validate")
		return nil
	}

	save := &SaveState{
		Kind:             KindQuestion,
		Ref:              a.Ref,
		IsNew:            false,
		Move:             true,
		TargetSectionRef: a.TargetSectionRef,
		OriginalID:       s.IDOf(a.Ref),
	}
	s.Saves[a.Ref] = save
	return s.proceedToPersist(save)
}

func (s *State) checkEffect(save *SaveState, targetRef string) Effect {
	var (
		kind  EntityKind
		label string
		scope uint
	)
	switch {
	case s.Sections[targetRef] != nil:
		kind, label = KindSection, s.Sections[targetRef].Label
	case s.Questions[targetRef] != nil:
		kind, label = KindQuestion, s.Questions[targetRef].Label
	case s.Answers[targetRef] != nil:
		answer := s.Answers[targetRef]
		kind, label = KindAnswer, answer.Label
		if question, ok := s.Questions[answer.QuestionRef]; ok {
			scope = question.LibraryID
		}
	}
	return CheckLibraryEffect{
		OwnerRef:  save.Ref,
		TargetRef: targetRef,
		Query: library.Query{
			Text:    label,
			Type:    libraryTypeFor(kind),
			ScopeID: scope,
		},
	}
}

// applyLibraryChecked folds one duplicate-check result in and either issues
// the next queued check or releases the workflow into persistence.
func (s *State) applyLibraryChecked(a LibraryChecked) []Effect {
	save, ok := s.Saves[a.OwnerRef]
	if !ok || save.Phase != PhaseLibraryChecking {
		return nil
	}
	if save.Cursor >= len(save.Queue) || save.Queue[save.Cursor] != a.TargetRef {
		return nil
	}

	if a.Err != nil {
		// A failed check never blocks the save; the item is created as new
		// content instead of deduplicated.
		s.pushMessage(SeverityWarning, "library lookup failed; saving as new content", "library")
	} else if a.Candidate != nil {
		s.adoptLibraryMatch(a.TargetRef, a.Candidate.ID)
	}

	save.Cursor++
	if save.Cursor < len(save.Queue) {
		return []Effect{s.checkEffect(save, save.Queue[save.Cursor])}
	}
	return s.proceedToPersist(save)
}

// adoptLibraryMatch swaps creation of new content for a reference to an
// existing library item.
func (s *State) adoptLibraryMatch(ref string, libraryID uint) {
	switch {
	case s.Sections[ref] != nil:
		s.Sections[ref].LibraryID = libraryID
	case s.Questions[ref] != nil:
		s.Questions[ref].LibraryID = libraryID
	case s.Answers[ref] != nil:
		s.Answers[ref].LibraryID = libraryID
	}
	s.Tracker.Record(ref, MutationLibraryReplace, map[string]any{"library_id": libraryID}, nil)
}

// proceedToPersist emits the single persistence effect for the workflow's
// current shape.
func (s *State) proceedToPersist(save *SaveState) []Effect {
	save.Phase = PhasePersisting

	switch save.Kind {
	case KindSection:
		section := s.Sections[save.Ref]
		if !save.IsNew {
			return []Effect{UpdateSectionEffect{
				Ref: save.Ref,
				ID:  s.IDOf(save.Ref),
				Req: contentapi.SectionUpdate{Label: section.Label, SortOrder: section.SortOrder},
			}}
		}
		req := contentapi.SectionCreate{
			AssessmentID: s.AssessmentID,
			ParentID:     s.IDOf(section.ParentRef),
			SortOrder:    section.SortOrder,
		}
		if section.LibraryID != 0 {
			req.LibraryID = section.LibraryID
		} else {
			req.Label = section.Label
		}
		return []Effect{CreateSectionEffect{Ref: save.Ref, Req: req}}

	case KindQuestion:
		question := s.Questions[save.Ref]
		if !save.IsNew && !save.Move {
			return []Effect{UpdateQuestionEffect{
				Ref: save.Ref,
				ID:  s.IDOf(save.Ref),
				Req: contentapi.QuestionUpdate{
					Label:     question.Label,
					Required:  question.Required,
					Tooltip:   question.Tooltip,
					Voice:     question.Voice,
					SortOrder: question.SortOrder,
				},
			}}
		}
		sectionRef := question.SectionRef
		sortOrder := question.SortOrder
		if save.Move {
			sectionRef = save.TargetSectionRef
			sortOrder = len(s.QuestionRefs(sectionRef)) + 1
		}
		req := contentapi.QuestionCreate{
			SectionID: s.IDOf(sectionRef),
			SortOrder: sortOrder,
		}
		if question.LibraryID != 0 && !save.Move {
			req.LibraryID = question.LibraryID
		} else {
			req.Label = question.Label
			req.Type = string(question.Type)
			req.Required = question.Required
			req.Tooltip = question.Tooltip
			req.Voice = question.Voice
		}
		return []Effect{CreateQuestionEffect{Ref: save.Ref, Req: req}}

	case KindAnswer:
		answer := s.Answers[save.Ref]
		if !save.IsNew {
			return []Effect{UpdateAnswerEffect{
				Ref: save.Ref,
				ID:  s.IDOf(save.Ref),
				Req: contentapi.AnswerUpdate{
					Label:              answer.Label,
					SortOrder:          answer.SortOrder,
					SecondaryInputType: answer.SecondaryInputType,
					MutuallyExclusive:  answer.MutuallyExclusive,
					Tooltip:            answer.Tooltip,
				},
			}}
		}
		save.Phase = PhaseAttaching
		return []Effect{AttachAnswersEffect{
			OwnerRef:   save.Ref,
			QuestionID: s.IDOf(answer.QuestionRef),
			AnswerRefs: []string{save.Ref},
			Answers:    []contentapi.AnswerCreate{s.answerCreate(answer)},
		}}
	}
	return nil
}

func (s *State) answerCreate(answer *AnswerNode) contentapi.AnswerCreate {
	req := contentapi.AnswerCreate{
		SortOrder:          answer.SortOrder,
		SecondaryInputType: answer.SecondaryInputType,
		MutuallyExclusive:  answer.MutuallyExclusive,
		Tooltip:            answer.Tooltip,
	}
	if answer.LibraryID != 0 {
		req.LibraryID = answer.LibraryID
	} else {
		req.Label = answer.Label
	}
	return req
}

// unsavedAnswers returns the question's not-yet-persisted, not-deleted
// answer refs in display order.
func (s *State) unsavedAnswers(questionRef string) []string {
	question, ok := s.Questions[questionRef]
	if !ok {
		return nil
	}
	var refs []string
	for _, aRef := range question.AnswerRefs {
		answer, ok := s.Answers[aRef]
		if !ok || answer.Deleted || s.Persisted(aRef) {
			continue
		}
		refs = append(refs, aRef)
	}
	return refs
}

func (s *State) applyPersistResolved(a PersistResolved) []Effect {
	save, ok := s.Saves[a.Ref]
	if !ok || save.Phase != PhasePersisting {
		return nil
	}

	if a.Err != nil {
		s.failSave(save, "persist", a.Err)
		return nil
	}

	if !save.IsNew && !save.Move {
		// An updated question may still carry answers added since the last
		// save; they go up in the same workflow.
		if save.Kind == KindQuestion {
			if effects := s.attachUnsaved(save, a.ID); effects != nil {
				return effects
			}
		}
		s.finishSave(save)
		return nil
	}

	// Creation (or move target creation): bind the new canonical id.
	s.Bindings[a.Ref] = a.ID
	if save.Move {
		question := s.Questions[a.Ref]
		oldSection := question.SectionRef
		question.SectionRef = save.TargetSectionRef
		question.SortOrder = len(s.QuestionRefs(save.TargetSectionRef))
		s.resequenceQuestions(oldSection)
	}

	if save.Kind == KindQuestion {
		if save.Move {
			question := s.Questions[a.Ref]
			var (
				refs    []string
				payload []contentapi.AnswerCreate
			)
			// All answers ride along to the new question row.
			for _, aRef := range question.AnswerRefs {
				answer, ok := s.Answers[aRef]
				if !ok || answer.Deleted {
					continue
				}
				refs = append(refs, aRef)
				payload = append(payload, s.answerCreate(answer))
			}
			if len(refs) > 0 {
				save.Phase = PhaseAttaching
				return []Effect{AttachAnswersEffect{
					OwnerRef:   a.Ref,
					QuestionID: a.ID,
					AnswerRefs: refs,
					Answers:    payload,
				}}
			}
		} else if effects := s.attachUnsaved(save, a.ID); effects != nil {
			return effects
		}
	}

	return s.afterContentPersisted(save)
}

// attachUnsaved emits the attach stage for the question's not-yet-persisted
// answers, or nil when there are none.
func (s *State) attachUnsaved(save *SaveState, questionID uint) []Effect {
	var (
		refs    []string
		payload []contentapi.AnswerCreate
	)
	for _, aRef := range s.unsavedAnswers(save.Ref) {
		refs = append(refs, aRef)
		payload = append(payload, s.answerCreate(s.Answers[aRef]))
	}
	if len(refs) == 0 {
		return nil
	}
	save.Phase = PhaseAttaching
	return []Effect{AttachAnswersEffect{
		OwnerRef:   save.Ref,
		QuestionID: questionID,
		AnswerRefs: refs,
		Answers:    payload,
	}}
}

func (s *State) applyAnswersAttached(a AnswersAttached) []Effect {
	save, ok := s.Saves[a.OwnerRef]
	if !ok || save.Phase != PhaseAttaching {
		return nil
	}

	if a.Err != nil {
		s.failSave(save, "attach answers", a.Err)
		return nil
	}

	// Outcomes align with the request list one to one, so a skipped
	// duplicate never shifts the ids of the answers after it. Skipped
	// answers stay unsaved with their tracker entries intact.
	refs := s.attachedRefs(save)
	for i, aRef := range refs {
		if i >= len(a.Result.Items) {
			break
		}
		item := a.Result.Items[i]
		if item.Skipped || item.ID == 0 {
			continue
		}
		s.Bindings[aRef] = item.ID
		if answer, ok := s.Answers[aRef]; ok {
			answer.Unsaved = false
		}
		s.Tracker.Clear(aRef)
	}
	if a.Result.Detail != "" {
		s.pushMessage(SeverityWarning, a.Result.Detail, "attach answers")
	}

	return s.afterContentPersisted(save)
}

// attachedRefs reconstructs the ref list the attach effect carried, in the
// same order.
func (s *State) attachedRefs(save *SaveState) []string {
	if save.Kind == KindAnswer {
		return []string{save.Ref}
	}
	if save.Move {
		question := s.Questions[save.Ref]
		var refs []string
		for _, aRef := range question.AnswerRefs {
			if answer, ok := s.Answers[aRef]; ok && !answer.Deleted {
				refs = append(refs, aRef)
			}
		}
		return refs
	}
	return s.unsavedAnswers(save.Ref)
}

// afterContentPersisted routes the workflow through its remaining stages:
// source deletion for a move, bundle publication for a brand-new select
// question built from scratch, otherwise completion.
func (s *State) afterContentPersisted(save *SaveState) []Effect {
	if save.Move {
		save.Phase = PhaseDeletingSource
		return []Effect{DeleteEffect{
			Kind:    KindQuestion,
			Ref:     save.Ref,
			ID:      save.OriginalID,
			ForMove: true,
		}}
	}

	var effects []Effect
	if save.Kind == KindQuestion && save.IsNew {
		question := s.Questions[save.Ref]
		if question != nil && question.LibraryID == 0 && question.Type.Selectable() && len(question.AnswerRefs) > 0 {
			var answers []contentapi.AnswerCreate
			for _, aRef := range question.AnswerRefs {
				if answer, ok := s.Answers[aRef]; ok && !answer.Deleted {
					answers = append(answers, s.answerCreate(answer))
				}
			}
			effects = append(effects, PublishBundleEffect{
				OwnerRef: save.Ref,
				Req: contentapi.BundlePublish{
					Label:   question.Label,
					Type:    string(question.Type),
					Answers: answers,
				},
			})
		}
	}

	s.finishSave(save)
	return effects
}

func (s *State) applyBundlePublished(a BundlePublished) {
	if a.Err != nil {
		// Best effort by contract; the saved content is already in place.
		s.pushMessage(SeverityWarning, "library publication failed: "+a.Err.Error(), "publish")
	}
}

func (s *State) applySourceDeleted(a SourceDeleted) []Effect {
	save, ok := s.Saves[a.Ref]
	if !ok || save.Phase != PhaseDeletingSource {
		return nil
	}
	if a.Err != nil {
		s.failSave(save, "remove from source", a.Err)
		s.pushMessage(SeverityWarning,
			"the question was copied to its new section but still exists in the old one", "move")
		return nil
	}
	s.finishSave(save)
	return []Effect{ReloadTreeEffect{}}
}

func (s *State) finishSave(save *SaveState) {
	save.Phase = PhaseDone
	if node, ok := s.Sections[save.Ref]; ok {
		node.Unsaved = false
	}
	if node, ok := s.Questions[save.Ref]; ok {
		node.Unsaved = false
		for _, aRef := range node.AnswerRefs {
			if !s.Persisted(aRef) {
				// A skipped or never-attached answer keeps its pending mark.
				continue
			}
			if answer, ok := s.Answers[aRef]; ok {
				answer.Unsaved = false
			}
			s.Tracker.Clear(aRef)
		}
	}
	if node, ok := s.Answers[save.Ref]; ok {
		node.Unsaved = false
	}
	s.Tracker.Clear(save.Ref)
	delete(s.Saves, save.Ref)
	s.pushMessage(SeveritySuccess, "saved", "")
}

// failSave parks the workflow in its failed phase. Edits and tracker entries
// are kept so the user can retry or discard.
func (s *State) failSave(save *SaveState, stage string, err error) {
	save.Phase = PhaseFailed
	save.FailedStage = stage

	severity := SeverityError
	text := "save failed: " + err.Error()
	if contentapi.IsRejection(err) {
		text = "save rejected: " + err.Error()
	}
	s.pushMessage(severity, text, stage)
}
