package session

import (
	"fmt"

	"github.com/lumahealth/authoring/internal/library"
)

// ValidationError is a pre-network failure. It never clears in-progress edit
// state and never produces a network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// validateSection gates a section save: non-blank label, unique among
// siblings of the same parent (a matching label under a different parent is
// fine).
func (s *State) validateSection(ref string) *ValidationError {
	section, ok := s.Sections[ref]
	if !ok {
		return validationf("unknown section")
	}
	if library.Normalize(section.Label) == "" {
		return validationf("section name cannot be blank")
	}
	normalized := library.Normalize(section.Label)
	for otherRef, other := range s.Sections {
		if otherRef == ref || other.Deleted || other.ParentRef != section.ParentRef {
			continue
		}
		if library.Normalize(other.Label) == normalized {
			return validationf("a section named %q already exists here", section.Label)
		}
	}
	return nil
}

// validateQuestion gates a question save against the persisted siblings of
// targetSectionRef (its own subsection, or the move target). Pending unsaved
// siblings do not count; the backend has never seen them.
func (s *State) validateQuestion(ref, targetSectionRef string) *ValidationError {
	question, ok := s.Questions[ref]
	if !ok {
		return validationf("unknown question")
	}
	if library.Normalize(question.Label) == "" {
		return validationf("question text cannot be blank")
	}

	normalized := library.Normalize(question.Label)
	for otherRef, other := range s.Questions {
		if otherRef == ref || other.Deleted || other.SectionRef != targetSectionRef {
			continue
		}
		if !s.Persisted(otherRef) {
			continue
		}
		if library.Normalize(other.Label) == normalized {
			return validationf("a question named %q already exists in this section", question.Label)
		}
	}

	return s.validateAnswerSet(question.AnswerRefs)
}

// validateAnswerSet rejects blank or duplicate answer labels within one
// question.
func (s *State) validateAnswerSet(answerRefs []string) *ValidationError {
	seen := make(map[string]string, len(answerRefs))
	for _, aRef := range answerRefs {
		answer, ok := s.Answers[aRef]
		if !ok || answer.Deleted {
			continue
		}
		normalized := library.Normalize(answer.Label)
		if normalized == "" {
			return validationf("answer text cannot be blank")
		}
		if prior, dup := seen[normalized]; dup {
			return validationf("duplicate answer %q", s.Answers[prior].Label)
		}
		seen[normalized] = aRef
	}
	return nil
}

// validateAnswer gates an individual answer save.
func (s *State) validateAnswer(ref string) *ValidationError {
	answer, ok := s.Answers[ref]
	if !ok {
		return validationf("unknown answer")
	}
	if library.Normalize(answer.Label) == "" {
		return validationf("answer text cannot be blank")
	}
	question, ok := s.Questions[answer.QuestionRef]
	if !ok {
		return validationf("answer has no question")
	}
	return s.validateAnswerSet(question.AnswerRefs)
}
