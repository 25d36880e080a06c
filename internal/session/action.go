package session

import (
	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/lumahealth/authoring/internal/model"
)

// Action is the closed union of events the reducer folds over. User intents
// and effect completions both arrive here; nothing else mutates a session.
type Action interface {
	isAction()
}

// --- tree loading ---

type TreeLoaded struct {
	Tree *contentapi.AssessmentTree
}

// TreeReloaded replaces tree content after a settled batch while preserving
// session-scoped state (messages, searches, relationship caches by id).
type TreeReloaded struct {
	Tree *contentapi.AssessmentTree
	Err  error
}

// --- local edits ---

type AddSection struct {
	Ref       string
	ParentRef string
	Label     string
}

type EditSection struct {
	Ref   string
	Label *string
}

type AddQuestion struct {
	Ref        string
	SectionRef string
	Label      string
	Type       model.QuestionType
	Required   bool
	Tooltip    string
	Voice      string
}

type EditQuestion struct {
	Ref      string
	Label    *string
	Required *bool
	Tooltip  *string
	Voice    *string
}

type AddAnswer struct {
	Ref                string
	QuestionRef        string
	Label              string
	SecondaryInputType string
	MutuallyExclusive  bool
	Tooltip            string
}

type EditAnswer struct {
	Ref                string
	Label              *string
	SecondaryInputType *string
	MutuallyExclusive  *bool
	Tooltip            *string
}

// DiscardEdits reverts an entity to its last-saved snapshot: pending field
// edits roll back, a never-persisted entity disappears.
type DiscardEdits struct {
	Ref string
}

type DeleteEntity struct {
	Kind EntityKind
	Ref  string
}

type DeleteResolved struct {
	Kind EntityKind
	Ref  string
	Err  error
}

// --- save workflows ---

type SaveEntity struct {
	Kind EntityKind
	Ref  string
}

type MoveQuestion struct {
	Ref              string
	TargetSectionRef string
}

// LibraryChecked is one pre-save duplicate check resolving. OwnerRef is the
// workflow's entity; TargetRef the queued item the result folds into.
type LibraryChecked struct {
	OwnerRef  string
	TargetRef string
	Candidate *library.Candidate
	Err       error
}

type PersistResolved struct {
	Ref string
	ID  uint
	Err error
}

type AnswersAttached struct {
	OwnerRef string
	Result   *contentapi.AttachResult
	Err      error
}

type BundlePublished struct {
	OwnerRef string
	Err      error
}

// SourceDeleted finishes a move workflow.
type SourceDeleted struct {
	Ref string
	Err error
}

// --- reorder ---

type Reorder struct {
	Kind        EntityKind
	ParentRef   string
	OrderedRefs []string
}

type ReorderSettled struct {
	Kind      EntityKind
	ParentRef string
	Err       error
}

// --- relationships ---

type LoadRelationships struct {
	AnswerRef string
}

type RelationshipsLoaded struct {
	AnswerRef string
	Bundle    *contentapi.RelationshipBundle
	Err       error
}

type LoadGoals struct {
	AnswerRef string
	ProblemID uint
}

type GoalsLoaded struct {
	AnswerRef string
	ProblemID uint
	Goals     []contentapi.GoalRecord
	Err       error
}

type LoadInterventions struct {
	AnswerRef string
	ProblemID uint
	GoalID    uint
}

type InterventionsLoaded struct {
	AnswerRef     string
	ProblemID     uint
	GoalID        uint
	Interventions []contentapi.InterventionRecord
	Err           error
}

type ToggleProblem struct {
	AnswerRef string
	ProblemID uint
}

type ToggleGoal struct {
	AnswerRef string
	ProblemID uint
	GoalID    uint
}

type AddLink struct {
	AnswerRef string
	Type      model.RelationshipType
	TargetID  uint
}

type RemoveLink struct {
	AnswerRef string
	Type      model.RelationshipType
	TargetID  uint
}

type LinkMutated struct {
	AnswerRef string
	Remove    bool
	Err       error
}

// --- search ---

type SearchChanged struct {
	Slot    SearchSlot
	Type    library.ContentType
	ScopeID uint
	Text    string
}

type SearchCleared struct {
	Slot SearchSlot
}

type SearchResolved struct {
	Slot       SearchSlot
	Ctx        SearchContext
	Candidates []library.Candidate
	Err        error
}

// --- scoring ---

type ActivateScoringModel struct {
	ModelID uint
}

type SetScore struct {
	AnswerRef string
	Value     string
}

type ScoreSaved struct {
	AnswerRef string
	ModelID   uint
	Value     string
	Err       error
}

func (TreeLoaded) isAction()           {}
func (TreeReloaded) isAction()         {}
func (AddSection) isAction()           {}
func (EditSection) isAction()          {}
func (AddQuestion) isAction()          {}
func (EditQuestion) isAction()         {}
func (AddAnswer) isAction()            {}
func (EditAnswer) isAction()           {}
func (DiscardEdits) isAction()         {}
func (DeleteEntity) isAction()         {}
func (DeleteResolved) isAction()       {}
func (SaveEntity) isAction()           {}
func (MoveQuestion) isAction()         {}
func (LibraryChecked) isAction()       {}
func (PersistResolved) isAction()      {}
func (AnswersAttached) isAction()      {}
func (BundlePublished) isAction()      {}
func (SourceDeleted) isAction()        {}
func (Reorder) isAction()              {}
func (ReorderSettled) isAction()       {}
func (LoadRelationships) isAction()    {}
func (RelationshipsLoaded) isAction()  {}
func (LoadGoals) isAction()            {}
func (GoalsLoaded) isAction()          {}
func (LoadInterventions) isAction()    {}
func (InterventionsLoaded) isAction()  {}
func (ToggleProblem) isAction()        {}
func (ToggleGoal) isAction()           {}
func (AddLink) isAction()              {}
func (RemoveLink) isAction()           {}
func (LinkMutated) isAction()          {}
func (SearchChanged) isAction()        {}
func (SearchCleared) isAction()        {}
func (SearchResolved) isAction()       {}
func (ActivateScoringModel) isAction() {}
func (SetScore) isAction()             {}
func (ScoreSaved) isAction()           {}
