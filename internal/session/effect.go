package session

import (
	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
)

// Effect is a side effect the reducer requests instead of performing. The
// session driver executes each one and feeds its completion back in as a
// further action, keeping the reducer pure.
type Effect interface {
	isEffect()
}

// CheckLibraryEffect runs one silent pre-save duplicate check. Checks for a
// workflow are emitted one at a time; the next is only issued after this
// one's LibraryChecked folds back in.
type CheckLibraryEffect struct {
	OwnerRef  string
	TargetRef string
	Query     library.Query
}

type CreateSectionEffect struct {
	Ref string
	Req contentapi.SectionCreate
}

type UpdateSectionEffect struct {
	Ref string
	ID  uint
	Req contentapi.SectionUpdate
}

type CreateQuestionEffect struct {
	Ref string
	Req contentapi.QuestionCreate
}

type UpdateQuestionEffect struct {
	Ref string
	ID  uint
	Req contentapi.QuestionUpdate
}

type AttachAnswersEffect struct {
	OwnerRef   string
	QuestionID uint
	AnswerRefs []string
	Answers    []contentapi.AnswerCreate
}

type UpdateAnswerEffect struct {
	Ref string
	ID  uint
	Req contentapi.AnswerUpdate
}

type DeleteEffect struct {
	Kind    EntityKind
	Ref     string
	ID      uint
	ForMove bool
}

// PublishBundleEffect is fire-and-forget; the driver runs it without holding
// up the workflow that emitted it.
type PublishBundleEffect struct {
	OwnerRef string
	Req      contentapi.BundlePublish
}

type BatchSortEffect struct {
	Kind      EntityKind
	ParentRef string
	Updates   []contentapi.SortUpdate
}

type ReloadTreeEffect struct{}

type LoadRelationshipsEffect struct {
	AnswerRef string
	AnswerID  uint
}

type LoadGoalsEffect struct {
	AnswerRef string
	ProblemID uint
}

type LoadInterventionsEffect struct {
	AnswerRef string
	ProblemID uint
	GoalID    uint
}

type MutateLinkEffect struct {
	AnswerRef string
	Remove    bool
	Req       contentapi.RelationshipChange
}

type TypeaheadEffect struct {
	Slot SearchSlot
	Ctx  SearchContext
}

type SetScoreEffect struct {
	AnswerRef string
	Req       contentapi.ScoreSet
}

func (CheckLibraryEffect) isEffect()      {}
func (CreateSectionEffect) isEffect()     {}
func (UpdateSectionEffect) isEffect()     {}
func (CreateQuestionEffect) isEffect()    {}
func (UpdateQuestionEffect) isEffect()    {}
func (AttachAnswersEffect) isEffect()     {}
func (UpdateAnswerEffect) isEffect()      {}
func (DeleteEffect) isEffect()            {}
func (PublishBundleEffect) isEffect()     {}
func (BatchSortEffect) isEffect()         {}
func (ReloadTreeEffect) isEffect()        {}
func (LoadRelationshipsEffect) isEffect() {}
func (LoadGoalsEffect) isEffect()         {}
func (LoadInterventionsEffect) isEffect() {}
func (MutateLinkEffect) isEffect()        {}
func (TypeaheadEffect) isEffect()         {}
func (SetScoreEffect) isEffect()          {}
