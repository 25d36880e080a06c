package contentapi

import "context"

// Client is the contract the edit-session engine persists through. Two
// implementations exist: an HTTP client driving a remote content API and a
// local adapter over this service's own repositories. The engine never knows
// which one it is talking to.
type Client interface {
	GetAssessment(ctx context.Context, id uint) (*AssessmentTree, error)

	CreateSection(ctx context.Context, req SectionCreate) (uint, error)
	UpdateSection(ctx context.Context, id uint, req SectionUpdate) error
	DeleteSection(ctx context.Context, id uint) error

	CreateQuestion(ctx context.Context, req QuestionCreate) (uint, error)
	UpdateQuestion(ctx context.Context, id uint, req QuestionUpdate) error
	DeleteQuestion(ctx context.Context, id uint) error

	// AttachAnswers bulk-creates answers under an already-persisted question.
	// A populated Detail on the result is a duplicate warning, not a failure.
	AttachAnswers(ctx context.Context, questionID uint, answers []AnswerCreate) (*AttachResult, error)
	UpdateAnswer(ctx context.Context, id uint, req AnswerUpdate) error
	DeleteAnswer(ctx context.Context, id uint) error

	// BatchSortOrder persists one reorder batch. Completion order of the
	// individual updates is not guaranteed; callers reload after it settles.
	BatchSortOrder(ctx context.Context, kind string, updates []SortUpdate) error

	// PublishBundle publishes a brand-new select question with its answers as
	// a reusable library bundle. Best effort; callers never roll back on error.
	PublishBundle(ctx context.Context, req BundlePublish) error

	Relationships(ctx context.Context, answerID uint) (*RelationshipBundle, error)
	AddRelationship(ctx context.Context, req RelationshipChange) error
	RemoveRelationship(ctx context.Context, req RelationshipChange) error
	Goals(ctx context.Context, problemID uint) ([]GoalRecord, error)
	Interventions(ctx context.Context, goalID uint) ([]InterventionRecord, error)

	CreateScoringModel(ctx context.Context, req ScoringModelCreate) (uint, error)
	UpdateScoringModel(ctx context.Context, id uint, req ScoringModelUpdate) error
	SetScore(ctx context.Context, req ScoreSet) error
}

// AssessmentTree is the full server-side tree, loaded when a session opens
// and reloaded after batch operations settle.
type AssessmentTree struct {
	ID       uint          `json:"id"`
	Title    string        `json:"title"`
	Status   string        `json:"status"`
	Sections []TreeSection `json:"sections"`
}

type TreeSection struct {
	ID          uint           `json:"id"`
	Label       string         `json:"label"`
	SortOrder   int            `json:"sortOrder"`
	LibraryID   *uint          `json:"libraryId,omitempty"`
	Subsections []TreeSection  `json:"subsections,omitempty"`
	Questions   []TreeQuestion `json:"questions,omitempty"`
}

type TreeQuestion struct {
	ID        uint         `json:"id"`
	Label     string       `json:"label"`
	Type      string       `json:"type"`
	Required  bool         `json:"required"`
	Tooltip   string       `json:"tooltip,omitempty"`
	Voice     string       `json:"voice,omitempty"`
	SortOrder int          `json:"sortOrder"`
	LibraryID *uint        `json:"libraryId,omitempty"`
	Answers   []TreeAnswer `json:"answers,omitempty"`
}

type TreeAnswer struct {
	ID                 uint   `json:"id"`
	Label              string `json:"label"`
	SortOrder          int    `json:"sortOrder"`
	SecondaryInputType string `json:"secondaryInputType,omitempty"`
	MutuallyExclusive  bool   `json:"mutuallyExclusive"`
	Tooltip            string `json:"tooltip,omitempty"`
	LibraryID          *uint  `json:"libraryId,omitempty"`
}

// SectionCreate creates a parent section (ParentID zero) or a subsection.
// When LibraryID is set the payload is reduced to identity plus ordering.
type SectionCreate struct {
	AssessmentID uint   `json:"assessmentId"`
	ParentID     uint   `json:"parentId,omitempty"`
	Label        string `json:"label,omitempty"`
	SortOrder    int    `json:"sortOrder"`
	LibraryID    uint   `json:"libraryId,omitempty"`
}

type SectionUpdate struct {
	Label     string `json:"label"`
	SortOrder int    `json:"sortOrder"`
}

type QuestionCreate struct {
	SectionID uint   `json:"sectionId"`
	Label     string `json:"label,omitempty"`
	Type      string `json:"type,omitempty"`
	Required  bool   `json:"required,omitempty"`
	Tooltip   string `json:"tooltip,omitempty"`
	Voice     string `json:"voice,omitempty"`
	SortOrder int    `json:"sortOrder"`
	LibraryID uint   `json:"libraryId,omitempty"`
}

type QuestionUpdate struct {
	Label     string `json:"label"`
	Required  bool   `json:"required"`
	Tooltip   string `json:"tooltip,omitempty"`
	Voice     string `json:"voice,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

type AnswerCreate struct {
	Label              string `json:"label,omitempty"`
	SortOrder          int    `json:"sortOrder"`
	SecondaryInputType string `json:"secondaryInputType,omitempty"`
	MutuallyExclusive  bool   `json:"mutuallyExclusive,omitempty"`
	Tooltip            string `json:"tooltip,omitempty"`
	LibraryID          uint   `json:"libraryId,omitempty"`
}

type AnswerUpdate struct {
	Label              string `json:"label"`
	SortOrder          int    `json:"sortOrder"`
	SecondaryInputType string `json:"secondaryInputType,omitempty"`
	MutuallyExclusive  bool   `json:"mutuallyExclusive"`
	Tooltip            string `json:"tooltip,omitempty"`
}

// AttachResult reports one outcome per requested answer, in request order.
// A skipped item is a duplicate the backend refused to create; it carries no
// id and the caller must not bind one.
type AttachResult struct {
	Items  []AttachOutcome `json:"items"`
	Detail string          `json:"detail,omitempty"`
}

type AttachOutcome struct {
	Label   string `json:"label"`
	ID      uint   `json:"id,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

type SortUpdate struct {
	ID        uint `json:"id"`
	SortOrder int  `json:"sortOrder"`
}

type BundlePublish struct {
	Label   string         `json:"label"`
	Type    string         `json:"type"`
	Answers []AnswerCreate `json:"answers"`
}

// RelationshipBundle is everything linked to one answer, always fetched as a
// whole so local state never drifts from server-computed counts.
type RelationshipBundle struct {
	Guidelines         []GuidelineRecord `json:"guidelines"`
	TriggeredQuestions []QuestionLink    `json:"triggeredQuestions"`
	Problems           []ProblemRecord   `json:"problems"`
	Barriers           []BarrierRecord   `json:"barriers"`
}

type GuidelineRecord struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

type QuestionLink struct {
	ID        uint   `json:"id"`
	Label     string `json:"label"`
	SortOrder int    `json:"sortOrder"`
}

type ProblemRecord struct {
	ID                 uint   `json:"id"`
	Label              string `json:"label"`
	Tooltip            string `json:"tooltip,omitempty"`
	AlternativeWording string `json:"alternativeWording,omitempty"`
}

type BarrierRecord struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type GoalRecord struct {
	ID                 uint   `json:"id"`
	ProblemID          uint   `json:"problemId"`
	Label              string `json:"label"`
	Tooltip            string `json:"tooltip,omitempty"`
	AlternativeWording string `json:"alternativeWording,omitempty"`
}

type InterventionRecord struct {
	ID                 uint   `json:"id"`
	GoalID             uint   `json:"goalId"`
	Label              string `json:"label"`
	Tooltip            string `json:"tooltip,omitempty"`
	AlternativeWording string `json:"alternativeWording,omitempty"`
}

type RelationshipChange struct {
	AnswerID uint   `json:"answerId"`
	Type     string `json:"type"`
	TargetID uint   `json:"targetId"`
}

type ScoringModelCreate struct {
	Label       string `json:"label"`
	ScoringType string `json:"scoringType"`
}

type ScoringModelUpdate struct {
	Label       string `json:"label"`
	ScoringType string `json:"scoringType"`
}

// ScoreSet writes one score cell. Value is always serialized as a string.
type ScoreSet struct {
	ModelID  uint   `json:"modelId"`
	AnswerID uint   `json:"answerId"`
	Value    string `json:"value"`
}
