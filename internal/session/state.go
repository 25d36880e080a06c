package session

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/lumahealth/authoring/internal/model"
)

// EntityKind names the tree entity kinds the engine orchestrates.
type EntityKind string

const (
	KindSection  EntityKind = "section"
	KindQuestion EntityKind = "question"
	KindAnswer   EntityKind = "answer"
)

// Nodes are keyed by a stable local ref allocated at creation. Canonical ids
// live only in the Bindings map, so nothing downstream ever rebinds an id in
// place when the backend assigns one.

type SectionNode struct {
	Ref       string `json:"ref"`
	ParentRef string `json:"parentRef,omitempty"`
	Label     string `json:"label"`
	SortOrder int    `json:"sortOrder"`
	LibraryID uint   `json:"libraryId,omitempty"`
	Unsaved   bool   `json:"isUnsaved"`
	Deleted   bool   `json:"isDeleted"`
}

type QuestionNode struct {
	Ref        string             `json:"ref"`
	SectionRef string             `json:"sectionRef"`
	Label      string             `json:"label"`
	Type       model.QuestionType `json:"type"`
	Required   bool               `json:"required"`
	Tooltip    string             `json:"tooltip,omitempty"`
	Voice      string             `json:"voice,omitempty"`
	SortOrder  int                `json:"sortOrder"`
	AnswerRefs []string           `json:"answerRefs,omitempty"`
	LibraryID  uint               `json:"libraryId,omitempty"`
	Unsaved    bool               `json:"isUnsaved"`
	Deleted    bool               `json:"isDeleted"`
}

type AnswerNode struct {
	Ref                string `json:"ref"`
	QuestionRef        string `json:"questionRef"`
	Label              string `json:"label"`
	SortOrder          int    `json:"sortOrder"`
	SecondaryInputType string `json:"secondaryInputType,omitempty"`
	MutuallyExclusive  bool   `json:"mutuallyExclusive"`
	Tooltip            string `json:"tooltip,omitempty"`
	LibraryID          uint   `json:"libraryId,omitempty"`
	Unsaved            bool   `json:"isUnsaved"`
	Deleted            bool   `json:"isDeleted"`
}

// ScoreKey addresses one cell of the scores map.
type ScoreKey struct {
	AnswerRef string
	ModelID   uint
}

// State is one immutable snapshot of an edit session. Reduce never mutates
// its input; it clones first and returns the clone.
type State struct {
	AssessmentID uint
	Title        string
	Status       model.AssessmentStatus

	Sections  map[string]*SectionNode
	Questions map[string]*QuestionNode
	Answers   map[string]*AnswerNode

	// Bindings maps local refs to canonical backend ids. A ref absent here
	// has never been persisted.
	Bindings map[string]uint

	Tracker       Tracker
	Saves         map[string]*SaveState
	Relationships map[string]*RelationshipSet
	Searches      map[SearchSlot]*SearchContext
	Results       map[SearchSlot][]library.Candidate
	Messages      []Message

	ActiveModelID uint
	Scores        map[ScoreKey]string
}

// NewState builds a session snapshot from a freshly loaded tree.
func NewState(tree *contentapi.AssessmentTree) *State {
	s := emptyState()
	s.loadTree(tree)
	return s
}

func emptyState() *State {
	return &State{
		Sections:      make(map[string]*SectionNode),
		Questions:     make(map[string]*QuestionNode),
		Answers:       make(map[string]*AnswerNode),
		Bindings:      make(map[string]uint),
		Tracker:       make(Tracker),
		Saves:         make(map[string]*SaveState),
		Relationships: make(map[string]*RelationshipSet),
		Searches:      make(map[SearchSlot]*SearchContext),
		Results:       make(map[SearchSlot][]library.Candidate),
		Scores:        make(map[ScoreKey]string),
	}
}

func (s *State) loadTree(tree *contentapi.AssessmentTree) {
	s.AssessmentID = tree.ID
	s.Title = tree.Title
	s.Status = model.AssessmentStatus(tree.Status)

	for _, parent := range tree.Sections {
		parentRef := s.addTreeSection(parent, "")
		for _, sub := range parent.Subsections {
			s.addTreeSection(sub, parentRef)
		}
	}
}

func (s *State) addTreeSection(section contentapi.TreeSection, parentRef string) string {
	ref := uuid.NewString()
	node := &SectionNode{
		Ref:       ref,
		ParentRef: parentRef,
		Label:     section.Label,
		SortOrder: section.SortOrder,
	}
	if section.LibraryID != nil {
		node.LibraryID = *section.LibraryID
	}
	s.Sections[ref] = node
	s.Bindings[ref] = section.ID

	for _, q := range section.Questions {
		qRef := uuid.NewString()
		qNode := &QuestionNode{
			Ref:        qRef,
			SectionRef: ref,
			Label:      q.Label,
			Type:       model.QuestionType(q.Type),
			Required:   q.Required,
			Tooltip:    q.Tooltip,
			Voice:      q.Voice,
			SortOrder:  q.SortOrder,
		}
		if q.LibraryID != nil {
			qNode.LibraryID = *q.LibraryID
		}
		for _, a := range q.Answers {
			aRef := uuid.NewString()
			aNode := &AnswerNode{
				Ref:                aRef,
				QuestionRef:        qRef,
				Label:              a.Label,
				SortOrder:          a.SortOrder,
				SecondaryInputType: a.SecondaryInputType,
				MutuallyExclusive:  a.MutuallyExclusive,
				Tooltip:            a.Tooltip,
			}
			if a.LibraryID != nil {
				aNode.LibraryID = *a.LibraryID
			}
			s.Answers[aRef] = aNode
			s.Bindings[aRef] = a.ID
			qNode.AnswerRefs = append(qNode.AnswerRefs, aRef)
		}
		s.Questions[qRef] = qNode
		s.Bindings[qRef] = q.ID
	}
	return ref
}

// IDOf returns the canonical id bound to ref, zero if never persisted.
func (s *State) IDOf(ref string) uint {
	return s.Bindings[ref]
}

// Persisted reports whether ref has round-tripped through the backend.
func (s *State) Persisted(ref string) bool {
	return s.Bindings[ref] != 0
}

// SubsectionRefs returns the subsection refs of a parent section in sort order.
// An empty parentRef returns the top-level sections.
func (s *State) SubsectionRefs(parentRef string) []string {
	var refs []string
	for ref, node := range s.Sections {
		if node.ParentRef == parentRef && !node.Deleted {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return s.Sections[refs[i]].SortOrder < s.Sections[refs[j]].SortOrder
	})
	return refs
}

// QuestionRefs returns the question refs of a subsection in sort order.
func (s *State) QuestionRefs(sectionRef string) []string {
	var refs []string
	for ref, node := range s.Questions {
		if node.SectionRef == sectionRef && !node.Deleted {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return s.Questions[refs[i]].SortOrder < s.Questions[refs[j]].SortOrder
	})
	return refs
}

// QuestionRefByID finds the local ref bound to a canonical question id.
func (s *State) QuestionRefByID(id uint) string {
	for ref := range s.Questions {
		if s.Bindings[ref] == id {
			return ref
		}
	}
	return ""
}

// editGroup returns the set of refs that count as one edit unit for the
// single-writer lock: the entity itself plus, for questions and answers, the
// owning question and all of its answers.
func (s *State) editGroup(ref string) map[string]bool {
	group := map[string]bool{ref: true}

	questionRef := ""
	if _, ok := s.Questions[ref]; ok {
		questionRef = ref
	} else if answer, ok := s.Answers[ref]; ok {
		questionRef = answer.QuestionRef
	}
	if questionRef != "" {
		group[questionRef] = true
		if question, ok := s.Questions[questionRef]; ok {
			for _, aRef := range question.AnswerRefs {
				group[aRef] = true
			}
		}
	}
	return group
}

// Clone deep-copies the snapshot.
func (s *State) Clone() *State {
	out := &State{
		AssessmentID:  s.AssessmentID,
		Title:         s.Title,
		Status:        s.Status,
		Sections:      make(map[string]*SectionNode, len(s.Sections)),
		Questions:     make(map[string]*QuestionNode, len(s.Questions)),
		Answers:       make(map[string]*AnswerNode, len(s.Answers)),
		Bindings:      make(map[string]uint, len(s.Bindings)),
		Tracker:       s.Tracker.clone(),
		Saves:         make(map[string]*SaveState, len(s.Saves)),
		Relationships: make(map[string]*RelationshipSet, len(s.Relationships)),
		Searches:      make(map[SearchSlot]*SearchContext, len(s.Searches)),
		Results:       make(map[SearchSlot][]library.Candidate, len(s.Results)),
		Messages:      append([]Message(nil), s.Messages...),
		ActiveModelID: s.ActiveModelID,
		Scores:        make(map[ScoreKey]string, len(s.Scores)),
	}
	for ref, node := range s.Sections {
		copied := *node
		out.Sections[ref] = &copied
	}
	for ref, node := range s.Questions {
		copied := *node
		copied.AnswerRefs = append([]string(nil), node.AnswerRefs...)
		out.Questions[ref] = &copied
	}
	for ref, node := range s.Answers {
		copied := *node
		out.Answers[ref] = &copied
	}
	for ref, id := range s.Bindings {
		out.Bindings[ref] = id
	}
	for ref, save := range s.Saves {
		copied := *save
		copied.Queue = append([]string(nil), save.Queue...)
		out.Saves[ref] = &copied
	}
	for ref, set := range s.Relationships {
		out.Relationships[ref] = set.clone()
	}
	for slot, ctx := range s.Searches {
		if ctx == nil {
			out.Searches[slot] = nil
			continue
		}
		copied := *ctx
		out.Searches[slot] = &copied
	}
	for slot, results := range s.Results {
		out.Results[slot] = append([]library.Candidate(nil), results...)
	}
	for key, value := range s.Scores {
		out.Scores[key] = value
	}
	return out
}
