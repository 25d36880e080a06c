package session

import "github.com/lumahealth/authoring/internal/contentapi"

// LoadState tracks lazy loading of relationship data. Loaded-empty and
// loaded-nonempty are distinct so an empty result is not refetched.
type LoadState string

const (
	LoadUnloaded LoadState = "unloaded"
	LoadLoading  LoadState = "loading"
	LoadEmpty    LoadState = "loaded_empty"
	LoadLoaded   LoadState = "loaded"
)

// RelationshipSummary carries the badge counts shown elsewhere in the tree.
// It is recomputed only on full reload, never patched.
type RelationshipSummary struct {
	Guidelines         int `json:"guidelines"`
	TriggeredQuestions int `json:"triggeredQuestions"`
	Problems           int `json:"problems"`
	Barriers           int `json:"barriers"`
}

// RelationshipSet is the per-answer cache of linked targets. Expansion state
// is tracked apart from load state so collapsing a node keeps fetched data.
type RelationshipSet struct {
	State LoadState `json:"state"`

	Guidelines         []contentapi.GuidelineRecord `json:"guidelines,omitempty"`
	TriggeredQuestions []contentapi.QuestionLink    `json:"triggeredQuestions,omitempty"`
	Problems           []ProblemEntry               `json:"problems,omitempty"`
	Barriers           []contentapi.BarrierRecord   `json:"barriers,omitempty"`

	Summary RelationshipSummary `json:"summary"`
}

type ProblemEntry struct {
	ID                 uint        `json:"id"`
	Label              string      `json:"label"`
	Tooltip            string      `json:"tooltip,omitempty"`
	AlternativeWording string      `json:"alternativeWording,omitempty"`
	Expanded           bool        `json:"expanded"`
	GoalsState         LoadState   `json:"goalsState"`
	Goals              []GoalEntry `json:"goals,omitempty"`
}

type GoalEntry struct {
	ID                 uint                `json:"id"`
	Label              string              `json:"label"`
	Tooltip            string              `json:"tooltip,omitempty"`
	AlternativeWording string              `json:"alternativeWording,omitempty"`
	Expanded           bool                `json:"expanded"`
	InterventionsState LoadState           `json:"interventionsState"`
	Interventions      []InterventionEntry `json:"interventions,omitempty"`
}

type InterventionEntry struct {
	ID                 uint   `json:"id"`
	Label              string `json:"label"`
	Tooltip            string `json:"tooltip,omitempty"`
	AlternativeWording string `json:"alternativeWording,omitempty"`
}

func (r *RelationshipSet) problem(problemID uint) *ProblemEntry {
	for i := range r.Problems {
		if r.Problems[i].ID == problemID {
			return &r.Problems[i]
		}
	}
	return nil
}

func (r *RelationshipSet) goal(problemID, goalID uint) *GoalEntry {
	problem := r.problem(problemID)
	if problem == nil {
		return nil
	}
	for i := range problem.Goals {
		if problem.Goals[i].ID == goalID {
			return &problem.Goals[i]
		}
	}
	return nil
}

// fromBundle replaces the whole set with a freshly loaded bundle, preserving
// expansion and already-fetched nested levels for problems that survived.
func (r *RelationshipSet) fromBundle(bundle *contentapi.RelationshipBundle) {
	previous := make(map[uint]ProblemEntry, len(r.Problems))
	for _, p := range r.Problems {
		previous[p.ID] = p
	}

	r.Guidelines = bundle.Guidelines
	r.TriggeredQuestions = bundle.TriggeredQuestions
	r.Barriers = bundle.Barriers
	r.Problems = r.Problems[:0]
	for _, p := range bundle.Problems {
		entry := ProblemEntry{
			ID:                 p.ID,
			Label:              p.Label,
			Tooltip:            p.Tooltip,
			AlternativeWording: p.AlternativeWording,
			GoalsState:         LoadUnloaded,
		}
		if prev, ok := previous[p.ID]; ok {
			entry.Expanded = prev.Expanded
			entry.GoalsState = prev.GoalsState
			entry.Goals = prev.Goals
		}
		r.Problems = append(r.Problems, entry)
	}

	total := len(bundle.Guidelines) + len(bundle.TriggeredQuestions) + len(bundle.Problems) + len(bundle.Barriers)
	if total == 0 {
		r.State = LoadEmpty
	} else {
		r.State = LoadLoaded
	}
	r.Summary = RelationshipSummary{
		Guidelines:         len(bundle.Guidelines),
		TriggeredQuestions: len(bundle.TriggeredQuestions),
		Problems:           len(bundle.Problems),
		Barriers:           len(bundle.Barriers),
	}
}

func (r *RelationshipSet) clone() *RelationshipSet {
	out := &RelationshipSet{
		State:              r.State,
		Guidelines:         append([]contentapi.GuidelineRecord(nil), r.Guidelines...),
		TriggeredQuestions: append([]contentapi.QuestionLink(nil), r.TriggeredQuestions...),
		Barriers:           append([]contentapi.BarrierRecord(nil), r.Barriers...),
		Summary:            r.Summary,
	}
	for _, p := range r.Problems {
		copied := p
		copied.Goals = nil
		for _, g := range p.Goals {
			goalCopy := g
			goalCopy.Interventions = append([]InterventionEntry(nil), g.Interventions...)
			copied.Goals = append(copied.Goals, goalCopy)
		}
		out.Problems = append(out.Problems, copied)
	}
	return out
}
