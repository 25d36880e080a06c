package library

import "context"

// ContentType identifies the kind of library content a search targets. The
// same typeahead contract serves section, question, answer and care-planning
// lookups.
type ContentType string

const (
	TypeSection      ContentType = "section"
	TypeQuestion     ContentType = "question"
	TypeAnswer       ContentType = "answer"
	TypeProblem      ContentType = "problem"
	TypeGoal         ContentType = "goal"
	TypeIntervention ContentType = "intervention"
	TypeBarrier      ContentType = "barrier"
	TypeGuideline    ContentType = "guideline"
)

// Query describes one library search.
type Query struct {
	Text    string
	Type    ContentType
	ScopeID uint
	Limit   int
}

// Candidate is a single library search hit. ExactMatch marks label equality
// with the query after trimming and case folding.
type Candidate struct {
	ID         uint   `json:"id"`
	Label      string `json:"label"`
	ExactMatch bool   `json:"exactMatch"`
	MasterID   uint   `json:"masterId,omitempty"`
}

// Searcher executes a library search. Implementations exist for the remote
// typeahead endpoint and the local database; a redis decorator caches either.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Candidate, error)
}
