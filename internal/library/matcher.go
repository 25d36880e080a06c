package library

import (
	"context"
	"strings"
)

// Normalize applies the comparison rule that defines an exact match:
// whitespace-trimmed, case-insensitive.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matcher classifies search results for the two library lookup modes: live
// typeahead and the silent pre-save duplicate check.
type Matcher struct {
	searcher Searcher
}

func NewMatcher(searcher Searcher) *Matcher {
	return &Matcher{searcher: searcher}
}

// Search runs a typeahead query, recomputing the exact flag locally so the
// classification never depends on the backend's own comparison rule.
func (m *Matcher) Search(ctx context.Context, q Query) ([]Candidate, error) {
	candidates, err := m.searcher.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	normalized := Normalize(q.Text)
	for i := range candidates {
		// Overwrites whatever the backend sent; only the local comparison
		// rule decides exactness.
		candidates[i].ExactMatch = Normalize(candidates[i].Label) == normalized
	}
	return candidates, nil
}

// ExactMatch is the one-shot pre-save check: it returns the first exact
// candidate in response order, or nil when the entity should be created as
// brand-new content.
func (m *Matcher) ExactMatch(ctx context.Context, q Query) (*Candidate, error) {
	candidates, err := m.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].ExactMatch {
			return &candidates[i], nil
		}
	}
	return nil, nil
}
