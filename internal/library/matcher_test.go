package library

import (
	"context"
	"errors"
	"testing"
)

type fixedSearcher struct {
	candidates []Candidate
	err        error
	lastQuery  Query
}

func (s *fixedSearcher) Search(ctx context.Context, q Query) ([]Candidate, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return append([]Candidate(nil), s.candidates...), nil
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Pain Level ": "pain level",
		"PAIN":          "pain",
		"pain":          "pain",
		"":              "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearchRecomputesExactFlagLocally(t *testing.T) {
	// The backend's own flags are ignored; classification is local.
	searcher := &fixedSearcher{candidates: []Candidate{
		{ID: 1, Label: "Pain Level", ExactMatch: false},
		{ID: 2, Label: "Pain Level (0-10)", ExactMatch: true},
		{ID: 3, Label: "  pain level  "},
	}}
	m := NewMatcher(searcher)

	got, err := m.Search(context.Background(), Query{Text: "pain level", Type: TypeQuestion})
	if err != nil {
		t.Fatal(err)
	}
	if !got[0].ExactMatch || !got[2].ExactMatch {
		t.Fatal("labels equal after normalization must be flagged exact")
	}
	if got[1].ExactMatch {
		t.Fatal("a longer label is not an exact match regardless of backend flags")
	}
}

func TestExactMatchReturnsFirstInResponseOrder(t *testing.T) {
	searcher := &fixedSearcher{candidates: []Candidate{
		{ID: 1, Label: "Pain level scale"},
		{ID: 2, Label: "Pain Level"},
		{ID: 3, Label: "pain level"},
	}}
	m := NewMatcher(searcher)

	got, err := m.ExactMatch(context.Background(), Query{Text: " Pain Level "})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != 2 {
		t.Fatalf("got %+v, want candidate 2", got)
	}
}

func TestExactMatchNilWhenNothingMatches(t *testing.T) {
	searcher := &fixedSearcher{candidates: []Candidate{
		{ID: 1, Label: "Pain level scale"},
	}}
	m := NewMatcher(searcher)

	got, err := m.ExactMatch(context.Background(), Query{Text: "Pain Level"})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestSearchPropagatesError(t *testing.T) {
	searcher := &fixedSearcher{err: errors.New("unreachable")}
	m := NewMatcher(searcher)

	if _, err := m.Search(context.Background(), Query{Text: "pain"}); err == nil {
		t.Fatal("expected the searcher's error")
	}
}

func TestSearchForwardsScope(t *testing.T) {
	searcher := &fixedSearcher{}
	m := NewMatcher(searcher)

	_, _ = m.Search(context.Background(), Query{Text: "mild", Type: TypeAnswer, ScopeID: 77})
	if searcher.lastQuery.ScopeID != 77 || searcher.lastQuery.Type != TypeAnswer {
		t.Fatalf("query not forwarded intact: %+v", searcher.lastQuery)
	}
}
