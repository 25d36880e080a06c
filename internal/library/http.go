package library

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// httpSearcher queries the remote library's generic typeahead endpoint.
type httpSearcher struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
}

func NewHTTPSearcher(baseURL, token string, timeout time.Duration) Searcher {
	if token == "" {
		log.Warn().Msg("Library access token not set; searches will be unauthenticated")
	}
	return &httpSearcher{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

type typeaheadResponse struct {
	Results []Candidate `json:"results"`
}

func (s *httpSearcher) Search(ctx context.Context, q Query) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("searchText", q.Text)
	params.Set("contentType", string(q.Type))
	if q.ScopeID != 0 {
		params.Set("scopeId", strconv.FormatUint(uint64(q.ScopeID), 10))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/library/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building library search request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("library search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("library search failed with status %d", resp.StatusCode)
	}

	var decoded typeaheadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding library search response: %w", err)
	}
	return decoded.Results, nil
}
