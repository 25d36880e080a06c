package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// httpClient drives a remote content API. Every call runs under the
// configured request timeout so a stuck request cannot wedge a session.
type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPClient creates the remote implementation of Client.
func NewHTTPClient(baseURL, token string, timeout time.Duration) Client {
	if token == "" {
		log.Warn().Msg("Content API access token not set; remote calls will be unauthenticated")
	}
	return &httpClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// idResponse is the {id} success shape of the create operations.
type idResponse struct {
	ID     uint   `json:"id"`
	Detail string `json:"detail,omitempty"`
}

type detailResponse struct {
	Detail string `json:"detail,omitempty"`
}

// do executes one JSON round trip. A nil out skips body decoding. A 2xx body
// carrying a semantic-failure detail surfaces as a BackendRejection.
func (c *httpClient) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Operation: op, Status: resp.StatusCode}
	}

	// 204 or an empty body is a valid success signal.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Operation: op, Err: err}
	}
	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}

	var dr detailResponse
	if err := json.Unmarshal(raw, &dr); err == nil && dr.Detail != "" && rejectionDetail(dr.Detail) {
		return &BackendRejection{Operation: op, Detail: dr.Detail}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", op, err)
		}
	}
	return nil
}

func (c *httpClient) GetAssessment(ctx context.Context, id uint) (*AssessmentTree, error) {
	var tree AssessmentTree
	if err := c.do(ctx, "get assessment", http.MethodGet, fmt.Sprintf("/assessments/%d", id), nil, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

func (c *httpClient) CreateSection(ctx context.Context, req SectionCreate) (uint, error) {
	var resp idResponse
	if err := c.do(ctx, "create section", http.MethodPost, "/sections", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *httpClient) UpdateSection(ctx context.Context, id uint, req SectionUpdate) error {
	return c.do(ctx, "update section", http.MethodPut, fmt.Sprintf("/sections/%d", id), req, nil)
}

func (c *httpClient) DeleteSection(ctx context.Context, id uint) error {
	return c.do(ctx, "delete section", http.MethodDelete, fmt.Sprintf("/sections/%d", id), nil, nil)
}

func (c *httpClient) CreateQuestion(ctx context.Context, req QuestionCreate) (uint, error) {
	var resp idResponse
	if err := c.do(ctx, "create question", http.MethodPost, "/questions", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *httpClient) UpdateQuestion(ctx context.Context, id uint, req QuestionUpdate) error {
	return c.do(ctx, "update question", http.MethodPut, fmt.Sprintf("/questions/%d", id), req, nil)
}

func (c *httpClient) DeleteQuestion(ctx context.Context, id uint) error {
	return c.do(ctx, "delete question", http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, nil)
}

func (c *httpClient) AttachAnswers(ctx context.Context, questionID uint, answers []AnswerCreate) (*AttachResult, error) {
	var resp AttachResult
	path := fmt.Sprintf("/questions/%d/answers", questionID)
	if err := c.do(ctx, "attach answers", http.MethodPost, path, answers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) UpdateAnswer(ctx context.Context, id uint, req AnswerUpdate) error {
	return c.do(ctx, "update answer", http.MethodPut, fmt.Sprintf("/answers/%d", id), req, nil)
}

func (c *httpClient) DeleteAnswer(ctx context.Context, id uint) error {
	return c.do(ctx, "delete answer", http.MethodDelete, fmt.Sprintf("/answers/%d", id), nil, nil)
}

func (c *httpClient) BatchSortOrder(ctx context.Context, kind string, updates []SortUpdate) error {
	body := map[string]any{"kind": kind, "updates": updates}
	return c.do(ctx, "batch sort order", http.MethodPut, "/sort-orders", body, nil)
}

func (c *httpClient) PublishBundle(ctx context.Context, req BundlePublish) error {
	return c.do(ctx, "publish bundle", http.MethodPost, "/library/bundles", req, nil)
}

func (c *httpClient) Relationships(ctx context.Context, answerID uint) (*RelationshipBundle, error) {
	var bundle RelationshipBundle
	path := fmt.Sprintf("/answers/%d/relationships", answerID)
	if err := c.do(ctx, "load relationships", http.MethodGet, path, nil, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *httpClient) AddRelationship(ctx context.Context, req RelationshipChange) error {
	path := fmt.Sprintf("/answers/%d/relationships", req.AnswerID)
	return c.do(ctx, "add relationship", http.MethodPost, path, req, nil)
}

func (c *httpClient) RemoveRelationship(ctx context.Context, req RelationshipChange) error {
	// The delete endpoint echoes the original request back; only the status
	// matters here.
	path := fmt.Sprintf("/answers/%d/relationships/%s/%d", req.AnswerID, req.Type, req.TargetID)
	return c.do(ctx, "remove relationship", http.MethodDelete, path, nil, nil)
}

func (c *httpClient) Goals(ctx context.Context, problemID uint) ([]GoalRecord, error) {
	var goals []GoalRecord
	if err := c.do(ctx, "load goals", http.MethodGet, fmt.Sprintf("/problems/%d/goals", problemID), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *httpClient) Interventions(ctx context.Context, goalID uint) ([]InterventionRecord, error) {
	var interventions []InterventionRecord
	if err := c.do(ctx, "load interventions", http.MethodGet, fmt.Sprintf("/goals/%d/interventions", goalID), nil, &interventions); err != nil {
		return nil, err
	}
	return interventions, nil
}

func (c *httpClient) CreateScoringModel(ctx context.Context, req ScoringModelCreate) (uint, error) {
	var resp idResponse
	if err := c.do(ctx, "create scoring model", http.MethodPost, "/scoring-models", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *httpClient) UpdateScoringModel(ctx context.Context, id uint, req ScoringModelUpdate) error {
	return c.do(ctx, "update scoring model", http.MethodPut, fmt.Sprintf("/scoring-models/%d", id), req, nil)
}

func (c *httpClient) SetScore(ctx context.Context, req ScoreSet) error {
	return c.do(ctx, "set score", http.MethodPut, "/scores", req, nil)
}
