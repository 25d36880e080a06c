package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
)

// Session drives one assessment's edit state. All dispatches run under a
// single mutex, so the reducer sees a linear action history; effects execute
// synchronously inside the dispatch except for fire-and-forget publication
// and debounced typeahead, which re-enter through Dispatch from their own
// goroutines.
type Session struct {
	ID string

	mu       sync.Mutex
	state    *State
	client   contentapi.Client
	matcher  *library.Matcher
	debounce *Debouncer
	timeout  time.Duration
}

// New loads the assessment tree and opens a session over it.
func New(ctx context.Context, id string, assessmentID uint, client contentapi.Client, matcher *library.Matcher, debounceInterval, timeout time.Duration) (*Session, error) {
	tree, err := client.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       id,
		state:    NewState(tree),
		client:   client,
		matcher:  matcher,
		debounce: NewDebouncer(debounceInterval),
		timeout:  timeout,
	}, nil
}

// State returns the current snapshot. Safe to hand out: the reducer never
// mutates a published snapshot.
func (sess *Session) State() *State {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// Dispatch folds an action and runs every effect it requests, feeding each
// completion back into the reducer before returning. The returned snapshot
// already reflects synchronous completions.
func (sess *Session) Dispatch(action Action) *State {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	queue := []Action{action}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		state, effects := Reduce(sess.state, next)
		sess.state = state
		for _, effect := range effects {
			queue = append(queue, sess.execute(effect)...)
		}
	}
	return sess.state
}

// dispatchAsync re-enters the dispatch loop from a background goroutine.
func (sess *Session) dispatchAsync(action Action) {
	sess.Dispatch(action)
}

// Close stops the session's timers. In-flight background work may still
// complete and fold in; that is harmless.
func (sess *Session) Close() {
	sess.debounce.Stop()
}

func (sess *Session) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sess.timeout)
}

// execute runs one effect and returns the completion actions to fold next.
func (sess *Session) execute(effect Effect) []Action {
	switch e := effect.(type) {
	case CheckLibraryEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		candidate, err := sess.matcher.ExactMatch(ctx, e.Query)
		return []Action{LibraryChecked{OwnerRef: e.OwnerRef, TargetRef: e.TargetRef, Candidate: candidate, Err: err}}

	case CreateSectionEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		id, err := sess.client.CreateSection(ctx, e.Req)
		return []Action{PersistResolved{Ref: e.Ref, ID: id, Err: err}}

	case UpdateSectionEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		err := sess.client.UpdateSection(ctx, e.ID, e.Req)
		return []Action{PersistResolved{Ref: e.Ref, ID: e.ID, Err: err}}

	case CreateQuestionEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		id, err := sess.client.CreateQuestion(ctx, e.Req)
		return []Action{PersistResolved{Ref: e.Ref, ID: id, Err: err}}

	case UpdateQuestionEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		err := sess.client.UpdateQuestion(ctx, e.ID, e.Req)
		return []Action{PersistResolved{Ref: e.Ref, ID: e.ID, Err: err}}

	case AttachAnswersEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		result, err := sess.client.AttachAnswers(ctx, e.QuestionID, e.Answers)
		return []Action{AnswersAttached{OwnerRef: e.OwnerRef, Result: result, Err: err}}

	case UpdateAnswerEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		err := sess.client.UpdateAnswer(ctx, e.ID, e.Req)
		return []Action{PersistResolved{Ref: e.Ref, ID: e.ID, Err: err}}

	case DeleteEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		var err error
		switch e.Kind {
		case KindSection:
			err = sess.client.DeleteSection(ctx, e.ID)
		case KindQuestion:
			err = sess.client.DeleteQuestion(ctx, e.ID)
		case KindAnswer:
			err = sess.client.DeleteAnswer(ctx, e.ID)
		}
		if e.ForMove {
			return []Action{SourceDeleted{Ref: e.Ref, Err: err}}
		}
		return []Action{DeleteResolved{Kind: e.Kind, Ref: e.Ref, Err: err}}

	case PublishBundleEffect:
		// Fire and forget: the save that emitted this is already complete.
		go func() {
			ctx, cancel := sess.opCtx()
			defer cancel()
			err := sess.client.PublishBundle(ctx, e.Req)
			if err != nil {
				log.Warn().Err(err).Msg("session: bundle publication failed")
			}
			sess.dispatchAsync(BundlePublished{OwnerRef: e.OwnerRef, Err: err})
		}()
		return nil

	case BatchSortEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		err := sess.client.BatchSortOrder(ctx, string(e.Kind), e.Updates)
		return []Action{ReorderSettled{Kind: e.Kind, ParentRef: e.ParentRef, Err: err}}

	case ReloadTreeEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		tree, err := sess.client.GetAssessment(ctx, sess.state.AssessmentID)
		return []Action{TreeReloaded{Tree: tree, Err: err}}

	case LoadRelationshipsEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		bundle, err := sess.client.Relationships(ctx, e.AnswerID)
		return []Action{RelationshipsLoaded{AnswerRef: e.AnswerRef, Bundle: bundle, Err: err}}

	case LoadGoalsEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		goals, err := sess.client.Goals(ctx, e.ProblemID)
		return []Action{GoalsLoaded{AnswerRef: e.AnswerRef, ProblemID: e.ProblemID, Goals: goals, Err: err}}

	case LoadInterventionsEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		interventions, err := sess.client.Interventions(ctx, e.GoalID)
		return []Action{InterventionsLoaded{AnswerRef: e.AnswerRef, ProblemID: e.ProblemID, GoalID: e.GoalID, Interventions: interventions, Err: err}}

	case MutateLinkEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		var err error
		if e.Remove {
			err = sess.client.RemoveRelationship(ctx, e.Req)
		} else {
			err = sess.client.AddRelationship(ctx, e.Req)
		}
		return []Action{LinkMutated{AnswerRef: e.AnswerRef, Remove: e.Remove, Err: err}}

	case TypeaheadEffect:
		sess.debounce.Trigger(e.Slot, func() {
			ctx, cancel := sess.opCtx()
			defer cancel()
			candidates, err := sess.matcher.Search(ctx, library.Query{
				Text:    e.Ctx.Text,
				Type:    e.Ctx.Type,
				ScopeID: e.Ctx.ScopeID,
				Limit:   typeaheadLimit,
			})
			sess.dispatchAsync(SearchResolved{Slot: e.Slot, Ctx: e.Ctx, Candidates: candidates, Err: err})
		})
		return nil

	case SetScoreEffect:
		ctx, cancel := sess.opCtx()
		defer cancel()
		err := sess.client.SetScore(ctx, e.Req)
		return []Action{ScoreSaved{AnswerRef: e.AnswerRef, ModelID: e.Req.ModelID, Value: e.Req.Value, Err: err}}
	}
	return nil
}

const typeaheadLimit = 20
