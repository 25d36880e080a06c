package library

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// cachedSearcher wraps another Searcher with a short-lived redis cache, so
// repeated typeahead keystrokes for the same text do not re-hit the backend.
// Cache failures fall through to the inner searcher.
type cachedSearcher struct {
	inner  Searcher
	client *redis.Client
	ttl    time.Duration
}

func NewCachedSearcher(inner Searcher, client *redis.Client, ttl time.Duration) Searcher {
	return &cachedSearcher{inner: inner, client: client, ttl: ttl}
}

func (c *cachedSearcher) key(q Query) string {
	return fmt.Sprintf("typeahead:%s:%d:%s", q.Type, q.ScopeID, Normalize(q.Text))
}

func (c *cachedSearcher) Search(ctx context.Context, q Query) ([]Candidate, error) {
	key := c.key(q)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var candidates []Candidate
		if err := json.Unmarshal([]byte(raw), &candidates); err == nil {
			return candidates, nil
		}
	} else if err != redis.Nil {
		log.Warn().Err(err).Str("key", key).Msg("Typeahead cache read failed")
	}

	candidates, err := c.inner.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(candidates); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Typeahead cache write failed")
		}
	}
	return candidates, nil
}
