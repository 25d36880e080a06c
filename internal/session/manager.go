package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/library"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager owns the live edit sessions, keyed by an opaque session id issued
// at open time.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	client           contentapi.Client
	matcher          *library.Matcher
	debounceInterval time.Duration
	timeout          time.Duration
}

func NewManager(client contentapi.Client, matcher *library.Matcher, debounceInterval, timeout time.Duration) *Manager {
	return &Manager{
		sessions:         make(map[string]*Session),
		client:           client,
		matcher:          matcher,
		debounceInterval: debounceInterval,
		timeout:          timeout,
	}
}

// Open loads the assessment tree and registers a new session over it.
func (m *Manager) Open(ctx context.Context, assessmentID uint) (*Session, error) {
	id := uuid.NewString()
	sess, err := New(ctx, id, assessmentID, m.client, m.matcher, m.debounceInterval, m.timeout)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	return sess, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close tears a session down. Unknown ids are a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		sess.Close()
	}
}
