package core

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"attendlog.com/attendlog/model"
)

// PendingAction bridges a timed interruption's start to its later resume call.
// The token is held by the client, not keyed by employee, so several
// interruptions can be open concurrently for the same person.
type PendingAction struct {
	Token      string
	EntryID    int64
	EmployeeID int
	Name       string
	Group      string
	Kind       model.ActionKind
	StartedAt  time.Time
}

// PendingTracker is an in-memory PendingStore. Entries live until consumed;
// when a TTL is configured, entries older than it are evicted lazily on the
// next Create or Consume, so an abandoned interruption cannot pin memory
// forever.
type PendingTracker struct {
	mu      sync.Mutex
	ttl     time.Duration
	actions map[string]PendingAction
	now     func() time.Time
}

// NewPendingTracker builds a tracker. A non-positive ttl disables eviction.
func NewPendingTracker(ttl time.Duration) *PendingTracker {
	return &PendingTracker{
		ttl:     ttl,
		actions: make(map[string]PendingAction),
		now:     time.Now,
	}
}

func (t *PendingTracker) Create(action PendingAction) string {
	token := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.evictExpired()
	action.Token = token
	t.actions[token] = action
	return token
}

// Peek returns the action for token without removing it.
func (t *PendingTracker) Peek(token string) (PendingAction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.evictExpired()
	action, ok := t.actions[token]
	return action, ok
}

func (t *PendingTracker) Consume(token string) (PendingAction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.evictExpired()
	action, ok := t.actions[token]
	if ok {
		delete(t.actions, token)
	}
	return action, ok
}

// Len reports how many interruptions are currently open.
func (t *PendingTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.actions)
}

func (t *PendingTracker) evictExpired() {
	if t.ttl <= 0 {
		return
	}
	cutoff := t.now().Add(-t.ttl)
	for token, action := range t.actions {
		if action.StartedAt.Before(cutoff) {
			delete(t.actions, token)
		}
	}
}
