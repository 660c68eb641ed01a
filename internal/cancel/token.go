// Package cancel provides per-search stop tokens.
//
// A Token is a single-shot flag: RequestCancel arms it and the walker's
// ObserveAndClear consumes it, so one stop request stops exactly one
// observation. Each search gets its own token from a Registry, which keeps
// concurrent searches from cancelling each other.
package cancel

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Token is the stop signal of one search
type Token struct {
	id        string
	requested atomic.Bool
}

// NewToken creates an unarmed token with a fresh ID
func NewToken() *Token {
	return &Token{id: uuid.NewString()}
}

// ID identifies the search this token belongs to
func (t *Token) ID() string {
	return t.id
}

// RequestCancel arms the token. Idempotent.
func (t *Token) RequestCancel() {
	t.requested.Store(true)
}

// ObserveAndClear reports whether cancel was requested and disarms the token
// in the same atomic step.
func (t *Token) ObserveAndClear() bool {
	return t.requested.CompareAndSwap(true, false)
}

// Pending reports whether a cancel request is waiting to be observed
func (t *Token) Pending() bool {
	return t.requested.Load()
}

// Registry tracks the tokens of running searches
type Registry struct {
	mu     sync.Mutex
	tokens map[string]*Token
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]*Token)}
}

// Start issues a token for a new search
func (r *Registry) Start() *Token {
	t := NewToken()
	r.mu.Lock()
	r.tokens[t.id] = t
	r.mu.Unlock()
	return t
}

// Finish forgets a token once its search has ended
func (r *Registry) Finish(t *Token) {
	r.mu.Lock()
	delete(r.tokens, t.id)
	r.mu.Unlock()
}

// Stop requests cancellation of one search. Returns false if no such search
// is running; that case is a no-op.
func (r *Registry) Stop(id string) bool {
	r.mu.Lock()
	t, ok := r.tokens[id]
	r.mu.Unlock()
	if !ok {
		return false
	}
	t.RequestCancel()
	return true
}

// StopAll requests cancellation of every running search and returns how many were signalled
func (r *Registry) StopAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		t.RequestCancel()
	}
	return len(r.tokens)
}

// Active returns the number of running searches
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
