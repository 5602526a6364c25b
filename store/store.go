// Package store provides the state container: one immutable state value,
// replaced wholesale by transition functions and observed through
// subscriptions. It is the single shared mutable resource of the runtime;
// every mutation funnels through Apply.
package store

import (
	"sync"
)

// Store holds a single immutable state value of type S. State is only ever
// replaced wholesale by Apply; it is never mutated in place. S should be a
// value type (struct of values and freshly-allocated slices) so that a
// snapshot handed to an observer stays stable after later transitions.
type Store[S any] struct {
	mu    sync.Mutex
	state S
	subs  []subscriber[S]
	subID int
}

type subscriber[S any] struct {
	id int
	fn func(S)
}

// New creates a Store seeded with the given initial state.
func New[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

// State returns the current snapshot. It never blocks behind observer
// callbacks of a concurrent Apply for longer than that Apply takes to finish.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply replaces the state with transition(current) and then notifies all
// subscribers in subscription order, passing each the new snapshot. The whole
// sequence runs under one lock: a second Apply, even from another goroutine,
// cannot start until every observer of the first has returned. Observers must
// not call Apply, State or Subscribe on the same store from inside the
// callback.
func (s *Store[S]) Apply(transition func(S) S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = transition(s.state)
	for _, sub := range s.subs {
		sub.fn(s.state)
	}
}

// Subscribe registers an observer and returns a handle that removes it.
// Calling the handle more than once is harmless.
func (s *Store[S]) Subscribe(fn func(S)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subID++
	id := s.subID
	s.subs = append(s.subs, subscriber[S]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
