package dispatch

import (
	"github.com/duxkit/dux/store"
)

// Dispatcher connects a compiled top-level reducer to a state container. It
// is the only component that turns events into Store.Apply calls; operation
// groups never touch the store directly.
type Dispatcher[S any] struct {
	store  *store.Store[S]
	reduce Reducer[S]
}

// NewDispatcher wires reduce to st. The reducer should already be the
// Combine of every functional area's compiled reducer.
func NewDispatcher[S any](st *store.Store[S], reduce Reducer[S]) *Dispatcher[S] {
	return &Dispatcher[S]{store: st, reduce: reduce}
}

// Dispatch applies ev through the reducer, synchronously. By the time
// Dispatch returns, the store holds the new state and every observer has
// been notified.
func (d *Dispatcher[S]) Dispatch(ev Event) {
	d.store.Apply(func(s S) S { return d.reduce(s, ev) })
}

// State returns the store's current snapshot.
func (d *Dispatcher[S]) State() S {
	return d.store.State()
}
