package dispatch

import (
	"fmt"
)

// Reducer maps a state value and an event to the next state value. Reducers
// must be pure: same inputs, same output, no side effects.
type Reducer[A any] func(A, Event) A

// Binder accumulates (identity, transition) entries for one functional area
// and compiles them into a single Reducer. Binding is fluent:
//
//	reduce := dispatch.NewBinder[SearchState]().
//		Bind(queryChanged, setQuery).
//		Bind(searchPending, markPending).
//		Compile()
//
// A Binder is a setup-time object and is not safe for concurrent use; the
// compiled Reducer is immutable and safe to share.
type Binder[A any] struct {
	fns map[Ident]func(A, any) A
}

// NewBinder creates an empty Binder for sub-state type A.
func NewBinder[A any]() *Binder[A] {
	return &Binder[A]{fns: make(map[Ident]func(A, any) A)}
}

// Bind associates fn with the given identity. Binding the same identity again
// replaces the previous entry; the last registration wins.
func (b *Binder[A]) Bind(id Ident, fn func(A, any) A) *Binder[A] {
	if id == (Ident{}) {
		panic("dispatch: Bind called with zero Ident")
	}
	b.fns[id] = fn
	return b
}

// On binds a payload-typed transition. The compiled entry asserts the event
// payload to P before calling fn; a payload of the wrong dynamic type is a
// wiring defect and panics. A nil payload is passed through as P's zero
// value, which is what signal-only events carry.
func On[A, P any](b *Binder[A], id Ident, fn func(A, P) A) *Binder[A] {
	return b.Bind(id, func(a A, payload any) A {
		if payload == nil {
			var zero P
			return fn(a, zero)
		}
		p, ok := payload.(P)
		if !ok {
			panic(fmt.Sprintf("dispatch: %s payload is %T, bound transition wants %T", id, payload, p))
		}
		return fn(a, p)
	})
}

// Compile snapshots the table into an immutable Reducer. An event whose
// identity has no entry returns the state unchanged; partial wiring during
// incremental development is deliberate, not an error. Later Bind calls on
// the Binder do not affect reducers already compiled.
func (b *Binder[A]) Compile() Reducer[A] {
	fns := make(map[Ident]func(A, any) A, len(b.fns))
	for id, fn := range b.fns {
		fns[id] = fn
	}
	return func(a A, ev Event) A {
		fn, ok := fns[ev.Ident]
		if !ok {
			return a
		}
		return fn(a, ev.Payload)
	}
}

// Area lifts an area reducer into the root state type. get extracts the
// area's subtree, set replaces it and nothing else; every sibling subtree
// passes through the returned reducer untouched. For an event the area does
// not bind, the area reducer hands back its input, so the rebuilt root is
// structurally identical to the one that came in.
func Area[S, A any](reduce Reducer[A], get func(S) A, set func(S, A) S) Reducer[S] {
	return func(s S, ev Event) S {
		return set(s, reduce(get(s), ev))
	}
}

// Combine chains area reducers into one top-level reducer. An event targets
// exactly one area, but feeding it through every area is harmless: the others
// no-op by construction.
func Combine[S any](reducers ...Reducer[S]) Reducer[S] {
	return func(s S, ev Event) S {
		for _, r := range reducers {
			s = r(s, ev)
		}
		return s
	}
}
