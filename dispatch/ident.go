// Package dispatch binds operation identities to state transition functions
// and compiles the bindings into reducers. Identities are opaque handles, so
// dispatch is joined on values checked at compile time rather than magic
// strings. Binding tables are write-once at setup; compiled reducers are
// immutable and safe to share.
package dispatch

import (
	"fmt"
	"sync/atomic"
)

var identSeq atomic.Uint64

// Ident is the identity of one declarative operation. Idents are compared by
// the sequence number handed out by NewIdent, never by name, so two
// operations registered with the same name remain distinct and dispatch
// cannot be spoofed with a string.
//
// The zero Ident is never returned by NewIdent and matches nothing.
type Ident struct {
	seq  uint64
	name string
}

// NewIdent allocates a fresh operation identity. The name is carried for
// logs and error messages only.
func NewIdent(name string) Ident {
	return Ident{seq: identSeq.Add(1), name: name}
}

// Name returns the diagnostic name given at allocation.
func (id Ident) Name() string { return id.name }

func (id Ident) String() string {
	if id.seq == 0 {
		return "ident(zero)"
	}
	return fmt.Sprintf("%s#%d", id.name, id.seq)
}

// Event pairs an operation identity with the payload that operation computed.
// Events are ephemeral: they are consumed synchronously by a compiled reducer
// and never stored.
type Event struct {
	Ident   Ident
	Payload any
}

// Sink accepts events for application to a state container. Operation groups
// hold a Sink rather than a concrete Dispatcher so they stay independent of
// the root state type.
type Sink interface {
	Dispatch(Event)
}
