// Package services provides the capability boundary for external data
// access: a Proxy interface for read/write calls by hierarchical address,
// backed either by an in-memory simulated router or by a real HTTP call.
// Exactly one implementation is selected at composition time and injected
// into every operation group; swapping backends changes no group or reducer
// code.
package services

import (
	"context"
	"encoding/json"
)

// Result is the JSON body a backend resolved with.
type Result []byte

// Decode unmarshals the result into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r, v)
}

// Proxy answers read and write calls by address. An address is a
// hierarchical string such as "/products/search/glove"; segments that vary
// per call are path-escaped by the caller. Implementations report the
// backend's outcome verbatim: an error is returned for transport or handler
// failure, and for a simulated address no route was registered for (see
// ErrNoRoute).
type Proxy interface {
	Read(ctx context.Context, address string) (Result, error)
	Write(ctx context.Context, address string, body any) (Result, error)
}
