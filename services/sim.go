package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
)

// HandlerFunc answers one simulated route. params maps each placeholder name
// in the route's pattern to the concrete (unescaped) segment it captured.
// body is the JSON-encoded request body for write routes and empty for read
// routes. The returned value is JSON-encoded to form the call's Result.
type HandlerFunc func(params map[string]string, body Result) (any, error)

// SimBackend is the in-memory Proxy implementation. Routes are kept in
// registration order, one ordered table per call kind, and the first pattern
// that structurally matches an address wins.
//
// Registration is a setup-time activity; after that the tables are read-only
// and SimBackend is safe for concurrent calls.
type SimBackend struct {
	reads  []simRoute
	writes []simRoute

	// Optional random latency applied before resolving, to approximate real
	// backend timing for manual use. Deterministic test runs leave it unset.
	minDelay time.Duration
	maxDelay time.Duration
}

type simRoute struct {
	pattern string
	segs    []patternSeg
	handler HandlerFunc
}

// patternSeg is one compiled segment: either a literal to compare against or
// a named placeholder that captures any single path segment.
type patternSeg struct {
	literal string
	param   string
}

// NewSimBackend creates a backend with no routes. Register routes with
// OnRead and OnWrite before handing it to operation groups.
func NewSimBackend() *SimBackend {
	return &SimBackend{}
}

// OnRead registers a read route. Dynamic segments use {name} syntax:
//
//	b.OnRead("/products/search/{searchText}", searchHandler)
//
// Patterns are tried in registration order.
func (b *SimBackend) OnRead(pattern string, h HandlerFunc) *SimBackend {
	b.reads = append(b.reads, simRoute{pattern: pattern, segs: compilePattern(pattern), handler: h})
	return b
}

// OnWrite registers a write route.
func (b *SimBackend) OnWrite(pattern string, h HandlerFunc) *SimBackend {
	b.writes = append(b.writes, simRoute{pattern: pattern, segs: compilePattern(pattern), handler: h})
	return b
}

// WithLatency makes every call sleep for a random duration in [min, max]
// before resolving. Never configure this for automated verification.
func (b *SimBackend) WithLatency(min, max time.Duration) *SimBackend {
	if max < min {
		min, max = max, min
	}
	b.minDelay, b.maxDelay = min, max
	return b
}

// Read resolves address against the read routes.
func (b *SimBackend) Read(ctx context.Context, address string) (Result, error) {
	return b.resolve(ctx, "read", b.reads, address, nil)
}

// Write resolves address against the write routes. body is JSON-encoded and
// passed to the handler.
func (b *SimBackend) Write(ctx context.Context, address string, body any) (Result, error) {
	var encoded Result
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding write body for %s: %w", address, err)
		}
	}
	return b.resolve(ctx, "write", b.writes, address, encoded)
}

func (b *SimBackend) resolve(ctx context.Context, kind string, routes []simRoute, address string, body Result) (Result, error) {
	segs := splitAddress(address)
	for _, rt := range routes {
		params, ok := matchPattern(rt.segs, segs)
		if !ok {
			continue
		}
		if err := b.delay(ctx); err != nil {
			return nil, err
		}
		slog.Debug("sim backend resolving", "kind", kind, "address", address, "pattern", rt.pattern)
		out, err := rt.handler(params, body)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("encoding result of %s: %w", rt.pattern, err)
		}
		return encoded, nil
	}
	return nil, fmt.Errorf("%s %s: %w", kind, address, ErrNoRoute)
}

func (b *SimBackend) delay(ctx context.Context) error {
	if b.maxDelay <= 0 {
		return nil
	}
	d := b.minDelay
	if span := b.maxDelay - b.minDelay; span > 0 {
		d += time.Duration(rand.Int64N(int64(span) + 1))
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// compilePattern parses pattern once at registration into literal and
// placeholder segments. Malformed placeholders and duplicate names are setup
// defects and panic.
func compilePattern(pattern string) []patternSeg {
	raw := splitAddress(pattern)
	segs := make([]patternSeg, 0, len(raw))
	seen := map[string]bool{}
	for _, s := range raw {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			name := s[1 : len(s)-1]
			if name == "" {
				panic(fmt.Sprintf("services: empty placeholder in pattern %q", pattern))
			}
			if seen[name] {
				panic(fmt.Sprintf("services: duplicate placeholder {%s} in pattern %q", name, pattern))
			}
			seen[name] = true
			segs = append(segs, patternSeg{param: name})
		} else {
			segs = append(segs, patternSeg{literal: s})
		}
	}
	return segs
}

// matchPattern compares compiled pattern segments against the split address
// positionally. Placeholder segments match any single segment and capture its
// unescaped value by name.
func matchPattern(segs []patternSeg, addr []string) (map[string]string, bool) {
	if len(segs) != len(addr) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range segs {
		if seg.param == "" {
			if seg.literal != addr[i] {
				return nil, false
			}
			continue
		}
		val, err := url.PathUnescape(addr[i])
		if err != nil {
			val = addr[i]
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[seg.param] = val
	}
	return params, true
}

func splitAddress(address string) []string {
	address = strings.Trim(address, "/")
	if address == "" {
		return nil
	}
	return strings.Split(address, "/")
}
