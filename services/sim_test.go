package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCapturesNamedParams(t *testing.T) {
	var got map[string]string
	b := NewSimBackend().OnRead("/products/search/{searchText}", func(params map[string]string, _ Result) (any, error) {
		got = params
		return []string{"ok"}, nil
	})

	res, err := b.Read(context.Background(), "/products/search/glove")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"searchText": "glove"}, got)

	var decoded []string
	require.NoError(t, res.Decode(&decoded))
	assert.Equal(t, []string{"ok"}, decoded)
}

func TestReadUnescapesCapturedSegments(t *testing.T) {
	var got string
	b := NewSimBackend().OnRead("/products/search/{searchText}", func(params map[string]string, _ Result) (any, error) {
		got = params["searchText"]
		return nil, nil
	})
	_, err := b.Read(context.Background(), "/products/search/Baseball%20glove")
	require.NoError(t, err)
	assert.Equal(t, "Baseball glove", got)
}

func TestMissingSegmentIsNoRoute(t *testing.T) {
	b := NewSimBackend().OnRead("/products/search/{searchText}", func(map[string]string, Result) (any, error) {
		return nil, nil
	})
	_, err := b.Read(context.Background(), "/products/search")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoute), "want ErrNoRoute, got %v", err)
	assert.Contains(t, err.Error(), "/products/search")
}

func TestUnregisteredKindIsNoRoute(t *testing.T) {
	b := NewSimBackend().OnRead("/orders", func(map[string]string, Result) (any, error) {
		return nil, nil
	})
	// Registered as a read route only; a write to the same address misses.
	_, err := b.Write(context.Background(), "/orders", map[string]int{"n": 1})
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestFirstRegisteredMatchWins(t *testing.T) {
	b := NewSimBackend().
		OnRead("/items/{id}", func(map[string]string, Result) (any, error) { return "by-id", nil }).
		OnRead("/items/special", func(map[string]string, Result) (any, error) { return "special", nil })

	res, err := b.Read(context.Background(), "/items/special")
	require.NoError(t, err)
	var got string
	require.NoError(t, res.Decode(&got))
	assert.Equal(t, "by-id", got, "routes must match in registration order")
}

func TestWriteHandlerReceivesEncodedBody(t *testing.T) {
	type order struct {
		N int `json:"n"`
	}
	var got order
	b := NewSimBackend().OnWrite("/orders", func(_ map[string]string, body Result) (any, error) {
		return nil, body.Decode(&got)
	})
	_, err := b.Write(context.Background(), "/orders", order{N: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, got.N)
}

func TestHandlerErrorPropagates(t *testing.T) {
	boom := errors.New("backend exploded")
	b := NewSimBackend().OnRead("/x", func(map[string]string, Result) (any, error) {
		return nil, boom
	})
	_, err := b.Read(context.Background(), "/x")
	assert.ErrorIs(t, err, boom)
}

func TestPatternCompilationDefectsPanic(t *testing.T) {
	assert.Panics(t, func() {
		NewSimBackend().OnRead("/a/{}/b", func(map[string]string, Result) (any, error) { return nil, nil })
	})
	assert.Panics(t, func() {
		NewSimBackend().OnRead("/a/{x}/{x}", func(map[string]string, Result) (any, error) { return nil, nil })
	})
}

func TestLatencyRespectsContext(t *testing.T) {
	b := NewSimBackend().
		OnRead("/slow", func(map[string]string, Result) (any, error) { return nil, nil }).
		WithLatency(time.Minute, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Read(ctx, "/slow")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrailingSlashEquivalence(t *testing.T) {
	b := NewSimBackend().OnRead("/products/", func(map[string]string, Result) (any, error) {
		return "all", nil
	})
	_, err := b.Read(context.Background(), "/products")
	assert.NoError(t, err)
}
