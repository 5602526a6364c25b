package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPReadReflectsBackendBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products/search/glove", r.URL.Path)
		w.Write([]byte(`[{"name":"Baseball glove"}]`))
	}))
	defer ts.Close()

	b := NewHTTPBackend(ts.URL, nil)
	res, err := b.Read(context.Background(), "/products/search/glove")
	require.NoError(t, err)

	var items []struct {
		Name string `json:"name"`
	}
	require.NoError(t, res.Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Baseball glove", items[0].Name)
}

func TestHTTPWritePostsJSON(t *testing.T) {
	type payload struct {
		N int `json:"n"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, 5, got.N)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	b := NewHTTPBackend(ts.URL, nil)
	_, err := b.Write(context.Background(), "/orders", payload{N: 5})
	assert.NoError(t, err)
}

func TestHTTPNon2xxIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	b := NewHTTPBackend(ts.URL, nil)
	_, err := b.Read(context.Background(), "/anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "nope", "the server's diagnostic body belongs in the error")
}

func TestHTTPErrorBodyExcerptIsTruncated(t *testing.T) {
	long := strings.Repeat("x", 1000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, long, http.StatusBadGateway)
	}))
	defer ts.Close()

	b := NewHTTPBackend(ts.URL, nil)
	_, err := b.Read(context.Background(), "/anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "xxxx...")
	assert.Less(t, len(err.Error()), 400, "error must carry an excerpt, not the whole body")
}

func TestHTTPBaseURLJoining(t *testing.T) {
	var path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`null`))
	}))
	defer ts.Close()

	// Trailing slash on the base and a missing leading slash on the address
	// both normalize away.
	b := NewHTTPBackend(ts.URL+"/", nil)
	_, err := b.Read(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, "/products", path)
}
