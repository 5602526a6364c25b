package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// HTTPBackend is the real Proxy implementation: Read issues a GET and Write
// a POST against a configured base URL, and the call's outcome reflects the
// network outcome verbatim.
type HTTPBackend struct {
	base   string
	client *http.Client
}

// NewHTTPBackend creates a backend rooted at baseURL, e.g.
// "http://localhost:8080/api". A nil client means http.DefaultClient.
func NewHTTPBackend(baseURL string, client *http.Client) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBackend{base: strings.TrimRight(baseURL, "/"), client: client}
}

// Read GETs base+address and returns the response body.
func (b *HTTPBackend) Read(ctx context.Context, address string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.join(address), nil)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", address, err)
	}
	return b.do(req)
}

// Write POSTs body as JSON to base+address and returns the response body.
func (b *HTTPBackend) Write(ctx context.Context, address string, body any) (Result, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding write body for %s: %w", address, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.join(address), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", address, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *HTTPBackend) do(req *http.Request) (Result, error) {
	slog.Debug("http backend call", "method", req.Method, "url", req.URL.String())
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", req.Method, req.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := errExcerpt(data); msg != "" {
			return nil, fmt.Errorf("%s %s: backend returned %s: %s", req.Method, req.URL, resp.Status, msg)
		}
		return nil, fmt.Errorf("%s %s: backend returned %s", req.Method, req.URL, resp.Status)
	}
	return data, nil
}

const maxErrExcerpt = 200

// errExcerpt keeps enough of a failed response's body to explain the failure
// without dragging a whole error page into the message.
func errExcerpt(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrExcerpt {
		msg = msg[:maxErrExcerpt] + "..."
	}
	return msg
}

func (b *HTTPBackend) join(address string) string {
	if !strings.HasPrefix(address, "/") {
		address = "/" + address
	}
	return b.base + address
}
