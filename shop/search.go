package shop

import (
	"context"
	"errors"
	"net/url"

	"github.com/duxkit/dux/dispatch"
	"github.com/duxkit/dux/services"
)

// SearchState is the search area's subtree of the root State.
type SearchState struct {
	Query   string
	Results []Product
	Loading bool
	Error   string
}

// Search operation identities. One per declarative operation; the compiled
// area reducer is keyed on these, never on strings.
var (
	searchQueryChanged = dispatch.NewIdent("search.queryChanged")
	searchCleared      = dispatch.NewIdent("search.cleared")
	searchPending      = dispatch.NewIdent("search.pending")
	searchSucceeded    = dispatch.NewIdent("search.succeeded")
	searchFailed       = dispatch.NewIdent("search.failed")
)

func newSearchBinder() *dispatch.Binder[SearchState] {
	b := dispatch.NewBinder[SearchState]()
	dispatch.On(b, searchQueryChanged, func(s SearchState, query string) SearchState {
		s.Query = query
		return s
	})
	b.Bind(searchCleared, func(s SearchState, _ any) SearchState {
		s.Results = nil
		s.Error = ""
		return s
	})
	b.Bind(searchPending, func(s SearchState, _ any) SearchState {
		s.Loading = true
		s.Error = ""
		return s
	})
	dispatch.On(b, searchSucceeded, func(s SearchState, results []Product) SearchState {
		s.Loading = false
		s.Results = results
		s.Error = ""
		return s
	})
	dispatch.On(b, searchFailed, func(s SearchState, msg string) SearchState {
		s.Loading = false
		s.Error = msg
		return s
	})
	return b
}

// SearchGroup exposes the search area's operations. It holds an explicit
// event sink, a state accessor for re-reading the current subtree mid
// procedure, and the injected Proxy; it never mutates state except through
// dispatched events.
type SearchGroup struct {
	sink  dispatch.Sink
	state func() SearchState
	proxy services.Proxy
}

// SetQuery records the text the user is searching for. Pure operation: the
// payload is dispatched and returned.
func (g *SearchGroup) SetQuery(query string) string {
	g.sink.Dispatch(dispatch.Event{Ident: searchQueryChanged, Payload: query})
	return query
}

// Clear drops the current results and error. Signal-only pure operation.
func (g *SearchGroup) Clear() {
	g.sink.Dispatch(dispatch.Event{Ident: searchCleared})
}

// Run executes the search workflow against the proxy: it re-reads the query
// as of now, emits the pending event, awaits the backend, and converts the
// outcome into a succeeded or failed event. Backend failures never propagate
// to the caller; the returned error is non-nil only for a route
// configuration defect in a simulated backend, which indicates broken
// wiring rather than a runtime condition.
//
// Overlapping Run invocations are allowed; their events interleave in
// backend completion order. An empty query resolves to an empty result set
// without a backend call.
func (g *SearchGroup) Run(ctx context.Context) error {
	query := g.state().Query
	if query == "" {
		g.sink.Dispatch(dispatch.Event{Ident: searchPending})
		g.sink.Dispatch(dispatch.Event{Ident: searchSucceeded, Payload: []Product(nil)})
		return nil
	}
	g.sink.Dispatch(dispatch.Event{Ident: searchPending})
	res, err := g.proxy.Read(ctx, "/products/search/"+url.PathEscape(query))
	if err != nil {
		if errors.Is(err, services.ErrNoRoute) {
			return err
		}
		g.sink.Dispatch(dispatch.Event{Ident: searchFailed, Payload: err.Error()})
		return nil
	}
	var results []Product
	if err := res.Decode(&results); err != nil {
		g.sink.Dispatch(dispatch.Event{Ident: searchFailed, Payload: err.Error()})
		return nil
	}
	g.sink.Dispatch(dispatch.Event{Ident: searchSucceeded, Payload: results})
	return nil
}
