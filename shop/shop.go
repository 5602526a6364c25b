// Package shop is the reference application built on the dispatch runtime: a
// product catalog with a search area and a cart area, each a functional
// subtree of one root State. It demonstrates the full wiring — binders
// compiled per area, combined into one reducer, operation groups constructed
// with an injected Proxy — and is exercised end to end by the dux CLI
// against both the simulated and the HTTP backend.
package shop

import (
	"github.com/duxkit/dux/dispatch"
	"github.com/duxkit/dux/services"
	"github.com/duxkit/dux/store"
)

// Product is one catalog entry.
type Product struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// State is the root state: exactly one subtree per functional area.
type State struct {
	Search SearchState
	Cart   CartState
}

// App is the composition root. Exactly one Proxy implementation is chosen by
// the caller and injected into every operation group; nothing in the groups
// or reducers knows which one.
type App struct {
	Store  *store.Store[State]
	Search *SearchGroup
	Cart   *CartGroup
}

// New builds the store, compiles both areas' bindings into one top-level
// reducer, and constructs the operation groups around proxy.
func New(proxy services.Proxy) *App {
	st := store.New(State{})
	reduce := dispatch.Combine(
		dispatch.Area(newSearchBinder().Compile(),
			func(s State) SearchState { return s.Search },
			func(s State, a SearchState) State { s.Search = a; return s }),
		dispatch.Area(newCartBinder().Compile(),
			func(s State) CartState { return s.Cart },
			func(s State, a CartState) State { s.Cart = a; return s }),
	)
	d := dispatch.NewDispatcher(st, reduce)
	return &App{
		Store: st,
		Search: &SearchGroup{
			sink:  d,
			state: func() SearchState { return st.State().Search },
			proxy: proxy,
		},
		Cart: &CartGroup{
			sink:  d,
			state: func() CartState { return st.State().Cart },
			proxy: proxy,
		},
	}
}
