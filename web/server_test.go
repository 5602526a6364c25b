package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/duxkit/dux/services"
	"github.com/duxkit/dux/shop"
)

func TestSearchEndpoint(t *testing.T) {
	ts := httptest.NewServer(NewServer(nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/products/search/glove")
	assert.NilError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestOrderEndpointRejectsEmptyOrder(t *testing.T) {
	ts := httptest.NewServer(NewServer(nil).Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/orders", "application/json", nil)
	assert.NilError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// The full loop: the shop application running against this server through
// the HTTP proxy behaves like it does against the simulated backend.
func TestShopAgainstRealBackend(t *testing.T) {
	ts := httptest.NewServer(NewServer(nil).Handler())
	defer ts.Close()

	app := shop.New(services.NewHTTPBackend(ts.URL, nil))
	ctx := context.Background()

	// Queries with spaces travel path-escaped and come back intact.
	app.Search.SetQuery("Baseball glove")
	assert.NilError(t, app.Search.Run(ctx))

	state := app.Store.State()
	assert.Equal(t, 1, len(state.Search.Results))
	assert.Equal(t, "Baseball glove", state.Search.Results[0].Name)
	assert.Equal(t, "", state.Search.Error)

	app.Cart.Add(state.Search.Results[0])
	assert.NilError(t, app.Cart.PlaceOrder(ctx))

	cart := app.Store.State().Cart
	assert.Equal(t, "WEB-0001", cart.LastOrderID)
	assert.Equal(t, 0, len(cart.Items))
	assert.Equal(t, "", cart.Error)
}

func TestShopFailureAgainstRealBackend(t *testing.T) {
	// A server that is down mid-session turns into an error message in
	// state, never a panic or a returned error.
	ts := httptest.NewServer(NewServer(nil).Handler())

	app := shop.New(services.NewHTTPBackend(ts.URL, nil))
	ts.Close()

	app.Search.SetQuery("glove")
	assert.NilError(t, app.Search.Run(context.Background()))

	state := app.Store.State().Search
	assert.Assert(t, state.Error != "", "connection failure must land in the error field")
	assert.Equal(t, false, state.Loading)
}
