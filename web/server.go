// Package web serves the shop's product API over HTTP. It is the real
// backend counterpart of the simulated routes in package shop: the same
// search and order semantics, reachable through services.HTTPBackend. No
// rendering lives here; the server only answers JSON.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/duxkit/dux/shop"
)

// Server answers GET /products/search/{searchText} and POST /orders over a
// fixed catalog.
type Server struct {
	Catalog []shop.Product

	orderSeq atomic.Int64
	router   *mux.Router
}

// NewServer creates a server over catalog. A nil catalog means the default
// shop catalog.
func NewServer(catalog []shop.Product) *Server {
	if catalog == nil {
		catalog = shop.Catalog()
	}
	s := &Server{Catalog: catalog}
	r := mux.NewRouter()
	r.HandleFunc("/products/search/{searchText}", s.handleSearch).Methods("GET")
	r.HandleFunc("/orders", s.handleOrder).Methods("POST")
	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("product api listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	text := mux.Vars(r)["searchText"]
	results := shop.FilterProducts(s.Catalog, text)
	slog.Debug("search request", "text", text, "hits", len(results))
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var order shop.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "bad order body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(order.Items) == 0 {
		http.Error(w, "order has no items", http.StatusBadRequest)
		return
	}
	receipt := shop.OrderReceipt{OrderID: fmt.Sprintf("WEB-%04d", s.orderSeq.Add(1))}
	slog.Info("order placed", "orderId", receipt.OrderID, "lines", len(order.Items))
	writeJSON(w, http.StatusOK, receipt)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
