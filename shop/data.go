package shop

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"

	gfn "github.com/panyam/goutils/fn"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/duxkit/dux/services"
)

// Catalog returns the default product dataset used by the simulated backend
// and the demo server.
func Catalog() []Product {
	return []Product{
		{SKU: "BB-GLV-01", Name: "Baseball glove", Price: 34.50},
		{SKU: "BB-BAT-02", Name: "Baseball bat", Price: 58.00},
		{SKU: "BB-BLL-03", Name: "Baseball", Price: 6.25},
		{SKU: "SC-BLL-04", Name: "Soccer ball", Price: 21.00},
		{SKU: "TN-RKT-05", Name: "Tennis racket", Price: 89.99},
		{SKU: "TN-BLL-06", Name: "Tennis balls, tube of 4", Price: 7.75},
	}
}

// normalizeText folds searchable text: combining marks stripped after NFD
// decomposition, recomposed to NFC, then lowercased, so "Crème" and "creme"
// compare equal.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// FilterProducts returns the items whose normalized name contains the
// normalized text. An empty text matches nothing.
func FilterProducts(items []Product, text string) []Product {
	if text == "" {
		return nil
	}
	q := normalizeText(text)
	return gfn.Filter(items, func(p Product) bool {
		return strings.Contains(normalizeText(p.Name), q)
	})
}

// NewSimProxy builds the simulated backend for the shop: a search read route
// over catalog and an orders write route that allocates sequential order
// ids. Pass the result to New to run the whole application in memory.
func NewSimProxy(catalog []Product) *services.SimBackend {
	var orderSeq atomic.Int64
	return services.NewSimBackend().
		OnRead("/products/search/{searchText}", func(params map[string]string, _ services.Result) (any, error) {
			return FilterProducts(catalog, params["searchText"]), nil
		}).
		OnWrite("/orders", func(_ map[string]string, body services.Result) (any, error) {
			var order Order
			if err := body.Decode(&order); err != nil {
				return nil, fmt.Errorf("decoding order: %w", err)
			}
			if len(order.Items) == 0 {
				return nil, fmt.Errorf("order has no items")
			}
			return OrderReceipt{OrderID: fmt.Sprintf("ORD-%04d", orderSeq.Add(1))}, nil
		})
}
