package shop

import (
	"context"
	"errors"

	gfn "github.com/panyam/goutils/fn"

	"github.com/duxkit/dux/dispatch"
	"github.com/duxkit/dux/services"
)

// CartItem is one product line in the cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartState is the cart area's subtree of the root State.
type CartState struct {
	Items       []CartItem
	LastOrderID string
	Placing     bool
	Error       string
}

// Order is the body written to the backend when the cart is placed.
type Order struct {
	Items []CartItem `json:"items"`
}

// OrderReceipt is the backend's answer to a placed order.
type OrderReceipt struct {
	OrderID string `json:"orderId"`
}

var (
	cartItemAdded    = dispatch.NewIdent("cart.itemAdded")
	cartItemRemoved  = dispatch.NewIdent("cart.itemRemoved")
	cartPlacePending = dispatch.NewIdent("cart.placePending")
	cartPlaced       = dispatch.NewIdent("cart.placed")
	cartPlaceFailed  = dispatch.NewIdent("cart.placeFailed")
)

func newCartBinder() *dispatch.Binder[CartState] {
	b := dispatch.NewBinder[CartState]()
	dispatch.On(b, cartItemAdded, func(s CartState, p Product) CartState {
		items := append([]CartItem(nil), s.Items...)
		for i, it := range items {
			if it.Product.SKU == p.SKU {
				items[i].Quantity++
				s.Items = items
				return s
			}
		}
		s.Items = append(items, CartItem{Product: p, Quantity: 1})
		return s
	})
	dispatch.On(b, cartItemRemoved, func(s CartState, sku string) CartState {
		s.Items = gfn.Filter(s.Items, func(it CartItem) bool { return it.Product.SKU != sku })
		return s
	})
	b.Bind(cartPlacePending, func(s CartState, _ any) CartState {
		s.Placing = true
		s.Error = ""
		return s
	})
	dispatch.On(b, cartPlaced, func(s CartState, receipt OrderReceipt) CartState {
		s.Placing = false
		s.Items = nil
		s.LastOrderID = receipt.OrderID
		s.Error = ""
		return s
	})
	dispatch.On(b, cartPlaceFailed, func(s CartState, msg string) CartState {
		s.Placing = false
		s.Error = msg
		return s
	})
	return b
}

// CartGroup exposes the cart area's operations.
type CartGroup struct {
	sink  dispatch.Sink
	state func() CartState
	proxy services.Proxy
}

// Add puts one unit of p in the cart, merging with an existing line for the
// same SKU. Pure operation.
func (g *CartGroup) Add(p Product) Product {
	g.sink.Dispatch(dispatch.Event{Ident: cartItemAdded, Payload: p})
	return p
}

// Remove drops the line for sku, if any. Pure operation.
func (g *CartGroup) Remove(sku string) string {
	g.sink.Dispatch(dispatch.Event{Ident: cartItemRemoved, Payload: sku})
	return sku
}

// PlaceOrder writes the cart's current items to the backend as one order.
// An empty cart is a no-op. Backend failures become a failed event with the
// items left in place; only a route configuration defect is returned.
func (g *CartGroup) PlaceOrder(ctx context.Context) error {
	items := g.state().Items
	if len(items) == 0 {
		return nil
	}
	g.sink.Dispatch(dispatch.Event{Ident: cartPlacePending})
	res, err := g.proxy.Write(ctx, "/orders", Order{Items: items})
	if err != nil {
		if errors.Is(err, services.ErrNoRoute) {
			return err
		}
		g.sink.Dispatch(dispatch.Event{Ident: cartPlaceFailed, Payload: err.Error()})
		return nil
	}
	var receipt OrderReceipt
	if err := res.Decode(&receipt); err != nil {
		g.sink.Dispatch(dispatch.Event{Ident: cartPlaceFailed, Payload: err.Error()})
		return nil
	}
	g.sink.Dispatch(dispatch.Event{Ident: cartPlaced, Payload: receipt})
	return nil
}
