package shop

// SearchView is the flat projection of the search area a UI collaborator
// reads after every state change.
type SearchView struct {
	Query        string
	Results      []Product
	Loading      bool
	ErrorMessage string
}

// ProjectSearch computes the search view from the full state.
func ProjectSearch(s State) SearchView {
	return SearchView{
		Query:        s.Search.Query,
		Results:      s.Search.Results,
		Loading:      s.Search.Loading,
		ErrorMessage: s.Search.Error,
	}
}

// CartView is the flat projection of the cart area.
type CartView struct {
	Count        int
	Total        float64
	LastOrderID  string
	Placing      bool
	ErrorMessage string
}

// ProjectCart computes the cart view from the full state. Count is the total
// unit count across lines, Total the summed price.
func ProjectCart(s State) CartView {
	v := CartView{
		LastOrderID:  s.Cart.LastOrderID,
		Placing:      s.Cart.Placing,
		ErrorMessage: s.Cart.Error,
	}
	for _, it := range s.Cart.Items {
		v.Count += it.Quantity
		v.Total += float64(it.Quantity) * it.Product.Price
	}
	return v
}
