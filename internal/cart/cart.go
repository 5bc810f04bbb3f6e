// Package cart manages the shopper's single cart: line items merged by
// product, quantities, and totals joined against the live catalog.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
)

// Item is one cart line. Quantity is at least 1.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart holds at most one Item per product.
type Cart struct {
	Items []Item `json:"items"`
}

// Empty returns a cart with no items.
func Empty() Cart {
	return Cart{Items: []Item{}}
}

// Line is a cart item joined to its current catalog product.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Amount   float64         `json:"amount"`
}

// Summary is the cart as displayed. Items whose product no longer exists are
// listed in Dropped and excluded from Lines and Total.
type Summary struct {
	Lines     []Line   `json:"lines"`
	Total     float64  `json:"total"`
	ItemCount int      `json:"itemCount"`
	Dropped   []string `json:"dropped,omitempty"`
}

// DroppedUnresolvedReference returns the product ids in c that have no
// matching catalog product. Such lines are silently left out of totals.
func DroppedUnresolvedReference(c Cart, index map[string]catalog.Product) []string {
	var out []string
	for _, it := range c.Items {
		if _, ok := index[it.ProductID]; !ok {
			out = append(out, it.ProductID)
		}
	}
	return out
}

// Summarize joins c to products and computes the total.
func Summarize(c Cart, products []catalog.Product) Summary {
	index := catalog.ByID(products)
	s := Summary{Lines: make([]Line, 0, len(c.Items))}
	total := decimal.Zero
	for _, it := range c.Items {
		p, ok := index[it.ProductID]
		if !ok {
			continue
		}
		amount := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(amount)
		s.ItemCount += it.Quantity
		s.Lines = append(s.Lines, Line{
			Product:  p,
			Quantity: it.Quantity,
			Amount:   amount.Round(2).InexactFloat64(),
		})
	}
	s.Total = total.Round(2).InexactFloat64()
	s.Dropped = DroppedUnresolvedReference(c, index)
	return s
}
