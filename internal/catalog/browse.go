package catalog

import (
	"sort"
)

// InStock returns the products shoppers may see, in catalog order.
func InStock(all []Product) []Product {
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.InStock {
			out = append(out, p)
		}
	}
	return out
}

// Brands returns the distinct brands of products, ascending.
func Brands(products []Product) []string {
	set := map[string]struct{}{}
	for _, p := range products {
		set[p.Brand] = struct{}{}
	}
	return sortedKeys(set)
}

// Colors returns the distinct colors across products, ascending.
func Colors(products []Product) []string {
	set := map[string]struct{}{}
	for _, p := range products {
		for _, c := range p.Colors {
			set[c] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Apply filters products by q's facets (AND) and then sorts them. The input
// is not modified.
func Apply(products []Product, q Query) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.Brand != "" && p.Brand != q.Brand {
			continue
		}
		if q.Color != "" && !p.HasColor(q.Color) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// Browse builds the shopper view of the full catalog for q. Facets are
// computed over in-stock products, before filtering.
func Browse(all []Product, q Query) View {
	visible := InStock(all)
	v := View{
		Products: Apply(visible, q),
		Brands:   Brands(visible),
		Colors:   Colors(visible),
		Query:    q,
	}
	switch {
	case len(all) == 0:
		v.Empty = EmptyCatalog
	case len(visible) == 0:
		v.Empty = EmptyNoneStock
	case len(v.Products) == 0:
		v.Empty = EmptyNoMatch
	}
	return v
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
