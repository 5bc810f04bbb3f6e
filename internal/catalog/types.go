// Package catalog owns the product list: shopper browsing (visibility,
// facets, filtering, sorting) and owner administration.
package catalog

// Specs are display-only hardware details.
type Specs struct {
	DPI          string `json:"dpi"`
	Connectivity string `json:"connectivity"`
	Buttons      int    `json:"buttons"`
	Weight       string `json:"weight,omitempty"`
}

// Product is a catalog entry. ID never changes once assigned.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Specs       Specs    `json:"specs"`
	InStock     bool     `json:"inStock"`
	Featured    bool     `json:"featured,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

// HasColor reports whether color is one of p's colors.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// SortMode orders the shopper view.
type SortMode string

const (
	SortNone      SortMode = "none"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// Valid reports whether m is a known sort mode. The empty mode means none.
func (m SortMode) Valid() bool {
	switch m {
	case "", SortNone, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Query selects and orders the shopper view. Empty Brand or Color means no
// filter on that facet.
type Query struct {
	Brand string   `form:"brand" json:"brand,omitempty"`
	Color string   `form:"color" json:"color,omitempty"`
	Sort  SortMode `form:"sort" json:"sort,omitempty"`
}

// EmptyState says why a shopper view has no products.
type EmptyState string

const (
	NotEmpty       EmptyState = ""
	EmptyCatalog   EmptyState = "no-products"   // nothing in the catalog at all
	EmptyNoneStock EmptyState = "none-in-stock" // products exist, none in stock
	EmptyNoMatch   EmptyState = "no-match"      // in-stock products, none match the filters
)

// View is what shoppers see for a Query.
type View struct {
	Products []Product  `json:"products"`
	Brands   []string   `json:"brands"`
	Colors   []string   `json:"colors"`
	Query    Query      `json:"query"`
	Empty    EmptyState `json:"empty,omitempty"`
}
