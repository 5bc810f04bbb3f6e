package catalog

import (
	"strconv"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-mouse-storefront/internal/validation"
)

// Form defaults for fields left blank.
const (
	DefaultConnectivity = "Wireless"
	DefaultButtons      = "6"
)

// ProductDraft is the owner's product form as typed: numbers are raw text
// until validated.
type ProductDraft struct {
	Name         string   `json:"name" validate:"notblank"`
	Brand        string   `json:"brand" validate:"notblank"`
	Price        string   `json:"price" validate:"notblank,posdecimal"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl" validate:"notblank"`
	DPI          string   `json:"dpi"`
	Connectivity string   `json:"connectivity"`
	Buttons      string   `json:"buttons" validate:"posint"`
	Weight       string   `json:"weight"`
	InStock      *bool    `json:"inStock"` // defaults to true
	Featured     bool     `json:"featured"`
	Colors       []string `json:"colors"`
}

var draftMessages = validation.Messages{
	"name":             "Product name is required",
	"brand":            "Brand is required",
	"price.notblank":   "Price is required",
	"price.posdecimal": "Please enter a valid price",
	"imageUrl":         "Image URL is required",
	"buttons":          "Please enter a valid number of buttons",
}

// DraftOf returns the form prefilled from p, for editing.
func DraftOf(p Product) ProductDraft {
	inStock := p.InStock
	return ProductDraft{
		Name:         p.Name,
		Brand:        p.Brand,
		Price:        strconv.FormatFloat(p.Price, 'f', -1, 64),
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		DPI:          p.Specs.DPI,
		Connectivity: p.Specs.Connectivity,
		Buttons:      strconv.Itoa(p.Specs.Buttons),
		Weight:       p.Specs.Weight,
		InStock:      &inStock,
		Featured:     p.Featured,
		Colors:       append([]string(nil), p.Colors...),
	}
}

// Build validates d and converts it to a Product without an ID. Failures are
// reported as *validation.Error.
func Build(v *validatorv10.Validate, d ProductDraft) (Product, error) {
	if strings.TrimSpace(d.Connectivity) == "" {
		d.Connectivity = DefaultConnectivity
	}
	if strings.TrimSpace(d.Buttons) == "" {
		d.Buttons = DefaultButtons
	}
	if err := validation.Check(v, d, draftMessages); err != nil {
		return Product{}, err
	}

	price, _ := decimal.NewFromString(strings.TrimSpace(d.Price))
	buttons, _ := strconv.Atoi(strings.TrimSpace(d.Buttons))
	inStock := true
	if d.InStock != nil {
		inStock = *d.InStock
	}

	return Product{
		Name:        strings.TrimSpace(d.Name),
		Brand:       strings.TrimSpace(d.Brand),
		Price:       price.InexactFloat64(),
		Description: d.Description,
		ImageURL:    strings.TrimSpace(d.ImageURL),
		Specs: Specs{
			DPI:          strings.TrimSpace(d.DPI),
			Connectivity: strings.TrimSpace(d.Connectivity),
			Buttons:      buttons,
			Weight:       strings.TrimSpace(d.Weight),
		},
		InStock:  inStock,
		Featured: d.Featured,
		Colors:   normalizeColors(d.Colors),
	}, nil
}

// normalizeColors trims, drops blanks and duplicates, keeping first-seen
// order. No colors is nil so the field is omitted.
func normalizeColors(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
