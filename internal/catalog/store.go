package catalog

import (
	"context"

	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

// Reader loads the full catalog in insertion order.
type Reader interface {
	Products(ctx context.Context) ([]Product, error)
}

// Repository reads and replaces the full catalog.
type Repository interface {
	Reader
	SaveProducts(ctx context.Context, products []Product) error
}

// Store keeps the catalog under the "products" key of a kv.Store.
type Store struct {
	kv kv.Store
}

// NewStore creates a new catalog Store.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

func (s *Store) Products(ctx context.Context) ([]Product, error) {
	return kv.Read(ctx, s.kv, kv.KeyProducts, []Product{})
}

func (s *Store) SaveProducts(ctx context.Context, products []Product) error {
	if products == nil {
		products = []Product{}
	}
	return kv.Write(ctx, s.kv, kv.KeyProducts, products)
}

// ByID indexes products by id.
func ByID(products []Product) map[string]Product {
	out := make(map[string]Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out
}
