package orders

import (
	"context"

	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

// Repository reads and replaces the stored order history, most recent first.
type Repository interface {
	Orders(ctx context.Context) ([]Order, error)
	SaveOrders(ctx context.Context, orders []Order) error
}

// Store keeps the order history under the "orders" key of a kv.Store.
type Store struct {
	kv kv.Store
}

// NewStore creates a new orders Store.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

func (s *Store) Orders(ctx context.Context) ([]Order, error) {
	return kv.Read(ctx, s.kv, kv.KeyOrders, []Order{})
}

func (s *Store) SaveOrders(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	return kv.Write(ctx, s.kv, kv.KeyOrders, orders)
}
