package cart

import (
	"context"

	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

// Repository reads and replaces the singleton cart.
type Repository interface {
	Cart(ctx context.Context) (Cart, error)
	SaveCart(ctx context.Context, c Cart) error
}

// Store keeps the cart under the "cart" key of a kv.Store.
type Store struct {
	kv kv.Store
}

// NewStore creates a new cart Store.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

func (s *Store) Cart(ctx context.Context) (Cart, error) {
	c, err := kv.Read(ctx, s.kv, kv.KeyCart, Empty())
	if err != nil {
		return Cart{}, err
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}

func (s *Store) SaveCart(ctx context.Context, c Cart) error {
	if c.Items == nil {
		c.Items = []Item{}
	}
	return kv.Write(ctx, s.kv, kv.KeyCart, c)
}
