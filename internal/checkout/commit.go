package checkout

import (
	"context"

	"github.com/imrishuroy/go-mouse-storefront/internal/cart"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
)

// Committer persists the order history and the cart as one unit.
type Committer interface {
	Commit(ctx context.Context, history []orders.Order, c cart.Cart) error
}

// KVCommitter writes both keys with a single kv SetMany, so a placed order
// and its emptied cart are never observed apart.
type KVCommitter struct {
	kv kv.Store
}

// NewKVCommitter returns a Committer over s.
func NewKVCommitter(s kv.Store) *KVCommitter {
	return &KVCommitter{kv: s}
}

func (k *KVCommitter) Commit(ctx context.Context, history []orders.Order, c cart.Cart) error {
	entries := kv.Entries{}
	if err := entries.Put(kv.KeyOrders, history); err != nil {
		return err
	}
	if err := entries.Put(kv.KeyCart, c); err != nil {
		return err
	}
	return k.kv.SetMany(ctx, entries)
}
