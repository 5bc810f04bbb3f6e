package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
)

// MaxQuantity caps the units of one product in the cart.
const MaxQuantity = 999

// ErrInvalidQuantity is returned when a line would hold fewer than one or
// more than MaxQuantity units.
var ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")

// Service applies shopper actions to the stored cart. Every mutation reads
// the latest stored cart, changes it and writes it back.
type Service struct {
	repo     Repository
	products catalog.Reader
	mu       sync.Locker
}

// NewService returns a cart Service. products is used to price the summary.
func NewService(repo Repository, products catalog.Reader) *Service {
	return &Service{repo: repo, products: products, mu: &sync.Mutex{}}
}

// WithLock makes the service serialize its writes on l, so other writers of
// the cart (checkout) can share it.
func (s *Service) WithLock(l sync.Locker) *Service {
	s.mu = l
	return s
}

// Cart returns the stored cart.
func (s *Service) Cart(ctx context.Context) (Cart, error) {
	return s.repo.Cart(ctx)
}

// Summary returns the stored cart priced against the current catalog.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	c, err := s.repo.Cart(ctx)
	if err != nil {
		return Summary{}, err
	}
	products, err := s.products.Products(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(c, products), nil
}

// AddItem adds quantity units of productID, merging into an existing line.
func (s *Service) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return s.update(ctx, func(c *Cart) (bool, error) {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				if c.Items[i].Quantity > MaxQuantity-quantity {
					return false, fmt.Errorf("%w: %s already holds %d", ErrInvalidQuantity, productID, c.Items[i].Quantity)
				}
				c.Items[i].Quantity += quantity
				return true, nil
			}
		}
		c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity})
		return true, nil
	})
}

// UpdateQuantity sets the quantity of productID. Quantities below 1 and
// unknown products are ignored; use RemoveItem to delete a line. Quantities
// above MaxQuantity are rejected.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return s.update(ctx, func(c *Cart) (bool, error) {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				if c.Items[i].Quantity == quantity {
					return false, nil
				}
				c.Items[i].Quantity = quantity
				return true, nil
			}
		}
		return false, nil
	})
}

// RemoveItem deletes the line for productID, if any.
func (s *Service) RemoveItem(ctx context.Context, productID string) error {
	return s.update(ctx, func(c *Cart) (bool, error) {
		kept := c.Items[:0]
		for _, it := range c.Items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		changed := len(kept) != len(c.Items)
		c.Items = kept
		return changed, nil
	})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.SaveCart(ctx, Empty())
}

func (s *Service) update(ctx context.Context, fn func(*Cart) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Cart(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(&c)
	if err != nil || !changed {
		return err
	}
	if err := s.repo.SaveCart(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
