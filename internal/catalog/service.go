package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-mouse-storefront/internal/validation"
)

var (
	// ErrNotFound is returned by admin operations on an unknown product id.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidSort is returned for an unknown sort mode.
	ErrInvalidSort = errors.New("invalid sort mode")
)

// Service serves the catalog to shoppers and the owner. Mutating methods
// assume the caller already checked owner access.
type Service struct {
	repo     Repository
	validate *validatorv10.Validate
	newID    func() string
	mu       sync.Mutex
}

// NewService returns a catalog Service over repo.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validation.New(),
		newID:    NewID,
	}
}

// NewID returns a fresh, time-ordered product id.
func NewID() string {
	return "MOUSE-" + uuid.Must(uuid.NewV7()).String()
}

// Browse returns the shopper view for q.
func (s *Service) Browse(ctx context.Context, q Query) (View, error) {
	if !q.Sort.Valid() {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidSort, q.Sort)
	}
	if q.Sort == "" {
		q.Sort = SortNone
	}
	all, err := s.repo.Products(ctx)
	if err != nil {
		return View{}, err
	}
	return Browse(all, q), nil
}

// Product returns an in-stock product for shoppers, or (nil, nil).
func (s *Service) Product(ctx context.Context, id string) (*Product, error) {
	p, err := s.Lookup(ctx, id)
	if err != nil || p == nil || !p.InStock {
		return nil, err
	}
	return p, nil
}

// Lookup returns a product regardless of stock, or (nil, nil).
func (s *Service) Lookup(ctx context.Context, id string) (*Product, error) {
	all, err := s.repo.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// All returns the whole catalog, including out-of-stock products.
func (s *Service) All(ctx context.Context) ([]Product, error) {
	return s.repo.Products(ctx)
}

// Create validates d and appends a new product with a fresh id.
func (s *Service) Create(ctx context.Context, d ProductDraft) (Product, error) {
	p, err := Build(s.validate, d)
	if err != nil {
		return Product{}, err
	}
	p.ID = s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.Products(ctx)
	if err != nil {
		return Product{}, err
	}
	if err := s.repo.SaveProducts(ctx, append(all, p)); err != nil {
		return Product{}, fmt.Errorf("save products: %w", err)
	}
	log.Printf("[catalog] created product=%s", p.ID)
	return p, nil
}

// Update replaces product id with d, keeping the id and catalog position.
func (s *Service) Update(ctx context.Context, id string, d ProductDraft) (Product, error) {
	p, err := Build(s.validate, d)
	if err != nil {
		return Product{}, err
	}
	p.ID = id

	err = s.mutate(ctx, id, func(cur *Product) { *cur = p })
	if err != nil {
		return Product{}, err
	}
	log.Printf("[catalog] updated product=%s", id)
	return p, nil
}

// ToggleStock flips the in-stock flag of product id.
func (s *Service) ToggleStock(ctx context.Context, id string) (Product, error) {
	var out Product
	err := s.mutate(ctx, id, func(cur *Product) {
		cur.InStock = !cur.InStock
		out = *cur
	})
	if err != nil {
		return Product{}, err
	}
	log.Printf("[catalog] product=%s in_stock=%t", id, out.InStock)
	return out, nil
}

// Delete removes product id. Carts still referencing it drop the line.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.Products(ctx)
	if err != nil {
		return err
	}
	kept := make([]Product, 0, len(all))
	for _, p := range all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(all) {
		return ErrNotFound
	}
	if err := s.repo.SaveProducts(ctx, kept); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	log.Printf("[catalog] deleted product=%s", id)
	return nil
}

// Seed writes samples when the catalog is empty and reports whether it did.
func (s *Service) Seed(ctx context.Context, samples []Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.Products(ctx)
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		return false, nil
	}
	if err := s.repo.SaveProducts(ctx, samples); err != nil {
		return false, fmt.Errorf("seed products: %w", err)
	}
	log.Printf("[catalog] seeded %d products", len(samples))
	return true, nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Product)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.Products(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			fn(&all[i])
			if err := s.repo.SaveProducts(ctx, all); err != nil {
				return fmt.Errorf("save products: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}
