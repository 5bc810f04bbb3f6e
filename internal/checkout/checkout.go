// Package checkout turns the cart into a cash-on-delivery order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-mouse-storefront/internal/cart"
	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
	"github.com/imrishuroy/go-mouse-storefront/internal/validation"
)

// ErrEmptyCart is returned when the cart has no item whose product still
// exists. It is distinct from form validation failures.
var ErrEmptyCart = errors.New("cart is empty")

// UnknownProductName stands in for a cart line whose product was deleted.
const UnknownProductName = "Unknown Product"

// Form is the customer's delivery details.
type Form struct {
	CustomerName string `json:"customerName" validate:"notblank"`
	Phone        string `json:"phone" validate:"notblank,lbphone"`
	Address      string `json:"address" validate:"notblank"`
	City         string `json:"city" validate:"required,lbcity"`
	Notes        string `json:"notes"`
}

var formMessages = validation.Messages{
	"customerName":   "Name is required",
	"phone.notblank": "Phone number is required",
	"phone.lbphone":  "Please enter a valid Lebanese phone number",
	"address":        "Address is required",
	"city.required":  "City is required",
	"city.lbcity":    "Please select a supported city",
}

// Notifier is told about every recorded order.
type Notifier interface {
	OrderPlaced(ctx context.Context, o orders.Order) error
}

// Service validates checkout forms and records orders.
type Service struct {
	products catalog.Reader
	carts    cart.Repository
	orders   orders.Repository
	commit   Committer
	notify   Notifier
	validate *validatorv10.Validate
	nowFunc  func() time.Time
	newID    func() string
	mu       sync.Locker
}

// NewService wires a checkout Service. commit must persist the new order
// history and the emptied cart together.
func NewService(products catalog.Reader, carts cart.Repository, history orders.Repository, commit Committer) *Service {
	return &Service{
		products: products,
		carts:    carts,
		orders:   history,
		commit:   commit,
		validate: validation.New(),
		nowFunc:  time.Now,
		newID:    orders.NewID,
		mu:       &sync.Mutex{},
	}
}

// WithLock makes Place hold l while it reads and rewrites the cart and the
// order history. Pass the lock the cart and orders services use, so their
// writes cannot land between the read and the commit.
func (s *Service) WithLock(l sync.Locker) *Service {
	s.mu = l
	return s
}

// WithNotifier sets n to be told about placed orders.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notify = n
	return s
}

// Validate checks f and returns *validation.Error listing every bad field.
func (s *Service) Validate(f Form) error {
	return validation.Check(s.validate, f, formMessages)
}

// Place validates f against the current cart and records one pending order,
// prepended to the history, while emptying the cart. On any error nothing
// is written.
func (s *Service) Place(ctx context.Context, f Form) (orders.Order, error) {
	if err := s.Validate(f); err != nil {
		return orders.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.carts.Cart(ctx)
	if err != nil {
		return orders.Order{}, fmt.Errorf("load cart: %w", err)
	}
	products, err := s.products.Products(ctx)
	if err != nil {
		return orders.Order{}, fmt.Errorf("load products: %w", err)
	}
	items, resolved := lineItems(c, catalog.ByID(products))
	if resolved == 0 {
		return orders.Order{}, ErrEmptyCart
	}

	history, err := s.orders.Orders(ctx)
	if err != nil {
		return orders.Order{}, fmt.Errorf("load orders: %w", err)
	}

	o := orders.Order{
		ID:           s.newID(),
		CustomerName: strings.TrimSpace(f.CustomerName),
		Phone:        strings.TrimSpace(f.Phone),
		Address:      strings.TrimSpace(f.Address),
		City:         f.City,
		Items:        items,
		Total:        orders.Total(items),
		Status:       orders.StatusPending,
		CreatedAt:    s.nowFunc().UnixMilli(),
		Notes:        strings.TrimSpace(f.Notes),
	}

	next := make([]orders.Order, 0, len(history)+1)
	next = append(next, o)
	next = append(next, history...)
	if err := s.commit.Commit(ctx, next, cart.Empty()); err != nil {
		return orders.Order{}, fmt.Errorf("record order: %w", err)
	}
	log.Printf("[checkout] placed order=%s items=%d total=%.2f city=%s", o.ID, len(o.Items), o.Total, o.City)

	if s.notify != nil {
		if err := s.notify.OrderPlaced(ctx, o); err != nil {
			// the order is already recorded; the event is best effort
			log.Printf("[checkout] order=%s notify failed: %v", o.ID, err)
		}
	}
	return o, nil
}

// lineItems snapshots each cart line's product name and price. Lines whose
// product is gone get a placeholder name and a zero price. resolved counts
// lines that matched a product.
func lineItems(c cart.Cart, index map[string]catalog.Product) ([]orders.LineItem, int) {
	items := make([]orders.LineItem, 0, len(c.Items))
	resolved := 0
	for _, it := range c.Items {
		li := orders.LineItem{
			ProductID:   it.ProductID,
			ProductName: UnknownProductName,
			Quantity:    it.Quantity,
		}
		if p, ok := index[it.ProductID]; ok {
			li.ProductName = p.Name
			li.Price = p.Price
			resolved++
		}
		items = append(items, li)
	}
	return items, resolved
}
