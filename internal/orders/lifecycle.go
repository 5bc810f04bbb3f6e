package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrInvalidStatus is returned for a status outside the five known values.
var ErrInvalidStatus = errors.New("invalid order status")

// View is the admin order list for one status filter.
type View struct {
	Orders []Order        `json:"orders"`
	Counts map[Status]int `json:"counts"`
	Filter string         `json:"filter"`
	Tabs   []Tab          `json:"tabs"`
}

// Tab is one entry of the status filter bar.
type Tab struct {
	Filter string `json:"filter"` // a Status or FilterAll
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Service manages the order lifecycle for the admin console. Callers must
// have verified owner access before invoking it.
type Service struct {
	repo Repository
	mu   sync.Locker
}

// NewService returns a lifecycle Service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, mu: &sync.Mutex{}}
}

// WithLock makes SetStatus serialize on l, shared with checkout, which also
// rewrites the order history.
func (s *Service) WithLock(l sync.Locker) *Service {
	s.mu = l
	return s
}

// List returns orders matching filter (a Status or FilterAll) in stored
// order, with per-status counts over the whole history.
func (s *Service) List(ctx context.Context, filter string) (View, error) {
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll && !Status(filter).Valid() {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidStatus, filter)
	}
	all, err := s.repo.Orders(ctx)
	if err != nil {
		return View{}, err
	}
	return View{
		Orders: FilterByStatus(all, filter),
		Counts: CountByStatus(all),
		Filter: filter,
		Tabs:   Tabs(all),
	}, nil
}

// Get returns the order with id, or (nil, nil) if not found.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	all, err := s.repo.Orders(ctx)
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

// SetStatus moves an order to status. Any of the five statuses may follow any
// other. An unknown id is silently ignored.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.Orders(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("[orders] status update for unknown order=%s ignored", id)
		return nil
	}
	if all[idx].Status == status {
		return nil
	}

	prev := all[idx].Status
	all[idx].Status = status
	if err := s.repo.SaveOrders(ctx, all); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	log.Printf("[orders] order=%s %s -> %s", id, prev, status)
	return nil
}

// FilterByStatus returns the orders whose status equals filter, or all of
// them for FilterAll. Order is preserved.
func FilterByStatus(all []Order, filter string) []Order {
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if filter == FilterAll || string(o.Status) == filter {
			out = append(out, o)
		}
	}
	return out
}

// CountByStatus counts orders per status; every status has an entry.
func CountByStatus(all []Order) map[Status]int {
	counts := make(map[Status]int, len(statuses))
	for _, st := range statuses {
		counts[st] = 0
	}
	for _, o := range all {
		counts[o.Status]++
	}
	return counts
}

// Tabs returns the filter bar: "All" then every status in display order,
// each with its order count.
func Tabs(all []Order) []Tab {
	counts := CountByStatus(all)
	tabs := make([]Tab, 0, len(statuses)+1)
	tabs = append(tabs, Tab{Filter: FilterAll, Label: "All", Count: len(all)})
	for _, st := range Statuses() {
		tabs = append(tabs, Tab{Filter: string(st), Label: st.Label(), Count: counts[st]})
	}
	return tabs
}
