package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

// Order statuses
const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// FilterAll selects every order regardless of status.
const FilterAll = "all"

var statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

var labels = map[Status]string{
	StatusPending:        "Pending",
	StatusConfirmed:      "Confirmed",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
}

// Statuses returns all statuses in display order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label is the human readable name of s.
func (s Status) Label() string {
	return labels[s]
}

// LineItem is a snapshot of a product's name and price at order time.
type LineItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Order is an immutable delivery order; only Status changes after creation.
type Order struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	Items        []LineItem `json:"items"`
	Total        float64    `json:"total"`
	Status       Status     `json:"status"`
	CreatedAt    int64      `json:"createdAt"` // epoch milliseconds
	Notes        string     `json:"notes,omitempty"`
}

// NewID returns a fresh, time-ordered order id.
func NewID() string {
	return "ORD-" + uuid.Must(uuid.NewV7()).String()
}

// Total sums price x quantity over items, rounded to cents.
func Total(items []LineItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}

// EventOrderPlaced is the event_type attribute of PlacedEvent messages.
const EventOrderPlaced = "order.placed"

// PlacedEvent is the payload sent from API -> SQS -> worker after checkout.
type PlacedEvent struct {
	OrderID   string  `json:"order_id"`
	City      string  `json:"city"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
	CreatedAt int64   `json:"created_at"`
}

// NewPlacedEvent summarises o for downstream consumers.
func NewPlacedEvent(o Order) PlacedEvent {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return PlacedEvent{
		OrderID:   o.ID,
		City:      o.City,
		Total:     o.Total,
		ItemCount: n,
		CreatedAt: o.CreatedAt,
	}
}
