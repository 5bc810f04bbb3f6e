package idempotency

import "time"

// Status values for idempotency entries
const (
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// KeyPrefix namespaces idempotency records in the kv store.
const KeyPrefix = "idempotency:"

// IdempotencyRecord is the shape persisted for each Idempotency-Key.
type IdempotencyRecord struct {
	IdempotencyKey string    `json:"idempotency_key"`
	Status         string    `json:"status"`
	OrderID        string    `json:"order_id,omitempty"`
	ResponseBody   string    `json:"response_body,omitempty"`   // small JSON responses only
	ResponseStatus int       `json:"response_status,omitempty"` // e.g., 201
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ExpiresAt      int64     `json:"expires_at"` // epoch seconds
	Note           string    `json:"note,omitempty"`
}

// Expired reports whether the record is past its TTL at now.
func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return r.ExpiresAt > 0 && now.Unix() >= r.ExpiresAt
}
