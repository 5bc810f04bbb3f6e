package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

// Store encapsulates idempotency operations against the kv store.
type Store struct {
	kv        kv.Store
	ttlWindow time.Duration // default TTL window when creating entries
	nowFunc   func() time.Time
}

// NewStore returns a configured Store.
// ttlWindow: how long a key keeps replaying its first response (e.g., 48*time.Hour)
func NewStore(s kv.Store, ttlWindow time.Duration) *Store {
	return &Store{
		kv:        s,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// ErrRecordMissing is returned when marking a key that was never created.
var ErrRecordMissing = errors.New("idempotency record missing")

// CreateIfNotExists claims key with status IN_PROGRESS.
// Returns (true, nil) if the caller now owns the key. An expired or FAILED
// record is taken over, so a client may retry after fixing its request.
// Returns (false, nil) if a live record exists (caller should Get to inspect).
func (s *Store) CreateIfNotExists(ctx context.Context, key string) (bool, error) {
	now := s.nowFunc()
	rec := IdempotencyRecord{
		IdempotencyKey: key,
		Status:         StatusInProgress,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(s.ttlWindow).Unix(),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}

	created, err := s.kv.SetIfAbsent(ctx, KeyPrefix+key, raw)
	if err != nil {
		return false, fmt.Errorf("create record: %w", err)
	}
	if created {
		return true, nil
	}

	existing, err := s.get(ctx, key)
	if err != nil {
		return false, err
	}
	if existing != nil && !existing.Expired(now) && existing.Status != StatusFailed {
		return false, nil
	}
	if err := s.kv.Set(ctx, KeyPrefix+key, raw); err != nil {
		return false, fmt.Errorf("replace record: %w", err)
	}
	return true, nil
}

// Get retrieves a live idempotency record by key. If not found or expired, returns (nil, nil).
func (s *Store) Get(ctx context.Context, key string) (*IdempotencyRecord, error) {
	rec, err := s.get(ctx, key)
	if err != nil || rec == nil {
		return nil, err
	}
	if rec.Expired(s.nowFunc()) {
		return nil, nil
	}
	return rec, nil
}

// MarkDone sets status to DONE and stores the order id and a small response body & status.
func (s *Store) MarkDone(ctx context.Context, key, orderID, responseBody string, responseStatus int) error {
	return s.update(ctx, key, func(r *IdempotencyRecord) {
		r.Status = StatusDone
		r.OrderID = orderID
		r.ResponseBody = responseBody
		r.ResponseStatus = responseStatus
	})
}

// MarkFailed marks the idempotency record as FAILED and stores a note.
func (s *Store) MarkFailed(ctx context.Context, key, note string) error {
	return s.update(ctx, key, func(r *IdempotencyRecord) {
		r.Status = StatusFailed
		r.Note = note
	})
}

func (s *Store) update(ctx context.Context, key string, fn func(*IdempotencyRecord)) error {
	rec, err := s.get(ctx, key)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", ErrRecordMissing, key)
	}
	fn(rec)
	rec.UpdatedAt = s.nowFunc()
	if err := kv.Write(ctx, s.kv, KeyPrefix+key, rec); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (*IdempotencyRecord, error) {
	rec, err := kv.Read[*IdempotencyRecord](ctx, s.kv, KeyPrefix+key, nil)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}
