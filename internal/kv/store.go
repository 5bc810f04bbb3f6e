// Package kv provides the durable key-value store the storefront keeps its
// catalog, cart and order history in. Values are JSON documents; every write
// is last-write-wins on its key.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyOrders   = "orders"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is a durable mapping from string keys to JSON values.
type Store interface {
	// Get returns the raw value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// SetIfAbsent writes value only when key is unset. It reports whether the
	// write happened.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
}

// Read decodes the value stored under key into a T, returning def when the
// key is unset.
func Read[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// Write encodes v as JSON and stores it under key.
func Write[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Entries is a builder for SetMany payloads.
type Entries map[string][]byte

// Put encodes v as JSON under key.
func (e Entries) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	e[key] = raw
	return nil
}
