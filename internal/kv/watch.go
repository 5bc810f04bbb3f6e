package kv

import (
	"context"
	"sync"
)

// Watched wraps a Store and notifies subscribers after every successful write.
// Subscribers see the latest value for their key; intermediate values may be
// skipped when a subscriber falls behind.
type Watched struct {
	Store

	mu   sync.Mutex
	next int
	subs map[string]map[int]chan []byte
}

// Watch wraps s with change notification.
func Watch(s Store) *Watched {
	return &Watched{Store: s, subs: map[string]map[int]chan []byte{}}
}

// Subscribe returns a channel receiving every new value written to key and a
// cancel func that must be called to release it.
func (w *Watched) Subscribe(key string) (<-chan []byte, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.next
	w.next++
	ch := make(chan []byte, 1)
	if w.subs[key] == nil {
		w.subs[key] = map[int]chan []byte{}
	}
	w.subs[key][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.subs[key], id)
			if len(w.subs[key]) == 0 {
				delete(w.subs, key)
			}
			close(ch)
		})
	}
}

func (w *Watched) Set(ctx context.Context, key string, value []byte) error {
	if err := w.Store.Set(ctx, key, value); err != nil {
		return err
	}
	w.publish(key, value)
	return nil
}

func (w *Watched) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	ok, err := w.Store.SetIfAbsent(ctx, key, value)
	if err != nil || !ok {
		return ok, err
	}
	w.publish(key, value)
	return true, nil
}

func (w *Watched) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := w.Store.SetMany(ctx, entries); err != nil {
		return err
	}
	for k, v := range entries {
		w.publish(k, v)
	}
	return nil
}

func (w *Watched) publish(key string, value []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs[key] {
		v := clone(value)
		select {
		case ch <- v:
		default:
			// drop the stale value so the subscriber wakes up to the newest one
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}
