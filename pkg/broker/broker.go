// Package broker provides Broker, a typed publish/subscribe channel that
// remembers the last published value.
//
// A Broker exists so that an overlay constructed after the producer has
// started still receives current state: a subscriber joining a broker that
// already has subscribers is replayed the latest value as part of
// Subscribe. The very first subscriber is never replayed.
package broker

import "sync"

// SubscriptionID identifies a callback registered with a Broker. IDs are
// allocated in increasing order and never reused by the same Broker.
type SubscriptionID uint64

type subscription[T any] struct {
	id SubscriptionID
	fn func(T)
}

// Broker fans a published value out to every subscriber and caches it.
// The zero value is ready to use. It is safe for concurrent use, although
// the overlay only ever touches it from the UI goroutine.
type Broker[T any] struct {
	mu     sync.Mutex
	subs   []subscription[T]
	nextID SubscriptionID
	latest T
}

// New returns an empty Broker.
func New[T any]() *Broker[T] {
	return &Broker[T]{}
}

// Subscribe registers fn and returns its id. When at least one subscriber
// existed before the call, fn is invoked once with the latest value before
// Subscribe returns.
func (b *Broker[T]) Subscribe(fn func(T)) SubscriptionID {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	replay := len(b.subs) > 0
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	latest := b.latest
	b.mu.Unlock()

	if replay && fn != nil {
		fn(latest)
	}
	return id
}

// Unsubscribe removes the callback registered under id. Unknown or
// already-removed ids are ignored.
func (b *Broker[T]) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish stores v as the latest value and invokes every current
// subscriber exactly once with it, in subscription order. Callbacks run
// outside the broker's lock; a callback that subscribes or unsubscribes
// takes effect from the next Publish.
func (b *Broker[T]) Publish(v T) {
	b.mu.Lock()
	b.latest = v
	subs := make([]subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		if s.fn != nil {
			s.fn(v)
		}
	}
}

// Latest returns the most recently published value, or the zero value of
// T before the first Publish.
func (b *Broker[T]) Latest() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

// SubscriberCount returns the number of registered callbacks.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
