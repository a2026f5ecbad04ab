// Package fabric is the in-process publish/subscribe runtime the desk is
// built on: keyed stores, listener registries, and the adapter contracts
// that move data across the process boundary.
//
// A store is a serialization point. OnMessage is the only path that mutates
// a store; it upserts under the store mutex and then walks the listener list
// in registration order. Notification runs after the mutex is released so a
// listener may feed the next store in a chain, or re-enter the same store
// the way the inquiry flow does. Feeds are driven one record at a time from
// a single goroutine, which gives the one-in-flight-OnMessage-per-store
// discipline without any queueing.
package fabric

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no value exists for the key.
// Callers that want create-on-miss must do so explicitly.
var ErrNotFound = errors.New("fabric: key not found")

// Listener receives callbacks when a service accepts new data.
//
// The desk only ever drives OnAdd; OnRemove and OnUpdate exist for services
// that expire or revise entries. Implementations embed NopListener and
// override what they handle.
type Listener[V any] interface {
	OnAdd(v V)
	OnRemove(v V)
	OnUpdate(v V)
}

// NopListener ignores every callback. Embed it to document the capabilities
// a listener does not use.
type NopListener[V any] struct{}

func (NopListener[V]) OnAdd(V)    {}
func (NopListener[V]) OnRemove(V) {}
func (NopListener[V]) OnUpdate(V) {}

// ListenerFunc adapts a plain function to the add-only side of Listener.
type ListenerFunc[V any] func(V)

func (f ListenerFunc[V]) OnAdd(v V)  { f(v) }
func (f ListenerFunc[V]) OnRemove(V) {}
func (f ListenerFunc[V]) OnUpdate(V) {}

// Service is the keyed pub-sub contract shared by every desk service.
type Service[K comparable, V any] interface {
	// Get returns the current value for the key, or ErrNotFound.
	Get(key K) (V, error)
	// OnMessage upserts the value by its embedded key and notifies all
	// listeners with the new value, in registration order.
	OnMessage(v V)
	AddListener(l Listener[V])
	Listeners() []Listener[V]
}

// Store is the generic keyed store backing most services. Values are
// replaced wholesale on each OnMessage; nothing is mutated in place, so a
// value handed to listeners stays a consistent snapshot.
type Store[K comparable, V any] struct {
	keyOf func(V) K

	mu        sync.Mutex
	data      map[K]V
	listeners []Listener[V]
}

// NewStore creates an empty store. keyOf extracts the key embedded in a
// value.
func NewStore[K comparable, V any](keyOf func(V) K) *Store[K, V] {
	return &Store[K, V]{
		keyOf: keyOf,
		data:  make(map[K]V),
	}
}

// Get returns the latest value stored for the key.
func (s *Store[K, V]) Get(key K) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

// OnMessage upserts v by its embedded key, then synchronously notifies every
// listener with the new value in registration order.
func (s *Store[K, V]) OnMessage(v V) {
	s.mu.Lock()
	s.data[s.keyOf(v)] = v
	ls := s.listeners
	s.mu.Unlock()

	for _, l := range ls {
		l.OnAdd(v)
	}
}

// AddListener registers l for callbacks. Nil listeners are ignored.
func (s *Store[K, V]) AddListener(l Listener[V]) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Listeners returns the registered listeners in registration order.
func (s *Store[K, V]) Listeners() []Listener[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Listener[V], len(s.listeners))
	copy(out, s.listeners)
	return out
}

// Len returns the number of stored keys.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
