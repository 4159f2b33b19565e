// Package observable holds values that tell their subscribers when they change.
package observable

import (
	"sync"
)

// Listener is called with the new value after every Set.
type Listener[T any] func(T)

// Value is a mutable value with subscribers.
//
// Set always notifies, even if the new value equals the old one.  Listeners
// run on the caller's goroutine, outside the lock, in subscription order.
type Value[T any] struct {
	mu        sync.Mutex
	v         T
	nextID    int
	listeners map[int]Listener[T]
	order     []int
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		v:         initial,
		listeners: map[int]Listener[T]{},
	}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.v
}

// Set stores v and notifies every listener.
func (o *Value[T]) Set(v T) {
	o.mu.Lock()
	o.v = v
	ls := o.snapshot()
	o.mu.Unlock()

	for _, l := range ls {
		l(v)
	}
}

// Update sets the value to fn(current).
func (o *Value[T]) Update(fn func(T) T) {
	o.Set(fn(o.Get()))
}

// Subscribe registers l and returns a func that unregisters it.  Calling the
// returned func more than once is harmless.
//
// Unlike a svelte store, l is not called with the current value on
// subscription; call Get if you need it.
func (o *Value[T]) Subscribe(l Listener[T]) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = l
	o.order = append(o.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

// Listeners reports how many listeners are registered.
func (o *Value[T]) Listeners() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

func (o *Value[T]) remove(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.listeners, id)
	for i, x := range o.order {
		if x == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// snapshot must be called with o.mu held.
func (o *Value[T]) snapshot() []Listener[T] {
	ls := make([]Listener[T], 0, len(o.order))
	for _, id := range o.order {
		ls = append(ls, o.listeners[id])
	}
	return ls
}
