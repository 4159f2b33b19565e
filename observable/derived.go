package observable

// Derived is a read-only value computed from an upstream Value.
//
// It recomputes synchronously whenever the upstream is set, and whenever
// Recompute is called (for inputs the upstream doesn't know about), and
// then notifies its own listeners.
type Derived[S, T any] struct {
	upstream *Value[S]
	compute  func(S) T
	out      *Value[T]
	stop     func()
}

// Derive returns a Derived tracking upstream through compute.
func Derive[S, T any](upstream *Value[S], compute func(S) T) *Derived[S, T] {
	d := &Derived[S, T]{
		upstream: upstream,
		compute:  compute,
		out:      NewValue(compute(upstream.Get())),
	}
	d.stop = upstream.Subscribe(func(s S) {
		d.out.Set(d.compute(s))
	})
	return d
}

// Get returns the most recently computed value.
func (d *Derived[S, T]) Get() T {
	return d.out.Get()
}

// Subscribe registers l; see Value.Subscribe.
func (d *Derived[S, T]) Subscribe(l Listener[T]) (unsubscribe func()) {
	return d.out.Subscribe(l)
}

// Recompute re-evaluates against the current upstream value and notifies.
func (d *Derived[S, T]) Recompute() {
	d.out.Set(d.compute(d.upstream.Get()))
}

// Detach stops tracking the upstream.  Get keeps returning the last value.
func (d *Derived[S, T]) Detach() {
	d.stop()
}
