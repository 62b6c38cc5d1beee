// SPDX-License-Identifier: Unlicense OR MIT

/*
Package actor implements the ownership primitive underlying every
stateful UI node.

New wraps a value of type T behind an Owner, the sole strong handle.
Any number of Weak handles may be derived from it. Both give
exclusive access to the value through Read and Mutate: no two calls on
the same cell ever run concurrently, and the Context variants block
only while waiting for that access, never inside f.

Every cell also carries a Broadcast of events of type E. Dropping the
Owner releases the value, closes every subscribed stream and makes
every later Weak call report false. A false result is the only way the
rest of the system observes destruction; it is never an error.

Calling Read or Mutate on a cell from within f on the same cell
deadlocks.
*/
package actor

import (
	"context"
	"sync/atomic"
)

// Owner is the owning handle of a cell.
type Owner[T, E any] struct {
	c *cell[T, E]
}

// Weak is a non-owning handle of a cell. The zero Weak refers to no
// cell and reports false from every call.
type Weak[T, E any] struct {
	c *cell[T, E]
}

type cell[T, E any] struct {
	// sem has capacity 1; holding its slot grants exclusive access.
	sem    chan struct{}
	value  T
	alive  bool
	gone   atomic.Bool
	events Broadcast[E]
}

// New returns the owning handle of a new cell holding v.
func New[T, E any](v T) *Owner[T, E] {
	return &Owner[T, E]{c: &cell[T, E]{
		sem:   make(chan struct{}, 1),
		value: v,
		alive: true,
	}}
}

func (c *cell[T, E]) with(ctx context.Context, f func(*T)) (bool, error) {
	if c == nil {
		return false, nil
	}
	if c.gone.Load() {
		return false, nil
	}
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	defer func() { <-c.sem }()
	if !c.alive {
		return false, nil
	}
	f(&c.value)
	return true, nil
}

func (c *cell[T, E]) drop() {
	c.sem <- struct{}{}
	if !c.alive {
		<-c.sem
		return
	}
	var zero T
	c.value = zero
	c.alive = false
	c.gone.Store(true)
	<-c.sem
	c.events.Close()
}

func (o *Owner[T, E]) must(ok bool) {
	if !ok {
		panic("actor: use of dropped Owner")
	}
}

// Read calls f with exclusive access to the value. f must not modify
// the value.
func (o *Owner[T, E]) Read(f func(v *T)) {
	ok, _ := o.c.with(context.Background(), f)
	o.must(ok)
}

// Mutate calls f with exclusive access to the value.
func (o *Owner[T, E]) Mutate(f func(v *T)) {
	ok, _ := o.c.with(context.Background(), f)
	o.must(ok)
}

// ReadContext is like Read but gives up waiting for access when
// ctx is done.
func (o *Owner[T, E]) ReadContext(ctx context.Context, f func(v *T)) error {
	ok, err := o.c.with(ctx, f)
	if err != nil {
		return err
	}
	o.must(ok)
	return nil
}

// MutateContext is like Mutate but gives up waiting for access when
// ctx is done.
func (o *Owner[T, E]) MutateContext(ctx context.Context, f func(v *T)) error {
	return o.ReadContext(ctx, f)
}

// Weak returns a weak handle to the cell.
func (o *Owner[T, E]) Weak() Weak[T, E] {
	return Weak[T, E]{c: o.c}
}

// Subscribe returns a stream of the events sent from now on.
func (o *Owner[T, E]) Subscribe() *Stream[E] {
	return o.c.events.Subscribe()
}

// SubscribeWith is like Subscribe but first queues initial on the
// new stream only.
func (o *Owner[T, E]) SubscribeWith(initial ...E) *Stream[E] {
	return o.c.events.SubscribeWith(initial...)
}

// Send broadcasts e to the cell's current subscribers.
func (o *Owner[T, E]) Send(e E) {
	o.c.events.Send(e)
}

// Subscribers returns the number of open event streams.
func (o *Owner[T, E]) Subscribers() int {
	return o.c.events.Subscribers()
}

// Drop releases the value and closes all event streams. Drop waits
// for a Read or Mutate in progress to complete. Dropping twice is a
// no-op.
func (o *Owner[T, E]) Drop() {
	o.c.drop()
}

// Alive reports whether the owner has not been dropped yet.
func (w Weak[T, E]) Alive() bool {
	return w.c != nil && !w.c.gone.Load()
}

// Read is like Owner.Read and reports false if the owner is gone.
func (w Weak[T, E]) Read(f func(v *T)) bool {
	ok, _ := w.c.with(context.Background(), f)
	return ok
}

// Mutate is like Owner.Mutate and reports false if the owner is gone.
func (w Weak[T, E]) Mutate(f func(v *T)) bool {
	ok, _ := w.c.with(context.Background(), f)
	return ok
}

// ReadContext is like Read but gives up waiting when ctx is done.
func (w Weak[T, E]) ReadContext(ctx context.Context, f func(v *T)) (bool, error) {
	return w.c.with(ctx, f)
}

// MutateContext is like Mutate but gives up waiting when ctx is done.
func (w Weak[T, E]) MutateContext(ctx context.Context, f func(v *T)) (bool, error) {
	return w.c.with(ctx, f)
}

// Subscribe returns a stream of the cell's events. If the owner is
// gone the stream is already closed and ok is false.
func (w Weak[T, E]) Subscribe() (s *Stream[E], ok bool) {
	return w.SubscribeWith()
}

// SubscribeWith is like Owner.SubscribeWith for a weak handle.
func (w Weak[T, E]) SubscribeWith(initial ...E) (s *Stream[E], ok bool) {
	if w.c == nil {
		return closedStream[E](), false
	}
	s = w.c.events.SubscribeWith(initial...)
	return s, !s.Closed()
}

// SubscribeFunc is like SubscribeWith with the initial events
// computed by f. f runs with exclusive access to the value and the
// stream is registered before that access ends, so an event sent
// after a later Mutate is never missed by a stream whose initial
// events predate that Mutate.
func (w Weak[T, E]) SubscribeFunc(f func(v *T) []E) (s *Stream[E], ok bool) {
	ok, _ = w.c.with(context.Background(), func(v *T) {
		s = w.c.events.SubscribeWith(f(v)...)
	})
	if !ok {
		return closedStream[E](), false
	}
	return s, true
}

// Send broadcasts e and reports whether the owner was alive.
func (w Weak[T, E]) Send(e E) bool {
	if !w.Alive() {
		return false
	}
	w.c.events.Send(e)
	return true
}

// Is reports whether w refers to the cell owned by o.
func (w Weak[T, E]) Is(o *Owner[T, E]) bool {
	return o != nil && w.c == o.c
}

// Get returns the result of f called with exclusive access to the
// owner's value.
func Get[T, E, R any](o *Owner[T, E], f func(v *T) R) R {
	var r R
	o.Read(func(v *T) { r = f(v) })
	return r
}

// GetContext is like Get but gives up waiting when ctx is done.
func GetContext[T, E, R any](ctx context.Context, o *Owner[T, E], f func(v *T) R) (R, error) {
	var r R
	err := o.ReadContext(ctx, func(v *T) { r = f(v) })
	return r, err
}

// GetWeak is like Get for a weak handle; ok is false if the owner
// is gone.
func GetWeak[T, E, R any](w Weak[T, E], f func(v *T) R) (r R, ok bool) {
	ok = w.Read(func(v *T) { r = f(v) })
	return r, ok
}

// GetWeakContext is like GetWeak but gives up waiting when ctx is
// done.
func GetWeakContext[T, E, R any](ctx context.Context, w Weak[T, E], f func(v *T) R) (r R, ok bool, err error) {
	ok, err = w.ReadContext(ctx, func(v *T) { r = f(v) })
	return r, ok, err
}
