// SPDX-License-Identifier: Unlicense OR MIT

package actor

import (
	"context"
	"sync"
)

// Broadcast fans events out to every currently subscribed Stream.
// A stream subscribed after an event is sent never observes it.
//
// The zero value is ready to use.
type Broadcast[E any] struct {
	mu     sync.Mutex
	subs   []*Stream[E]
	closed bool
}

// Stream is an independent, ordered and unbounded queue of events
// from a Broadcast. Sending never blocks on a slow subscriber.
type Stream[E any] struct {
	owner *Broadcast[E]

	mu     sync.Mutex
	items  []E
	closed bool
	// wake has capacity 1 and signals that items grew.
	wake chan struct{}
	done chan struct{}
}

func newStream[E any](b *Broadcast[E]) *Stream[E] {
	return &Stream[E]{
		owner: b,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func closedStream[E any]() *Stream[E] {
	s := newStream[E](nil)
	s.close()
	return s
}

// Subscribe returns a new stream receiving every event sent from
// now on. Subscribing to a closed Broadcast returns a closed stream.
func (b *Broadcast[E]) Subscribe() *Stream[E] {
	return b.SubscribeWith()
}

// SubscribeWith is like Subscribe but queues initial on the new
// stream, ahead of any event sent afterwards. Other subscribers do
// not see initial.
func (b *Broadcast[E]) SubscribeWith(initial ...E) *Stream[E] {
	s := newStream(b)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.close()
		return s
	}
	for _, e := range initial {
		s.push(e)
	}
	b.subs = append(b.subs, s)
	return s
}

// Send queues e on every subscribed stream.
func (b *Broadcast[E]) Send(e E) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.push(e)
	}
}

// Subscribers returns the number of open streams.
func (b *Broadcast[E]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscribed stream. Subsequent sends are
// dropped and subsequent subscriptions are born closed.
func (b *Broadcast[E]) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.closed = true
	b.mu.Unlock()
	for _, s := range subs {
		s.close()
	}
}

func (b *Broadcast[E]) remove(s *Stream[E]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s2 := range b.subs {
		if s2 == s {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (s *Stream[E]) push(e E) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items, e)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Next blocks until an event is available and returns it. It
// returns false once the stream is closed or ctx is done. A closed
// stream yields no further events, even if some were pending.
func (s *Stream[E]) Next(ctx context.Context) (E, bool) {
	var zero E
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return zero, false
		}
		if len(s.items) > 0 {
			e := s.items[0]
			s.items[0] = zero
			s.items = s.items[1:]
			s.mu.Unlock()
			return e, true
		}
		s.mu.Unlock()
		select {
		case <-s.wake:
		case <-s.done:
		case <-ctx.Done():
			return zero, false
		}
	}
}

// Done returns a channel closed when the stream closes.
func (s *Stream[E]) Done() <-chan struct{} {
	return s.done
}

// Closed reports whether the stream is closed.
func (s *Stream[E]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close unsubscribes s and closes it.
func (s *Stream[E]) Close() {
	if s.owner != nil {
		s.owner.remove(s)
	}
	s.close()
}

func (s *Stream[E]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.items = nil
	close(s.done)
}
