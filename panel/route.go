// SPDX-License-Identifier: Unlicense OR MIT

package panel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wagui/wag/io/event"
)

// Policy is the fan-out policy of an event kind.
type Policy uint8

const (
	// Broadcast delivers to every child.
	Broadcast Policy = iota
	// Focused delivers to the single child in focus: the topmost
	// layer of a stack, or the cell under the last cursor position.
	Focused
)

// Delivery is an event addressed to one sink.
type Delivery struct {
	Sink  Sink
	Event event.Event
}

// Router delivers the events a container derives for its children.
//
// Sequential delivery runs the deliveries in order and stops at the
// first error. Concurrent delivery runs them in parallel and returns
// the first error; it is only safe when each sink appears at most
// once, since a sink must never observe its own events out of order.
type Router struct {
	Concurrent bool
}

// PolicyOf returns the fan-out policy for e: mouse input goes to the
// focused child, everything else is broadcast.
func PolicyOf(e event.Event) Policy {
	if _, ok := e.Data.(event.MouseInput); ok {
		return Focused
	}
	return Broadcast
}

// Deliver sends each delivery to its sink.
func (r Router) Deliver(ctx context.Context, ds []Delivery) error {
	if !r.Concurrent || len(ds) < 2 {
		for _, d := range ds {
			if err := d.Sink.OnEvent(ctx, d.Event); err != nil {
				return err
			}
		}
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, d := range ds {
		d := d
		g.Go(func() error {
			return d.Sink.OnEvent(ctx, d.Event)
		})
	}
	return g.Wait()
}

// Fan returns a delivery of e derived with data d to every sink.
func Fan(sinks []Sink, e event.Event, d event.Data) []Delivery {
	ds := make([]Delivery, len(sinks))
	for i, s := range sinks {
		ds[i] = Delivery{Sink: s, Event: e.Derive(d)}
	}
	return ds
}
