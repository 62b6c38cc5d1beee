// SPDX-License-Identifier: Unlicense OR MIT

/*
Package widget implements the containers and leaf panels of the
composition core.

Ribbon lays out an ordered sequence of cells with the layout solver and
routes events to them by hit testing. LayerStack overlays children at
full size and routes mouse input to its topmost layer. Background and
Button are leaf panels.

Every widget keeps its state in an actor cell. Methods of a closed
widget are no-ops returning nil or zero values, except those adding
children, which fail with errors.ErrCodeClosed. Streams subscribed
from a closed widget are already closed.
*/
package widget

import (
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/visual"
)

// Option configures a container.
type Option func(*options)

type options struct {
	name   string
	router panel.Router
}

// Name sets the container's name, used for slot names and logging.
func Name(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// ConcurrentFanout makes the container deliver broadcast events to
// its children in parallel.
func ConcurrentFanout(enabled bool) Option {
	return func(o *options) {
		o.router.Concurrent = enabled
	}
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resendSize returns the Resized event a new subscriber of a
// container starts with, if the container has a size.
func resendSize(container visual.Node) []event.Event {
	if sz, err := container.Size(); err == nil && sz != (f32.Point{}) {
		return []event.Event{event.New(event.Resized{Size: sz})}
	}
	return nil
}
