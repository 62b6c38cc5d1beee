// SPDX-License-Identifier: Unlicense OR MIT

/*
Package panel defines the capability shared by every container and
widget, and the plumbing connecting panels: slots and plugs, event
routing and forwarding tasks.

A Panel is attachable to a parent visual node, consumes events through
OnEvent and publishes the events it received on its own stream. Panel
values are handles: copies refer to the same panel, and ID identifies
it independently of any visual property.
*/
package panel

import (
	"context"

	"github.com/google/uuid"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/visual"
)

// ID is the stable identity of a panel or cell.
type ID = uuid.UUID

// NewID returns a fresh identity.
func NewID() ID {
	return uuid.New()
}

// Sink receives events.
type Sink interface {
	// OnEvent delivers an event. An error aborts the dispatch in
	// progress and is returned to its caller.
	OnEvent(ctx context.Context, e event.Event) error
}

// Panel is the capability implemented by containers and widgets.
type Panel interface {
	Sink
	// Attach inserts the panel's outer visual on top of parent's
	// children.
	Attach(parent visual.Node) error
	// Detach removes the panel's outer visual from its parent. It
	// is a no-op if the panel is not attached.
	Detach() error
	// Subscribe returns a stream of the events the panel receives,
	// re-emitted unchanged after internal routing.
	Subscribe() *actor.Stream[event.Event]
	ID() ID
}

// Attach inserts n on top of parent's children.
func Attach(n, parent visual.Node) error {
	return parent.Children().InsertTop(n)
}

// Detach removes n from its parent, if any.
func Detach(n visual.Node) error {
	if parent := n.Parent(); parent != nil {
		return parent.Children().Remove(n)
	}
	return nil
}

// Index returns the index of the panel with the given ID in panels,
// or -1.
func Index(panels []Panel, id ID) int {
	for i, p := range panels {
		if p.ID() == id {
			return i
		}
	}
	return -1
}
