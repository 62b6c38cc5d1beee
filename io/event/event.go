// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the node-scoped events exchanged between
// panels.
//
// An Event is immutable once created. Containers never modify an
// event in place; they derive a new one per recipient with Derive,
// recording the event it came from.
package event

import (
	"fmt"

	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/pointer"
	"github.com/wagui/wag/io/system"
)

// Data is the marker interface for event payloads: Resized,
// CursorMoved, MouseInput or Empty.
type Data interface {
	ImplementsData()
}

// Resized reports the new size of the receiving panel.
type Resized struct {
	Size f32.Point
}

// CursorMoved reports the cursor position in the receiver's local
// coordinate space.
type CursorMoved struct {
	Position f32.Point
}

// MouseInput reports a button change. InBounds tells whether the
// last known cursor position lies within the receiver.
type MouseInput struct {
	InBounds bool
	State    pointer.State
	Button   pointer.Button
}

// Empty is the payload of window events the core does not interpret.
type Empty struct{}

func (Resized) ImplementsData()     {}
func (CursorMoved) ImplementsData() {}
func (MouseInput) ImplementsData()  {}
func (Empty) ImplementsData()       {}

// Event is a panel event together with its provenance.
type Event struct {
	Data Data
	// Parent is the event this one was derived from, or nil
	// for events built from a window event.
	Parent *Event
	// Window is the window event at the root of the provenance
	// chain, if any.
	Window system.Event
}

// FromWindowEvent converts a window event into a root panel event.
// Mouse input starts out in bounds; containers recompute InBounds
// for their children.
func FromWindowEvent(e system.Event) Event {
	var d Data
	switch e := e.(type) {
	case system.ResizeEvent:
		d = Resized{Size: f32.Pt(float32(e.Size.X), float32(e.Size.Y))}
	case system.CursorEvent:
		d = CursorMoved{Position: e.Position}
	case system.MouseEvent:
		d = MouseInput{InBounds: true, State: e.State, Button: e.Button}
	default:
		d = Empty{}
	}
	return Event{Data: d, Window: e}
}

// New returns a root event with the given payload and no window
// event.
func New(d Data) Event {
	return Event{Data: d}
}

// Derive returns a new event carrying d whose parent is e.
func (e Event) Derive(d Data) Event {
	parent := e
	return Event{Data: d, Parent: &parent, Window: e.Window}
}

// Depth returns the length of the provenance chain above e.
func (e Event) Depth() int {
	n := 0
	for p := e.Parent; p != nil; p = p.Parent {
		n++
	}
	return n
}

func (e Event) String() string {
	switch d := e.Data.(type) {
	case Resized:
		return fmt.Sprintf("Resized%v", d.Size)
	case CursorMoved:
		return fmt.Sprintf("CursorMoved%v", d.Position)
	case MouseInput:
		return fmt.Sprintf("MouseInput{%v %v in=%v}", d.Button, d.State, d.InBounds)
	case nil:
		return "<nil>"
	default:
		return "Empty"
	}
}
