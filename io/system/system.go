// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains the raw events a host window delivers to
// the composition core.
package system

import (
	"image"

	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/pointer"
)

// Event is the marker interface for window events.
type Event interface {
	ImplementsEvent()
}

// A ResizeEvent reports the new inner size of the window in
// physical pixels.
type ResizeEvent struct {
	Size image.Point
}

// A CursorEvent reports the cursor position in window coordinates.
type CursorEvent struct {
	Position f32.Point
}

// A MouseEvent reports a button press or release. It carries no
// position; receivers use the last CursorEvent.
type MouseEvent struct {
	State  pointer.State
	Button pointer.Button
}

// A FocusEvent is generated when the window gains or loses focus.
type FocusEvent struct {
	Focus bool
}

// CloseEvent asks the window to close.
type CloseEvent struct{}

func (ResizeEvent) ImplementsEvent() {}
func (CursorEvent) ImplementsEvent() {}
func (MouseEvent) ImplementsEvent()  {}
func (FocusEvent) ImplementsEvent()  {}
func (CloseEvent) ImplementsEvent()  {}
