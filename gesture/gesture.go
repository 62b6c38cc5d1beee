// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements common pointer gestures.

Gestures accept the events a panel receives and detect higher level
actions such as clicks.
*/
package gesture

import (
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/io/pointer"
)

// Click detects click gestures in the form of ClickEvents. It tracks
// the size of the receiving panel and the cursor position in its
// coordinates.
//
// The zero value is ready to use.
type Click struct {
	// state tracks the gesture state.
	state     ClickState
	size      f32.Point
	cursor    f32.Point
	hasCursor bool
}

type ClickState uint8

// ClickEvent represent a click action.
type ClickEvent struct {
	Type ClickType
	// Position is the last cursor position, if known.
	Position f32.Point
}

type ClickType uint8

const (
	// StateNormal is the default click state.
	StateNormal ClickState = iota
	// StateFocused is reported when the cursor is hovering over
	// the panel.
	StateFocused
	// StatePressed is reported while the primary button is
	// pressed.
	StatePressed
)

const (
	// TypePress is reported when the primary button is pressed over
	// the panel.
	TypePress ClickType = iota
	// TypeRelease is reported when the primary button is released
	// to end a press.
	TypeRelease
	// TypeClick follows TypeRelease when the press ended over the
	// panel.
	TypeClick
	// TypeCancel is reported when the cursor leaves the panel while
	// pressed. The press is abandoned and its release is ignored.
	TypeCancel
)

// State reports the click state.
func (c *Click) State() ClickState {
	return c.state
}

// Update applies e and returns the click events it caused.
func (c *Click) Update(e event.Event) []ClickEvent {
	switch d := e.Data.(type) {
	case event.Resized:
		c.size = d.Size
	case event.CursorMoved:
		c.cursor, c.hasCursor = d.Position, true
		if c.state == StatePressed {
			if c.cursor.In(c.size) {
				break
			}
			c.state = StateNormal
			return []ClickEvent{{Type: TypeCancel, Position: c.cursor}}
		}
		if c.cursor.In(c.size) {
			c.state = StateFocused
		} else {
			c.state = StateNormal
		}
	case event.MouseInput:
		if d.Button != pointer.ButtonPrimary {
			break
		}
		hit := c.hit(d)
		switch d.State {
		case pointer.Pressed:
			if c.state == StatePressed || !hit {
				break
			}
			c.state = StatePressed
			return []ClickEvent{{Type: TypePress, Position: c.cursor}}
		case pointer.Released:
			if c.state != StatePressed {
				break
			}
			if hit {
				c.state = StateFocused
				return []ClickEvent{{Type: TypeRelease, Position: c.cursor}, {Type: TypeClick, Position: c.cursor}}
			}
			c.state = StateNormal
			return []ClickEvent{{Type: TypeRelease, Position: c.cursor}}
		}
	}
	return nil
}

// hit reports whether mouse input d happened over the panel. The
// sender's verdict is refined with the last cursor position, if any.
func (c *Click) hit(d event.MouseInput) bool {
	if !d.InBounds || !c.hasCursor {
		return d.InBounds
	}
	return c.cursor.In(c.size)
}

func (ct ClickType) String() string {
	switch ct {
	case TypePress:
		return "TypePress"
	case TypeRelease:
		return "TypeRelease"
	case TypeClick:
		return "TypeClick"
	case TypeCancel:
		return "TypeCancel"
	default:
		panic("invalid ClickType")
	}
}

func (cs ClickState) String() string {
	switch cs {
	case StateNormal:
		return "StateNormal"
	case StateFocused:
		return "StateFocused"
	case StatePressed:
		return "StatePressed"
	default:
		panic("invalid ClickState")
	}
}
