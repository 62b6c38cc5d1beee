// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer defines the mouse button and button state carried
// by mouse input events.
package pointer

// State is the state of a mouse button.
type State uint8

// Button identifies a mouse button.
type Button uint8

const (
	// Pressed means the button went down.
	Pressed State = iota
	// Released means the button went up.
	Released
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Button = iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
	// ButtonOther is any other button.
	ButtonOther
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	default:
		panic("unknown State")
	}
}

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "ButtonPrimary"
	case ButtonSecondary:
		return "ButtonSecondary"
	case ButtonTertiary:
		return "ButtonTertiary"
	case ButtonOther:
		return "ButtonOther"
	default:
		panic("unknown Button")
	}
}
