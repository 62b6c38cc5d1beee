// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/gesture"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/visual"
)

// ButtonEvent is a change of a Button's state.
type ButtonEvent uint8

const (
	// ButtonPressed is emitted when the primary button is pressed
	// over the button.
	ButtonPressed ButtonEvent = iota
	// ButtonReleased is emitted when a press ends, either by the
	// primary button being released or by the cursor leaving the
	// button.
	ButtonReleased
	// ButtonClicked follows ButtonReleased when the press ended over
	// the button.
	ButtonClicked
)

// Skin draws a Button.
type Skin interface {
	panel.Panel
	SetPressed(ctx context.Context, pressed bool) error
}

// Button is a clickable panel drawn by a Skin. Every event it receives
// is forwarded to the skin.
type Button struct {
	id     panel.ID
	o      *actor.Owner[buttonState, event.Event]
	w      actor.Weak[buttonState, event.Event]
	clicks *actor.Broadcast[ButtonEvent]
	skin   Skin
}

type buttonState struct {
	container visual.Node
	click     gesture.Click
}

// NewButton returns a button drawn by skin.
func NewButton(comp visual.Compositor, skin Skin) (*Button, error) {
	container, err := comp.NewContainer()
	if err != nil {
		return nil, err
	}
	if err := skin.Attach(container); err != nil {
		return nil, err
	}
	owner := actor.New[buttonState, event.Event](buttonState{container: container})
	return &Button{
		id:     panel.NewID(),
		o:      owner,
		w:      owner.Weak(),
		clicks: new(actor.Broadcast[ButtonEvent]),
		skin:   skin,
	}, nil
}

// ID implements panel.Panel.
func (b *Button) ID() panel.ID {
	return b.id
}

// Skin returns the button's skin.
func (b *Button) Skin() Skin {
	return b.skin
}

// Pressed reports whether a press is in progress.
func (b *Button) Pressed() bool {
	p, _ := actor.GetWeak(b.w, func(st *buttonState) bool {
		return st.click.State() == gesture.StatePressed
	})
	return p
}

// ButtonEvents returns a stream of the button's state changes.
func (b *Button) ButtonEvents() *actor.Stream[ButtonEvent] {
	return b.clicks.Subscribe()
}

// Attach implements panel.Panel.
func (b *Button) Attach(parent visual.Node) error {
	var err error
	b.w.Read(func(st *buttonState) {
		err = panel.Attach(st.container, parent)
	})
	return err
}

// Detach implements panel.Panel.
func (b *Button) Detach() error {
	var err error
	b.w.Read(func(st *buttonState) {
		err = panel.Detach(st.container)
	})
	return err
}

// Subscribe implements panel.Panel.
func (b *Button) Subscribe() *actor.Stream[event.Event] {
	s, _ := b.w.Subscribe()
	return s
}

// OnEvent implements panel.Panel.
func (b *Button) OnEvent(ctx context.Context, e event.Event) error {
	var out []ButtonEvent
	var err error
	ok, werr := b.w.MutateContext(ctx, func(st *buttonState) {
		out, err = st.update(e)
	})
	if werr != nil {
		return werr
	}
	if err != nil || !ok {
		return err
	}
	if err := b.skin.OnEvent(ctx, e.Derive(e.Data)); err != nil {
		return err
	}
	for _, be := range out {
		switch be {
		case ButtonPressed:
			err = b.skin.SetPressed(ctx, true)
		case ButtonReleased:
			err = b.skin.SetPressed(ctx, false)
		}
		if err != nil {
			return err
		}
		b.clicks.Send(be)
	}
	b.w.Send(e)
	return nil
}

// Close destroys the button and its skin.
func (b *Button) Close() error {
	var container visual.Node
	if !b.w.Read(func(st *buttonState) { container = st.container }) || b.o == nil {
		return nil
	}
	b.o.Drop()
	b.clicks.Close()
	if c, ok := b.skin.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return panel.Detach(container)
}

// update applies e to the button state and returns the resulting
// button events.
func (st *buttonState) update(e event.Event) ([]ButtonEvent, error) {
	if r, ok := e.Data.(event.Resized); ok {
		if err := st.container.SetSize(r.Size); err != nil {
			return nil, err
		}
	}
	var out []ButtonEvent
	for _, ce := range st.click.Update(e) {
		switch ce.Type {
		case gesture.TypePress:
			out = append(out, ButtonPressed)
		case gesture.TypeRelease, gesture.TypeCancel:
			out = append(out, ButtonReleased)
		case gesture.TypeClick:
			out = append(out, ButtonClicked)
		}
	}
	return out, nil
}

func (e ButtonEvent) String() string {
	switch e {
	case ButtonPressed:
		return "Pressed"
	case ButtonReleased:
		return "Released"
	case ButtonClicked:
		return "Clicked"
	default:
		panic(fmt.Sprintf("unknown button event %d", uint8(e)))
	}
}

// SimpleSkin is a Skin drawing a rounded background that changes
// color while pressed.
type SimpleSkin struct {
	*Background
	Normal, Down color.Color
}

// NewSimpleSkin returns a skin with the given colors. Nil colors
// default to light gray and dark gray.
func NewSimpleSkin(comp visual.Compositor, normal, down color.Color) (*SimpleSkin, error) {
	if normal == nil {
		normal = colornames.Lightgray
	}
	if down == nil {
		down = colornames.Darkgray
	}
	bg, err := NewBackground(comp, normal, true)
	if err != nil {
		return nil, err
	}
	return &SimpleSkin{Background: bg, Normal: normal, Down: down}, nil
}

// SetPressed implements Skin.
func (s *SimpleSkin) SetPressed(ctx context.Context, pressed bool) error {
	if pressed {
		return s.SetColor(ctx, s.Down)
	}
	return s.SetColor(ctx, s.Normal)
}
