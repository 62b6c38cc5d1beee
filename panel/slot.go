// SPDX-License-Identifier: Unlicense OR MIT

package panel

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/visual"
)

// Slot is an attachment point published by a container. A child
// plugs its visual into the slot and follows the slot's events.
//
// Nothing prevents plugging several visuals into one slot; all of
// them stay children of the slot's container.
type Slot struct {
	o *actor.Owner[slotState, event.Event]
}

// WeakSlot is a weak reference to a Slot.
type WeakSlot struct {
	w actor.Weak[slotState, event.Event]
}

type slotState struct {
	container visual.Node
	name      string
}

// Plug is the token of a visual plugged into a slot. Unplug removes
// the visual from the slot's container.
type Plug struct {
	slot   WeakSlot
	visual visual.Node
	once   sync.Once
}

// NewSlot returns a slot hosting children in container.
func NewSlot(container visual.Node, name string) *Slot {
	return &Slot{o: actor.New[slotState, event.Event](slotState{
		container: container,
		name:      name,
	})}
}

// Name returns the slot's name, or "(dropped)" once closed.
func (s *Slot) Name() string {
	return s.Weak().Name()
}

// Container returns the slot's visual node, or nil once closed.
func (s *Slot) Container() visual.Node {
	n, _ := s.Weak().Container()
	return n
}

// Weak returns a weak reference to s.
func (s *Slot) Weak() WeakSlot {
	return WeakSlot{w: s.o.Weak()}
}

// Plug sizes v to the slot and inserts it on top of the slot's
// container.
func (s *Slot) Plug(v visual.Node) (*Plug, error) {
	return s.Weak().Plug(v)
}

// Subscribe returns a stream of the slot's events. If the slot
// already has a size, the stream starts with a Resized event
// carrying it, so children plugging in late do not start at zero
// size. A resize racing with Subscribe is never lost: the stream
// either starts with the new size or receives its Resized event.
func (s *Slot) Subscribe() *actor.Stream[event.Event] {
	st, _ := s.o.Weak().SubscribeFunc(resendSize)
	return st
}

func resendSize(st *slotState) []event.Event {
	if sz, err := st.container.Size(); err == nil && sz != (f32.Point{}) {
		return []event.Event{event.New(event.Resized{Size: sz})}
	}
	return nil
}

// Resize sets the size of the slot's container and notifies the
// slot's subscribers.
func (s *Slot) Resize(ctx context.Context, sz f32.Point) error {
	return s.OnEvent(ctx, event.New(event.Resized{Size: sz}))
}

// OnEvent applies Resized events to the slot's container and
// forwards every event to the slot's subscribers.
func (s *Slot) OnEvent(ctx context.Context, e event.Event) error {
	return s.Weak().OnEvent(ctx, e)
}

// Close closes the slot. Plugs of the slot become no-ops and the
// slot's streams terminate.
func (s *Slot) Close() {
	s.o.Drop()
}

// Plug is like Slot.Plug. If the slot is closed, v is left alone and
// the returned plug is already unplugged.
func (w WeakSlot) Plug(v visual.Node) (*Plug, error) {
	var err error
	ok := w.w.Mutate(func(st *slotState) {
		var sz f32.Point
		if sz, err = st.container.Size(); err != nil {
			return
		}
		if err = v.SetSize(sz); err != nil {
			return
		}
		err = st.container.Children().InsertTop(v)
	})
	if err != nil {
		return nil, err
	}
	p := &Plug{slot: w, visual: v}
	if !ok {
		// The slot is gone; the plug is born unplugged.
		p.once.Do(func() {})
	}
	return p, nil
}

// Alive reports whether the slot is still open.
func (w WeakSlot) Alive() bool {
	return w.w.Alive()
}

// Container returns the slot's visual node; ok is false if the slot
// is closed.
func (w WeakSlot) Container() (n visual.Node, ok bool) {
	return actor.GetWeak(w.w, func(st *slotState) visual.Node { return st.container })
}

// Name returns the slot's name, or "(dropped)" if the slot is
// closed.
func (w WeakSlot) Name() string {
	if name, ok := actor.GetWeak(w.w, func(st *slotState) string { return st.name }); ok {
		return name
	}
	return "(dropped)"
}

// OnEvent is like Slot.OnEvent. It is a no-op if the slot is closed.
func (w WeakSlot) OnEvent(ctx context.Context, e event.Event) error {
	var err error
	ok, werr := w.w.MutateContext(ctx, func(st *slotState) {
		if r, isResize := e.Data.(event.Resized); isResize {
			log.FromContext(ctx).Debug("slot resized", "slot", st.name, "size", r.Size)
			err = st.container.SetSize(r.Size)
		}
	})
	if werr != nil {
		return werr
	}
	if err != nil || !ok {
		return err
	}
	w.w.Send(e)
	return nil
}

// Slot returns the slot the plug was plugged into.
func (p *Plug) Slot() WeakSlot {
	return p.slot
}

// Visual returns the plugged visual.
func (p *Plug) Visual() visual.Node {
	return p.visual
}

// Unplug removes the plugged visual from the slot's container. Only
// the first call has an effect, and it is a no-op if the slot is
// already closed.
func (p *Plug) Unplug() error {
	var err error
	p.once.Do(func() {
		if c, ok := p.slot.Container(); ok {
			err = c.Children().Remove(p.visual)
		}
	})
	return err
}
