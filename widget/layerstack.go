// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/visual"
)

// LayerStack overlays its layers at its full size. Layers pushed
// later are on top. Mouse input goes to the topmost layer only; every
// other event is broadcast to all layers.
type LayerStack struct {
	id     panel.ID
	o      *actor.Owner[stackState, event.Event]
	w      actor.Weak[stackState, event.Event]
	router panel.Router
}

type stackState struct {
	container visual.Node
	name      string
	layers    []panel.Panel
	mount     *panel.Mount
}

// NewLayerStack returns an empty stack.
func NewLayerStack(comp visual.Compositor, opts ...Option) (*LayerStack, error) {
	cfg := buildOptions("stack", opts)
	container, err := comp.NewContainer()
	if err != nil {
		return nil, err
	}
	owner := actor.New[stackState, event.Event](stackState{
		container: container,
		name:      cfg.name,
		mount:     new(panel.Mount),
	})
	return &LayerStack{
		id:     panel.NewID(),
		o:      owner,
		w:      owner.Weak(),
		router: cfg.router,
	}, nil
}

// ID implements panel.Panel.
func (s *LayerStack) ID() panel.ID {
	return s.id
}

// Layers returns a snapshot of the layers, bottom first.
func (s *LayerStack) Layers() []panel.Panel {
	layers, _ := actor.GetWeak(s.w, func(st *stackState) []panel.Panel {
		return slices.Clone(st.layers)
	})
	return layers
}

// Size returns the stack's current size.
func (s *LayerStack) Size() (f32.Point, error) {
	var sz f32.Point
	var err error
	s.w.Read(func(st *stackState) {
		sz, err = st.container.Size()
	})
	return sz, err
}

// PushPanel attaches p on top of the stack. If the stack already has
// a size, p is sent a Resized event carrying it.
func (s *LayerStack) PushPanel(ctx context.Context, p panel.Panel) error {
	var sz f32.Point
	var err error
	ok, werr := s.w.MutateContext(ctx, func(st *stackState) {
		if err = p.Attach(st.container); err != nil {
			return
		}
		st.layers = append(st.layers, p)
		sz, err = st.container.Size()
	})
	if werr != nil {
		return werr
	}
	if !ok {
		return errors.New(errors.ErrCodeClosed, "push to closed stack")
	}
	if err != nil || sz == (f32.Point{}) {
		return err
	}
	return p.OnEvent(ctx, event.New(event.Resized{Size: sz}))
}

// RemovePanel detaches p and removes it from the stack. It is a no-op
// if p is not a layer.
func (s *LayerStack) RemovePanel(ctx context.Context, p panel.Panel) error {
	var err error
	_, werr := s.w.MutateContext(ctx, func(st *stackState) {
		i := panel.Index(st.layers, p.ID())
		if i < 0 {
			return
		}
		if err = st.layers[i].Detach(); err != nil {
			return
		}
		st.layers = slices.Delete(st.layers, i, i+1)
	})
	if werr != nil {
		return werr
	}
	return err
}

// Attach implements panel.Panel.
func (s *LayerStack) Attach(parent visual.Node) error {
	var err error
	s.w.Read(func(st *stackState) {
		err = panel.Attach(st.container, parent)
	})
	return err
}

// Detach implements panel.Panel.
func (s *LayerStack) Detach() error {
	var err error
	s.w.Read(func(st *stackState) {
		err = panel.Detach(st.container)
	})
	return err
}

// Subscribe implements panel.Panel. If the stack already has a size,
// the stream starts with a Resized event carrying it.
func (s *LayerStack) Subscribe() *actor.Stream[event.Event] {
	str, _ := s.w.SubscribeFunc(func(st *stackState) []event.Event {
		return resendSize(st.container)
	})
	return str
}

// OnEvent implements panel.Panel.
func (s *LayerStack) OnEvent(ctx context.Context, e event.Event) error {
	var ds []panel.Delivery
	var err error
	ok, werr := s.w.MutateContext(ctx, func(st *stackState) {
		ds, err = st.route(ctx, e)
	})
	if werr != nil {
		return werr
	}
	if !ok {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.router.Deliver(ctx, ds); err != nil {
		return err
	}
	s.w.Send(e)
	return nil
}

// Mount plugs the stack into slot and spawns a task feeding the
// slot's events to the stack for as long as both exist. Mounting
// again moves the stack out of its previous slot.
func (s *LayerStack) Mount(sp panel.Spawner, slot *panel.Slot) error {
	var container visual.Node
	var m *panel.Mount
	if !s.w.Read(func(st *stackState) { container, m = st.container, st.mount }) {
		return errors.New(errors.ErrCodeClosed, "mount closed stack")
	}
	weak := &LayerStack{id: s.id, w: s.w, router: s.router}
	return m.Move(sp, slot, container, func(ctx context.Context, e event.Event) (bool, error) {
		if !weak.w.Alive() {
			return false, nil
		}
		return true, weak.OnEvent(ctx, e)
	})
}

// Close destroys the stack and detaches its visual. Layers stay
// attached to the dropped container until their owners detach them.
func (s *LayerStack) Close() error {
	var container visual.Node
	var m *panel.Mount
	ok := s.w.Read(func(st *stackState) {
		container, m = st.container, st.mount
	})
	if !ok || s.o == nil {
		return nil
	}
	s.o.Drop()
	if err := m.Unmount(); err != nil {
		return err
	}
	return panel.Detach(container)
}

func (st *stackState) route(ctx context.Context, e event.Event) ([]panel.Delivery, error) {
	if r, ok := e.Data.(event.Resized); ok {
		log.FromContext(ctx).Debug("stack resized", "stack", st.name, "size", r.Size, "layers", len(st.layers))
		if err := st.container.SetSize(r.Size); err != nil {
			return nil, err
		}
	}
	switch panel.PolicyOf(e) {
	case panel.Focused:
		if len(st.layers) == 0 {
			return nil, nil
		}
		top := st.layers[len(st.layers)-1]
		return []panel.Delivery{{Sink: top, Event: e.Derive(e.Data)}}, nil
	default:
		sinks := make([]panel.Sink, len(st.layers))
		for i, l := range st.layers {
			sinks[i] = l
		}
		return panel.Fan(sinks, e, e.Data), nil
	}
}
