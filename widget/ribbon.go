// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/layout"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/visual"
)

// Ribbon is a container laying out its cells along an orientation.
// It re-lays out whenever its size changes or a cell is added or
// removed.
//
// Events are routed to cells as follows. Resized resizes the ribbon,
// solves the layout and sends every cell its own new size. CursorMoved
// is recorded and sent to every cell translated to the cell's
// coordinates. MouseInput goes only to the cell containing the last
// cursor position, edges included, or to no cell. Other events are
// broadcast. Afterwards the ribbon re-emits the event unchanged on its
// own stream.
type Ribbon struct {
	id     panel.ID
	o      *actor.Owner[ribbonState, event.Event]
	w      actor.Weak[ribbonState, event.Event]
	router panel.Router
}

// Cell is a child of a Ribbon with its layout constraint. Cells are
// equal if their IDs are.
type Cell struct {
	id        panel.ID
	container visual.Node
	limit     layout.CellLimit
	slot      *panel.Slot
	panel     panel.Panel
}

type ribbonState struct {
	comp        visual.Compositor
	container   visual.Node
	orientation layout.Orientation
	name        string
	cells       []*Cell
	added       int
	mouse       f32.Point
	hasMouse    bool
	mount       *panel.Mount
}

// NewRibbon returns an empty ribbon.
func NewRibbon(comp visual.Compositor, o layout.Orientation, opts ...Option) (*Ribbon, error) {
	cfg := buildOptions("ribbon", opts)
	container, err := comp.NewContainer()
	if err != nil {
		return nil, err
	}
	owner := actor.New[ribbonState, event.Event](ribbonState{
		comp:        comp,
		container:   container,
		orientation: o,
		name:        cfg.name,
		mount:       new(panel.Mount),
	})
	return &Ribbon{
		id:     panel.NewID(),
		o:      owner,
		w:      owner.Weak(),
		router: cfg.router,
	}, nil
}

// ID implements panel.Panel.
func (r *Ribbon) ID() panel.ID {
	return r.id
}

// Name returns the ribbon's name.
func (r *Ribbon) Name() string {
	name, _ := actor.GetWeak(r.w, func(st *ribbonState) string { return st.name })
	return name
}

// Orientation returns the orientation the ribbon was created with.
func (r *Ribbon) Orientation() layout.Orientation {
	o, _ := actor.GetWeak(r.w, func(st *ribbonState) layout.Orientation { return st.orientation })
	return o
}

// Size returns the ribbon's current size.
func (r *Ribbon) Size() (f32.Point, error) {
	var sz f32.Point
	var err error
	r.w.Read(func(st *ribbonState) {
		sz, err = st.container.Size()
	})
	return sz, err
}

// Cells returns a snapshot of the ribbon's cells in insertion order.
func (r *Ribbon) Cells() []Cell {
	cells, _ := actor.GetWeak(r.w, func(st *ribbonState) []Cell {
		cells := make([]Cell, len(st.cells))
		for i, c := range st.cells {
			cells[i] = *c
		}
		return cells
	})
	return cells
}

// AddCell appends a cell and returns the slot children plug into.
func (r *Ribbon) AddCell(ctx context.Context, limit layout.CellLimit) (*panel.Slot, error) {
	var slot *panel.Slot
	err := r.addCell(ctx, limit, func(st *ribbonState, c *Cell) error {
		slot = panel.NewSlot(c.container, fmt.Sprintf("%s/Ribbon_%d", st.name, st.added))
		c.slot = slot
		return nil
	})
	return slot, err
}

// AddPanel appends a cell hosting p.
func (r *Ribbon) AddPanel(ctx context.Context, p panel.Panel, limit layout.CellLimit) error {
	return r.addCell(ctx, limit, func(st *ribbonState, c *Cell) error {
		if err := p.Attach(c.container); err != nil {
			return err
		}
		c.panel = p
		return nil
	})
}

func (r *Ribbon) addCell(ctx context.Context, limit layout.CellLimit, fill func(st *ribbonState, c *Cell) error) error {
	var ds []panel.Delivery
	var err error
	ok, werr := r.w.MutateContext(ctx, func(st *ribbonState) {
		var container visual.Node
		if container, err = st.comp.NewContainer(); err != nil {
			return
		}
		st.added++
		c := &Cell{id: panel.NewID(), container: container, limit: limit}
		if err = fill(st, c); err != nil {
			return
		}
		if err = st.container.Children().InsertTop(container); err != nil {
			if c.slot != nil {
				c.slot.Close()
			}
			return
		}
		st.cells = append(st.cells, c)
		ds, err = st.relayout(ctx, event.New(event.Empty{}), false)
	})
	if werr != nil {
		return werr
	}
	if !ok {
		return errors.New(errors.ErrCodeClosed, "add cell to closed ribbon")
	}
	if err != nil {
		return err
	}
	return r.router.Deliver(ctx, ds)
}

// RemovePanel removes the cell hosting p and detaches p. It is a
// no-op if p is not in the ribbon.
func (r *Ribbon) RemovePanel(ctx context.Context, p panel.Panel) error {
	id := p.ID()
	return r.removeCell(ctx, func(cells []*Cell) (int, error) {
		return slices.IndexFunc(cells, func(c *Cell) bool {
			return c.panel != nil && c.panel.ID() == id
		}), nil
	})
}

// RemoveCell removes the i'th cell, closing its slot or detaching
// its panel.
func (r *Ribbon) RemoveCell(ctx context.Context, i int) error {
	return r.removeCell(ctx, func(cells []*Cell) (int, error) {
		if i < 0 || i >= len(cells) {
			return -1, errors.New(errors.ErrCodeBadIndex, "ribbon has no cell %d", i)
		}
		return i, nil
	})
}

func (r *Ribbon) removeCell(ctx context.Context, find func([]*Cell) (int, error)) error {
	var ds []panel.Delivery
	var err error
	_, werr := r.w.MutateContext(ctx, func(st *ribbonState) {
		var i int
		if i, err = find(st.cells); err != nil || i < 0 {
			return
		}
		c := st.cells[i]
		if c.panel != nil {
			if err = c.panel.Detach(); err != nil {
				return
			}
		}
		if c.slot != nil {
			c.slot.Close()
		}
		if err = st.container.Children().Remove(c.container); err != nil {
			return
		}
		st.cells = slices.Delete(st.cells, i, i+1)
		ds, err = st.relayout(ctx, event.New(event.Empty{}), false)
	})
	if werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	return r.router.Deliver(ctx, ds)
}

// SetLimit replaces the limit of the i'th cell and re-lays out.
func (r *Ribbon) SetLimit(ctx context.Context, i int, limit layout.CellLimit) error {
	var ds []panel.Delivery
	var err error
	_, werr := r.w.MutateContext(ctx, func(st *ribbonState) {
		if i < 0 || i >= len(st.cells) {
			err = errors.New(errors.ErrCodeBadIndex, "ribbon has no cell %d", i)
			return
		}
		st.cells[i].limit = limit
		ds, err = st.relayout(ctx, event.New(event.Empty{}), false)
	})
	if werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	return r.router.Deliver(ctx, ds)
}

// Attach implements panel.Panel.
func (r *Ribbon) Attach(parent visual.Node) error {
	var err error
	r.w.Read(func(st *ribbonState) {
		err = panel.Attach(st.container, parent)
	})
	return err
}

// Detach implements panel.Panel.
func (r *Ribbon) Detach() error {
	var err error
	r.w.Read(func(st *ribbonState) {
		err = panel.Detach(st.container)
	})
	return err
}

// Subscribe implements panel.Panel. If the ribbon already has a
// size, the stream starts with a Resized event carrying it.
func (r *Ribbon) Subscribe() *actor.Stream[event.Event] {
	s, _ := r.w.SubscribeFunc(func(st *ribbonState) []event.Event {
		return resendSize(st.container)
	})
	return s
}

// OnEvent implements panel.Panel.
func (r *Ribbon) OnEvent(ctx context.Context, e event.Event) error {
	var ds []panel.Delivery
	var err error
	ok, werr := r.w.MutateContext(ctx, func(st *ribbonState) {
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
	if err := r.router.Deliver(ctx, ds); err != nil {
		return err
	}
	r.w.Send(e)
	return nil
}

// Mount plugs the ribbon into slot and spawns a task feeding the
// slot's events to the ribbon for as long as both exist. Mounting
// again moves the ribbon out of its previous slot.
func (r *Ribbon) Mount(sp panel.Spawner, slot *panel.Slot) error {
	var container visual.Node
	var m *panel.Mount
	if !r.w.Read(func(st *ribbonState) { container, m = st.container, st.mount }) {
		return errors.New(errors.ErrCodeClosed, "mount closed ribbon")
	}
	weak := &Ribbon{id: r.id, w: r.w, router: r.router}
	return m.Move(sp, slot, container, func(ctx context.Context, e event.Event) (bool, error) {
		if !weak.w.Alive() {
			return false, nil
		}
		return true, weak.OnEvent(ctx, e)
	})
}

// Close destroys the ribbon: its streams terminate, its cell slots
// close and its visual is unplugged or detached. Panels in its cells
// are left to their owners.
func (r *Ribbon) Close() error {
	var container visual.Node
	var m *panel.Mount
	var slots []*panel.Slot
	ok := r.w.Read(func(st *ribbonState) {
		container, m = st.container, st.mount
		for _, c := range st.cells {
			if c.slot != nil {
				slots = append(slots, c.slot)
			}
		}
	})
	if !ok || r.o == nil {
		return nil
	}
	r.o.Drop()
	for _, s := range slots {
		s.Close()
	}
	if err := m.Unmount(); err != nil {
		return err
	}
	return panel.Detach(container)
}

// route updates the ribbon for e and returns the deliveries to its
// cells.
func (st *ribbonState) route(ctx context.Context, e event.Event) ([]panel.Delivery, error) {
	switch d := e.Data.(type) {
	case event.Resized:
		if err := st.container.SetSize(d.Size); err != nil {
			return nil, err
		}
		return st.relayout(ctx, e, true)
	case event.CursorMoved:
		st.mouse, st.hasMouse = d.Position, true
		ds := make([]panel.Delivery, 0, len(st.cells))
		for _, c := range st.cells {
			off, err := c.container.Offset()
			if err != nil {
				return nil, err
			}
			ds = append(ds, panel.Delivery{
				Sink:  c.sink(),
				Event: e.Derive(event.CursorMoved{Position: d.Position.Sub(off)}),
			})
		}
		return ds, nil
	case event.MouseInput:
		if !st.hasMouse {
			return nil, nil
		}
		// Cells added later are on top.
		for i := len(st.cells) - 1; i >= 0; i-- {
			c := st.cells[i]
			off, err := c.container.Offset()
			if err != nil {
				return nil, err
			}
			sz, err := c.container.Size()
			if err != nil {
				return nil, err
			}
			if !st.mouse.Sub(off).In(sz) {
				continue
			}
			d.InBounds = true
			return []panel.Delivery{{Sink: c.sink(), Event: e.Derive(d)}}, nil
		}
		return nil, nil
	default:
		return panel.Fan(st.sinks(), e, e.Data), nil
	}
}

// relayout places the cells for the container's current size. It
// returns a Resized delivery per cell carrying the cell's own size,
// derived from e. Unless always is set, nothing is delivered while
// the container has no size.
func (st *ribbonState) relayout(ctx context.Context, e event.Event, always bool) ([]panel.Delivery, error) {
	sz, err := st.container.Size()
	if err != nil {
		return nil, err
	}
	limits := make([]layout.CellLimit, len(st.cells))
	for i, c := range st.cells {
		limits[i] = c.limit
	}
	rects := layout.Arrange(st.orientation, limits, sz)
	log.FromContext(ctx).Debug("ribbon layout", "ribbon", st.name, "orientation", st.orientation, "size", sz, "cells", len(rects))
	for i, c := range st.cells {
		if err := c.container.SetOffset(rects[i].Min); err != nil {
			return nil, err
		}
		if err := c.container.SetSize(rects[i].Size()); err != nil {
			return nil, err
		}
	}
	if !always && sz == (f32.Point{}) {
		return nil, nil
	}
	ds := make([]panel.Delivery, len(st.cells))
	for i, c := range st.cells {
		ds[i] = panel.Delivery{
			Sink:  c.sink(),
			Event: e.Derive(event.Resized{Size: rects[i].Size()}),
		}
	}
	return ds, nil
}

func (st *ribbonState) sinks() []panel.Sink {
	sinks := make([]panel.Sink, len(st.cells))
	for i, c := range st.cells {
		sinks[i] = c.sink()
	}
	return sinks
}

// ID returns the cell's identity.
func (c Cell) ID() panel.ID {
	return c.id
}

// Limit returns the cell's layout constraint.
func (c Cell) Limit() layout.CellLimit {
	return c.limit
}

// Container returns the cell's visual node.
func (c Cell) Container() visual.Node {
	return c.container
}

// Slot returns the cell's slot, or nil for a panel cell.
func (c Cell) Slot() *panel.Slot {
	return c.slot
}

// Panel returns the cell's panel, or nil for a slot cell.
func (c Cell) Panel() panel.Panel {
	return c.panel
}

func (c Cell) sink() panel.Sink {
	if c.panel != nil {
		return c.panel
	}
	return c.slot
}
