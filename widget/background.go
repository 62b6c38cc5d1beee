// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"context"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/visual"
)

// Background is a leaf panel filling its whole size with a color.
type Background struct {
	id panel.ID
	o  *actor.Owner[backgroundState, event.Event]
	w  actor.Weak[backgroundState, event.Event]
}

type backgroundState struct {
	shape visual.Shape
	color color.Color
	round bool
}

// NewBackground returns a background of color c, or white if c is
// nil. Rounded backgrounds repaint with the Rounded radius on every
// resize.
func NewBackground(comp visual.Compositor, c color.Color, round bool) (*Background, error) {
	shape, err := comp.NewShape()
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = colornames.White
	}
	owner := actor.New[backgroundState, event.Event](backgroundState{
		shape: shape,
		color: c,
		round: round,
	})
	return &Background{id: panel.NewID(), o: owner, w: owner.Weak()}, nil
}

// ID implements panel.Panel.
func (b *Background) ID() panel.ID {
	return b.id
}

// Color returns the fill color.
func (b *Background) Color() color.Color {
	c, _ := actor.GetWeak(b.w, func(st *backgroundState) color.Color { return st.color })
	return c
}

// SetColor changes the fill color and repaints.
func (b *Background) SetColor(ctx context.Context, c color.Color) error {
	var err error
	_, werr := b.w.MutateContext(ctx, func(st *backgroundState) {
		st.color = c
		err = st.paint()
	})
	if werr != nil {
		return werr
	}
	return err
}

// Attach implements panel.Panel.
func (b *Background) Attach(parent visual.Node) error {
	var err error
	b.w.Read(func(st *backgroundState) {
		err = panel.Attach(st.shape, parent)
	})
	return err
}

// Detach implements panel.Panel.
func (b *Background) Detach() error {
	var err error
	b.w.Read(func(st *backgroundState) {
		err = panel.Detach(st.shape)
	})
	return err
}

// Subscribe implements panel.Panel.
func (b *Background) Subscribe() *actor.Stream[event.Event] {
	s, _ := b.w.Subscribe()
	return s
}

// OnEvent implements panel.Panel.
func (b *Background) OnEvent(ctx context.Context, e event.Event) error {
	var err error
	ok, werr := b.w.MutateContext(ctx, func(st *backgroundState) {
		if r, isResize := e.Data.(event.Resized); isResize {
			if err = st.shape.SetSize(r.Size); err == nil {
				err = st.paint()
			}
		}
	})
	if werr != nil {
		return werr
	}
	if err != nil || !ok {
		return err
	}
	b.w.Send(e)
	return nil
}

// Close destroys the background and detaches its visual.
func (b *Background) Close() error {
	var shape visual.Shape
	if !b.w.Read(func(st *backgroundState) { shape = st.shape }) || b.o == nil {
		return nil
	}
	b.o.Drop()
	return panel.Detach(shape)
}

func (st *backgroundState) paint() error {
	var radius float32
	if st.round {
		sz, err := st.shape.Size()
		if err != nil {
			return err
		}
		radius = Rounded(sz)
	}
	return st.shape.SetFill(st.color, radius)
}

// Rounded returns the corner radius of a rounded background of size
// sz: a twentieth of its smaller dimension.
func Rounded(sz f32.Point) float32 {
	return min(sz.X, sz.Y) / 20
}
