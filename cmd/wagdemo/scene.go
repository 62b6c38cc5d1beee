// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/app"
	"github.com/wagui/wag/layout"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/visual"
	"github.com/wagui/wag/widget"
)

var palette = []color.Color{
	colornames.Steelblue,
	colornames.Seagreen,
	colornames.Indianred,
	colornames.Goldenrod,
	colornames.Slateblue,
}

// scene is a background under a column whose middle cell holds a row
// of buttons.
type scene struct {
	stack   *widget.LayerStack
	bg      *widget.Background
	column  *widget.Ribbon
	row     *widget.Ribbon
	buttons []*widget.Button
}

func newScene(ctx context.Context, comp visual.Compositor, sp panel.Spawner, cnf app.Config, n int) (*scene, error) {
	fanout := widget.ConcurrentFanout(cnf.ConcurrentFanout)
	s := new(scene)
	var err error
	if s.stack, err = widget.NewLayerStack(comp, widget.Name(cnf.Title), fanout); err != nil {
		return nil, err
	}
	if s.bg, err = widget.NewBackground(comp, colornames.Midnightblue, false); err != nil {
		return nil, err
	}
	if err := s.stack.PushPanel(ctx, s.bg); err != nil {
		return nil, err
	}
	if s.column, err = widget.NewRibbon(comp, layout.Vertical, widget.Name(cnf.Title), fanout); err != nil {
		return nil, err
	}
	if err := s.stack.PushPanel(ctx, s.column); err != nil {
		return nil, err
	}
	if _, err := s.column.AddCell(ctx, layout.Ratio(1)); err != nil {
		return nil, err
	}
	middle, err := s.column.AddCell(ctx, layout.Ratio(1).WithMin(3).WithMax(9))
	if err != nil {
		return nil, err
	}
	if _, err := s.column.AddCell(ctx, layout.Ratio(1)); err != nil {
		return nil, err
	}
	if s.row, err = widget.NewRibbon(comp, layout.Horizontal, widget.Name(middle.Name()), fanout); err != nil {
		return nil, err
	}
	if err := s.row.Mount(sp, middle); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		skin, err := widget.NewSimpleSkin(comp, palette[i%len(palette)], colornames.Orange)
		if err != nil {
			return nil, err
		}
		b, err := widget.NewButton(comp, skin)
		if err != nil {
			return nil, err
		}
		if err := s.row.AddPanel(ctx, b, layout.DefaultLimit().WithMin(4)); err != nil {
			return nil, err
		}
		s.buttons = append(s.buttons, b)
	}
	return s, nil
}

// watch spawns a task per stream of the scene, posting a message to
// out for every event.
func (s *scene) watch(sp panel.Spawner, w *app.Window, out chan<- any) error {
	if err := forward(sp, w.Subscribe(), out, func(any) any { return redrawMsg{} }); err != nil {
		return err
	}
	if err := forward(sp, s.row.Subscribe(), out, func(any) any { return redrawMsg{} }); err != nil {
		return err
	}
	for i, b := range s.buttons {
		i := i
		err := forward(sp, b.ButtonEvents(), out, func(e any) any {
			return clickMsg{button: i, event: e.(widget.ButtonEvent)}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func forward[E any](sp panel.Spawner, s *actor.Stream[E], out chan<- any, msg func(any) any) error {
	err := sp.Spawn(func(ctx context.Context) error {
		defer s.Close()
		for {
			e, ok := s.Next(ctx)
			if !ok {
				return nil
			}
			select {
			case out <- msg(e):
			case <-ctx.Done():
				return nil
			}
		}
	})
	if err != nil {
		s.Close()
	}
	return err
}

func (s *scene) Close() {
	for _, b := range s.buttons {
		b.Close()
	}
	s.row.Close()
	s.column.Close()
	s.bg.Close()
	s.stack.Close()
}
