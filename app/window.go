// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/io/system"
	"github.com/wagui/wag/panel"
	"github.com/wagui/wag/unit"
	"github.com/wagui/wag/visual"
)

// Window is the root of a panel tree. Window events are measured in
// pixels and converted to dp, the unit of the panel tree, according
// to the configured scale.
//
// Panels reach the window in two ways: SetItem attaches a single panel
// that receives every window event directly, and containers may Mount
// themselves into the root slot returned by Slot.
type Window struct {
	cnf    Config
	metric unit.Metric
	root   visual.Node
	slot   *panel.Slot
	o      *actor.Owner[windowState, event.Event]
	events chan system.Event
	done   chan struct{}
	once   sync.Once
}

type windowState struct {
	item panel.Panel
}

// NewWindow returns a window with a root node of the configured size.
func NewWindow(comp visual.Compositor, cnf Config, options ...Option) (*Window, error) {
	cnf.apply(options)
	if err := cnf.Validate(); err != nil {
		return nil, err
	}
	root, err := comp.NewContainer()
	if err != nil {
		return nil, err
	}
	if err := root.SetSize(f32.Pt(float32(cnf.Width), float32(cnf.Height))); err != nil {
		return nil, err
	}
	return &Window{
		cnf:    cnf,
		metric: unit.Metric{PxPerDp: cnf.Scale},
		root:   root,
		slot:   panel.NewSlot(root, cnf.Title),
		o:      actor.New[windowState, event.Event](windowState{}),
		events: make(chan system.Event, cnf.QueueSize),
		done:   make(chan struct{}),
	}, nil
}

// Config returns the window's configuration.
func (w *Window) Config() Config {
	return w.cnf
}

// Root returns the root visual node.
func (w *Window) Root() visual.Node {
	return w.root
}

// Slot returns the root slot. It closes with the window.
func (w *Window) Slot() *panel.Slot {
	return w.slot
}

// Item returns the current item, or nil.
func (w *Window) Item() panel.Panel {
	item, _ := actor.GetWeak(w.o.Weak(), func(st *windowState) panel.Panel { return st.item })
	return item
}

// SetItem replaces the window's item, detaching the previous one. The
// new item is attached to the root and sent a Resized event with the
// root's size. A nil p only removes the current item.
func (w *Window) SetItem(ctx context.Context, p panel.Panel) error {
	var old panel.Panel
	ok, err := w.o.Weak().MutateContext(ctx, func(st *windowState) {
		old, st.item = st.item, p
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCodeClosed, "set item of closed window")
	}
	if old != nil {
		if err := old.Detach(); err != nil {
			return err
		}
	}
	if p == nil {
		return nil
	}
	if err := p.Attach(w.root); err != nil {
		return err
	}
	sz, err := w.root.Size()
	if err != nil {
		return err
	}
	return p.OnEvent(ctx, event.New(event.Resized{Size: sz}))
}

// Subscribe returns a stream of the panel events the window
// dispatched.
func (w *Window) Subscribe() *actor.Stream[event.Event] {
	s, _ := w.o.Weak().Subscribe()
	return s
}

// Queue hands a window event to Run, blocking while the queue is
// full. It fails with errors.ErrCodeClosed once the window is closed.
func (w *Window) Queue(e system.Event) error {
	select {
	case <-w.done:
		return errors.New(errors.ErrCodeClosed, "window closed")
	default:
	}
	select {
	case w.events <- e:
		return nil
	case <-w.done:
		return errors.New(errors.ErrCodeClosed, "window closed")
	}
}

// Done returns a channel closed when the window closes.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Run dispatches queued window events until the window closes, a
// CloseEvent is dispatched or ctx is done. It returns the first
// dispatch error, after which the window stops.
func (w *Window) Run(ctx context.Context) error {
	logger := log.FromContext(ctx).With("window", w.cnf.Title)
	ctx = log.WithContext(ctx, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("window cancelled")
			return nil
		case <-w.done:
			return nil
		case se := <-w.events:
			if _, ok := se.(system.CloseEvent); ok {
				logger.Debug("window closing")
				w.Close()
				return nil
			}
			if err := w.dispatch(ctx, se); err != nil {
				logger.Error("event dispatch failed", "event", se, "err", err)
				return err
			}
		}
	}
}

func (w *Window) dispatch(ctx context.Context, se system.Event) error {
	e := event.FromWindowEvent(se)
	switch d := e.Data.(type) {
	case event.Resized:
		e.Data = event.Resized{Size: w.metric.PointToDp(d.Size)}
	case event.CursorMoved:
		e.Data = event.CursorMoved{Position: w.metric.PointToDp(d.Position)}
	}
	// The slot resizes the root and forwards e to mounted panels.
	if err := w.slot.OnEvent(ctx, e); err != nil {
		return err
	}
	if item := w.Item(); item != nil {
		if err := item.OnEvent(ctx, e); err != nil {
			return err
		}
	}
	w.o.Weak().Send(e)
	return nil
}

// Close closes the window and its root slot. The item is detached
// but left open.
func (w *Window) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		if item := w.Item(); item != nil {
			err = item.Detach()
		}
		w.slot.Close()
		w.o.Drop()
	})
	return err
}
