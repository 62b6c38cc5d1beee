// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app hosts a panel tree in a window.

A Window owns the root visual node and a single item panel. The host
feeds it window events with Queue, and Run converts each into a panel
event, resizes the root on resize and forwards the event to the item.

Containers forward events to their children through tasks run by a
Pool. A failing task cancels the pool's context, stopping every other
task of the window.

For example:

	cfg := app.DefaultConfig()
	pool := app.NewPool(ctx, cfg.Workers)
	w, err := app.NewWindow(comp, cfg)
	...
	w.SetItem(ctx, root)
	pool.Spawn(w.Run)
	w.Queue(system.ResizeEvent{Size: image.Pt(800, 600)})
*/
package app
