// SPDX-License-Identifier: Unlicense OR MIT

package panel

import (
	"sync"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/visual"
)

// Mount tracks the slot a container visual is plugged into and the
// task feeding that slot's events to the container. The zero Mount
// is unmounted.
type Mount struct {
	mu   sync.Mutex
	plug *Plug
	feed *actor.Stream[event.Event]
}

// Move plugs v into slot and spawns a task piping the slot's events
// to dst, replacing the previous mounting if any. v is unplugged from
// its previous slot first; if plugging into slot fails, v goes back
// into the previous slot and its feed keeps running.
func (m *Mount) Move(sp Spawner, slot *Slot, v visual.Node, dst WeakSinkFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.plug
	if old != nil {
		if err := old.Unplug(); err != nil {
			return err
		}
	}
	plug, err := slot.Plug(v)
	if err != nil {
		m.plug = nil
		if old != nil {
			if re, rerr := old.Slot().Plug(v); rerr == nil {
				m.plug = re
			}
		}
		return err
	}
	m.plug = plug
	if m.feed != nil {
		m.feed.Close()
	}
	m.feed = slot.Subscribe()
	return Pipe(sp, slot.Name(), m.feed, dst)
}

// Slot returns the slot v is plugged into; ok is false if it is not
// mounted.
func (m *Mount) Slot() (s WeakSlot, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plug == nil {
		return WeakSlot{}, false
	}
	return m.plug.Slot(), true
}

// Unmount stops the feed task and unplugs the visual.
func (m *Mount) Unmount() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.feed != nil {
		m.feed.Close()
		m.feed = nil
	}
	p := m.plug
	m.plug = nil
	if p == nil {
		return nil
	}
	return p.Unplug()
}
