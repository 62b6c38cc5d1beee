// SPDX-License-Identifier: Unlicense OR MIT

package panel

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/io/event"
)

// Task is a unit of work run by a Spawner. Its context is cancelled
// when the spawner shuts down.
type Task func(ctx context.Context) error

// Spawner runs tasks concurrently.
type Spawner interface {
	// Spawn starts t. It returns an error with code
	// errors.ErrCodeSpawn if the task was rejected.
	Spawn(t Task) error
}

// WeakSinkFunc delivers an event to a destination that may be gone,
// reporting false if it is.
type WeakSinkFunc func(ctx context.Context, e event.Event) (ok bool, err error)

// Pipe spawns a task feeding every event of src to dst in order. The
// task ends without error when src closes, when dst reports it is
// gone, or when the spawner shuts down; it ends with dst's error
// otherwise. src is closed when the task ends, or immediately if the
// task could not be spawned.
func Pipe(sp Spawner, name string, src *actor.Stream[event.Event], dst WeakSinkFunc) error {
	err := sp.Spawn(func(ctx context.Context) error {
		defer src.Close()
		logger := log.FromContext(ctx).With("pipe", name)
		for {
			e, ok := src.Next(ctx)
			if !ok {
				logger.Debug("source closed")
				return nil
			}
			alive, err := dst(ctx, e)
			if err != nil {
				logger.Error("event dispatch failed", "event", e, "err", err)
				return err
			}
			if !alive {
				logger.Debug("destination gone")
				return nil
			}
		}
	})
	if err != nil {
		src.Close()
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeSpawn, err, "spawn pipe %s", name)
		}
		return err
	}
	return nil
}
