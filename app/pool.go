// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/panel"
)

// Pool runs the tasks of a window. The first task to fail cancels the
// context of every other task.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	g      *errgroup.Group
	limit  int

	mu     sync.Mutex
	closed bool
}

// NewPool returns a pool running at most workers tasks at a time, or
// any number if workers is zero. Tasks inherit the values of ctx,
// including its logger.
func NewPool(ctx context.Context, workers int) *Pool {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	return &Pool{ctx: ctx, cancel: cancel, g: g, limit: workers}
}

// Context returns the context tasks run with. It is done once a task
// failed or the pool is closed.
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Spawn implements panel.Spawner. It fails with errors.ErrCodeSpawn
// if the pool is closed, cancelled or has no free worker.
func (p *Pool) Spawn(t panel.Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New(errors.ErrCodeSpawn, "pool closed")
	}
	if err := p.ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeSpawn, err, "pool cancelled")
	}
	if !p.g.TryGo(func() error { return t(p.ctx) }) {
		return errors.New(errors.ErrCodeSpawn, "all %d workers busy", p.limit)
	}
	return nil
}

// Wait blocks until every task has ended and returns the first
// error of a failed task.
func (p *Pool) Wait() error {
	return p.g.Wait()
}

// Close cancels every task and waits for them to end. Later calls to
// Spawn fail.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	err := p.g.Wait()
	if err != nil && err != context.Canceled {
		log.FromContext(p.ctx).Error("task failed", "err", err)
		return err
	}
	return nil
}
