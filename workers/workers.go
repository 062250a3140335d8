package workers

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Worker is a long-running task spawned by a script.
// To participate in cooperative shutdown, a Worker must return shortly after its context is cancelled.
// A Worker that never checks its context will block [Group.Wait] indefinitely.
type Worker func(ctx context.Context) error

// Group tracks background workers and coordinates their cooperative shutdown.
// Every worker is spawned with a context derived from the same cancel root, so one [Group.Stop] reaches all of them.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mux  sync.Mutex
	errs *multierror.Error
}

// NewGroup creates a Group whose shared context descends from parent.
// A nil parent means [context.Background].
func NewGroup(parent context.Context) *Group {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{ctx: ctx, cancel: cancel}
}

// Spawn starts worker in its own goroutine with the group's shared cancellation context.
// A nil worker panics, since it can only be a programming mistake.
func (g *Group) Spawn(worker Worker) {
	if worker == nil {
		panic("nil worker")
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := worker(g.ctx); err != nil {
			g.mux.Lock()
			g.errs = multierror.Append(g.errs, err)
			g.mux.Unlock()
		}
	}()
}

// Stop asks every worker to stop by cancelling the shared context.
// Workers are asked, not forced.
func (g *Group) Stop() {
	g.cancel()
}

// Wait blocks until every spawned worker has returned, with no timeout, then reports their accumulated errors.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.mux.Lock()
	defer g.mux.Unlock()
	return g.errs.ErrorOrNil()
}

// StopWait is [Group.Stop] followed by [Group.Wait].
func (g *Group) StopWait() error {
	g.Stop()
	return g.Wait()
}

// Notify arranges for the group to stop when any of the given signals is received.
// The watch goroutine stands down on its own once the group is stopped by any means.
func (g *Group) Notify(signals ...os.Signal) {
	if len(signals) == 0 {
		panic("no signals passed to Notify")
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, signals...)
	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			g.cancel()
		case <-g.ctx.Done():
		}
	}()
}
