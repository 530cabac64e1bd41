package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Group runs functions concurrently under a shared context. The first
// error, or panic, cancels the context and is returned by Wait.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc

	wg sync.WaitGroup

	errOnce sync.Once
	err     error
}

func GoGroup(ctx context.Context, opts ...RunOption) *Group {
	rOpts := &runOptions{}
	for _, opt := range opts {
		opt(rOpts)
	}
	g := &Group{}
	if rOpts.timeout > 0 {
		g.ctx, g.cancel = context.WithTimeout(ctx, rOpts.timeout)
	} else {
		g.ctx, g.cancel = context.WithCancel(ctx)
	}
	return g
}

// Wait blocks until every function started with Go has returned.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel()
	return g.err
}

func (g *Group) Go(fn func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := call(g.ctx, fn); err != nil {
			g.errOnce.Do(func() {
				g.err = err
				g.cancel()
			})
		}
	}()
}

func call(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parallel: recovered panic: %v", r)
		}
	}()
	return fn(ctx)
}

type RunOption func(opts *runOptions)

type runOptions struct {
	timeout time.Duration
}

func WithTimeout(timeout time.Duration) RunOption {
	return func(opts *runOptions) {
		opts.timeout = timeout
	}
}
