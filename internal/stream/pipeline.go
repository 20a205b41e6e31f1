package stream

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runner is one live tick source.
type Runner interface {
	Run(ctx context.Context) error
}

// Pipeline supervises the tick sources as one unit: the crypto stream and
// the stock pollers start together and the first fatal error tears down
// the rest.
type Pipeline struct {
	runners []Runner
}

// NewPipeline groups the given tick sources.
func NewPipeline(runners ...Runner) *Pipeline {
	return &Pipeline{runners: runners}
}

// Run blocks until ctx is cancelled or a source fails.
func (p *Pipeline) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range p.runners {
		g.Go(func() error { return r.Run(ctx) })
	}
	return g.Wait()
}
