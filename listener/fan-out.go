package listener

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const DefaultFanOutLimit = 8

// fanOut runs task once per input, at most limit at a time, and waits for all of them. Failures never cancel the
// remaining tasks: every error is collected and the combined error returned alongside the per-input results.
func fanOut[I any, O any](ctx context.Context, limit int, inputs []I, task func(ctx context.Context, input I) (O, error)) ([]O, error) {
	results := make([]O, len(inputs))
	failures := make([]error, len(inputs))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			results[i], failures[i] = task(ctx, input)
			return nil
		})
	}

	_ = g.Wait()

	return results, multierr.Combine(failures...)
}
