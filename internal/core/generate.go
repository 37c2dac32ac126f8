package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// materialize calls gen once for every index in [0, count) and returns the results in index
// order. Any failure discards everything generated so far.
func materialize[T any](count int, gen func(int) (T, error), workers int) ([]T, error) {
	if workers < 2 || count < 2 {
		out := make([]T, 0, count)
		for i := 0; i < count; i++ {
			value, err := invoke(gen, i)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	}

	out := make([]T, count)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			value, err := invoke(gen, i)
			if err != nil {
				return err
			}
			out[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func invoke[T any](gen func(int) (T, error), index int) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value = zero
			err = fmt.Errorf("%w: index %d: panic: %v", ErrGenerator, index, r)
		}
	}()
	value, err = gen(index)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: index %d: %w", ErrGenerator, index, err)
	}
	return value, nil
}
