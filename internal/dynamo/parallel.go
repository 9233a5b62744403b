package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minParallelRows is the height below which splitting work costs more than it saves.
const minParallelRows = 8

// ParallelRows calls fn once for every row in [0, rows), spreading bands of
// rows across at most workers goroutines (GOMAXPROCS when workers <= 0).
// Rows never share state, so fn needs no locking as long as it only writes
// its own row. Cancellation is checked between rows.
func ParallelRows(ctx context.Context, rows, workers int, fn func(y int)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if rows < minParallelRows || workers <= 1 {
		for y := 0; y < rows; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(y)
		}
		return nil
	}

	bands := workers * 4
	if bands > rows {
		bands = rows
	}
	bandSize := (rows + bands - 1) / bands

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < rows; start += bandSize {
		end := min(start+bandSize, rows)
		g.Go(func() error {
			for y := start; y < end; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(y)
			}
			return nil
		})
	}
	return g.Wait()
}
