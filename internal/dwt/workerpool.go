package dwt

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// WorkerPool fans a resolution level's vertical or horizontal pass out
// across contiguous column or row stripes and joins on a barrier before
// the next pass begins (spec.md §4.8, §5). It carries no state across
// calls — each Run builds and tears down its own errgroup.Group.
type WorkerPool struct {
	// DisableMT forces every Run onto the calling goroutine, producing
	// results identical to the parallel path (spec.md §5, "caller-
	// controllable disable_mt flag").
	DisableMT bool

	// MaxWorkers caps concurrent stripes. Zero means "unset"; Run treats
	// it as 1.
	MaxWorkers int
}

// NewWorkerPool builds a pool capped at the host's available logical
// cores (spec.md §5: "min(available logical cores, pool capacity)").
func NewWorkerPool() *WorkerPool {
	return &WorkerPool{MaxWorkers: runtime.GOMAXPROCS(0)}
}

// StripeJob is one contiguous row or column range a single worker owns
// for the duration of one pass. Carrying it as a value (plus a BatchID
// for log correlation across the stripes of one Run) rather than closing
// over shared mutable state is deliberate (spec.md §9, "Worker jobs as
// value objects").
type StripeJob struct {
	BatchID uuid.UUID
	Lo, Hi  int
}

// Run partitions [0,n) into contiguous stripes of at least minStripe
// items and calls fn once per stripe. Stripes run concurrently unless
// DisableMT is set or n is below the parallel threshold (2*minStripe),
// in which case fn runs once inline over the whole range — identical
// results either way, since every stripe only ever touches its own
// disjoint [Lo,Hi) of the tile buffer or sparse array (spec.md §5,
// "Shared resources"). Run joins all stripes before returning, even when
// one fails, so no partial-output tile buffer is left half-transformed
// without the caller knowing (spec.md §7).
func (p *WorkerPool) Run(ctx context.Context, n, minStripe int, fn func(StripeJob) error) error {
	if n <= 0 {
		return nil
	}

	if p.DisableMT || n < 2*minStripe {
		return fn(StripeJob{BatchID: uuid.New(), Lo: 0, Hi: n})
	}

	workers := p.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	stripes := stripeCount(n, minStripe, workers)
	batch := uuid.New()

	g, gctx := errgroup.WithContext(ctx)
	lo := 0
	for s := 0; s < stripes; s++ {
		hi := n * (s + 1) / stripes
		if s == stripes-1 {
			hi = n
		}
		job := StripeJob{BatchID: batch, Lo: lo, Hi: hi}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(job)
		})
		lo = hi
	}
	return g.Wait()
}

// stripeCount picks how many stripes to split n items into: enough to
// use every worker, but never so many a stripe would drop below
// minStripe items.
func stripeCount(n, minStripe, workers int) int {
	maxStripes := n / minStripe
	if maxStripes < 1 {
		maxStripes = 1
	}
	if workers < maxStripes {
		return workers
	}
	return maxStripes
}

// DecodeParallel is Decode's WorkerPool-driven counterpart: the vertical
// pass is striped across columns (minStripe=8, spec.md §4.8's "stripes of
// >=8 rows/columns") and the horizontal pass across rows (minStripe=1,
// "rh > 1" threshold), each dispatched through pool and joined before the
// next pass or resolution level begins.
func DecodeParallel[T any](ctx context.Context, pool *WorkerPool, k Kernels[T], buf *TileBuffer[T], tile Rect, numResolutions int) error {
	for r := 1; r < numResolutions; r++ {
		res := ResolutionRect(tile, numResolutions, r)
		if res.Empty() {
			continue
		}
		rw, rh := res.Width(), res.Height()
		casCol := Parity(res.Y0)
		casRow := Parity(res.X0)
		w := buf.window(res)

		if rh > 1 {
			err := pool.Run(ctx, rw, 8, func(job StripeJob) error {
				verticalRange(k, w, job.Lo, job.Hi, rh, casCol, false)
				return nil
			})
			if err != nil {
				return err
			}
		}
		if rw > 1 {
			err := pool.Run(ctx, rh, 1, func(job StripeJob) error {
				horizontalRange(k, w, rw, job.Lo, job.Hi, casRow, false)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// EncodeParallel is Encode's WorkerPool-driven counterpart: horizontal
// then vertical at each level, matching Encode's pass order (spec.md §2) so
// the parallel path stays an exact inverse of DecodeParallel.
func EncodeParallel[T any](ctx context.Context, pool *WorkerPool, k Kernels[T], buf *TileBuffer[T], tile Rect, numResolutions int) error {
	for r := numResolutions - 1; r >= 1; r-- {
		res := ResolutionRect(tile, numResolutions, r)
		if res.Empty() {
			continue
		}
		rw, rh := res.Width(), res.Height()
		casCol := Parity(res.Y0)
		casRow := Parity(res.X0)
		w := buf.window(res)

		if rw > 1 {
			err := pool.Run(ctx, rh, 1, func(job StripeJob) error {
				horizontalRange(k, w, rw, job.Lo, job.Hi, casRow, true)
				return nil
			})
			if err != nil {
				return err
			}
		}
		if rh > 1 {
			err := pool.Run(ctx, rw, 8, func(job StripeJob) error {
				verticalRange(k, w, job.Lo, job.Hi, rh, casCol, true)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
