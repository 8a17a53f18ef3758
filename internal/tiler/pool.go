package tiler

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs batches of tile jobs across a fixed number of workers.
//
// Scheduling is claim-based: each batch keeps a shared cursor and every
// worker repeatedly claims the next unprocessed tile. Tile costs vary
// wildly — a tile crossed by one bounding box finishes far sooner than
// one covered by hundreds of primitives — and claiming rebalances
// automatically: a worker stuck on a heavy tile simply stops claiming
// while the others drain the rest of the grid. Claims follow the grid's
// row-major tile order, so the tiles a worker processes back to back
// tend to touch adjacent rows of the target.
//
// Workers live only for the duration of a batch; between batches the
// pool holds no goroutines.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	closed  atomic.Bool
}

// NewPool creates a pool that runs batches on the given number of
// workers. If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// ExecuteAll runs every job in the batch and blocks until the last one
// has finished. This is the dispatcher's barrier: when it returns, all
// tiles have been rasterized. If the pool is closed, this is a no-op.
func (p *Pool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || p.closed.Load() {
		return
	}

	// No point spinning up more workers than there are tiles.
	n := min(p.workers, len(jobs))

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			for {
				i := cursor.Add(1) - 1
				if i >= int64(len(jobs)) {
					return
				}
				jobs[i]()
			}
		}()
	}
	wg.Wait()
}

// Close marks the pool as closed; subsequent batches are ignored.
// Workers only exist while a batch is running, so there is nothing else
// to tear down. Close is safe to call multiple times.
func (p *Pool) Close() { p.closed.Store(true) }

// Workers returns the worker count used for batches.
func (p *Pool) Workers() int { return p.workers }
