package render

import (
	"sync"
	"time"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
)

// Recompiler generates kernels in the background. Every request gets a
// generation number; a finished kernel is published only if no newer
// request was submitted in the meantime.
type Recompiler struct {
	publish func(*kernel.Kernel)
	async   bool

	mu     sync.Mutex
	latest uint64
	done   uint64
	wg     sync.WaitGroup
}

// NewRecompiler returns a recompiler that hands finished kernels to
// publish. When async is false, Submit generates inline.
func NewRecompiler(publish func(*kernel.Kernel), async bool) *Recompiler {
	return &Recompiler{publish: publish, async: async}
}

// Submit requests a kernel for e and returns the request's generation.
func (r *Recompiler) Submit(e expr.Expr, niter int, opts kernel.Options) uint64 {
	r.mu.Lock()
	r.latest++
	gen := r.latest
	r.mu.Unlock()

	if !r.async {
		r.finish(gen, e, niter, opts)
		return gen
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.finish(gen, e, niter, opts)
	}()
	return gen
}

func (r *Recompiler) finish(gen uint64, e expr.Expr, niter int, opts kernel.Options) {
	start := time.Now()
	k := kernel.Generate(e, niter, opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.latest {
		dynamo.Logger().Debug("stale kernel discarded", "generation", gen, "latest", r.latest)
		return
	}
	r.done = gen
	r.publish(k)
	dynamo.Logger().Debug("kernel published",
		"generation", gen,
		"formula", e.String(),
		"niter", k.Niter(),
		"instructions", k.Program().Len(),
		"elapsed", time.Since(start))
}

// Latest returns the generation of the most recent request.
func (r *Recompiler) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Pending reports whether the most recent request has not been published
// yet.
func (r *Recompiler) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done != r.latest
}

// Flush waits for every outstanding request to finish.
func (r *Recompiler) Flush() {
	r.wg.Wait()
}
