package render

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/metrics"
	"github.com/san-kum/zplane/internal/plane"
)

// Placeholder is presented until the first kernel is published.
var Placeholder = gg.RGB(10.0/255, 10.0/255, 10.0/255)

// frameKey identifies the inputs a computed frame depends on.
type frameKey struct {
	kernel *kernel.Kernel
	vp     plane.Viewport
	params dynamo.Params
}

// Pipeline renders frames for a single frame loop. Draw must not be called
// concurrently with itself; SetKernel may be called from any goroutine.
type Pipeline struct {
	kernel atomic.Pointer[kernel.Kernel]

	mu       sync.Mutex
	backend  compute.Backend
	surface  Surface
	overlays []Overlay

	frame    *gg.Pixmap
	composed *gg.Pixmap
	last     frameKey
	valid    bool

	fps      *metrics.FrameRate
	coverage *metrics.Coverage
}

func NewPipeline(backend compute.Backend, surface Surface) *Pipeline {
	return &Pipeline{
		backend:  backend,
		surface:  surface,
		fps:      metrics.NewFrameRate(0.1),
		coverage: metrics.NewCoverage(),
	}
}

// SetKernel atomically replaces the active kernel. A nil kernel is ignored.
func (p *Pipeline) SetKernel(k *kernel.Kernel) {
	if k != nil {
		p.kernel.Store(k)
	}
}

// Kernel returns the active kernel, or nil before the first one.
func (p *Pipeline) Kernel() *kernel.Kernel {
	return p.kernel.Load()
}

// SetBackend swaps the compute backend and forces the next frame to be
// recomputed. The previous backend is cleaned up.
func (p *Pipeline) SetBackend(b compute.Backend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil && p.backend != b {
		p.backend.Cleanup()
	}
	p.backend = b
	p.valid = false
}

func (p *Pipeline) Backend() compute.Backend {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backend
}

// SetSurface changes where frames are presented.
func (p *Pipeline) SetSurface(s Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.surface = s
}

// SetOverlays replaces the overlays drawn on top of each frame.
func (p *Pipeline) SetOverlays(overlays ...Overlay) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overlays = overlays
}

// Invalidate forces the next Draw to recompute.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valid = false
}

// Draw produces one frame for vp and params and presents it. Identical
// inputs present identical pixels.
func (p *Pipeline) Draw(ctx context.Context, vp plane.Viewport, params dynamo.Params) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if vp.Width < 1 || vp.Height < 1 {
		return fmt.Errorf("render: %w: %dx%d", dynamo.ErrInvalidResolution, vp.Width, vp.Height)
	}
	if p.frame == nil || p.frame.Width() != vp.Width || p.frame.Height() != vp.Height {
		p.frame = gg.NewPixmap(vp.Width, vp.Height)
		p.composed = nil
		p.valid = false
	}

	key := frameKey{kernel: p.kernel.Load(), vp: vp, params: params}
	rendered := !p.valid || key != p.last
	if rendered {
		if err := p.compute(ctx, key); err != nil {
			p.valid = false
			return err
		}
		p.last = key
		p.valid = true
	}

	out, err := p.compose(vp)
	if err != nil {
		return err
	}
	p.fps.Observe(time.Now(), rendered)
	if p.surface == nil {
		return nil
	}
	return p.surface.Present(out)
}

func (p *Pipeline) compute(ctx context.Context, key frameKey) error {
	if key.kernel == nil {
		p.frame.Clear(Placeholder)
		return nil
	}
	if p.backend == nil {
		return dynamo.ErrBackendUnavailable
	}

	start := time.Now()
	if err := p.backend.Render(ctx, key.kernel, key.vp, key.params, p.frame); err != nil {
		return fmt.Errorf("render: %s backend: %w", p.backend.Name(), err)
	}
	p.coverage.Observe(p.frame)
	dynamo.Logger().Debug("frame computed",
		"backend", p.backend.Name(),
		"size", fmt.Sprintf("%dx%d", key.vp.Width, key.vp.Height),
		"elapsed", time.Since(start),
		"interior", p.coverage.Value())
	return nil
}

// compose applies overlays to a copy of the computed frame.
func (p *Pipeline) compose(vp plane.Viewport) (*gg.Pixmap, error) {
	if len(p.overlays) == 0 {
		return p.frame, nil
	}
	if p.composed == nil {
		p.composed = gg.NewPixmap(vp.Width, vp.Height)
	}
	copy(p.composed.Data(), p.frame.Data())
	for _, o := range p.overlays {
		if err := o(p.composed, vp); err != nil {
			return nil, fmt.Errorf("render: overlay: %w", err)
		}
	}
	return p.composed, nil
}

// Frame returns the last computed frame without overlays. It is nil before
// the first Draw and must not be modified.
func (p *Pipeline) Frame() *gg.Pixmap {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// FPS is the smoothed rate of Draw calls.
func (p *Pipeline) FPS() float64 { return p.fps.Value() }

// Counts reports how many frames were recomputed and how many reused.
func (p *Pipeline) Counts() (rendered, reused int) { return p.fps.Counts() }

// InteriorFraction is the share of interior pixels in the last computed frame.
func (p *Pipeline) InteriorFraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.coverage.Value()
}

// Summary is the one-line frame statistics shown by the front ends.
func (p *Pipeline) Summary() string {
	rendered, reused := p.Counts()
	return fmt.Sprintf("%.0f fps  %d rendered  %d reused  %.0f%% interior",
		p.FPS(), rendered, reused, 100*p.InteriorFraction())
}

// Close releases the backend.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		p.backend.Cleanup()
	}
}
