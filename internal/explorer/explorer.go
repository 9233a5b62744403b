package explorer

import (
	"context"
	"errors"

	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/config"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/probe"
	"github.com/san-kum/zplane/internal/render"
)

// Explorer owns the view state of one window. Its methods must be called
// from a single goroutine, the one running the frame loop.
type Explorer struct {
	vp     plane.Viewport
	home   plane.Viewport
	input  *plane.Interaction
	params dynamo.Params
	niter  int
	opts   kernel.Options

	source string
	expr   expr.Expr

	async    bool
	backend  compute.Backend
	overlays []render.Overlay

	pipeline   *render.Pipeline
	recompiler *render.Recompiler
}

// New returns an explorer with the default view, no formula and a frame
// loop presenting to surface. Until SetFunction succeeds Draw presents the
// placeholder frame.
func New(surface render.Surface, opts ...Option) *Explorer {
	x := &Explorer{
		home:   plane.DefaultViewport(),
		params: dynamo.DefaultParams(),
		niter:  dynamo.DefaultNiter,
		opts:   kernel.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.backend == nil {
		x.backend = compute.NewCPUBackend()
	}

	if err := x.home.SetResolution(x.home.Width, x.home.Height); err != nil {
		dynamo.Logger().Warn("initial resolution corrected", "err", err)
	}
	if !(x.home.Scale > 0) {
		x.home.Scale = plane.DefaultScale
	}
	x.vp = x.home
	x.input = plane.NewInteraction(&x.vp)
	x.niter = clampNiter(x.niter)

	x.pipeline = render.NewPipeline(x.backend, surface)
	x.pipeline.SetOverlays(x.overlays...)
	x.recompiler = render.NewRecompiler(x.pipeline.SetKernel, x.async)
	return x
}

func clampNiter(n int) int {
	n, err := dynamo.ClampNiter(n)
	if err != nil {
		dynamo.Logger().Warn("iteration bound corrected", "err", err)
	}
	return n
}

// SetResolution resizes the view. Non-positive sizes are clamped to one
// pixel; centre and scale are kept.
func (x *Explorer) SetResolution(width, height int) {
	if err := x.vp.SetResolution(width, height); err != nil {
		dynamo.Logger().Warn("resolution corrected", "err", err)
	}
}

// FitResolution resizes like SetResolution but keeps the visible plane
// width, for front ends whose picture follows the window. The home view
// is rescaled to match so Reset shows the same region.
func (x *Explorer) FitResolution(width, height int) {
	before := float64(x.vp.Width)
	x.SetResolution(width, height)
	k := before / float64(x.vp.Width)
	x.vp.Scale *= k
	x.home.Scale *= k
	x.home.Width, x.home.Height = x.vp.Width, x.vp.Height
}

// SetFunction compiles source and schedules a new kernel. On a parse error
// nothing changes and the previous formula keeps rendering. A formula that
// parses to the current expression does not regenerate.
func (x *Explorer) SetFunction(source string) error {
	e, err := expr.Compile(source)
	if err != nil {
		dynamo.Logger().Debug("formula rejected", "source", source, "err", err)
		return err
	}
	x.source = source
	x.expr = e
	x.regenerate()
	return nil
}

// SetNiter changes the iteration bound and regenerates the kernel. Bounds
// below one are raised to one.
func (x *Explorer) SetNiter(n int) {
	n = clampNiter(n)
	if n == x.niter {
		return
	}
	x.niter = n
	x.regenerate()
}

// SetKernelOptions changes the escape radius and convergence tolerance.
func (x *Explorer) SetKernelOptions(opts kernel.Options) {
	if opts == x.opts {
		return
	}
	x.opts = opts
	x.regenerate()
}

// regenerate submits a new kernel unless the live one already matches and
// no newer request is in flight.
func (x *Explorer) regenerate() {
	if x.expr == nil {
		return
	}
	if !x.recompiler.Pending() && x.Kernel().Matches(x.expr, x.niter, x.opts) {
		dynamo.Logger().Debug("kernel unchanged, not regenerating")
		return
	}
	x.recompiler.Submit(x.expr, x.niter, x.opts)
}

// SetMode switches how pixels are seeded and shaded. It never regenerates.
func (x *Explorer) SetMode(m dynamo.Mode) {
	x.params.Mode = m
}

// SetParameterC sets the constant used in Julia mode.
func (x *Explorer) SetParameterC(c complex128) {
	x.params.JuliaC = c
}

// SetSubsample sets the per-axis samples per pixel.
func (x *Explorer) SetSubsample(n int) {
	x.params.Subsample = n
	if got := x.params.Samples(); got != n {
		dynamo.Logger().Warn("subsample corrected", "got", n, "using", got)
		x.params.Subsample = got
	}
}

// Zoom rescales about the last known cursor. A factor above one zooms in;
// factors that are not positive are ignored.
func (x *Explorer) Zoom(factor float64) {
	if err := x.input.Zoom(factor); err != nil {
		dynamo.Logger().Debug("zoom ignored", "err", err)
	}
}

// Pan moves the view by a pointer displacement in pixels.
func (x *Explorer) Pan(dx, dy float64) {
	x.vp.Pan(dx, dy)
}

// SetCenter moves the view so c is at the centre of the screen.
func (x *Explorer) SetCenter(c complex128) {
	x.vp.Center = c
}

// Reset returns to the initial centre and scale, keeping the resolution,
// and drops any drag in progress.
func (x *Explorer) Reset() {
	x.input.Cancel()
	x.vp.Center = x.home.Center
	x.vp.Scale = x.home.Scale
}

func (x *Explorer) OnPointerDown(px, py float64) { x.input.PointerDown(px, py) }
func (x *Explorer) OnPointerMove(px, py float64) { x.input.PointerMove(px, py) }
func (x *Explorer) OnPointerUp(px, py float64)   { x.input.PointerUp(px, py) }

// DisplayValueAt formats the plane coordinate under a screen position.
func (x *Explorer) DisplayValueAt(px, py float64) string {
	return probe.ValueAt(x.vp, px, py)
}

// DisplayImageAt formats one step of the update rule at a screen position,
// or probe.NotAvailable before the first kernel.
func (x *Explorer) DisplayImageAt(px, py float64) string {
	return probe.ImageAt(x.Kernel(), x.vp, x.params, px, py)
}

// Inspect iterates the point under a screen position.
func (x *Explorer) Inspect(px, py float64) *probe.Report {
	return probe.Inspect(x.Kernel(), x.vp, x.params, px, py)
}

// Draw renders and presents one frame. Unchanged inputs re-present the
// previous frame. If a GPU backend fails the explorer falls back to the
// CPU backend and retries once.
func (x *Explorer) Draw(ctx context.Context) error {
	err := x.pipeline.Draw(ctx, x.vp, x.params)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, isCPU := x.backend.(*compute.CPUBackend); isCPU {
		return err
	}
	dynamo.Logger().Warn("backend failed, falling back to cpu", "backend", x.backend.Name(), "err", err)
	x.backend = compute.NewCPUBackend()
	x.pipeline.SetBackend(x.backend)
	return x.pipeline.Draw(ctx, x.vp, x.params)
}

// Flush waits for pending kernel generation.
func (x *Explorer) Flush() {
	x.recompiler.Flush()
}

// Close waits for pending work and releases the backend.
func (x *Explorer) Close() {
	x.Flush()
	x.pipeline.Close()
}

// Viewport returns a copy of the current view.
func (x *Explorer) Viewport() plane.Viewport { return x.vp }

// Params returns the per-frame parameters.
func (x *Explorer) Params() dynamo.Params { return x.params }

// Niter returns the iteration bound.
func (x *Explorer) Niter() int { return x.niter }

// Formula returns the source of the last accepted formula.
func (x *Explorer) Formula() string { return x.source }

// Config captures the current view as a configuration that reproduces it.
func (x *Explorer) Config() *config.Config {
	cfg := config.DefaultConfig()
	if x.source != "" {
		cfg.Formula = x.source
	}
	cfg.Niter = x.niter
	cfg.Width, cfg.Height = x.vp.Width, x.vp.Height
	cfg.CenterRe, cfg.CenterIm = real(x.vp.Center), imag(x.vp.Center)
	cfg.Scale = x.vp.Scale
	cfg.Mode = x.params.Mode.String()
	cfg.JuliaRe, cfg.JuliaIm = real(x.params.JuliaC), imag(x.params.JuliaC)
	cfg.EscapeRadius = x.opts.EscapeRadius
	cfg.Tolerance = x.opts.Tolerance
	cfg.Subsample = x.params.Samples()
	return cfg
}

// Expr returns the last accepted expression, or nil.
func (x *Explorer) Expr() expr.Expr { return x.expr }

// KernelOptions returns the thresholds used for new kernels.
func (x *Explorer) KernelOptions() kernel.Options { return x.opts }

// Kernel returns the kernel currently used for drawing, or nil.
func (x *Explorer) Kernel() *kernel.Kernel { return x.pipeline.Kernel() }

// Backend returns the active compute backend.
func (x *Explorer) Backend() compute.Backend { return x.backend }

// DragState reports whether a drag is in progress.
func (x *Explorer) DragState() plane.State { return x.input.State() }

// Cursor returns the last known pointer position.
func (x *Explorer) Cursor() (px, py float64, ok bool) { return x.input.Cursor() }

// Pipeline exposes the frame loop for statistics.
func (x *Explorer) Pipeline() *render.Pipeline { return x.pipeline }
