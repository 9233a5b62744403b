package explorer

import (
	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/render"
)

// Option configures an Explorer at construction.
type Option func(*Explorer)

// WithBackend selects the compute backend. The default is the CPU backend.
func WithBackend(b compute.Backend) Option {
	return func(x *Explorer) {
		if b != nil {
			x.backend = b
		}
	}
}

// WithViewport replaces the default view. It also becomes the view Reset
// returns to.
func WithViewport(vp plane.Viewport) Option {
	return func(x *Explorer) {
		x.home = vp
	}
}

// WithNiter sets the initial iteration bound.
func WithNiter(n int) Option {
	return func(x *Explorer) {
		x.niter = n
	}
}

// WithKernelOptions sets the escape radius and convergence tolerance.
func WithKernelOptions(opts kernel.Options) Option {
	return func(x *Explorer) {
		x.opts = opts
	}
}

// WithParams sets the initial mode, Julia parameter and subsampling.
func WithParams(p dynamo.Params) Option {
	return func(x *Explorer) {
		x.params = p
	}
}

// WithAsyncCompile moves kernel generation off the calling goroutine.
// Draw keeps using the previous kernel until the new one is published.
func WithAsyncCompile(async bool) Option {
	return func(x *Explorer) {
		x.async = async
	}
}

// WithOverlays draws the given overlays on every presented frame.
func WithOverlays(overlays ...render.Overlay) Option {
	return func(x *Explorer) {
		x.overlays = overlays
	}
}
