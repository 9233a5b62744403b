package compute

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

// Backend evaluates a kernel over every pixel of a viewport.
type Backend interface {
	Name() string
	Available() bool
	// Render writes one RGBA pixel per viewport pixel into dst, which must
	// match the viewport's resolution.
	Render(ctx context.Context, k *kernel.Kernel, vp plane.Viewport, p dynamo.Params, dst *gg.Pixmap) error
	Cleanup()
}

// Factory constructs a GPU backend. Factories run only when the caller
// owns a current graphics context.
type Factory func() (Backend, error)

var (
	registryMu sync.Mutex
	registry   = map[string]Factory{}
	gpuOrder   []string
)

// Register makes a GPU backend available to ByName and AutoSelectBackend.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; !dup {
		gpuOrder = append(gpuOrder, name)
	}
	registry[name] = f
}

// Names lists the backend names ByName accepts.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	return append([]string{"auto", "cpu"}, gpuOrder...)
}

// AutoSelectBackend returns the first registered GPU backend that
// initialises, or the CPU backend. Without a graphics context only the CPU
// backend is considered.
func AutoSelectBackend(hasContext bool) Backend {
	if hasContext {
		registryMu.Lock()
		names := append([]string(nil), gpuOrder...)
		factories := make([]Factory, len(names))
		for i, name := range names {
			factories[i] = registry[name]
		}
		registryMu.Unlock()
		for i, name := range names {
			b, err := factories[i]()
			if err == nil {
				dynamo.Logger().Info("compute backend selected", "backend", b.Name())
				return b
			}
			dynamo.Logger().Warn("compute backend unavailable", "backend", name, "error", err)
		}
	}
	return NewCPUBackend()
}

// ByName constructs a backend. GPU backends need hasContext.
func ByName(name string, hasContext bool) (Backend, error) {
	switch name = strings.ToLower(name); name {
	case "", "auto":
		return AutoSelectBackend(hasContext), nil
	case "cpu":
		return NewCPUBackend(), nil
	}

	registryMu.Lock()
	f, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("compute: unknown backend %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	if !hasContext {
		return nil, fmt.Errorf("%w: %s needs a graphics context", dynamo.ErrBackendUnavailable, name)
	}
	return f()
}

func checkFrame(vp plane.Viewport, dst *gg.Pixmap) error {
	if dst == nil || dst.Width() != vp.Width || dst.Height() != vp.Height {
		w, h := 0, 0
		if dst != nil {
			w, h = dst.Width(), dst.Height()
		}
		return fmt.Errorf("compute: frame is %dx%d but viewport is %dx%d", w, h, vp.Width, vp.Height)
	}
	return nil
}
