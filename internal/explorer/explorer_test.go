package explorer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
	"github.com/san-kum/zplane/internal/probe"
	"github.com/san-kum/zplane/internal/render"
)

func smallView() plane.Viewport {
	return plane.Viewport{Center: complex(-0.5, 0), Scale: 3.0 / 64, Width: 64, Height: 48}
}

func newTestExplorer(t *testing.T, opts ...Option) (*Explorer, *render.MemorySurface) {
	t.Helper()
	surface := render.NewMemorySurface()
	x := New(surface, append([]Option{WithViewport(smallView())}, opts...)...)
	t.Cleanup(x.Close)
	return x, surface
}

func TestNew_Defaults(t *testing.T) {
	x := New(nil)
	defer x.Close()

	if x.Viewport() != plane.DefaultViewport() {
		t.Errorf("viewport = %+v", x.Viewport())
	}
	if x.Niter() != dynamo.DefaultNiter {
		t.Errorf("niter = %d", x.Niter())
	}
	if x.Kernel() != nil || x.Expr() != nil {
		t.Error("new explorer should have no kernel")
	}
	if x.Backend().Name() != "cpu" {
		t.Errorf("backend = %s", x.Backend().Name())
	}
}

func TestDraw_PlaceholderBeforeFormula(t *testing.T) {
	x, surface := newTestExplorer(t)

	if err := x.Draw(context.Background()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	px := surface.Pixels()
	if len(px) != 64*48*4 {
		t.Fatalf("got %d bytes", len(px))
	}
	if px[0] != 10 || px[3] != 255 {
		t.Errorf("first pixel = %v, want placeholder", px[:4])
	}
}

func TestSetFunction_ParseErrors(t *testing.T) {
	tests := []struct {
		source string
		want   error
	}{
		{"z^2+c)", expr.ErrUnbalancedParens},
		{"", expr.ErrEmptyInput},
		{"foo(z)", expr.ErrUnknownIdentifier},
		{"z^2+c z", expr.ErrTrailingInput},
		{"z + * c", expr.ErrUnexpectedToken},
	}

	x, _ := newTestExplorer(t)
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatalf("SetFunction: %v", err)
	}
	good := x.Kernel()
	if good == nil {
		t.Fatal("no kernel after valid formula")
	}

	for _, tt := range tests {
		err := x.SetFunction(tt.source)
		if !errors.Is(err, tt.want) {
			t.Errorf("SetFunction(%q) = %v, want %v", tt.source, err, tt.want)
		}
		if x.Kernel() != good {
			t.Errorf("SetFunction(%q) replaced the kernel", tt.source)
		}
		if x.Formula() != "z^2+c" {
			t.Errorf("formula = %q after failed SetFunction", x.Formula())
		}
	}

	if err := x.Draw(context.Background()); err != nil {
		t.Errorf("Draw after failed SetFunction: %v", err)
	}
}

func TestSetFunction_UnchangedSkipsRegeneration(t *testing.T) {
	x, _ := newTestExplorer(t)
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}
	first := x.Kernel()

	if err := x.SetFunction("  z ^ 2 + c "); err != nil {
		t.Fatal(err)
	}
	if x.Kernel() != first {
		t.Error("equivalent formula regenerated the kernel")
	}
	if x.Formula() != "  z ^ 2 + c " {
		t.Errorf("formula = %q", x.Formula())
	}

	if err := x.SetFunction("z^3+c"); err != nil {
		t.Fatal(err)
	}
	if x.Kernel() == first {
		t.Error("new formula did not regenerate")
	}
}

func TestSetKernelOptions_DefaultsSkipRegeneration(t *testing.T) {
	x, _ := newTestExplorer(t)
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}
	first := x.Kernel()

	// zero thresholds normalise to the defaults the live kernel already uses
	x.SetKernelOptions(kernel.Options{})
	if x.Kernel() != first {
		t.Error("equivalent options regenerated the kernel")
	}

	x.SetKernelOptions(kernel.Options{EscapeRadius: 4})
	if x.Kernel() == first {
		t.Error("new escape radius did not regenerate")
	}
}

func TestSetNiter_RoundTripRegenerates(t *testing.T) {
	x, _ := newTestExplorer(t)
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}
	x.SetNiter(50)
	x.SetNiter(dynamo.DefaultNiter)
	if got := x.Kernel().Niter(); got != dynamo.DefaultNiter {
		t.Errorf("kernel niter = %d, want %d", got, dynamo.DefaultNiter)
	}
}

func TestSetNiter(t *testing.T) {
	x, _ := newTestExplorer(t)

	x.SetNiter(0)
	if x.Niter() != 1 {
		t.Errorf("niter = %d, want 1", x.Niter())
	}
	if x.Kernel() != nil {
		t.Error("SetNiter without a formula should not produce a kernel")
	}

	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}
	x.SetNiter(-5)
	if got := x.Kernel().Niter(); got != 1 {
		t.Errorf("kernel niter = %d, want 1", got)
	}
	x.SetNiter(100)
	if got := x.Kernel().Niter(); got != 100 {
		t.Errorf("kernel niter = %d, want 100", got)
	}
}

func TestDraw_Idempotent(t *testing.T) {
	x, surface := newTestExplorer(t)
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := x.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	first := surface.Pixels()
	if err := x.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, surface.Pixels()) {
		t.Error("consecutive draws differ")
	}
	if rendered, reused := x.Pipeline().Counts(); rendered != 1 || reused != 1 {
		t.Errorf("counts = %d rendered, %d reused", rendered, reused)
	}
}

func TestSetResolution(t *testing.T) {
	x, surface := newTestExplorer(t)
	center, scale := x.Viewport().Center, x.Viewport().Scale

	x.SetResolution(800, 600)
	x.SetResolution(1, 1)
	vp := x.Viewport()
	if vp.Width != 1 || vp.Height != 1 {
		t.Errorf("size = %dx%d, want 1x1", vp.Width, vp.Height)
	}

	x.SetResolution(0, -3)
	vp = x.Viewport()
	if vp.Width != 1 || vp.Height != 1 {
		t.Errorf("size = %dx%d after invalid resize", vp.Width, vp.Height)
	}
	if vp.Center != center || vp.Scale != scale {
		t.Error("resize changed centre or scale")
	}

	if err := x.Draw(context.Background()); err != nil {
		t.Fatal(err)
	}
	if w, h := surface.Size(); w != 1 || h != 1 {
		t.Errorf("presented %dx%d", w, h)
	}
}

func TestFitResolution(t *testing.T) {
	x, _ := newTestExplorer(t)
	span := x.Viewport().Scale * float64(x.Viewport().Width)

	x.FitResolution(128, 20)
	vp := x.Viewport()
	if vp.Width != 128 || vp.Height != 20 {
		t.Fatalf("size = %dx%d", vp.Width, vp.Height)
	}
	if got := vp.Scale * 128; got < span-1e-12 || got > span+1e-12 {
		t.Errorf("visible width = %v, want %v", got, span)
	}

	x.Zoom(3)
	x.Reset()
	if got := x.Viewport().Scale; got != vp.Scale {
		t.Errorf("reset scale = %v, want %v", got, vp.Scale)
	}
}

func TestZoomAndDrag(t *testing.T) {
	x, _ := newTestExplorer(t)

	x.OnPointerMove(10, 12)
	before := x.Viewport().ScreenToPlane(10, 12)
	x.Zoom(2)
	after := x.Viewport().ScreenToPlane(10, 12)
	if d := before - after; real(d)*real(d)+imag(d)*imag(d) > 1e-24 {
		t.Errorf("anchor moved: %v -> %v", before, after)
	}

	vp := x.Viewport()
	x.Zoom(0)
	x.Zoom(-1)
	if x.Viewport() != vp {
		t.Error("invalid zoom changed the view")
	}

	center := x.Viewport().Center
	x.OnPointerDown(20, 20)
	if x.DragState() != plane.Dragging {
		t.Fatal("not dragging after pointer down")
	}
	x.OnPointerMove(40, 5)
	x.OnPointerMove(20, 20)
	x.OnPointerUp(20, 20)
	if x.Viewport().Center != center {
		t.Errorf("centre = %v, want %v", x.Viewport().Center, center)
	}
	if x.DragState() != plane.Idle {
		t.Error("still dragging after pointer up")
	}

	x.OnPointerUp(3, 3)
	if x.Viewport().Center != center {
		t.Error("spurious pointer up moved the view")
	}
}

func TestIdlePointerUpKeepsZoomAnchor(t *testing.T) {
	a := New(render.NewMemorySurface())
	b := New(render.NewMemorySurface())
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	a.OnPointerMove(100, 100)
	b.OnPointerMove(100, 100)
	b.OnPointerUp(700, 500)
	a.Zoom(4)
	b.Zoom(4)

	if a.Viewport().Center != b.Viewport().Center {
		t.Errorf("centre after idle pointer up = %v, want %v", b.Viewport().Center, a.Viewport().Center)
	}
	if x, y, _ := b.Cursor(); x != 100 || y != 100 {
		t.Errorf("cursor = (%v, %v), want (100, 100)", x, y)
	}
}

func TestReset(t *testing.T) {
	x, _ := newTestExplorer(t)
	x.SetResolution(32, 32)
	x.Zoom(4)
	x.OnPointerDown(0, 0)
	x.OnPointerMove(5, 5)

	x.Reset()
	vp := x.Viewport()
	if vp.Center != smallView().Center || vp.Scale != smallView().Scale {
		t.Errorf("view = %+v", vp)
	}
	if vp.Width != 32 || vp.Height != 32 {
		t.Errorf("reset changed the resolution to %dx%d", vp.Width, vp.Height)
	}
	if x.DragState() != plane.Idle {
		t.Error("reset kept the drag")
	}
}

func TestDisplayValueAt(t *testing.T) {
	x, _ := newTestExplorer(t)

	want := probe.FormatComplex(x.Viewport().ScreenToPlane(5, 7))
	if got := x.DisplayValueAt(5, 7); got != want {
		t.Errorf("DisplayValueAt = %q, want %q", got, want)
	}
	if got := x.DisplayImageAt(5, 7); got != probe.NotAvailable {
		t.Errorf("DisplayImageAt without formula = %q", got)
	}
	if x.Inspect(5, 7) != nil {
		t.Error("Inspect without formula should be nil")
	}

	if err := x.SetFunction("z^2"); err != nil {
		t.Fatal(err)
	}
	w := x.Viewport().ScreenToPlane(5, 7)
	if got := x.DisplayImageAt(5, 7); got != probe.FormatComplex(w*w) {
		t.Errorf("DisplayImageAt = %q", got)
	}
}

func TestModesChangeFrame(t *testing.T) {
	x, surface := newTestExplorer(t)
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := x.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	escape := surface.Pixels()

	x.SetMode(dynamo.ModeJulia)
	x.SetParameterC(complex(-0.8, 0.156))
	if err := x.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(escape, surface.Pixels()) {
		t.Error("julia frame equals escape frame")
	}

	x.SetSubsample(99)
	if got := x.Params().Subsample; got != dynamo.MaxSubsample {
		t.Errorf("subsample = %d", got)
	}
}

func TestAsyncCompile(t *testing.T) {
	x, _ := newTestExplorer(t, WithAsyncCompile(true), WithNiter(20))

	for _, src := range []string{"z^2+c", "z^3+c", "sin(z)*c"} {
		if err := x.SetFunction(src); err != nil {
			t.Fatal(err)
		}
	}
	x.Flush()

	k := x.Kernel()
	if k == nil {
		t.Fatal("no kernel after flush")
	}
	if !k.Matches(expr.MustCompile("sin(z)*c"), 20, kernel.DefaultOptions()) {
		t.Errorf("kernel is for %s, want the last formula", k.Expr())
	}
}

type brokenBackend struct{ released bool }

func (b *brokenBackend) Name() string    { return "broken" }
func (b *brokenBackend) Available() bool { return true }
func (b *brokenBackend) Cleanup()        { b.released = true }

func (b *brokenBackend) Render(context.Context, *kernel.Kernel, plane.Viewport, dynamo.Params, *gg.Pixmap) error {
	return dynamo.ErrBackendUnavailable
}

func TestDraw_FallsBackToCPU(t *testing.T) {
	broken := &brokenBackend{}
	x, surface := newTestExplorer(t, WithBackend(broken))
	if err := x.SetFunction("z^2+c"); err != nil {
		t.Fatal(err)
	}

	if err := x.Draw(context.Background()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if x.Backend().Name() != "cpu" {
		t.Errorf("backend = %s", x.Backend().Name())
	}
	if !broken.released {
		t.Error("failed backend was not cleaned up")
	}
	if surface.Presents() != 1 {
		t.Errorf("presents = %d", surface.Presents())
	}
}

var _ compute.Backend = (*brokenBackend)(nil)

func TestConfigSnapshot(t *testing.T) {
	x, _ := newTestExplorer(t)
	if err := x.SetFunction("z^3 + c"); err != nil {
		t.Fatal(err)
	}
	x.SetMode(dynamo.ModeJulia)
	x.SetParameterC(complex(-0.4, 0.6))
	x.OnPointerMove(7, 9)
	x.Zoom(2)

	cfg := x.Config()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("snapshot needed corrections: %v", err)
	}
	if cfg.Formula != "z^3 + c" || cfg.Mode != "julia" || cfg.JuliaIm != 0.6 {
		t.Errorf("snapshot = %+v", cfg)
	}
	params, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if params != x.Params() {
		t.Errorf("params = %+v, want %+v", params, x.Params())
	}
	if cfg.Viewport() != x.Viewport() {
		t.Errorf("viewport = %+v, want %+v", cfg.Viewport(), x.Viewport())
	}
}
