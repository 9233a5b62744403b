package compute

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

func mandelbrot(niter int) *kernel.Kernel {
	return kernel.Generate(expr.MustCompile("z^2+c"), niter, kernel.DefaultOptions())
}

func smallView() plane.Viewport {
	return plane.Viewport{Center: complex(-0.5, 0), Scale: 3.0 / 64, Width: 64, Height: 48}
}

func TestCPUBackend_Render(t *testing.T) {
	vp := smallView()
	k := mandelbrot(40)
	frame := gg.NewPixmap(vp.Width, vp.Height)

	if err := NewCPUBackend().Render(context.Background(), k, vp, dynamo.DefaultParams(), frame); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// every pixel matches the kernel evaluated at its plane coordinate
	for _, p := range [][2]int{{0, 0}, {32, 24}, {63, 47}, {10, 30}} {
		want := k.Color(vp.ScreenToPlane(float64(p[0]), float64(p[1])), dynamo.DefaultParams())
		got := frame.Data()[(p[1]*vp.Width+p[0])*4:][:4]
		if got[0] != want.R || got[1] != want.G || got[2] != want.B || got[3] != 255 {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}

	// the centre of the main cardioid is interior
	x, y := vp.PlaneToScreen(complex(-0.25, 0))
	i := (int(y)*vp.Width + int(x)) * 4
	if !bytes.Equal(frame.Data()[i:i+4], []byte{0, 0, 0, 255}) {
		t.Errorf("cardioid pixel %v should be interior", frame.Data()[i:i+4])
	}
}

func TestCPUBackend_Deterministic(t *testing.T) {
	vp := smallView()
	k := mandelbrot(60)
	p := dynamo.Params{Mode: dynamo.ModeEscape, Subsample: 2}

	a := gg.NewPixmap(vp.Width, vp.Height)
	b := gg.NewPixmap(vp.Width, vp.Height)
	backend := NewCPUBackend()
	if err := backend.Render(context.Background(), k, vp, p, a); err != nil {
		t.Fatal(err)
	}
	if err := backend.Render(context.Background(), k, vp, p, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("two renders of the same inputs differ")
	}
}

func TestCPUBackend_Errors(t *testing.T) {
	vp := smallView()
	backend := NewCPUBackend()

	if err := backend.Render(context.Background(), nil, vp, dynamo.DefaultParams(), gg.NewPixmap(64, 48)); !errors.Is(err, dynamo.ErrNoKernel) {
		t.Errorf("expected ErrNoKernel, got %v", err)
	}
	if err := backend.Render(context.Background(), mandelbrot(4), vp, dynamo.DefaultParams(), gg.NewPixmap(10, 10)); err == nil {
		t.Error("expected size mismatch error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := backend.Render(ctx, mandelbrot(4), vp, dynamo.DefaultParams(), gg.NewPixmap(64, 48)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type fakeBackend struct{ *CPUBackend }

func (fakeBackend) Name() string { return "fake" }

func TestByName(t *testing.T) {
	b, err := ByName("cpu", false)
	if err != nil || b.Name() != "cpu" {
		t.Fatalf("ByName(cpu) = %v, %v", b, err)
	}
	if _, err := ByName("quantum", true); err == nil {
		t.Error("expected error for unknown backend")
	}

	Register("fake", func() (Backend, error) { return fakeBackend{NewCPUBackend()}, nil })
	if _, err := ByName("fake", false); !errors.Is(err, dynamo.ErrBackendUnavailable) {
		t.Errorf("GPU backend without context: got %v", err)
	}
	if got := AutoSelectBackend(false).Name(); got != "cpu" {
		t.Errorf("headless auto selection = %s, want cpu", got)
	}
	if got := AutoSelectBackend(true).Name(); got != "fake" {
		t.Errorf("auto selection with context = %s, want fake", got)
	}
}
