package probe

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

func TestFormatComplex(t *testing.T) {
	tests := []struct {
		in   complex128
		want string
	}{
		{0, "0.000000 + 0.000000i"},
		{complex(1.5, -2), "1.500000 - 2.000000i"},
		{complex(-0.25, 0.125), "-0.250000 + 0.125000i"},
		{complex(math.Copysign(0, -1), math.Copysign(0, -1)), "0.000000 + 0.000000i"},
		{complex(1e-7, 3), "0.000000 + 3.000000i"},
		{complex(-1e-9, -1e-9), "0.000000 + 0.000000i"},
		{complex(-4e-7, 2), "0.000000 + 2.000000i"},
		{complex(-6e-7, -6e-7), "-0.000001 - 0.000001i"},
		{complex(3, -0.0000004), "3.000000 + 0.000000i"},
	}
	for _, tt := range tests {
		if got := FormatComplex(tt.in); got != tt.want {
			t.Errorf("FormatComplex(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValueAtIndependentOfKernel(t *testing.T) {
	vp := plane.DefaultViewport()

	if got := ValueAt(vp, 400, 300); got != "0.000000 + 0.000000i" {
		t.Errorf("centre = %q", got)
	}
	if got := ValueAt(vp, 0, 0); got != "-2.000000 + 1.500000i" {
		t.Errorf("top-left = %q", got)
	}
	if got := ImageAt(nil, vp, dynamo.DefaultParams(), 0, 0); got != NotAvailable {
		t.Errorf("ImageAt without kernel = %q", got)
	}
}

func TestImageAt(t *testing.T) {
	vp := plane.DefaultViewport()
	k := kernel.Generate(expr.MustCompile("z^2 + c"), 10, kernel.DefaultOptions())

	// (0, 0) maps to -2+1.5i; z0 = c so f = c^2 + c.
	w := complex(-2, 1.5)
	want := FormatComplex(w*w + w)
	if got := ImageAt(k, vp, dynamo.DefaultParams(), 0, 0); got != want {
		t.Errorf("ImageAt = %q, want %q", got, want)
	}

	p := dynamo.Params{Mode: dynamo.ModeJulia, JuliaC: 1i}
	want = FormatComplex(w*w + 1i)
	if got := ImageAt(k, vp, p, 0, 0); got != want {
		t.Errorf("julia ImageAt = %q, want %q", got, want)
	}
}

func TestInspect(t *testing.T) {
	vp := plane.DefaultViewport()
	k := kernel.Generate(expr.MustCompile("z^2 + c"), 20, kernel.DefaultOptions())

	if Inspect(nil, vp, dynamo.DefaultParams(), 0, 0) != nil {
		t.Fatal("Inspect without kernel should be nil")
	}

	r := Inspect(k, vp, dynamo.DefaultParams(), 400, 300)
	if r.Sample.Tripped {
		t.Fatal("origin should stay bounded")
	}
	if len(r.Orbit) != 20 {
		t.Errorf("orbit length = %d, want 20", len(r.Orbit))
	}
	if got := r.Classification(); got != "bounded for 20 steps" {
		t.Errorf("Classification = %q", got)
	}

	// Top-left corner escapes at the first step.
	r = Inspect(k, vp, dynamo.DefaultParams(), 0, 0)
	if !r.Sample.Tripped || r.Sample.Step != 1 {
		t.Fatalf("sample = %+v", r.Sample)
	}
	if !strings.HasPrefix(r.Classification(), "escapes at step 1") {
		t.Errorf("Classification = %q", r.Classification())
	}
	if !strings.Contains(r.String(), "point -2.000000 + 1.500000i") {
		t.Errorf("String = %q", r.String())
	}
}
