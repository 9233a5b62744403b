package expr

import (
	"math"
	"math/cmplx"
	"testing"
)

func near(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol*math.Max(1, cmplx.Abs(b))
}

func TestPowInt(t *testing.T) {
	z := complex(0.7, -1.3)
	tests := []struct {
		n    int
		want complex128
	}{
		{0, 1},
		{1, z},
		{2, z * z},
		{3, z * z * z},
		{-1, 1 / z},
		{-2, 1 / (z * z)},
	}
	for _, tt := range tests {
		if got := PowInt(z, tt.n); !near(got, tt.want, 1e-12) {
			t.Errorf("PowInt(%v, %d) = %v, want %v", z, tt.n, got, tt.want)
		}
	}
}

func TestPow_MatchesCmplx(t *testing.T) {
	a := complex(1.2, 0.4)
	for _, b := range []complex128{2, 5, -3, 0.5, complex(1, 1)} {
		if got, want := Pow(a, b), cmplx.Pow(a, b); !near(got, want, 1e-9) {
			t.Errorf("Pow(%v, %v) = %v, want %v", a, b, got, want)
		}
	}
}

func TestIntExponent(t *testing.T) {
	tests := []struct {
		b  complex128
		n  int
		ok bool
	}{
		{2, 2, true},
		{-4, -4, true},
		{2.5, 0, false},
		{complex(2, 1), 0, false},
		{MaxIntPow * 2, 0, false},
	}
	for _, tt := range tests {
		n, ok := IntExponent(tt.b)
		if ok != tt.ok || (ok && n != tt.n) {
			t.Errorf("IntExponent(%v) = %d,%v want %d,%v", tt.b, n, ok, tt.n, tt.ok)
		}
	}
}

func TestEval_Functions(t *testing.T) {
	z := complex(0.3, 0.8)
	tests := []struct {
		src  string
		want complex128
	}{
		{"sin(z)", cmplx.Sin(z)},
		{"exp(z)", cmplx.Exp(z)},
		{"log(z)", cmplx.Log(z)},
		{"sqrt(z)", cmplx.Sqrt(z)},
		{"abs(z)", complex(cmplx.Abs(z), 0)},
		{"conj(z)", cmplx.Conj(z)},
		{"re(z)", complex(real(z), 0)},
		{"im(z)", complex(imag(z), 0)},
		{"arg(z)", complex(cmplx.Phase(z), 0)},
		{"inv(z)", 1 / z},
	}
	for _, tt := range tests {
		if got := Eval(MustCompile(tt.src), z, 0); !near(got, tt.want, 1e-12) {
			t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestFunctions_Registry(t *testing.T) {
	names := Functions()
	if len(names) == 0 {
		t.Fatal("empty registry")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted or duplicated: %v", names)
		}
	}
	for _, want := range []string{"sin", "cos", "exp", "log", "sqrt", "abs", "conj"} {
		if _, ok := Lookup(want); !ok {
			t.Errorf("missing %s", want)
		}
	}
	ln, _ := Lookup("ln")
	log, _ := Lookup("log")
	if ln != log {
		t.Error("ln should alias log")
	}
}
