package analysis

import (
	"math/cmplx"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
)

// Trace is the orbit of a single starting point.
type Trace struct {
	Start  complex128
	Orbit  []complex128
	Sample dynamo.Sample
}

func NewTrace(k *kernel.Kernel, w complex128, p dynamo.Params) *Trace {
	return &Trace{
		Start:  w,
		Orbit:  k.Orbit(w, p),
		Sample: k.Sample(w, p),
	}
}

// Moduli returns |z| for every iterate.
func (t *Trace) Moduli() []float64 {
	return Moduli(t.Orbit)
}

func Moduli(orbit []complex128) []float64 {
	out := make([]float64, len(orbit))
	for i, z := range orbit {
		out[i] = cmplx.Abs(z)
	}
	return out
}

// Finite drops the trailing iterates that overflowed or became NaN.
func Finite(orbit []complex128) []complex128 {
	for i, z := range orbit {
		if cmplx.IsInf(z) || cmplx.IsNaN(z) {
			return orbit[:i]
		}
	}
	return orbit
}
