package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
)

// LyapunovExponent estimates the mean per-step log separation of two orbits
// started perturbation apart under the same constant. A positive value indicates chaos, a negative
// one an attracting cycle.
//
// The companion orbit is pulled back to the original distance after every
// step so the estimate stays in the linear regime. Iteration stops at the
// bound, or when either orbit trips or stops being finite.
func LyapunovExponent(k *kernel.Kernel, w complex128, p dynamo.Params, perturbation float64) float64 {
	if !(perturbation > 0) {
		perturbation = 1e-9
	}
	ev := k.NewEvaluator()

	z, c := p.Start(w)
	zp := z + complex(perturbation, 0)
	limit := k.Options().EscapeRadius

	sumLog := 0.0
	count := 0
	for step := 1; step <= k.Niter(); step++ {
		next := ev.Eval(z, c)
		nextp := ev.Eval(zp, c)
		if !finite(next) || !finite(nextp) {
			break
		}
		if p.Mode != dynamo.ModeConverge && (cmplx.Abs(next) > limit || cmplx.Abs(nextp) > limit) {
			break
		}

		sep := cmplx.Abs(nextp - next)
		if sep > 0 {
			sumLog += math.Log(sep / perturbation)
			count++
			nextp = next + (nextp-next)*complex(perturbation/sep, 0)
		}
		z, zp = next, nextp
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}

func finite(z complex128) bool {
	return !cmplx.IsInf(z) && !cmplx.IsNaN(z)
}
