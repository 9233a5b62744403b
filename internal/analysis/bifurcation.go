package analysis

import "github.com/san-kum/zplane/internal/kernel"

// BifurcationPoint holds the attractor values seen for one parameter.
type BifurcationPoint struct {
	Param  complex128
	Values []float64
}

// BifurcationDiagram sweeps the constant c along the segment from..to and
// records the real parts of the iterates left after a transient. Orbits
// that escape contribute no values. Every orbit starts at z0 and runs for
// at most transient+record steps.
//
// For z^2+c on the real segment [-2, 0.25] this is the period-doubling
// cascade.
func BifurcationDiagram(k *kernel.Kernel, z0, from, to complex128, steps, transient, record int) []BifurcationPoint {
	if steps < 2 {
		steps = 2
	}
	ev := k.NewEvaluator()
	r2 := k.Options().EscapeRadius * k.Options().EscapeRadius

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		c := from + (to-from)*complex(t, 0)
		point := BifurcationPoint{Param: c}

		z := z0
		escaped := false
		for n := 0; n < transient+record; n++ {
			z = ev.Eval(z, c)
			if m := real(z)*real(z) + imag(z)*imag(z); !(m <= r2) {
				escaped = true
				break
			}
			if n >= transient {
				point.Values = append(point.Values, real(z))
			}
		}
		if escaped {
			point.Values = nil
		}
		results = append(results, point)
	}
	return results
}

// BifurcationSamples flattens a diagram into (parameter, value) samples
// against the real part of the parameter, ready for PortraitASCII.
func BifurcationSamples(points []BifurcationPoint) []complex128 {
	var out []complex128
	for _, p := range points {
		for _, v := range p.Values {
			out = append(out, complex(real(p.Param), v))
		}
	}
	return out
}
