package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// periodWindow is the largest tail analysed. It is divisible by every cycle
// length up to six, plus eight, ten and twelve.
const periodWindow = 120

// PowerSpectrum returns |X[k]|^2 of the mean-removed series.
func PowerSpectrum(series []complex128) []float64 {
	if len(series) == 0 {
		return nil
	}
	var mean complex128
	for _, z := range series {
		mean += z
	}
	mean /= complex(float64(len(series)), 0)

	centred := make([]complex128, len(series))
	for i, z := range series {
		centred[i] = z - mean
	}
	spectrum := fft.FFT(centred)
	ps := make([]float64, len(spectrum))
	for i, x := range spectrum {
		a := cmplx.Abs(x)
		ps[i] = a * a
	}
	return ps
}

// DominantPeriod estimates the cycle length of an orbit from the spectrum
// of its tail. A constant tail has period one. ok is false when the orbit
// is too short, not finite, or shows no cycle.
func DominantPeriod(orbit []complex128) (period int, ok bool) {
	finite := Finite(orbit)
	if len(finite) != len(orbit) || len(orbit) < 8 {
		return 0, false
	}
	tail := orbit[len(orbit)/2:]
	if len(tail) > periodWindow {
		tail = tail[len(tail)-periodWindow:]
	}
	n := len(tail)

	ps := PowerSpectrum(tail)
	folded := make([]float64, n/2+1)
	total := 0.0
	for k := 1; k < n; k++ {
		folded[min(k, n-k)] += ps[k]
		total += ps[k]
	}

	scale := 0.0
	for _, z := range tail {
		if a := cmplx.Abs(z); a > scale {
			scale = a
		}
	}
	if total <= 1e-18*float64(n)*float64(n)*max(scale*scale, 1) {
		return 1, true
	}

	peak := 0.0
	for _, v := range folded {
		peak = max(peak, v)
	}
	// The fundamental is the lowest bin holding a large share of the peak.
	for k := 1; k < len(folded); k++ {
		if folded[k] >= 0.25*peak {
			p := int(float64(n)/float64(k) + 0.5)
			if p < 2 || p > n/2 {
				return 0, false
			}
			return p, true
		}
	}
	return 0, false
}
