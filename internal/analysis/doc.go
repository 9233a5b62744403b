// Package analysis inspects single orbits of a kernel.
//
//   - [Trace]: the iterates of one point together with their moduli
//   - [LyapunovExponent]: separation rate of two nearby orbits
//   - [DominantPeriod]: cycle length of an orbit's tail from its spectrum
//   - [BifurcationDiagram]: attractor values while the constant sweeps a line
//   - [PlotOrbit] and [PortraitASCII]: terminal plots
//
// # Periodic orbits
//
// A bounded orbit that settles on a cycle shows up as a spectral peak:
//
//	tr := analysis.NewTrace(k, w, params)
//	if period, ok := analysis.DominantPeriod(tr.Orbit); ok {
//	    fmt.Println("cycle of length", period)
//	}
package analysis
