// Package kernel lowers a compiled formula into the per-pixel procedure
// that colours the plane.
//
// A Kernel pairs an expression with an iteration bound and the escape and
// convergence thresholds. It carries three interchangeable forms of the
// same update rule:
//
//   - a stack bytecode Program, run on the CPU by an Evaluator
//   - a GLSL 4.30 compute shader (double precision arithmetic)
//   - a WGSL compute shader, compiled to SPIR-V with naga
//
// Generate is pure. It never looks at the viewport; the pixel to plane
// mapping is supplied by whoever runs the kernel.
//
// # Per-pixel procedure
//
// For a pixel at plane coordinate w the starting pair comes from
// dynamo.Params.Start. In escape and julia modes z is updated up to niter
// times and the pixel trips at the first step k where |z|² > R². In
// converge mode it trips when |z_k - z_{k-1}|² < tol². The trip step maps
// to Ramp(k/niter); points that never trip get Interior. Domain mode
// colours f(w) directly with DomainColor.
package kernel
