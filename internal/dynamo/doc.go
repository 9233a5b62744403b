// Package dynamo provides the shared vocabulary for iterating complex maps.
//
// Every other package speaks in these terms:
//
//   - [Mode]: how a pixel's coordinate enters the iteration (escape, julia, converge, domain)
//   - [Params]: per-frame inputs that do not require regenerating a kernel
//   - [Sample]: the outcome of iterating a single point
//   - [ParallelRows]: row-parallel helper used by the CPU backend
//
// # Conventions
//
// In [ModeEscape] the pixel coordinate is c and the iterate starts at z0 = c.
// In [ModeJulia] the pixel coordinate is z0 and c is the fixed [Params.JuliaC].
// Escape is detected with squared magnitudes: |z|² > R², where R is the
// kernel's escape radius (default 2). A NaN or infinite iterate counts as escaped.
//
// # Logging
//
// The package holds the process-wide [slog.Logger] used by the engine. It is
// silent until [SetLogger] is called.
package dynamo
