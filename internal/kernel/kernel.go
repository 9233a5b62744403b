package kernel

import (
	"image/color"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
)

// Options are the thresholds baked into a kernel.
type Options struct {
	EscapeRadius float64
	Tolerance    float64
}

func DefaultOptions() Options {
	return Options{
		EscapeRadius: dynamo.DefaultEscapeRadius,
		Tolerance:    dynamo.DefaultTolerance,
	}
}

// normalized replaces non-positive or NaN thresholds with the defaults.
func (o Options) normalized() Options {
	if !(o.EscapeRadius > 0) {
		o.EscapeRadius = dynamo.DefaultEscapeRadius
	}
	if !(o.Tolerance > 0) {
		o.Tolerance = dynamo.DefaultTolerance
	}
	return o
}

// Kernel is the executable form of a formula plus its iteration bound. It is
// immutable once generated and safe for concurrent use; per-goroutine state
// lives in an Evaluator.
type Kernel struct {
	expr  expr.Expr
	niter int
	opts  Options
	prog  *Program
	r2    float64
	tol2  float64
}

// Generate lowers e into a kernel bounded by niter steps. A bound below one
// is raised to one. Generate returns nil when e is nil.
func Generate(e expr.Expr, niter int, opts Options) *Kernel {
	if e == nil {
		return nil
	}
	niter, _ = dynamo.ClampNiter(niter)
	opts = opts.normalized()
	return &Kernel{
		expr:  e,
		niter: niter,
		opts:  opts,
		prog:  assemble(e),
		r2:    opts.EscapeRadius * opts.EscapeRadius,
		tol2:  opts.Tolerance * opts.Tolerance,
	}
}

func (k *Kernel) Expr() expr.Expr   { return k.expr }
func (k *Kernel) Niter() int        { return k.niter }
func (k *Kernel) Options() Options  { return k.opts }
func (k *Kernel) Program() *Program { return k.prog }

// Matches reports whether generating from the given inputs would produce an
// equivalent kernel.
func (k *Kernel) Matches(e expr.Expr, niter int, opts Options) bool {
	if k == nil || e == nil {
		return false
	}
	niter, _ = dynamo.ClampNiter(niter)
	return k.niter == niter && k.opts == opts.normalized() && expr.Equal(k.expr, e)
}

// NewEvaluator returns an evaluator with its own value stack. Evaluators are
// not safe for concurrent use; create one per goroutine.
func (k *Kernel) NewEvaluator() *Evaluator {
	return &Evaluator{k: k, stack: make([]complex128, max(k.prog.depth, 1))}
}

// Sample iterates a single point. It allocates; use an Evaluator in loops.
func (k *Kernel) Sample(w complex128, p dynamo.Params) dynamo.Sample {
	return k.NewEvaluator().Iterate(w, p)
}

// Color shades a single point. It allocates; use an Evaluator in loops.
func (k *Kernel) Color(w complex128, p dynamo.Params) color.RGBA {
	return k.NewEvaluator().Color(w, p)
}

// Orbit returns the iterates produced for w, ending at the step that trips
// or after niter steps. Domain mode yields the single value f(w).
func (k *Kernel) Orbit(w complex128, p dynamo.Params) []complex128 {
	ev := k.NewEvaluator()
	z, c := p.Start(w)
	if p.Mode == dynamo.ModeDomain {
		return []complex128{ev.Eval(z, c)}
	}
	orbit := make([]complex128, 0, min(k.niter, 1024))
	for step := 1; step <= k.niter; step++ {
		next := ev.Eval(z, c)
		orbit = append(orbit, next)
		if k.trips(p.Mode, z, next) {
			break
		}
		z = next
	}
	return orbit
}

func (k *Kernel) trips(mode dynamo.Mode, prev, next complex128) bool {
	if mode == dynamo.ModeConverge {
		d := next - prev
		return real(d)*real(d)+imag(d)*imag(d) < k.tol2
	}
	m := real(next)*real(next) + imag(next)*imag(next)
	return !(m <= k.r2)
}

// Evaluator runs a kernel's bytecode.
type Evaluator struct {
	k     *Kernel
	stack []complex128
}

// Eval applies the update rule once.
func (ev *Evaluator) Eval(z, c complex128) complex128 {
	return ev.k.prog.run(ev.stack, z, c)
}

// Iterate runs the per-pixel procedure for plane coordinate w. The loop is
// bounded by niter in every mode.
func (ev *Evaluator) Iterate(w complex128, p dynamo.Params) dynamo.Sample {
	k := ev.k
	z, c := p.Start(w)
	switch p.Mode {
	case dynamo.ModeDomain:
		return dynamo.Sample{Step: 1, Z: ev.Eval(z, c)}
	case dynamo.ModeConverge:
		for step := 1; step <= k.niter; step++ {
			next := ev.Eval(z, c)
			d := next - z
			z = next
			m := real(d)*real(d) + imag(d)*imag(d)
			if m < k.tol2 {
				return dynamo.Sample{Tripped: true, Step: step, Z: z}
			}
			if m != m {
				break
			}
		}
		return dynamo.Sample{Step: k.niter, Z: z}
	}

	r2 := k.r2
	for step := 1; step <= k.niter; step++ {
		z = ev.Eval(z, c)
		if m := real(z)*real(z) + imag(z)*imag(z); !(m <= r2) {
			return dynamo.Sample{Tripped: true, Step: step, Z: z}
		}
	}
	return dynamo.Sample{Step: k.niter, Z: z}
}

// Color shades plane coordinate w.
func (ev *Evaluator) Color(w complex128, p dynamo.Params) color.RGBA {
	s := ev.Iterate(w, p)
	if p.Mode == dynamo.ModeDomain {
		return DomainColor(s.Z)
	}
	if !s.Tripped {
		return Interior
	}
	return Ramp(float64(s.Step) / float64(ev.k.niter))
}
