package probe

import (
	"fmt"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

// NotAvailable is shown for values that need a kernel before one exists.
const NotAvailable = "n/a"

// ValueAt formats the plane coordinate under screen pixel (x, y). It never
// depends on a kernel.
func ValueAt(vp plane.Viewport, x, y float64) string {
	return FormatComplex(vp.ScreenToPlane(x, y))
}

// ImageAt formats one application of the kernel's update rule at the plane
// coordinate under (x, y), using the starting values of the current mode.
func ImageAt(k *kernel.Kernel, vp plane.Viewport, p dynamo.Params, x, y float64) string {
	if k == nil {
		return NotAvailable
	}
	z, c := p.Start(vp.ScreenToPlane(x, y))
	return FormatComplex(k.NewEvaluator().Eval(z, c))
}

// Report is everything known about a single point.
type Report struct {
	Point  complex128
	Image  complex128
	Sample dynamo.Sample
	Orbit  []complex128
	Mode   dynamo.Mode
	Niter  int
}

// Inspect iterates the point under (x, y). It returns nil without a kernel.
func Inspect(k *kernel.Kernel, vp plane.Viewport, p dynamo.Params, x, y float64) *Report {
	if k == nil {
		return nil
	}
	w := vp.ScreenToPlane(x, y)
	ev := k.NewEvaluator()
	z, c := p.Start(w)
	return &Report{
		Point:  w,
		Image:  ev.Eval(z, c),
		Sample: ev.Iterate(w, p),
		Orbit:  k.Orbit(w, p),
		Mode:   p.Mode,
		Niter:  k.Niter(),
	}
}

// Classification describes how the orbit ended.
func (r *Report) Classification() string {
	switch {
	case r.Mode == dynamo.ModeDomain:
		return "domain value " + FormatComplex(r.Sample.Z)
	case r.Sample.Tripped && r.Mode == dynamo.ModeConverge:
		return fmt.Sprintf("converges at step %d of %d", r.Sample.Step, r.Niter)
	case r.Sample.Tripped:
		return fmt.Sprintf("escapes at step %d of %d", r.Sample.Step, r.Niter)
	case r.Mode == dynamo.ModeConverge:
		return fmt.Sprintf("no convergence within %d steps", r.Niter)
	}
	return fmt.Sprintf("bounded for %d steps", r.Niter)
}

func (r *Report) String() string {
	return fmt.Sprintf("point %s\nimage %s\n%s",
		FormatComplex(r.Point), FormatComplex(r.Image), r.Classification())
}
