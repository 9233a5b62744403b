package kernel

import (
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/expr"
)

// dialect describes how one shading language spells complex values and
// function helpers. Both dialects share the c_* helper naming.
type dialect struct {
	literal func(v complex128) string
	helper  func(f *expr.Func) string
}

var glslDialect = dialect{
	literal: func(v complex128) string {
		return "dvec2(" + glslDouble(real(v)) + ", " + glslDouble(imag(v)) + ")"
	},
	helper: func(f *expr.Func) string { return f.GLSL },
}

var wgslDialect = dialect{
	literal: func(v complex128) string {
		return "vec2<f32>(" + wgslFloat(real(v)) + ", " + wgslFloat(imag(v)) + ")"
	},
	helper: func(f *expr.Func) string { return f.WGSL },
}

// formula translates e into a shader expression over z and c.
func (d dialect) formula(e expr.Expr) string {
	switch n := e.(type) {
	case *expr.Literal:
		return d.literal(n.Value)
	case *expr.Variable:
		return n.Name.String()
	case *expr.Unary:
		return "(-" + d.formula(n.X) + ")"
	case *expr.Binary:
		l := d.formula(n.L)
		switch n.Op {
		case expr.OpAdd:
			return "(" + l + " + " + d.formula(n.R) + ")"
		case expr.OpSub:
			return "(" + l + " - " + d.formula(n.R) + ")"
		case expr.OpMul:
			return "c_mul(" + l + ", " + d.formula(n.R) + ")"
		case expr.OpDiv:
			return "c_div(" + l + ", " + d.formula(n.R) + ")"
		case expr.OpPow:
			if isConstant(n.R) {
				if k, ok := expr.IntExponent(expr.Eval(n.R, 0, 0)); ok {
					return "c_powi(" + l + ", " + strconv.Itoa(k) + ")"
				}
			}
			return "c_pow(" + l + ", " + d.formula(n.R) + ")"
		}
	case *expr.Call:
		return d.helper(n.Fn) + "(" + d.formula(n.Arg) + ")"
	}
	return d.literal(complex(math.NaN(), math.NaN()))
}

func glslDouble(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		if math.IsNaN(v) {
			return "(0.0lf / 0.0lf)"
		}
		if v < 0 {
			return "(-1.0lf / 0.0lf)"
		}
		return "(1.0lf / 0.0lf)"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	s += "lf"
	if v < 0 {
		s = "(" + s + ")"
	}
	return s
}

func wgslFloat(v float64) string {
	f := float32(v)
	switch {
	case v != v:
		f = 0
	case math.IsInf(float64(f), 1):
		f = math.MaxFloat32
	case math.IsInf(float64(f), -1):
		f = -math.MaxFloat32
	}
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	if f < 0 {
		s = "(" + s + ")"
	}
	return s
}

// replacer fills a shader template. Thresholds are formatted with precise,
// colour constants with lit.
func (k *Kernel) replacer(d dialect, lit, precise func(float64) string) *strings.Replacer {
	return strings.NewReplacer(
		"{{FORMULA}}", d.formula(k.expr),
		"{{NITER}}", strconv.Itoa(k.niter),
		"{{R2}}", precise(k.r2),
		"{{TOL2}}", precise(k.tol2),
		"{{RAMP_HUE}}", lit(rampHue),
		"{{RAMP_SPAN}}", lit(rampSpan),
		"{{RAMP_SAT}}", lit(rampSaturation),
		"{{RAMP_VMIN}}", lit(rampMinValue),
		"{{DOMAIN_SAT}}", lit(domainSaturation),
		"{{DOMAIN_VMIN}}", lit(domainMinValue),
		"{{MODE_JULIA}}", strconv.Itoa(int(dynamo.ModeJulia)),
		"{{MODE_CONVERGE}}", strconv.Itoa(int(dynamo.ModeConverge)),
		"{{MODE_DOMAIN}}", strconv.Itoa(int(dynamo.ModeDomain)),
	)
}

func glslFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// GLSL returns a GLSL 4.30 compute shader that writes the frame into the
// rgba8 image bound at unit 0. Arithmetic is double precision; the
// transcendental helpers round through float because GLSL has no double
// versions of them.
//
// Uniforms: center (dvec2), scale (double), size (ivec2), mode (int),
// juliaC (dvec2), samples (int).
func (k *Kernel) GLSL() string {
	return k.replacer(glslDialect, glslFloat, glslDouble).Replace(glslTemplate)
}

// WGSL returns the single precision WGSL equivalent of GLSL. Pixels are
// packed as RGBA8 into the storage buffer at binding 1; Params live in the
// uniform buffer at binding 0.
func (k *Kernel) WGSL() string {
	return k.replacer(wgslDialect, wgslFloat, wgslFloat).Replace(wgslTemplate)
}
