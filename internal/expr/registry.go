package expr

import (
	"math"
	"math/cmplx"
	"sort"
)

// Func is a named single-argument complex function. GLSL and WGSL name the
// helper that implements it in generated shader source.
type Func struct {
	Name string
	Eval func(complex128) complex128
	GLSL string
	WGSL string
}

var registry = map[string]*Func{}

func register(f *Func, aliases ...string) {
	registry[f.Name] = f
	for _, a := range aliases {
		registry[a] = f
	}
}

func init() {
	register(&Func{Name: "sin", Eval: cmplx.Sin, GLSL: "c_sin", WGSL: "c_sin"})
	register(&Func{Name: "cos", Eval: cmplx.Cos, GLSL: "c_cos", WGSL: "c_cos"})
	register(&Func{Name: "tan", Eval: cmplx.Tan, GLSL: "c_tan", WGSL: "c_tan"})
	register(&Func{Name: "sinh", Eval: cmplx.Sinh, GLSL: "c_sinh", WGSL: "c_sinh"})
	register(&Func{Name: "cosh", Eval: cmplx.Cosh, GLSL: "c_cosh", WGSL: "c_cosh"})
	register(&Func{Name: "tanh", Eval: cmplx.Tanh, GLSL: "c_tanh", WGSL: "c_tanh"})
	register(&Func{Name: "asin", Eval: cmplx.Asin, GLSL: "c_asin", WGSL: "c_asin"})
	register(&Func{Name: "acos", Eval: cmplx.Acos, GLSL: "c_acos", WGSL: "c_acos"})
	register(&Func{Name: "atan", Eval: cmplx.Atan, GLSL: "c_atan", WGSL: "c_atan"})
	register(&Func{Name: "exp", Eval: cmplx.Exp, GLSL: "c_exp", WGSL: "c_exp"})
	register(&Func{Name: "log", Eval: cmplx.Log, GLSL: "c_log", WGSL: "c_log"}, "ln")
	register(&Func{Name: "sqrt", Eval: cmplx.Sqrt, GLSL: "c_sqrt", WGSL: "c_sqrt"})
	register(&Func{Name: "abs", Eval: func(z complex128) complex128 {
		return complex(cmplx.Abs(z), 0)
	}, GLSL: "c_abs", WGSL: "c_abs"})
	register(&Func{Name: "conj", Eval: cmplx.Conj, GLSL: "c_conj", WGSL: "c_conj"})
	register(&Func{Name: "re", Eval: func(z complex128) complex128 {
		return complex(real(z), 0)
	}, GLSL: "c_re", WGSL: "c_re"}, "Re")
	register(&Func{Name: "im", Eval: func(z complex128) complex128 {
		return complex(imag(z), 0)
	}, GLSL: "c_im", WGSL: "c_im"}, "Im")
	register(&Func{Name: "arg", Eval: func(z complex128) complex128 {
		return complex(cmplx.Phase(z), 0)
	}, GLSL: "c_arg", WGSL: "c_arg"})
	register(&Func{Name: "inv", Eval: func(z complex128) complex128 {
		return 1 / z
	}, GLSL: "c_inv", WGSL: "c_inv"})
}

// Lookup finds a registered function by name or alias.
func Lookup(name string) (*Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Functions lists the canonical names of all registered functions.
func Functions() []string {
	seen := map[string]bool{}
	var names []string
	for _, f := range registry {
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}

var constants = map[string]complex128{
	"i":  complex(0, 1),
	"pi": complex(math.Pi, 0),
	"e":  complex(math.E, 0),
}
