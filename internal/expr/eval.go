package expr

import (
	"math"
	"math/cmplx"
)

// MaxIntPow bounds the exponents evaluated by repeated squaring.
const MaxIntPow = 1 << 16

// Eval evaluates e with the given iterate and plane coordinate.
func Eval(e Expr, z, c complex128) complex128 {
	switch n := e.(type) {
	case *Literal:
		return n.Value
	case *Variable:
		if n.Name == VarC {
			return c
		}
		return z
	case *Unary:
		return -Eval(n.X, z, c)
	case *Binary:
		return Apply(n.Op, Eval(n.L, z, c), Eval(n.R, z, c))
	case *Call:
		return n.Fn.Eval(Eval(n.Arg, z, c))
	}
	return complex(math.NaN(), math.NaN())
}

// Apply evaluates a binary operator.
func Apply(op Op, a, b complex128) complex128 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpPow:
		return Pow(a, b)
	}
	return complex(math.NaN(), math.NaN())
}

// IntExponent reports whether b is a real integer small enough for PowInt.
func IntExponent(b complex128) (int, bool) {
	if imag(b) != 0 {
		return 0, false
	}
	n := real(b)
	if n != math.Trunc(n) || math.Abs(n) > MaxIntPow {
		return 0, false
	}
	return int(n), true
}

// Pow raises a to b. Integer exponents use repeated multiplication, which
// keeps z^2 consistent with z*z and avoids the branch cut of cmplx.Pow.
func Pow(a, b complex128) complex128 {
	if n, ok := IntExponent(b); ok {
		return PowInt(a, n)
	}
	return cmplx.Pow(a, b)
}

func PowInt(a complex128, n int) complex128 {
	if n < 0 {
		return 1 / PowInt(a, -n)
	}
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= a
		}
		n >>= 1
		if n > 0 {
			a *= a
		}
	}
	return result
}
