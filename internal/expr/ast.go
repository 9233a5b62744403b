package expr

import (
	"math"
	"strconv"
)

// Expr is a node of the expression tree. The set of node types is closed:
// Literal, Variable, Unary, Binary and Call.
type Expr interface {
	String() string
	node()
}

type Var uint8

const (
	VarZ Var = iota
	VarC
)

func (v Var) String() string {
	if v == VarC {
		return "c"
	}
	return "z"
}

type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg
)

var opSymbols = [...]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^", OpNeg: "-"}

func (o Op) String() string {
	if int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return "?"
}

// precedence of binary operators; unary minus sits between OpMul and OpPow.
func (o Op) precedence() int {
	switch o {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	case OpNeg:
		return 3
	case OpPow:
		return 4
	}
	return 0
}

type Literal struct {
	Value complex128
}

type Variable struct {
	Name Var
}

type Unary struct {
	Op Op
	X  Expr
}

type Binary struct {
	Op   Op
	L, R Expr
}

type Call struct {
	Fn  *Func
	Arg Expr
}

func (*Literal) node()  {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Call) node()     {}

func (l *Literal) String() string {
	re, im := real(l.Value), imag(l.Value)
	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "i"
	}
	sign := "+"
	if im < 0 || math.Signbit(im) {
		sign = "-"
	}
	return "(" + formatFloat(re) + sign + formatFloat(math.Abs(im)) + "i)"
}

func (v *Variable) String() string { return v.Name.String() }

func (u *Unary) String() string {
	return u.Op.String() + wrap(u.X, u.Op.precedence(), false)
}

func (b *Binary) String() string {
	p := b.Op.precedence()
	rightAssoc := b.Op == OpPow
	return wrap(b.L, p, rightAssoc) + b.Op.String() + wrap(b.R, p, !rightAssoc)
}

func (c *Call) String() string {
	return c.Fn.Name + "(" + c.Arg.String() + ")"
}

// wrap parenthesises child when printing it bare under a parent of
// precedence p would change the parse.
func wrap(child Expr, p int, strict bool) string {
	s := child.String()
	var cp int
	switch n := child.(type) {
	case *Binary:
		cp = n.Op.precedence()
	case *Unary:
		cp = n.Op.precedence()
	case *Literal:
		if real(n.Value) < 0 || math.Signbit(real(n.Value)) || (real(n.Value) == 0 && imag(n.Value) < 0) {
			cp = OpNeg.precedence()
		} else {
			return s
		}
	default:
		return s
	}
	if cp < p || (strict && cp == p) {
		return "(" + s + ")"
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && sameFloat(real(x.Value), real(y.Value)) && sameFloat(imag(x.Value), imag(y.Value))
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.X, y.X)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Call:
		y, ok := b.(*Call)
		return ok && x.Fn == y.Fn && Equal(x.Arg, y.Arg)
	}
	return a == nil && b == nil
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// Walk visits e and its descendants in depth-first, left-to-right order.
func Walk(e Expr, fn func(Expr)) {
	fn(e)
	switch n := e.(type) {
	case *Unary:
		Walk(n.X, fn)
	case *Binary:
		Walk(n.L, fn)
		Walk(n.R, fn)
	case *Call:
		Walk(n.Arg, fn)
	}
}

// Uses reports which variables appear in e.
func Uses(e Expr) (z, c bool) {
	Walk(e, func(n Expr) {
		if v, ok := n.(*Variable); ok {
			if v.Name == VarZ {
				z = true
			} else {
				c = true
			}
		}
	})
	return z, c
}
