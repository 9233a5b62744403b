package kernel

import (
	"fmt"
	"strings"

	"github.com/san-kum/zplane/internal/expr"
)

type opcode uint8

const (
	opConst opcode = iota
	opZ
	opC
	opNeg
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opPowInt
	opCall
)

var opNames = [...]string{
	opConst:  "const",
	opZ:      "z",
	opC:      "c",
	opNeg:    "neg",
	opAdd:    "add",
	opSub:    "sub",
	opMul:    "mul",
	opDiv:    "div",
	opPow:    "pow",
	opPowInt: "powi",
	opCall:   "call",
}

func (o opcode) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

type instr struct {
	op  opcode
	arg int32
}

// Program is the bytecode form of an expression: postfix instructions over
// a value stack of complex numbers. Variable-free subtrees are folded into
// constants and constant integer powers become powi.
type Program struct {
	code   []instr
	consts []complex128
	funcs  []*expr.Func
	depth  int
}

// Len is the number of instructions.
func (p *Program) Len() int { return len(p.code) }

// StackDepth is the maximum number of values live on the stack.
func (p *Program) StackDepth() int { return p.depth }

// String disassembles the program, one instruction per line.
func (p *Program) String() string {
	var b strings.Builder
	for i, in := range p.code {
		fmt.Fprintf(&b, "%04d %-5s", i, in.op)
		switch in.op {
		case opConst:
			fmt.Fprintf(&b, " %v", p.consts[in.arg])
		case opPowInt:
			fmt.Fprintf(&b, " %d", in.arg)
		case opCall:
			fmt.Fprintf(&b, " %s", p.funcs[in.arg].Name)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type assembler struct {
	prog  Program
	cur   int
	funcs map[*expr.Func]int32
}

func assemble(e expr.Expr) *Program {
	a := &assembler{funcs: map[*expr.Func]int32{}}
	a.emit(e)
	return &a.prog
}

func (a *assembler) push(op opcode, arg int32) {
	a.prog.code = append(a.prog.code, instr{op: op, arg: arg})
	switch op {
	case opConst, opZ, opC:
		a.cur++
		if a.cur > a.prog.depth {
			a.prog.depth = a.cur
		}
	case opAdd, opSub, opMul, opDiv, opPow:
		a.cur--
	}
}

func (a *assembler) constant(v complex128) {
	a.prog.consts = append(a.prog.consts, v)
	a.push(opConst, int32(len(a.prog.consts)-1))
}

func isConstant(e expr.Expr) bool {
	z, c := expr.Uses(e)
	return !z && !c
}

func (a *assembler) emit(e expr.Expr) {
	if _, lit := e.(*expr.Literal); !lit && isConstant(e) {
		a.constant(expr.Eval(e, 0, 0))
		return
	}

	switch n := e.(type) {
	case *expr.Literal:
		a.constant(n.Value)
	case *expr.Variable:
		if n.Name == expr.VarC {
			a.push(opC, 0)
		} else {
			a.push(opZ, 0)
		}
	case *expr.Unary:
		a.emit(n.X)
		a.push(opNeg, 0)
	case *expr.Binary:
		if n.Op == expr.OpPow && isConstant(n.R) {
			if k, ok := expr.IntExponent(expr.Eval(n.R, 0, 0)); ok {
				a.emit(n.L)
				a.push(opPowInt, int32(k))
				return
			}
		}
		a.emit(n.L)
		a.emit(n.R)
		a.push(binaryOps[n.Op], 0)
	case *expr.Call:
		a.emit(n.Arg)
		idx, ok := a.funcs[n.Fn]
		if !ok {
			idx = int32(len(a.prog.funcs))
			a.prog.funcs = append(a.prog.funcs, n.Fn)
			a.funcs[n.Fn] = idx
		}
		a.push(opCall, idx)
	}
}

var binaryOps = map[expr.Op]opcode{
	expr.OpAdd: opAdd,
	expr.OpSub: opSub,
	expr.OpMul: opMul,
	expr.OpDiv: opDiv,
	expr.OpPow: opPow,
}

// run executes p with the given stack, which must hold at least p.depth values.
func (p *Program) run(stack []complex128, z, c complex128) complex128 {
	sp := 0
	for _, in := range p.code {
		switch in.op {
		case opConst:
			stack[sp] = p.consts[in.arg]
			sp++
		case opZ:
			stack[sp] = z
			sp++
		case opC:
			stack[sp] = c
			sp++
		case opNeg:
			stack[sp-1] = -stack[sp-1]
		case opAdd:
			sp--
			stack[sp-1] += stack[sp]
		case opSub:
			sp--
			stack[sp-1] -= stack[sp]
		case opMul:
			sp--
			stack[sp-1] *= stack[sp]
		case opDiv:
			sp--
			stack[sp-1] /= stack[sp]
		case opPow:
			sp--
			stack[sp-1] = expr.Pow(stack[sp-1], stack[sp])
		case opPowInt:
			stack[sp-1] = expr.PowInt(stack[sp-1], int(in.arg))
		case opCall:
			stack[sp-1] = p.funcs[in.arg].Eval(stack[sp-1])
		}
	}
	return stack[0]
}
