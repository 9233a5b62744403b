package expr

import "strings"

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

type parser struct {
	toks  []token
	pos   int
	depth int
}

// Compile parses source into an expression tree.
func Compile(source string) (Expr, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{Kind: EmptyInput, Pos: 0, Msg: "formula is empty"}
	}
	toks, err := scan(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.sum()
	if err != nil {
		return nil, err
	}
	switch t := p.peek(); t.kind {
	case tokEOF:
		return e, nil
	case tokRParen:
		return nil, &ParseError{Kind: UnbalancedParens, Pos: t.pos, Token: t.text, Msg: "unmatched ')'"}
	default:
		return nil, &ParseError{Kind: TrailingInput, Pos: t.pos, Token: t.text,
			Msg: "unexpected " + t.describe() + " after complete expression"}
	}
}

// MustCompile is like Compile but panics on error. Intended for presets and tests.
func MustCompile(source string) Expr {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) sum() (Expr, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.next()
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) product() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		default:
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) unary() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		t := p.peek()
		return nil, &ParseError{Kind: UnexpectedToken, Pos: t.pos, Token: t.text, Msg: "expression nested too deeply"}
	}

	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, X: x}, nil
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, L: base, R: exp}, nil
}

func (p *parser) primary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &Literal{Value: complex(t.num, 0)}, nil
	case tokImag:
		return &Literal{Value: complex(0, t.num)}, nil
	case tokIdent:
		return p.identifier(t)
	case tokLParen:
		inner, err := p.sum()
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(t); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, &ParseError{Kind: UnexpectedToken, Pos: t.pos, Token: t.text,
		Msg: "expected a number, variable, function call or '(' but found " + t.describe()}
}

func (p *parser) identifier(t token) (Expr, error) {
	if p.peek().kind == tokLParen {
		fn, ok := Lookup(t.text)
		if !ok {
			return nil, &ParseError{Kind: UnknownIdentifier, Pos: t.pos, Token: t.text,
				Msg: "unknown function " + t.describe()}
		}
		open := p.next()
		arg, err := p.sum()
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(open); err != nil {
			return nil, err
		}
		return &Call{Fn: fn, Arg: arg}, nil
	}

	switch t.text {
	case "z":
		return &Variable{Name: VarZ}, nil
	case "c":
		return &Variable{Name: VarC}, nil
	}
	if v, ok := constants[t.text]; ok {
		return &Literal{Value: v}, nil
	}
	if _, ok := Lookup(t.text); ok {
		return nil, &ParseError{Kind: UnexpectedToken, Pos: p.peek().pos, Token: p.peek().text,
			Msg: "expected '(' after " + t.describe()}
	}
	return nil, &ParseError{Kind: UnknownIdentifier, Pos: t.pos, Token: t.text,
		Msg: "unknown identifier " + t.describe()}
}

func (p *parser) closeParen(open token) error {
	t := p.peek()
	switch t.kind {
	case tokRParen:
		p.next()
		return nil
	case tokEOF:
		return &ParseError{Kind: UnbalancedParens, Pos: open.pos, Token: open.text, Msg: "missing ')' for '(' opened here"}
	}
	return &ParseError{Kind: UnexpectedToken, Pos: t.pos, Token: t.text, Msg: "expected ')' but found " + t.describe()}
}
