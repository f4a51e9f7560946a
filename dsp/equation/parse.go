package equation

import "strings"

// Parse builds an Expression from text. The returned *ParseError (as
// error) reports syntax faults and unknown symbols with the rune
// position of the offending token.
func Parse(text string) (*Expression, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Kind: KindSyntax, Pos: 0, Msg: "empty equation"}
	}

	p := &parser{lex: newLexer(text)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	if p.cur.kind != tokenEOF {
		return nil, p.syntaxErr("unexpected trailing input")
	}

	return &Expression{
		root:      root,
		text:      trimmed,
		usesFrame: usesVar(root, varFrame),
	}, nil
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() *ParseError {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) syntaxErr(msg string) *ParseError {
	return &ParseError{Kind: KindSyntax, Pos: p.cur.pos, Msg: msg}
}

// parseSum handles the lowest precedence level: + and -.
func (p *parser) parseSum() (*node, *ParseError) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}

	for p.cur.kind == tokenOp && (p.cur.op == '+' || p.cur.op == '-') {
		op := p.cur.op
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}

		left = &node{kind: nodeBinary, op: op, args: []*node{left, right}}
	}

	return left, nil
}

func (p *parser) parseProduct() (*node, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.cur.kind == tokenOp && (p.cur.op == '*' || p.cur.op == '/') {
		op := p.cur.op
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &node{kind: nodeBinary, op: op, args: []*node{left, right}}
	}

	return left, nil
}

// parseUnary binds looser than ^, so -x^2 parses as -(x^2).
func (p *parser) parseUnary() (*node, *ParseError) {
	if p.cur.kind == tokenOp && p.cur.op == '-' {
		if err := p.advance(); err != nil {
			return nil, err
		}

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &node{kind: nodeUnary, op: '-', args: []*node{operand}}, nil
	}

	return p.parsePower()
}

// parsePower handles right-associative ^. The exponent re-enters at
// the unary level so 2^-3 is legal.
func (p *parser) parsePower() (*node, *ParseError) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.cur.kind == tokenOp && p.cur.op == '^' {
		if err := p.advance(); err != nil {
			return nil, err
		}

		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &node{kind: nodeBinary, op: '^', args: []*node{base, exp}}, nil
	}

	return base, nil
}

func (p *parser) parsePrimary() (*node, *ParseError) {
	switch p.cur.kind {
	case tokenNumber:
		n := &node{kind: nodeConst, value: p.cur.num}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil

	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}

		if p.cur.kind != tokenRParen {
			return nil, p.syntaxErr("expected closing parenthesis")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		return inner, nil

	case tokenIdent:
		return p.parseIdent()

	case tokenEOF:
		return nil, p.syntaxErr("unexpected end of equation")

	default:
		return nil, p.syntaxErr("expected a value")
	}
}

func (p *parser) parseIdent() (*node, *ParseError) {
	name := p.cur.ident
	pos := p.cur.pos

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.kind == tokenLParen {
		fn, ok := functions[name]
		if !ok {
			return nil, &ParseError{Kind: KindUnknownSymbol, Pos: pos, Msg: "unknown function " + name}
		}
		return p.parseCall(fn)
	}

	switch name {
	case "t":
		return &node{kind: nodeVar, v: varT}, nil
	case "frame":
		return &node{kind: nodeVar, v: varFrame}, nil
	}

	if v, ok := constants[name]; ok {
		return &node{kind: nodeConst, value: v}, nil
	}

	return nil, &ParseError{Kind: KindUnknownSymbol, Pos: pos, Msg: "unknown identifier " + name}
}

func (p *parser) parseCall(fn *function) (*node, *ParseError) {
	// Caller verified the current token is '('.
	if err := p.advance(); err != nil {
		return nil, err
	}

	args := make([]*node, 0, fn.arity)
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.cur.kind == tokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if p.cur.kind != tokenRParen {
		return nil, p.syntaxErr("expected closing parenthesis after arguments of " + fn.name)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if len(args) != fn.arity {
		return nil, &ParseError{
			Kind: KindSyntax,
			Pos:  p.cur.pos,
			Msg:  fn.name + " expects " + argCountWord(fn.arity) + " argument(s)",
		}
	}

	return &node{kind: nodeCall, fn: fn, args: args}, nil
}

func argCountWord(n int) string {
	if n == 1 {
		return "one"
	}
	return "two"
}
