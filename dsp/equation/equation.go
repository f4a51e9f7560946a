// Package equation parses and evaluates user-supplied waveform
// equations over the two bound variables t and frame.
//
// The grammar is a closed arithmetic language: literals, the variables
// t and frame, the constant pi, the operators + - * / ^ with unary
// minus, parentheses, and a fixed allow-list of math functions.
// Evaluation is a recursive walk over the parsed tree with no symbol
// resolution or host-call capability, so arbitrary input text can never
// reach a code-execution path.
//
// By convention t sweeps [0, 2*pi) over one waveform cycle and frame
// sweeps [0, 1] across the wavetable.
package equation

import (
	"fmt"
	"math"

	"github.com/Jstxyn/Wavetable-Site/dsp/core"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// KindSyntax covers malformed input: unbalanced parentheses,
	// missing operands, wrong function arity, trailing tokens.
	KindSyntax ErrorKind = iota
	// KindUnknownSymbol covers identifiers and functions outside the
	// allow-list.
	KindUnknownSymbol
)

// ParseError describes why an equation string was rejected.
type ParseError struct {
	Kind ErrorKind
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("equation: %s at position %d", e.Msg, e.Pos)
}

type varID int

const (
	varT varID = iota
	varFrame
)

type nodeKind int

const (
	nodeConst nodeKind = iota
	nodeVar
	nodeUnary
	nodeBinary
	nodeCall
)

type node struct {
	kind  nodeKind
	value float64 // nodeConst
	v     varID   // nodeVar
	op    byte    // nodeUnary ('-'), nodeBinary ('+','-','*','/','^')
	fn    *function
	args  []*node
}

type function struct {
	name  string
	arity int
	call1 func(float64) float64
	call2 func(float64, float64) float64
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

var functions = map[string]*function{
	"sin":   {name: "sin", arity: 1, call1: math.Sin},
	"cos":   {name: "cos", arity: 1, call1: math.Cos},
	"tan":   {name: "tan", arity: 1, call1: math.Tan},
	"tanh":  {name: "tanh", arity: 1, call1: math.Tanh},
	"exp":   {name: "exp", arity: 1, call1: math.Exp},
	"log":   {name: "log", arity: 1, call1: math.Log},
	"sqrt":  {name: "sqrt", arity: 1, call1: math.Sqrt},
	"abs":   {name: "abs", arity: 1, call1: math.Abs},
	"sign":  {name: "sign", arity: 1, call1: sign},
	"floor": {name: "floor", arity: 1, call1: math.Floor},
	"mod":   {name: "mod", arity: 2, call2: math.Mod},
	"pow":   {name: "pow", arity: 2, call2: math.Pow},
}

var constants = map[string]float64{
	"pi": math.Pi,
}

// Expression is an immutable parsed equation. It is safe for
// concurrent evaluation: Eval touches no shared state.
type Expression struct {
	root      *node
	text      string
	usesFrame bool
}

// String returns the original equation text.
func (e *Expression) String() string {
	return e.text
}

// UsesFrame reports whether the equation references the frame
// variable. Frame-independent equations produce identical frames, so
// callers can evaluate one frame and copy it.
func (e *Expression) UsesFrame() bool {
	return e.usesFrame
}

// Eval evaluates the expression at one grid point. Numeric faults
// (division by zero, log/sqrt of a negative, overflow) yield NaN or
// Inf partway through the walk; the final result is sanitized to 0.0
// so a single bad grid point never poisons a whole wavetable.
func (e *Expression) Eval(t, frame float64) float64 {
	return core.Sanitize(evalNode(e.root, t, frame), 0)
}

func evalNode(n *node, t, frame float64) float64 {
	switch n.kind {
	case nodeConst:
		return n.value
	case nodeVar:
		if n.v == varFrame {
			return frame
		}
		return t
	case nodeUnary:
		return -evalNode(n.args[0], t, frame)
	case nodeBinary:
		a := evalNode(n.args[0], t, frame)
		b := evalNode(n.args[1], t, frame)
		switch n.op {
		case '+':
			return a + b
		case '-':
			return a - b
		case '*':
			return a * b
		case '/':
			return a / b
		default: // '^'
			return math.Pow(a, b)
		}
	default: // nodeCall
		if n.fn.arity == 1 {
			return n.fn.call1(evalNode(n.args[0], t, frame))
		}
		return n.fn.call2(evalNode(n.args[0], t, frame), evalNode(n.args[1], t, frame))
	}
}

func usesVar(n *node, v varID) bool {
	if n == nil {
		return false
	}
	if n.kind == nodeVar && n.v == v {
		return true
	}
	for _, arg := range n.args {
		if usesVar(arg, v) {
			return true
		}
	}
	return false
}
