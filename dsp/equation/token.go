package equation

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOp    // one of + - * / ^
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind  tokenKind
	pos   int
	op    byte
	num   float64
	ident string
}

type lexer struct {
	src []rune
	pos int
}

func newLexer(text string) *lexer {
	return &lexer{src: []rune(text)}
}

func (l *lexer) syntaxErr(pos int, format string, args ...any) *ParseError {
	return &ParseError{Kind: KindSyntax, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// next scans one token. Whitespace separates tokens and is otherwise
// ignored.
func (l *lexer) next() (token, *ParseError) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}

	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
		l.pos++
		return token{kind: tokenOp, pos: start, op: byte(c)}, nil
	case c == '(':
		l.pos++
		return token{kind: tokenLParen, pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenRParen, pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokenComma, pos: start}, nil
	case unicode.IsDigit(c) || c == '.':
		return l.scanNumber(start)
	case unicode.IsLetter(c) || c == '_':
		for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
		return token{kind: tokenIdent, pos: start, ident: string(l.src[start:l.pos])}, nil
	default:
		return token{}, l.syntaxErr(start, "unexpected character %q", string(c))
	}
}

func (l *lexer) scanNumber(start int) (token, *ParseError) {
	sawDot := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsDigit(c) {
			l.pos++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			l.pos++
			continue
		}
		// Exponent suffix, with optional sign.
		if (c == 'e' || c == 'E') && l.pos+1 < len(l.src) {
			j := l.pos + 1
			if l.src[j] == '+' || l.src[j] == '-' {
				j++
			}
			if j < len(l.src) && unicode.IsDigit(l.src[j]) {
				l.pos = j + 1
				for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
					l.pos++
				}
			}
		}
		break
	}

	text := string(l.src[start:l.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, l.syntaxErr(start, "malformed number %q", text)
	}

	return token{kind: tokenNumber, pos: start, num: v}, nil
}
