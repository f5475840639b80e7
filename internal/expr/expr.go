// Package expr evaluates the arithmetic users type into a cost field.
//
// The accepted grammar is deliberately small:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | "(" expr ")"
//	number  = digits [ "." [ digits ] ] | "." digits
//
// Whitespace is ignored. Addition, subtraction and multiplication are exact
// decimal; division keeps decimal.DivisionPrecision digits, and the result is
// rounded to resultPlaces so 1/3*3 evaluates to 1.
package expr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// maxDepth bounds parenthesis and unary-operator nesting.
	maxDepth = 64
	// resultPlaces is the number of decimal places results are rounded to.
	resultPlaces = 12
)

// ErrDivisionByZero is returned when an expression divides by zero.
var ErrDivisionByZero = errors.New("division by zero")

// SyntaxError reports input that is not a valid expression.
type SyntaxError struct {
	Pos int    // byte offset into the input
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression at offset %d: %s", e.Pos, e.Msg)
}

// Evaluate parses and evaluates text.
func Evaluate(text string) (decimal.Decimal, error) {
	p := &parser{src: text}
	p.skipSpace()
	if p.eof() {
		return decimal.Zero, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}

	v, err := p.expr()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpace()
	if !p.eof() {
		return decimal.Zero, p.errorf("unexpected %q", p.src[p.pos])
	}
	return v.Round(resultPlaces), nil
}

// EvaluateFloat is Evaluate converted to the float64 used by the calculator.
func EvaluateFloat(text string) (float64, error) {
	v, err := Evaluate(text)
	if err != nil {
		return 0, err
	}
	return v.InexactFloat64(), nil
}

type parser struct {
	src   string
	pos   int
	depth int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf("nesting deeper than %d", maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) expr() (decimal.Decimal, error) {
	left, err := p.term()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

func (p *parser) term() (decimal.Decimal, error) {
	left, err := p.unary()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		opPos := p.pos
		p.pos++
		right, err := p.unary()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
			continue
		}
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("%w at offset %d", ErrDivisionByZero, opPos)
		}
		left = left.Div(right)
	}
}

func (p *parser) unary() (decimal.Decimal, error) {
	p.skipSpace()
	switch p.peek() {
	case '+', '-':
		neg := p.peek() == '-'
		p.pos++
		if err := p.enter(); err != nil {
			return decimal.Zero, err
		}
		defer p.leave()
		v, err := p.unary()
		if err != nil {
			return decimal.Zero, err
		}
		if neg {
			return v.Neg(), nil
		}
		return v, nil
	default:
		return p.primary()
	}
}

func (p *parser) primary() (decimal.Decimal, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		if err := p.enter(); err != nil {
			return decimal.Zero, err
		}
		defer p.leave()
		v, err := p.expr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return decimal.Zero, p.errorf("expected ')'")
		}
		p.pos++
		return v, nil
	case isDigit(c) || c == '.':
		return p.number()
	case p.eof():
		return decimal.Zero, p.errorf("unexpected end of expression")
	default:
		return decimal.Zero, p.errorf("unexpected %q", c)
	}
}

func (p *parser) number() (decimal.Decimal, error) {
	start := p.pos
	digits := 0
	for isDigit(p.peek()) {
		p.pos++
		digits++
	}
	if p.peek() == '.' {
		p.pos++
		for isDigit(p.peek()) {
			p.pos++
			digits++
		}
	}
	if digits == 0 {
		return decimal.Zero, &SyntaxError{Pos: start, Msg: "malformed number"}
	}

	lit := p.src[start:p.pos]
	if lit[len(lit)-1] == '.' {
		lit = lit[:len(lit)-1]
	}
	if lit[0] == '.' {
		lit = "0" + lit
	}
	v, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, &SyntaxError{Pos: start, Msg: fmt.Sprintf("malformed number %q", lit)}
	}
	return v, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
