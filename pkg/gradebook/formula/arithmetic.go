package formula

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	// ErrNotArithmetic indicates text outside the arithmetic alphabet.
	ErrNotArithmetic = errors.New("expression is not plain arithmetic")
	// ErrSyntax indicates malformed arithmetic.
	ErrSyntax = errors.New("invalid arithmetic syntax")
	// ErrNotFinite indicates a result that is infinite or NaN.
	ErrNotFinite = errors.New("result is not a finite number")
)

// arithmeticPattern is the safety gate: digits, decimal points, the four
// operators, parentheses and whitespace only.
var arithmeticPattern = regexp.MustCompile(`^[0-9.+\-*/()\s]*$`)

// IsArithmetic reports whether expr passes the safety gate.
func IsArithmetic(expr string) bool {
	return arithmeticPattern.MatchString(expr)
}

// EvalArithmetic evaluates expr with standard precedence: unary sign
// binds tightest, then * and /, then + and -. Parentheses nest.
func EvalArithmetic(expr string) (float64, error) {
	if !IsArithmetic(expr) {
		return 0, ErrNotArithmetic
	}

	p := arithParser{input: expr}
	val, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, p.input[p.pos], p.pos)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, ErrNotFinite
	}
	return val, nil
}

type arithParser struct {
	input string
	pos   int
}

func (p *arithParser) skipSpaces() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-space byte, or 0 at the end of input.
func (p *arithParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// parseExpr handles addition and subtraction.
func (p *arithParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

// parseTerm handles multiplication and division.
func (p *arithParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			// Division by zero yields Inf or NaN, rejected by the caller.
			left /= right
		}
	}
}

// parseUnary handles leading + and - signs.
func (p *arithParser) parseUnary() (float64, error) {
	switch p.peek() {
	case '+':
		p.pos++
		return p.parseUnary()
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePrimary()
}

// parsePrimary handles numbers and parenthesized expressions.
func (p *arithParser) parsePrimary() (float64, error) {
	ch := p.peek()
	switch {
	case ch == 0:
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	case ch == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("%w: expected closing parenthesis", ErrSyntax)
		}
		p.pos++
		return v, nil
	case ch == '.' || (ch >= '0' && ch <= '9'):
		start := p.pos
		for p.pos < len(p.input) && (p.input[p.pos] == '.' || (p.input[p.pos] >= '0' && p.input[p.pos] <= '9')) {
			p.pos++
		}
		v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid number %q", ErrSyntax, p.input[start:p.pos])
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, ch, p.pos)
}
