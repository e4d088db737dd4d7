package calculator

import (
	"fmt"
	"strings"
)

// Kind classifies an expression token.
type Kind int

const (
	KindDigit Kind = iota
	KindPoint
	KindOperator
)

// Display glyphs for the four operators.
const (
	Add      = '+'
	Subtract = '-'
	Multiply = '×'
	Divide   = '÷'
)

// Token is a single symbol of a calculator expression.
type Token struct {
	Kind  Kind
	Value rune
}

func (t Token) String() string { return string(t.Value) }

func digit(r rune) Token    { return Token{Kind: KindDigit, Value: r} }
func operator(r rune) Token { return Token{Kind: KindOperator, Value: r} }

var point = Token{Kind: KindPoint, Value: '.'}

// IsOperator reports whether r is one of the display operator glyphs.
func IsOperator(r rune) bool {
	switch r {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Tokenize splits a display expression into tokens. It only checks the
// alphabet; Validate checks the grammar.
func Tokenize(expr string) ([]Token, error) {
	tokens := make([]Token, 0, len(expr))
	for i, r := range expr {
		switch {
		case r >= '0' && r <= '9':
			tokens = append(tokens, digit(r))
		case r == '.':
			tokens = append(tokens, point)
		case IsOperator(r):
			tokens = append(tokens, operator(r))
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidExpression, r, i)
		}
	}
	return tokens, nil
}

// Validate enforces the expression invariants on a token sequence:
//   - an operator never starts the expression, except a minus sign directly
//     followed by a digit (the sign of a previously computed result)
//   - operators are never adjacent
//   - a decimal point follows a digit and appears at most once per numeric run
//
// A trailing operator or decimal point is allowed here; Complete rejects it.
func Validate(tokens []Token) error {
	pointInRun := false
	for i, t := range tokens {
		switch t.Kind {
		case KindOperator:
			if i == 0 {
				if t.Value != Subtract || len(tokens) < 2 || tokens[1].Kind != KindDigit {
					return fmt.Errorf("%w: leading operator %q", ErrInvalidExpression, t.Value)
				}
				continue
			}
			if tokens[i-1].Kind != KindDigit {
				return fmt.Errorf("%w: operator %q at %d must follow a digit", ErrInvalidExpression, t.Value, i)
			}
			pointInRun = false
		case KindPoint:
			if i == 0 || tokens[i-1].Kind != KindDigit {
				return fmt.Errorf("%w: decimal point at %d must follow a digit", ErrInvalidExpression, i)
			}
			if pointInRun {
				return fmt.Errorf("%w: second decimal point in numeric run at %d", ErrInvalidExpression, i)
			}
			pointInRun = true
		}
	}
	return nil
}

// Complete reports whether tokens form an evaluable expression: valid and
// ending in a digit.
func Complete(tokens []Token) error {
	if len(tokens) == 0 {
		return ErrNotEvaluable
	}
	if last := tokens[len(tokens)-1]; last.Kind != KindDigit {
		return fmt.Errorf("%w: ends with %q", ErrNotEvaluable, last.Value)
	}
	return Validate(tokens)
}

// Render joins tokens back into the display form.
func Render(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteRune(t.Value)
	}
	return b.String()
}

// Source renders tokens as input for an Evaluator: × and ÷ become * and /,
// and redundant leading zeros of every numeric literal are dropped so "05"
// reads as 5 rather than a legacy octal literal.
func Source(tokens []Token) string {
	var b, num strings.Builder
	flush := func() {
		if num.Len() == 0 {
			return
		}
		lit := strings.TrimLeft(num.String(), "0")
		if lit == "" || lit[0] == '.' {
			lit = "0" + lit
		}
		b.WriteString(lit)
		num.Reset()
	}
	for _, t := range tokens {
		if t.Kind != KindOperator {
			num.WriteRune(t.Value)
			continue
		}
		flush()
		switch t.Value {
		case Multiply:
			b.WriteByte('*')
		case Divide:
			b.WriteByte('/')
		default:
			b.WriteRune(t.Value)
		}
	}
	flush()
	return b.String()
}

// currentRun returns the trailing numeric run: the tokens after the last
// operator.
func currentRun(tokens []Token) []Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind == KindOperator {
			return tokens[i+1:]
		}
	}
	return tokens
}

func hasPoint(run []Token) bool {
	for _, t := range run {
		if t.Kind == KindPoint {
			return true
		}
	}
	return false
}
