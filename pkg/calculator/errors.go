package calculator

import "errors"

var (
	// ErrInvalidExpression is returned when an expression breaks the token grammar.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrNotEvaluable is returned for an empty expression or one ending in an
	// operator or decimal point.
	ErrNotEvaluable = errors.New("expression is not evaluable")

	// ErrEvaluation is returned when the evaluator fails or yields a
	// non-finite value (division by zero included).
	ErrEvaluation = errors.New("expression evaluation failed")

	// ErrUnknownKey is returned by ParseKey for an unrecognised button.
	ErrUnknownKey = errors.New("unknown calculator key")
)
