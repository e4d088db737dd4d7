package calculator

import (
	"fmt"
	"math"
	"sync"

	"github.com/dop251/goja"
)

// Evaluator computes the numeric value of an arithmetic expression written
// with +, -, *, / and decimal literals.
type Evaluator interface {
	Evaluate(src string) (float64, error)
}

// JSEvaluator evaluates expressions with an embedded JavaScript runtime, which
// gives IEEE-754 double arithmetic with the usual precedence rules.
type JSEvaluator struct {
	mu sync.Mutex
	vm *goja.Runtime
}

// NewJSEvaluator returns an evaluator backed by a fresh goja runtime.
func NewJSEvaluator() *JSEvaluator {
	return &JSEvaluator{vm: goja.New()}
}

// Evaluate runs src and returns its numeric value. NaN and ±Infinity are
// reported as ErrEvaluation.
func (e *JSEvaluator) Evaluate(src string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, err := e.vm.RunString(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	f := v.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s evaluates to %s", ErrEvaluation, src, v.String())
	}
	return f, nil
}
