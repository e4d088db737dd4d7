// Package calculator implements the calculator keypad: it turns button presses
// into a validated arithmetic expression and evaluates it on demand.
//
// The expression is held as tokens, never as a raw string, so every edit can
// be checked against the grammar in token.go:
//   - at most one decimal point per numeric run
//   - no leading operator (a computed negative result keeps its sign)
//   - no two adjacent operators; a second operator replaces the first
package calculator

import (
	"fmt"
	"strings"
)

// Key is a calculator button.
type Key string

const (
	Key0        Key = "0"
	Key1        Key = "1"
	Key2        Key = "2"
	Key3        Key = "3"
	Key4        Key = "4"
	Key5        Key = "5"
	Key6        Key = "6"
	Key7        Key = "7"
	Key8        Key = "8"
	Key9        Key = "9"
	KeyPoint    Key = "."
	KeyAdd      Key = "+"
	KeySubtract Key = "-"
	KeyMultiply Key = "×"
	KeyDivide   Key = "÷"
	KeyClear    Key = "C"
	KeyDelete   Key = "delete"
	KeySwitch   Key = "switch"
	KeyEvaluate Key = "="
)

var keyAliases = map[string]Key{
	"*":         KeyMultiply,
	"x":         KeyMultiply,
	"/":         KeyDivide,
	"c":         KeyClear,
	"clear":     KeyClear,
	"del":       KeyDelete,
	"backspace": KeyDelete,
	"<":         KeyDelete,
	"s":         KeySwitch,
	"swap":      KeySwitch,
	"enter":     KeyEvaluate,
}

// ParseKey maps a button label or one of its aliases to a Key.
func ParseKey(s string) (Key, error) {
	switch k := Key(s); k {
	case Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9,
		KeyPoint, KeyAdd, KeySubtract, KeyMultiply, KeyDivide,
		KeyClear, KeyDelete, KeySwitch, KeyEvaluate:
		return k, nil
	}
	if k, ok := keyAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// IsDigit reports whether k is one of 0-9.
func (k Key) IsDigit() bool { return len(k) == 1 && k[0] >= '0' && k[0] <= '9' }

// IsOperator reports whether k is one of the four operator keys.
func (k Key) IsOperator() bool {
	return k == KeyAdd || k == KeySubtract || k == KeyMultiply || k == KeyDivide
}

// State is the engine's position in its state machine.
type State int

const (
	StateEmpty State = iota
	StateComposing
	StateHasResult
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateComposing:
		return "composing"
	case StateHasResult:
		return "has_result"
	}
	return "unknown"
}

// Engine is a calculator expression and its last computed result. It is not
// safe for concurrent use.
type Engine struct {
	tokens []Token
	result string
	eval   Evaluator
}

// NewEngine returns an empty engine. A nil evaluator selects NewJSEvaluator.
func NewEngine(eval Evaluator) *Engine {
	if eval == nil {
		eval = NewJSEvaluator()
	}
	return &Engine{eval: eval}
}

// Expression returns the display form of the current expression.
func (e *Engine) Expression() string { return Render(e.tokens) }

// Result returns the last result formatted to Places fraction digits, or ""
// when nothing has been computed since the last edit.
func (e *Engine) Result() string { return e.result }

// State reports the engine state.
func (e *Engine) State() State {
	switch {
	case e.result != "":
		return StateHasResult
	case len(e.tokens) == 0:
		return StateEmpty
	default:
		return StateComposing
	}
}

// Press applies one button press. Switch only clears the engine; swapping the
// currencies is up to the caller.
func (e *Engine) Press(k Key) {
	switch {
	case k.IsDigit():
		e.pressDigit(rune(k[0]))
	case k == KeyPoint:
		e.pressPoint()
	case k.IsOperator():
		e.pressOperator([]rune(string(k))[0])
	case k == KeyDelete:
		e.pressDelete()
	case k == KeyClear, k == KeySwitch:
		e.Reset()
	case k == KeyEvaluate:
		e.evaluate()
	}
}

// Reset empties the expression and the result.
func (e *Engine) Reset() {
	e.tokens = e.tokens[:0]
	e.result = ""
}

func (e *Engine) pressDigit(d rune) {
	e.result = ""
	if len(e.tokens) == 1 && e.tokens[0] == digit('0') {
		e.tokens[0] = digit(d)
		return
	}
	e.tokens = append(e.tokens, digit(d))
}

func (e *Engine) pressPoint() {
	if len(e.tokens) == 0 {
		e.tokens = append(e.tokens, digit('0'), point)
		e.result = ""
		return
	}
	if e.tokens[len(e.tokens)-1].Kind != KindDigit {
		return
	}
	if hasPoint(currentRun(e.tokens)) {
		return
	}
	e.tokens = append(e.tokens, point)
	e.result = ""
}

func (e *Engine) pressOperator(op rune) {
	if len(e.tokens) == 0 {
		return
	}
	e.result = ""
	if last := len(e.tokens) - 1; e.tokens[last].Kind != KindDigit {
		e.tokens[last] = operator(op)
		return
	}
	e.tokens = append(e.tokens, operator(op))
}

func (e *Engine) pressDelete() {
	if len(e.tokens) == 0 {
		return
	}
	if Render(e.tokens) == "0." {
		e.Reset()
		return
	}
	e.tokens = e.tokens[:len(e.tokens)-1]
	e.result = ""
	// A bare sign left over from a negative result is not an expression.
	if len(e.tokens) == 1 && e.tokens[0].Kind == KindOperator {
		e.Reset()
	}
}

func (e *Engine) evaluate() {
	if len(e.tokens) == 0 || e.tokens[len(e.tokens)-1].Kind != KindDigit {
		return
	}
	if err := Complete(e.tokens); err != nil {
		e.Reset()
		return
	}
	v, err := e.eval.Evaluate(Source(e.tokens))
	if err != nil {
		e.Reset()
		return
	}
	tokens, err := Tokenize(Plain(v))
	if err != nil {
		e.Reset()
		return
	}
	e.tokens = tokens
	e.result = FormatFixed(v)
}
