// Package calculator keeps calculator sessions: an expression engine plus
// the currency pair its result is converted between.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	calc "github.com/amirasaad/exrate/pkg/calculator"
	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/service/rates"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("calculator session not found")

// Converter prices a result in the target currency.
type Converter interface {
	Convert(ctx context.Context, from, to, amount string) (*rates.Conversion, error)
}

// View is what a calculator screen shows.
type View struct {
	ID         uuid.UUID         `json:"id"`
	Expression string            `json:"expression"`
	Result     string            `json:"result"`
	State      string            `json:"state"`
	Source     currency.Currency `json:"source"`
	Target     currency.Currency `json:"target"`
	// Display is the source line: the result with its code once computed,
	// otherwise the expression being typed.
	Display   string `json:"display"`
	Converted string `json:"converted"`
}

type session struct {
	mu      sync.Mutex
	id      uuid.UUID
	engine  *calc.Engine
	source  currency.Currency
	target  currency.Currency
	touched time.Time
}

// Service is safe for concurrent use; presses on one session are applied
// one at a time.
type Service struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	conv     Converter
	eval     calc.Evaluator
	now      func() time.Time
	logger   *slog.Logger
}

func New(conv Converter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions: make(map[uuid.UUID]*session),
		conv:     conv,
		eval:     calc.NewJSEvaluator(),
		now:      time.Now,
		logger:   logger.With("component", "calculator"),
	}
}

// Create opens a session converting source into target.
func (s *Service) Create(ctx context.Context, source, target string) (*View, error) {
	src, err := currency.Lookup(source)
	if err != nil {
		return nil, err
	}
	dst, err := currency.Lookup(target)
	if err != nil {
		return nil, err
	}
	sess := &session{
		id:      uuid.New(),
		engine:  calc.NewEngine(s.eval),
		source:  src,
		target:  dst,
		touched: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Debug("session created", "id", sess.id, "source", src.Code, "target", dst.Code)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(ctx, sess)
}

func (s *Service) get(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Get returns the current view of a session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(ctx, sess)
}

// Press applies keys in order. Switch also swaps the currency pair.
func (s *Service) Press(ctx context.Context, id uuid.UUID, keys ...string) (*View, error) {
	parsed := make([]calc.Key, 0, len(keys))
	for _, k := range keys {
		key, err := calc.ParseKey(k)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, key)
	}

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, key := range parsed {
		sess.engine.Press(key)
		if key == calc.KeySwitch {
			sess.source, sess.target = sess.target, sess.source
		}
	}
	sess.touched = s.now()
	return s.view(ctx, sess)
}

// SetPair changes either side of the pair; an empty code keeps that side.
// The expression is kept.
func (s *Service) SetPair(ctx context.Context, id uuid.UUID, source, target string) (*View, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if source != "" {
		c, err := currency.Lookup(source)
		if err != nil {
			return nil, err
		}
		sess.source = c
	}
	if target != "" {
		c, err := currency.Lookup(target)
		if err != nil {
			return nil, err
		}
		sess.target = c
	}
	sess.touched = s.now()
	return s.view(ctx, sess)
}

// Delete drops a session.
func (s *Service) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Prune drops sessions untouched for longer than idle and reports how many
// went.
func (s *Service) Prune(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.touched.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of open sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// view must be called with sess.mu held. A failed rate fetch is returned as
// the error; the key presses already applied stay applied.
func (s *Service) view(ctx context.Context, sess *session) (*View, error) {
	v := &View{
		ID:         sess.id,
		Expression: sess.engine.Expression(),
		Result:     sess.engine.Result(),
		State:      sess.engine.State().String(),
		Source:     sess.source,
		Target:     sess.target,
	}
	v.Display = v.Expression
	if v.Result == "" {
		return v, nil
	}
	v.Display = v.Result + " " + sess.source.Code

	conv, err := s.conv.Convert(ctx, sess.source.Code, sess.target.Code, v.Result)
	if err != nil {
		return nil, err
	}
	v.Converted = conv.Converted
	return v, nil
}
