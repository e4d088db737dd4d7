package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
)

// Store is a string key-value store. A missing key is ("", false, nil).
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Encode returns the stored form of key in snap.
func Encode(key string, snap Snapshot) (string, error) {
	switch key {
	case KeyCounterCurrency:
		b, err := json.Marshal(snap.CounterCurrency)
		return string(b), err
	case KeyBaseCurrencies:
		list := snap.BaseCurrencies
		if list == nil {
			list = []currency.Watched{}
		}
		b, err := json.Marshal(list)
		return string(b), err
	case KeyLanguage:
		return snap.Language, nil
	case KeyOnboardingDone:
		if snap.OnboardingDone {
			return "true", nil
		}
		return "", nil
	}
	return "", fmt.Errorf("unknown preference key %q", key)
}

// Load builds a State from store. Missing or unreadable values keep their
// defaults; lang falls back to detected.
func Load(ctx context.Context, store Store, detected string, logger *slog.Logger) (*State, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := New(detected)
	snap := s.snap

	get := func(key string) (string, bool, error) {
		v, ok, err := store.Get(ctx, key)
		if err != nil {
			return "", false, fmt.Errorf("load %s: %w", key, err)
		}
		return v, ok, nil
	}

	if v, ok, err := get(KeyCounterCurrency); err != nil {
		return nil, err
	} else if ok {
		var c currency.Currency
		if err := json.Unmarshal([]byte(v), &c); err != nil || !currency.IsSupported(c.Code) {
			logger.Warn("ignoring stored counter currency", "value", v, "error", err)
		} else {
			snap.CounterCurrency, _ = currency.Lookup(c.Code)
		}
	}

	if v, ok, err := get(KeyBaseCurrencies); err != nil {
		return nil, err
	} else if ok {
		var list []currency.Watched
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			logger.Warn("ignoring stored base currencies", "error", err)
		} else {
			clean := make([]currency.Watched, 0, len(list))
			seen := map[string]bool{}
			for _, w := range list {
				c, err := currency.Lookup(w.Code)
				if err != nil || seen[c.Code] {
					logger.Warn("dropping stored base currency", "code", w.Code)
					continue
				}
				seen[c.Code] = true
				clean = append(clean, currency.Watched{Currency: c, IsSelected: w.IsSelected})
			}
			snap.BaseCurrencies = clean
		}
	}

	if v, ok, err := get(KeyLanguage); err != nil {
		return nil, err
	} else if ok && i18n.IsSupported(v) {
		snap.Language = v
	}

	if v, ok, err := get(KeyOnboardingDone); err != nil {
		return nil, err
	} else if ok && v == "true" {
		snap.OnboardingDone = true
	}

	s.snap = snap
	return s, nil
}

// Persister writes changed keys to a Store in the background. Writes never
// block the caller and failures are only logged: memory stays authoritative.
// Pending writes to one key coalesce to the latest value.
type Persister struct {
	store   Store
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]string
	order   []string
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewPersister starts the write loop.
func NewPersister(store Store, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Persister{
		store:   store,
		logger:  logger.With("component", "preferences"),
		timeout: 5 * time.Second,
		pending: make(map[string]string),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Attach subscribes p to s.
func (p *Persister) Attach(s *State) { s.Subscribe(p.Observe) }

// Observe queues the value of key. It has the Observer signature.
func (p *Persister) Observe(key string, snap Snapshot) {
	v, err := Encode(key, snap)
	if err != nil {
		p.logger.Error("encode preference", "key", key, "error", err)
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("preference change after close dropped", "key", key)
		return
	}
	if _, ok := p.pending[key]; !ok {
		p.order = append(p.order, key)
	}
	p.pending[key] = v
	select {
	case p.wake <- struct{}{}:
	default:
	}
	p.mu.Unlock()
}

// Close writes whatever is pending and stops the loop, or gives up when ctx
// ends first.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.wake)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for range p.wake {
		p.drain()
	}
	p.drain()
}

func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if len(p.order) == 0 {
			p.mu.Unlock()
			return
		}
		key := p.order[0]
		p.order = p.order[1:]
		v := p.pending[key]
		delete(p.pending, key)
		p.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.store.Set(ctx, key, v); err != nil {
			p.logger.Error("persist preference", "key", key, "error", err)
		} else {
			p.logger.Debug("preference saved", "key", key)
		}
		cancel()
	}
}
