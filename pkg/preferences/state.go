// Package preferences owns the user's currency and language choices. All
// changes go through State methods; persistence subscribes as an observer.
package preferences

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
)

// Stored keys. Values are JSON except lang (a bare code) and initial_done
// ("true" once onboarding finishes).
const (
	KeyCounterCurrency = "counterCurrency"
	KeyBaseCurrencies  = "baseCurrencies"
	KeyLanguage        = "lang"
	KeyOnboardingDone  = "initial_done"
)

var (
	ErrInvalidIndex   = errors.New("index out of range")
	ErrAlreadyWatched = errors.New("currency already watched")
	ErrNotWatched     = errors.New("currency not watched")
)

// DefaultCounter is the counter currency before onboarding.
var DefaultCounter = currency.Currency{Code: "KRW", Flag: "kr"}

// Snapshot is a copy of the state at one point in time.
type Snapshot struct {
	CounterCurrency currency.Currency  `json:"counterCurrency"`
	BaseCurrencies  []currency.Watched `json:"baseCurrencies"`
	Language        string             `json:"lang"`
	OnboardingDone  bool               `json:"initialDone"`
}

func (s Snapshot) clone() Snapshot {
	s.BaseCurrencies = append([]currency.Watched(nil), s.BaseCurrencies...)
	return s
}

// Observer is told which key changed and the state right after the change.
// It runs with the state locked and must not block or call back into State.
type Observer func(key string, snap Snapshot)

// State is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	snap      Snapshot
	observers []Observer
}

// New returns the default state in the given language.
func New(lang string) *State {
	if !i18n.IsSupported(lang) {
		lang = i18n.Fallback
	}
	return &State{snap: Snapshot{
		CounterCurrency: DefaultCounter,
		BaseCurrencies:  currency.Defaults(),
		Language:        lang,
	}}
}

// Subscribe registers o for every later change.
func (s *State) Subscribe(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Counter returns the counter currency.
func (s *State) Counter() currency.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.CounterCurrency
}

// Language returns the active language code.
func (s *State) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Language
}

func (s *State) update(key string, fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.snap = next
	for _, o := range s.observers {
		o(key, next.clone())
	}
	return nil
}

// SetCounter changes the counter currency.
func (s *State) SetCounter(c currency.Currency) error {
	c, err := currency.Lookup(c.Code)
	if err != nil {
		return err
	}
	return s.update(KeyCounterCurrency, func(snap *Snapshot) error {
		snap.CounterCurrency = c
		return nil
	})
}

// SetBaseCurrencies replaces the watched list, keeping its order.
func (s *State) SetBaseCurrencies(list []currency.Watched) error {
	clean := make([]currency.Watched, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, w := range list {
		c, err := currency.Lookup(w.Code)
		if err != nil {
			return err
		}
		if seen[c.Code] {
			return fmt.Errorf("%w: %s", ErrAlreadyWatched, c.Code)
		}
		seen[c.Code] = true
		clean = append(clean, currency.Watched{Currency: c, IsSelected: w.IsSelected})
	}
	return s.update(KeyBaseCurrencies, func(snap *Snapshot) error {
		snap.BaseCurrencies = clean
		return nil
	})
}

// ToggleSelected flips the rate direction of the i-th watched currency.
func (s *State) ToggleSelected(i int) error {
	return s.update(KeyBaseCurrencies, func(snap *Snapshot) error {
		if i < 0 || i >= len(snap.BaseCurrencies) {
			return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
		}
		snap.BaseCurrencies[i].IsSelected = !snap.BaseCurrencies[i].IsSelected
		return nil
	})
}

// Move takes the entry at from out of the list and reinserts it at to.
func (s *State) Move(from, to int) error {
	return s.update(KeyBaseCurrencies, func(snap *Snapshot) error {
		list := snap.BaseCurrencies
		if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
			return fmt.Errorf("%w: %d -> %d", ErrInvalidIndex, from, to)
		}
		item := list[from]
		list = append(list[:from], list[from+1:]...)
		list = append(list[:to], append([]currency.Watched{item}, list[to:]...)...)
		snap.BaseCurrencies = list
		return nil
	})
}

// Add watches c. The list is then re-sorted by flag, dropping any manual
// order.
func (s *State) Add(c currency.Currency) error {
	c, err := currency.Lookup(c.Code)
	if err != nil {
		return err
	}
	return s.update(KeyBaseCurrencies, func(snap *Snapshot) error {
		for _, w := range snap.BaseCurrencies {
			if w.Code == c.Code {
				return fmt.Errorf("%w: %s", ErrAlreadyWatched, c.Code)
			}
		}
		snap.BaseCurrencies = append(snap.BaseCurrencies, currency.Watched{Currency: c})
		sort.SliceStable(snap.BaseCurrencies, func(i, j int) bool {
			return snap.BaseCurrencies[i].Flag < snap.BaseCurrencies[j].Flag
		})
		return nil
	})
}

// Remove stops watching code.
func (s *State) Remove(code string) error {
	code = strings.ToUpper(code)
	return s.update(KeyBaseCurrencies, func(snap *Snapshot) error {
		for i, w := range snap.BaseCurrencies {
			if w.Code == code {
				snap.BaseCurrencies = append(snap.BaseCurrencies[:i], snap.BaseCurrencies[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrNotWatched, code)
	})
}

// SetLanguage switches the UI language.
func (s *State) SetLanguage(lang string) error {
	lang, err := i18n.Parse(lang)
	if err != nil {
		return err
	}
	return s.update(KeyLanguage, func(snap *Snapshot) error {
		snap.Language = lang
		return nil
	})
}

// CompleteOnboarding marks the first-run flow as done.
func (s *State) CompleteOnboarding() {
	_ = s.update(KeyOnboardingDone, func(snap *Snapshot) error {
		snap.OnboardingDone = true
		return nil
	})
}
