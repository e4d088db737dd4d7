// Package exchange fetches exchange-rate tables from an upstream provider and
// keeps them fresh for a fixed window.
package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	OpFetchOne = "FETCH_ONE"
	OpFetchAll = "FETCH_ALL"
)

// Rates is a rate table as returned by the provider: Result maps a currency
// code to the units of that currency bought by one unit of Base.
type Rates struct {
	Base   string             `json:"base"`
	MS     int64              `json:"ms"`
	Result map[string]float64 `json:"result"`
}

// Rate returns the rate for code.
func (r *Rates) Rate(code string) (float64, error) {
	if r == nil {
		return 0, ErrRateUnavailable
	}
	v, ok := r.Result[strings.ToUpper(code)]
	if !ok || v <= 0 {
		return 0, fmt.Errorf("%w: %s->%s", ErrRateUnavailable, r.Base, code)
	}
	return v, nil
}

// Quote is a single pair's rate and the window it stays valid for.
type Quote struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetchedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Fetcher is the upstream rate provider.
type Fetcher interface {
	FetchOne(ctx context.Context, from, to string) (*Rates, error)
	FetchAll(ctx context.Context, from string) (*Rates, error)
}

// identity is the table for a pair whose two sides are the same currency.
func identity(code string) *Rates {
	return &Rates{Base: code, Result: map[string]float64{code: 1}}
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
