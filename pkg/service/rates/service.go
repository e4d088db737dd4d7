// Package rates serves rate lookups, conversions and the rate board on top
// of the cached provider client.
package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/exrate/pkg/calculator"
	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/provider/exchange"
)

var ErrUnsupportedCurrency = currency.ErrUnsupported

// Source is the cached rate client.
type Source interface {
	FetchOne(ctx context.Context, from, to string) (*exchange.Rates, error)
	FetchAll(ctx context.Context, from string) (*exchange.Rates, error)
	Quote(ctx context.Context, from, to string) (*exchange.Quote, error)
}

// Service is safe for concurrent use.
type Service struct {
	src    Source
	logger *slog.Logger
}

func New(src Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{src: src, logger: logger.With("component", "rates")}
}

func supported(codes ...string) error {
	for _, c := range codes {
		if !currency.IsSupported(c) {
			return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, c)
		}
	}
	return nil
}

// FetchOne returns the provider table for from->to.
func (s *Service) FetchOne(ctx context.Context, from, to string) (*exchange.Rates, error) {
	if err := supported(from, to); err != nil {
		return nil, err
	}
	return s.src.FetchOne(ctx, from, to)
}

// FetchAll returns every rate relative to from.
func (s *Service) FetchAll(ctx context.Context, from string) (*exchange.Rates, error) {
	if err := supported(from); err != nil {
		return nil, err
	}
	return s.src.FetchAll(ctx, from)
}

// Quote returns the from->to rate with its validity window.
func (s *Service) Quote(ctx context.Context, from, to string) (*exchange.Quote, error) {
	if err := supported(from, to); err != nil {
		return nil, err
	}
	return s.src.Quote(ctx, from, to)
}

// Conversion is an amount priced in another currency.
type Conversion struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    string    `json:"amount"`
	Rate      float64   `json:"rate"`
	Converted string    `json:"converted"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Convert prices amount (a decimal string) in to, rounded to four places.
// A blank amount converts to a blank result.
func (s *Service) Convert(ctx context.Context, from, to, amount string) (*Conversion, error) {
	q, err := s.Quote(ctx, from, to)
	if err != nil {
		return nil, err
	}
	converted, err := calculator.Convert(amount, q.Rate)
	if err != nil {
		return nil, err
	}
	return &Conversion{
		From:      q.From,
		To:        q.To,
		Amount:    amount,
		Rate:      q.Rate,
		Converted: converted,
		ExpiresAt: q.ExpiresAt,
	}, nil
}

// Row is one line of the rate board. Selected rows read
// "<rate> CODE = 1 COUNTER", the others "1 CODE = <1/rate> COUNTER".
type Row struct {
	currency.Watched
	Rate      string `json:"rate,omitempty"`
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

// Board is the watched list priced against the counter currency.
type Board struct {
	Counter currency.Currency `json:"counter"`
	Rows    []Row             `json:"rows"`
}

// Board prices watched against counter with a single table fetch. A code
// missing from the table is reported as unavailable rather than failing the
// board; a failed fetch fails it.
func (s *Service) Board(ctx context.Context, counter currency.Currency, watched []currency.Watched) (*Board, error) {
	table, err := s.FetchAll(ctx, counter.Code)
	if err != nil {
		return nil, err
	}

	b := &Board{Counter: counter, Rows: make([]Row, 0, len(watched))}
	for _, w := range watched {
		b.Rows = append(b.Rows, s.row(counter, w, table))
	}
	return b, nil
}

func (s *Service) row(counter currency.Currency, w currency.Watched, table *exchange.Rates) Row {
	row := Row{Watched: w}

	rate := 1.0
	if w.Code != counter.Code {
		r, err := table.Rate(w.Code)
		if err != nil {
			s.logger.Debug("rate missing from table", "counter", counter.Code, "code", w.Code)
			row.Text = fmt.Sprintf("1 %s = - %s", w.Code, counter.Code)
			return row
		}
		rate = r
	}

	if w.IsSelected {
		row.Rate = calculator.FormatFixed(rate)
		row.Text = fmt.Sprintf("%s %s = 1 %s", row.Rate, w.Code, counter.Code)
	} else {
		inv, err := calculator.Invert(rate)
		if err != nil {
			row.Text = fmt.Sprintf("1 %s = - %s", w.Code, counter.Code)
			return row
		}
		row.Rate = inv
		row.Text = fmt.Sprintf("1 %s = %s %s", w.Code, row.Rate, counter.Code)
	}
	row.Available = true
	return row
}

// IsFetchError reports whether err came from the upstream provider.
func IsFetchError(err error) bool {
	var fe *exchange.FetchError
	return errors.As(err, &fe)
}
