package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrProviderUnavailable = errors.New("rate provider unavailable")
	ErrMalformedResponse   = errors.New("malformed rate provider response")
	ErrRateUnavailable     = errors.New("rate unavailable")
)

// FetchError is returned for any failed lookup. It is never cached and the
// lookup is not retried.
type FetchError struct {
	Op   string
	From string
	To   string
	Err  error
}

func (e *FetchError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.From, e.Err)
	}
	return fmt.Sprintf("%s %s->%s: %v", e.Op, e.From, e.To, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func wrapFetch(op, from, to string, err error) error {
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{Op: op, From: from, To: to, Err: err}
}
