package exchange

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched table is served without a new request.
const DefaultTTL = time.Hour

// Store is the byte store behind a Cache. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Cache wraps a Fetcher so that each key is requested at most once per TTL
// window. Concurrent misses on one key share a single upstream request.
// Failures are returned to every waiting caller and are not cached.
type Cache struct {
	fetcher Fetcher
	store   Store
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
	rec     Recorder
	group   singleflight.Group
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(c *Cache) {
		if rec != nil {
			c.rec = rec
		}
	}
}

// NewCache returns a Cache over fetcher backed by store.
func NewCache(fetcher Fetcher, store Store, opts ...Option) *Cache {
	c := &Cache{
		fetcher: fetcher,
		store:   store,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  slog.Default(),
		rec:     nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "rate-cache")
	return c
}

type entry struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Rates     json.RawMessage `json:"rates"`
}

// FetchOne returns the table for from->to. Identical codes short-circuit to
// a rate of 1 without touching the provider.
func (c *Cache) FetchOne(ctx context.Context, from, to string) (*Rates, error) {
	from, to = normalize(from), normalize(to)
	if from == to {
		return identity(to), nil
	}
	rates, _, err := c.get(ctx, OpFetchOne, pairKey(from, to), c.fetchPair(from, to))
	if err != nil {
		return nil, wrapFetch(OpFetchOne, from, to, err)
	}
	return rates, nil
}

// FetchAll returns every rate relative to from.
func (c *Cache) FetchAll(ctx context.Context, from string) (*Rates, error) {
	from = normalize(from)
	key := OpFetchAll + ":" + from
	rates, _, err := c.get(ctx, OpFetchAll, key, func(ctx context.Context) (*Rates, error) {
		return c.fetcher.FetchAll(ctx, from)
	})
	if err != nil {
		return nil, wrapFetch(OpFetchAll, from, "", err)
	}
	return rates, nil
}

// Quote returns the from->to rate together with its validity window.
func (c *Cache) Quote(ctx context.Context, from, to string) (*Quote, error) {
	from, to = normalize(from), normalize(to)
	if from == to {
		now := c.now()
		return &Quote{From: from, To: to, Rate: 1, FetchedAt: now, ExpiresAt: now.Add(c.ttl)}, nil
	}
	rates, fetchedAt, err := c.get(ctx, OpFetchOne, pairKey(from, to), c.fetchPair(from, to))
	if err != nil {
		return nil, wrapFetch(OpFetchOne, from, to, err)
	}
	rate, err := rates.Rate(to)
	if err != nil {
		return nil, wrapFetch(OpFetchOne, from, to, err)
	}
	return &Quote{From: from, To: to, Rate: rate, FetchedAt: fetchedAt, ExpiresAt: fetchedAt.Add(c.ttl)}, nil
}

func pairKey(from, to string) string { return OpFetchOne + ":" + from + ":" + to }

// fetchPair is shared by FetchOne and Quote, which use the same key. A table
// without the target rate is an error and never reaches the store.
func (c *Cache) fetchPair(from, to string) func(context.Context) (*Rates, error) {
	return func(ctx context.Context) (*Rates, error) {
		r, err := c.fetcher.FetchOne(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if _, err := r.Rate(to); err != nil {
			return nil, err
		}
		return r, nil
	}
}

func (c *Cache) get(
	ctx context.Context,
	op, key string,
	fetch func(context.Context) (*Rates, error),
) (*Rates, time.Time, error) {
	if e, ok := c.lookup(ctx, key); ok {
		c.rec.ObserveCache(op, true)
		c.logger.Debug("cache hit", "key", key)
		return decode(e)
	}
	c.rec.ObserveCache(op, false)
	c.logger.Debug("cache miss", "key", key)

	// The flight outlives whichever caller started it; waiters sharing it must
	// not fail because that caller went away.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (any, error) {
		// another caller may have filled the key while we waited
		if e, ok := c.lookup(flightCtx, key); ok {
			return e, nil
		}
		rates, err := fetch(flightCtx)
		c.rec.ObserveRequest(op, err)
		if err != nil {
			c.logger.Warn("rate fetch failed", "key", key, "error", err)
			return nil, err
		}
		raw, err := json.Marshal(rates)
		if err != nil {
			return nil, err
		}
		e := &entry{FetchedAt: c.now(), Rates: raw}
		data, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(flightCtx, key, data, c.ttl); err != nil {
			c.logger.Warn("cache store failed", "key", key, "error", err)
		}
		return e, nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	if shared {
		c.logger.Debug("shared in-flight fetch", "key", key)
	}
	return decode(v.(*entry))
}

func (c *Cache) lookup(ctx context.Context, key string) (*entry, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	if !c.now().Before(e.FetchedAt.Add(c.ttl)) {
		return nil, false
	}
	return &e, true
}

// decode gives every caller its own copy of the table.
func decode(e *entry) (*Rates, time.Time, error) {
	var r Rates
	if err := json.Unmarshal(e.Rates, &r); err != nil {
		return nil, time.Time{}, err
	}
	return &r, e.FetchedAt, nil
}
