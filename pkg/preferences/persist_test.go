package preferences

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/amirasaad/exrate/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
	err    error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func TestEncode(t *testing.T) {
	snap := New(i18n.Korean).Snapshot()
	snap.BaseCurrencies = snap.BaseCurrencies[:1]

	v, err := Encode(KeyCounterCurrency, snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"KRW","flag":"kr"}`, v)

	v, err = Encode(KeyBaseCurrencies, snap)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code":"CNY","flag":"cn","isSelected":false}]`, v)

	v, err = Encode(KeyLanguage, snap)
	require.NoError(t, err)
	assert.Equal(t, "ko", v)

	snap.OnboardingDone = true
	v, err = Encode(KeyOnboardingDone, snap)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	_, err = Encode("nope", snap)
	assert.Error(t, err)
}

func TestPersister_WritesAndRoundTrips(t *testing.T) {
	store := newMemStore()
	s := New(i18n.English)
	p := NewPersister(store, testutils.DiscardLogger())
	p.Attach(s)

	_, err := s.Onboard("jp")
	require.NoError(t, err)
	require.NoError(t, s.ToggleSelected(0))
	require.NoError(t, s.SetLanguage(i18n.Chinese))
	require.NoError(t, p.Close(context.Background()))

	assert.Equal(t, "true", store.data[KeyOnboardingDone])
	assert.Equal(t, "cn", store.data[KeyLanguage])

	loaded, err := Load(context.Background(), store, i18n.English, testutils.DiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), loaded.Snapshot())
}

func TestPersister_FailureDoesNotRollBack(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk full")
	s := New(i18n.English)
	p := NewPersister(store, testutils.DiscardLogger())
	p.Attach(s)

	require.NoError(t, s.SetCounter(currency.Currency{Code: "USD"}))
	require.NoError(t, p.Close(context.Background()))

	assert.Equal(t, "USD", s.Counter().Code)
	assert.GreaterOrEqual(t, store.writes, 1)
}

type slowStore struct {
	*memStore
	delay time.Duration
}

func (s slowStore) Set(ctx context.Context, key, value string) error {
	time.Sleep(s.delay)
	return s.memStore.Set(ctx, key, value)
}

func TestPersister_CoalescesAndKeepsLatest(t *testing.T) {
	store := slowStore{memStore: newMemStore(), delay: 5 * time.Millisecond}
	s := New(i18n.English)
	p := NewPersister(store, testutils.DiscardLogger())
	p.Attach(s)

	for i := 0; i < 20; i++ {
		require.NoError(t, s.ToggleSelected(0))
	}
	require.NoError(t, s.SetLanguage(i18n.Korean))
	require.NoError(t, p.Close(context.Background()))

	assert.Less(t, store.writes, 21)
	v, err := Encode(KeyBaseCurrencies, s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, v, store.data[KeyBaseCurrencies])
	assert.Equal(t, "ko", store.data[KeyLanguage])

	// changes after close are dropped, not panics
	require.NoError(t, s.ToggleSelected(0))
}

func TestPersister_CloseHonorsContext(t *testing.T) {
	store := slowStore{memStore: newMemStore(), delay: 200 * time.Millisecond}
	s := New(i18n.English)
	p := NewPersister(store, testutils.DiscardLogger())
	p.Attach(s)
	require.NoError(t, s.SetLanguage(i18n.Korean))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Close(ctx), context.DeadlineExceeded)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]string
		wantCounter string
		wantBase    []string
		wantLang    string
		wantDone    bool
	}{
		{
			name:        "empty store keeps defaults",
			data:        map[string]string{},
			wantCounter: "KRW",
			wantBase:    []string{"CNY", "EUR", "GBP", "JPY", "KRW", "USD"},
			wantLang:    i18n.Japanese,
		},
		{
			name: "stored values",
			data: map[string]string{
				KeyCounterCurrency: `{"code":"USD","flag":"us"}`,
				KeyBaseCurrencies:  `[{"code":"EUR","flag":"eu","isSelected":true},{"code":"XXX","flag":"xx"},{"code":"EUR","flag":"eu"}]`,
				KeyLanguage:        "ko",
				KeyOnboardingDone:  "true",
			},
			wantCounter: "USD",
			wantBase:    []string{"EUR"},
			wantLang:    i18n.Korean,
			wantDone:    true,
		},
		{
			name: "corrupt values",
			data: map[string]string{
				KeyCounterCurrency: `{"code":`,
				KeyBaseCurrencies:  `nope`,
				KeyLanguage:        "de",
			},
			wantCounter: "KRW",
			wantBase:    []string{"CNY", "EUR", "GBP", "JPY", "KRW", "USD"},
			wantLang:    i18n.Japanese,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.data = tt.data
			s, err := Load(context.Background(), store, i18n.Japanese, testutils.DiscardLogger())
			require.NoError(t, err)

			snap := s.Snapshot()
			assert.Equal(t, tt.wantCounter, snap.CounterCurrency.Code)
			assert.Equal(t, tt.wantBase, codes(snap.BaseCurrencies))
			assert.Equal(t, tt.wantLang, snap.Language)
			assert.Equal(t, tt.wantDone, snap.OnboardingDone)
		})
	}
}

func TestLoad_StoreError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection reset")
	_, err := Load(context.Background(), store, i18n.English, nil)
	assert.ErrorIs(t, err, store.err)
}
