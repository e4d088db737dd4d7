package preferences

import (
	"testing"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(list []currency.Watched) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		out = append(out, w.Code)
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	s := New("xx")
	snap := s.Snapshot()

	assert.Equal(t, DefaultCounter, snap.CounterCurrency)
	assert.Equal(t, []string{"CNY", "EUR", "GBP", "JPY", "KRW", "USD"}, codes(snap.BaseCurrencies))
	assert.Equal(t, i18n.Fallback, snap.Language)
	assert.False(t, snap.OnboardingDone)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New(i18n.English)
	snap := s.Snapshot()
	snap.BaseCurrencies[0].IsSelected = true

	assert.False(t, s.Snapshot().BaseCurrencies[0].IsSelected)
}

func TestState_SetCounter(t *testing.T) {
	s := New(i18n.English)
	require.NoError(t, s.SetCounter(currency.Currency{Code: "usd"}))
	assert.Equal(t, currency.Currency{Code: "USD", Flag: "us"}, s.Counter())

	err := s.SetCounter(currency.Currency{Code: "XXX"})
	assert.ErrorIs(t, err, currency.ErrUnsupported)
	assert.Equal(t, "USD", s.Counter().Code)
}

func TestState_ToggleSelected(t *testing.T) {
	s := New(i18n.English)
	require.NoError(t, s.ToggleSelected(2))
	assert.True(t, s.Snapshot().BaseCurrencies[2].IsSelected)
	require.NoError(t, s.ToggleSelected(2))
	assert.False(t, s.Snapshot().BaseCurrencies[2].IsSelected)

	assert.ErrorIs(t, s.ToggleSelected(-1), ErrInvalidIndex)
	assert.ErrorIs(t, s.ToggleSelected(6), ErrInvalidIndex)
}

func TestState_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
		wantErr  bool
	}{
		{name: "down", from: 0, to: 2, want: []string{"EUR", "GBP", "CNY", "JPY", "KRW", "USD"}},
		{name: "up", from: 5, to: 0, want: []string{"USD", "CNY", "EUR", "GBP", "JPY", "KRW"}},
		{name: "to end", from: 1, to: 5, want: []string{"CNY", "GBP", "JPY", "KRW", "USD", "EUR"}},
		{name: "same place", from: 3, to: 3, want: []string{"CNY", "EUR", "GBP", "JPY", "KRW", "USD"}},
		{name: "out of range", from: 0, to: 6, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(i18n.English)
			err := s.Move(tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIndex)
				assert.Len(t, s.Snapshot().BaseCurrencies, 6)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(s.Snapshot().BaseCurrencies))
		})
	}
}

func TestState_AddSortsByFlag(t *testing.T) {
	s := New(i18n.English)
	require.NoError(t, s.Move(0, 5))
	require.NoError(t, s.Add(currency.Currency{Code: "AUD"}))

	assert.Equal(t, []string{"AUD", "CNY", "EUR", "GBP", "JPY", "KRW", "USD"}, codes(s.Snapshot().BaseCurrencies))
	assert.ErrorIs(t, s.Add(currency.Currency{Code: "AUD"}), ErrAlreadyWatched)
	assert.ErrorIs(t, s.Add(currency.Currency{Code: "ZZZ"}), currency.ErrUnsupported)
}

func TestState_Remove(t *testing.T) {
	s := New(i18n.English)
	require.NoError(t, s.Remove("gbp"))
	assert.Equal(t, []string{"CNY", "EUR", "JPY", "KRW", "USD"}, codes(s.Snapshot().BaseCurrencies))
	assert.ErrorIs(t, s.Remove("GBP"), ErrNotWatched)
}

func TestState_SetBaseCurrencies(t *testing.T) {
	s := New(i18n.English)
	list := []currency.Watched{
		{Currency: currency.Currency{Code: "usd"}, IsSelected: true},
		{Currency: currency.Currency{Code: "EUR"}},
	}
	require.NoError(t, s.SetBaseCurrencies(list))
	got := s.Snapshot().BaseCurrencies
	assert.Equal(t, []string{"USD", "EUR"}, codes(got))
	assert.Equal(t, "us", got[0].Flag)
	assert.True(t, got[0].IsSelected)

	dup := append(list, currency.Watched{Currency: currency.Currency{Code: "USD"}})
	assert.ErrorIs(t, s.SetBaseCurrencies(dup), ErrAlreadyWatched)
}

func TestState_SetLanguage(t *testing.T) {
	s := New(i18n.English)
	require.NoError(t, s.SetLanguage("ko"))
	assert.Equal(t, i18n.Korean, s.Language())
	assert.ErrorIs(t, s.SetLanguage("de"), i18n.ErrUnsupportedLanguage)
}

func TestState_ObserversSeeChangedKey(t *testing.T) {
	s := New(i18n.English)
	var keys []string
	s.Subscribe(func(key string, snap Snapshot) {
		keys = append(keys, key)
	})

	require.NoError(t, s.SetCounter(currency.Currency{Code: "JPY"}))
	require.NoError(t, s.ToggleSelected(0))
	require.NoError(t, s.SetLanguage(i18n.Japanese))
	s.CompleteOnboarding()
	assert.Error(t, s.ToggleSelected(99))

	assert.Equal(t, []string{KeyCounterCurrency, KeyBaseCurrencies, KeyLanguage, KeyOnboardingDone}, keys)
}

func TestOnboard(t *testing.T) {
	tests := []struct {
		country     string
		wantCounter string
		wantBase    []string
	}{
		{country: "KR", wantCounter: "KRW", wantBase: []string{"CNY", "EUR", "GBP", "JPY", "USD"}},
		{country: "us", wantCounter: "USD", wantBase: []string{"CNY", "EUR", "GBP", "JPY", "KRW"}},
		{country: "fr", wantCounter: "EUR", wantBase: []string{"CNY", "GBP", "JPY", "KRW", "USD"}},
		{country: "br", wantCounter: "BRL", wantBase: []string{"CNY", "EUR", "GBP", "JPY", "KRW", "USD"}},
	}
	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			s := New(i18n.English)
			snap, err := s.Onboard(tt.country)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCounter, snap.CounterCurrency.Code)
			assert.Equal(t, tt.wantBase, codes(snap.BaseCurrencies))
			assert.True(t, snap.OnboardingDone)
		})
	}
}
