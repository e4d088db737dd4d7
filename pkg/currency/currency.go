// Package currency holds the static catalog of currencies the app can show,
// each paired with the flag (lowercase country or region key) it is drawn with.
package currency

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnsupported is returned for a code missing from the catalog.
	ErrUnsupported = errors.New("unsupported currency")
)

// Fallback is the counter currency used when a country has no currency of
// its own in the catalog.
var Fallback = Currency{Code: "EUR", Flag: "eu"}

// Currency is a currency code and its flag key.
type Currency struct {
	Code string `json:"code" validate:"required,len=3,uppercase"`
	Flag string `json:"flag" validate:"required"`
}

func (c Currency) String() string { return c.Code }

// Watched is an entry of the user's rate list. IsSelected flips the rate
// display direction for that row.
type Watched struct {
	Currency
	IsSelected bool `json:"isSelected"`
}

var catalog = []Currency{
	{Code: "AED", Flag: "ae"},
	{Code: "AUD", Flag: "au"},
	{Code: "BRL", Flag: "br"},
	{Code: "CAD", Flag: "ca"},
	{Code: "CHF", Flag: "ch"},
	{Code: "CNY", Flag: "cn"},
	{Code: "CZK", Flag: "cz"},
	{Code: "DKK", Flag: "dk"},
	{Code: "EGP", Flag: "eg"},
	{Code: "EUR", Flag: "eu"},
	{Code: "GBP", Flag: "gb"},
	{Code: "HKD", Flag: "hk"},
	{Code: "HUF", Flag: "hu"},
	{Code: "IDR", Flag: "id"},
	{Code: "ILS", Flag: "il"},
	{Code: "INR", Flag: "in"},
	{Code: "JPY", Flag: "jp"},
	{Code: "KRW", Flag: "kr"},
	{Code: "KWD", Flag: "kw"},
	{Code: "MXN", Flag: "mx"},
	{Code: "MYR", Flag: "my"},
	{Code: "NOK", Flag: "no"},
	{Code: "NZD", Flag: "nz"},
	{Code: "PHP", Flag: "ph"},
	{Code: "PLN", Flag: "pl"},
	{Code: "RUB", Flag: "ru"},
	{Code: "SAR", Flag: "sa"},
	{Code: "SEK", Flag: "se"},
	{Code: "SGD", Flag: "sg"},
	{Code: "THB", Flag: "th"},
	{Code: "TRY", Flag: "tr"},
	{Code: "TWD", Flag: "tw"},
	{Code: "USD", Flag: "us"},
	{Code: "VND", Flag: "vn"},
	{Code: "ZAR", Flag: "za"},
}

var (
	byCode = make(map[string]Currency, len(catalog))
	byFlag = make(map[string]Currency, len(catalog))
)

func init() {
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].Flag < catalog[j].Flag })
	for _, c := range catalog {
		byCode[c.Code] = c
		byFlag[c.Flag] = c
	}
}

// All returns the catalog ordered by flag.
func All() []Currency {
	out := make([]Currency, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for code (case-insensitive).
func Lookup(code string) (Currency, error) {
	c, ok := byCode[strings.ToUpper(code)]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	return c, nil
}

// IsSupported reports whether code is in the catalog.
func IsSupported(code string) bool {
	_, ok := byCode[strings.ToUpper(code)]
	return ok
}

// Search filters the catalog to codes starting with word, ignoring case.
// An empty word returns the whole catalog.
func Search(word string) []Currency {
	if word == "" {
		return All()
	}
	prefix := strings.ToUpper(word)
	var out []Currency
	for _, c := range catalog {
		if strings.HasPrefix(c.Code, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// FromCountry returns the currency drawn with the given country's flag, or
// Fallback when the country has none in the catalog.
func FromCountry(country string) Currency {
	if c, ok := byFlag[strings.ToLower(country)]; ok {
		return c
	}
	return Fallback
}

// Defaults is the initial watched list.
func Defaults() []Watched {
	codes := []string{"CNY", "EUR", "GBP", "JPY", "KRW", "USD"}
	out := make([]Watched, 0, len(codes))
	for _, code := range codes {
		out = append(out, Watched{Currency: byCode[code]})
	}
	return out
}
