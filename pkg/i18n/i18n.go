// Package i18n holds the UI string catalog and locale detection.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language codes used by the catalog. jp and cn are the app's own codes,
// not BCP 47.
const (
	English  = "en"
	Korean   = "ko"
	Japanese = "jp"
	Chinese  = "cn"

	Fallback = English
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists the supported codes in menu order.
func Languages() []string {
	return []string{English, Korean, Japanese, Chinese}
}

// IsSupported reports whether code has a catalog.
func IsSupported(code string) bool {
	_, ok := catalog[code]
	return ok
}

// Parse validates a catalog code.
func Parse(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !IsSupported(code) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return code, nil
}

var fromBase = map[string]string{
	"en": English,
	"ko": Korean,
	"ja": Japanese,
	"zh": Chinese,
}

// Detect maps a device locale such as "ko-KR" or "zh_Hant_TW" to a catalog
// code, using only its base language. Unknown or empty locales give Fallback.
func Detect(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return Fallback
	}
	base, _ := tag.Base()
	if code, ok := fromBase[base.String()]; ok {
		return code
	}
	return Fallback
}

// Region returns the lowercase country of locale ("ko-KR" -> "kr"). A bare
// language gets its most likely region ("ja" -> "jp"); "" when unknown.
func Region(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}
	region, conf := tag.Region()
	if conf == language.No || region.String() == "ZZ" || !region.IsCountry() {
		return ""
	}
	return strings.ToLower(region.String())
}

// LanguageName is the English name of a catalog code, used as the key of the
// language menu entries.
func LanguageName(code string) string {
	switch code {
	case Korean:
		return "korean"
	case English:
		return "english"
	case Chinese:
		return "chinese"
	case Japanese:
		return "japanese"
	}
	return ""
}

// T looks key up in lang's catalog, then in Fallback. A missing key is
// returned as is.
func T(lang, key string) string {
	if s, ok := catalog[lang][key]; ok {
		return s
	}
	if s, ok := catalog[Fallback][key]; ok {
		return s
	}
	return key
}

// Messages returns a copy of lang's catalog, or Fallback's when lang has
// none.
func Messages(lang string) map[string]string {
	src, ok := catalog[lang]
	if !ok {
		src = catalog[Fallback]
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// PreferredLocale returns the highest weighted tag of an Accept-Language
// header, or "" when the header is empty or malformed.
func PreferredLocale(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
