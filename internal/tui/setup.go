package tui

import (
	"fmt"
	"io"
	"slices"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/amirasaad/exrate/pkg/preferences"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Choices is what the setup wizard collects.
type Choices struct {
	Language string
	Counter  string
	Watched  []string
}

// DefaultChoices pre-fills the wizard. Before onboarding the counter
// currency comes from the locale's region.
func DefaultChoices(snap preferences.Snapshot, locale string) Choices {
	c := Choices{Language: snap.Language, Counter: snap.CounterCurrency.Code}
	if !snap.OnboardingDone {
		c.Counter = currency.FromCountry(i18n.Region(locale)).Code
	}
	for _, w := range snap.BaseCurrencies {
		if w.Code != c.Counter {
			c.Watched = append(c.Watched, w.Code)
		}
	}
	return c
}

// Apply stores c and marks onboarding done. The counter currency is never
// kept in the watched list.
func Apply(prefs *preferences.State, c Choices) error {
	if err := prefs.SetLanguage(c.Language); err != nil {
		return err
	}
	if err := prefs.SetCounter(currency.Currency{Code: c.Counter}); err != nil {
		return err
	}
	list := make([]currency.Watched, 0, len(c.Watched))
	for _, code := range c.Watched {
		if code != c.Counter {
			list = append(list, currency.Watched{Currency: currency.Currency{Code: code}})
		}
	}
	if err := prefs.SetBaseCurrencies(list); err != nil {
		return err
	}
	prefs.CompleteOnboarding()
	return nil
}

func currencyOptions(selected ...string) []huh.Option[string] {
	all := currency.All()
	opts := make([]huh.Option[string], 0, len(all))
	for _, c := range all {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", c.Code, c.Flag), c.Code).
			Selected(slices.Contains(selected, c.Code)))
	}
	return opts
}

// RunSetup walks through language, counter currency and watched list, then
// applies the answers.
func RunSetup(prefs *preferences.State, locale string, out io.Writer) error {
	choices := DefaultChoices(prefs.Snapshot(), locale)

	fmt.Fprintln(out, headerStyle.Render("EXRATE SETUP"))
	fmt.Fprintln(out, lipgloss.NewStyle().Foreground(subtle).Render(i18n.T(choices.Language, "Guide.message")))

	langOpts := make([]huh.Option[string], 0, len(i18n.Languages()))
	for _, code := range i18n.Languages() {
		langOpts = append(langOpts, huh.NewOption(i18n.T(code, i18n.LanguageName(code)), code))
	}

	fmt.Fprintln(out, stepStyle.Render("1. "+i18n.T(choices.Language, "language")))
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(i18n.T(choices.Language, "language")).
			Options(langOpts...).
			Value(&choices.Language),
	)).Run(); err != nil {
		return err
	}

	lang := choices.Language
	fmt.Fprintln(out, stepStyle.Render("2. "+i18n.T(lang, "counter currency")))
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(i18n.T(lang, "counter currency")).
			Options(currencyOptions()...).
			Height(10).
			Value(&choices.Counter),
	)).Run(); err != nil {
		return err
	}

	fmt.Fprintln(out, stepStyle.Render("3. "+i18n.T(lang, "base currencies")))
	var confirm bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(i18n.T(lang, "base currencies")).
			Options(currencyOptions(choices.Watched...)...).
			Height(12).
			Value(&choices.Watched),
		huh.NewConfirm().
			Title(i18n.T(lang, "continue")+"?").
			Value(&confirm),
	)).Run(); err != nil {
		return err
	}
	if !confirm {
		return nil
	}
	return Apply(prefs, choices)
}
