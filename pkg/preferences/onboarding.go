package preferences

import "github.com/amirasaad/exrate/pkg/currency"

// Onboard runs the first-launch flow for a device in country: the counter
// currency follows the country (EUR when it has none of its own), the
// watched list is the default list without the counter, and onboarding is
// marked done.
func (s *State) Onboard(country string) (Snapshot, error) {
	counter := currency.FromCountry(country)
	if err := s.SetCounter(counter); err != nil {
		return Snapshot{}, err
	}

	base := make([]currency.Watched, 0, len(currency.Defaults()))
	for _, w := range currency.Defaults() {
		if w.Code != counter.Code {
			base = append(base, w)
		}
	}
	if err := s.SetBaseCurrencies(base); err != nil {
		return Snapshot{}, err
	}
	s.CompleteOnboarding()
	return s.Snapshot(), nil
}
