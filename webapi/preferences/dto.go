package preferences

// CurrencyRequest names a single currency.
type CurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3"`
}

// WatchedRequest is one entry of a replacement watched list.
type WatchedRequest struct {
	Code       string `json:"code" validate:"required,len=3"`
	IsSelected bool   `json:"isSelected"`
}

// BaseCurrenciesRequest replaces the watched list.
type BaseCurrenciesRequest struct {
	BaseCurrencies []WatchedRequest `json:"baseCurrencies" validate:"dive"`
}

// MoveRequest reorders the watched list.
type MoveRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

// LanguageRequest switches the UI language.
type LanguageRequest struct {
	Lang string `json:"lang" validate:"required"`
}

// OnboardingRequest runs first-launch setup. Country is optional; without
// it the region comes from Accept-Language, then from the device locale.
type OnboardingRequest struct {
	Country string `json:"country" validate:"omitempty,len=2,alpha"`
}

// UpdateRequest changes several preferences at once. Absent fields are left
// alone; an empty baseCurrencies array clears the watched list.
type UpdateRequest struct {
	CounterCurrency string           `json:"counterCurrency" validate:"omitempty,len=3"`
	BaseCurrencies  []WatchedRequest `json:"baseCurrencies" validate:"dive"`
	Lang            string           `json:"lang"`
}
