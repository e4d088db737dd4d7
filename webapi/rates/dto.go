package rates

// ConvertRequest represents the request body for pricing an amount.
type ConvertRequest struct {
	From   string `json:"from" validate:"required,len=3"`
	To     string `json:"to" validate:"required,len=3"`
	Amount string `json:"amount" validate:"required,numeric"`
}
