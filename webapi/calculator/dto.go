package calculator

// CreateSessionRequest opens a calculator. Empty codes default to the first
// watched currency and the counter currency.
type CreateSessionRequest struct {
	Source string `json:"source" validate:"omitempty,len=3"`
	Target string `json:"target" validate:"omitempty,len=3"`
}

// PressRequest carries key labels applied in order, e.g. ["6","×","3","="].
type PressRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
}

// PairRequest changes either side of the pair; an empty code keeps it.
type PairRequest struct {
	Source string `json:"source" validate:"omitempty,len=3"`
	Target string `json:"target" validate:"omitempty,len=3"`
}
