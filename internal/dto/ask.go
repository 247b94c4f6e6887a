package dto

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

// DateRangeResponse holds inclusive calendar days as YYYY-MM-DD.
type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AskResponse struct {
	Outcome string             `json:"outcome"`
	Intent  string             `json:"intent"`
	Answer  string             `json:"answer"`
	Value   *string            `json:"value,omitempty"`
	Source  string             `json:"source"`
	Range   *DateRangeResponse `json:"range,omitempty"`
}

type HelpResponse struct {
	Text string `json:"text"`
}
