package dto

type QuestionLogResponse struct {
	ID        string  `json:"id"`
	Question  string  `json:"question"`
	Intent    string  `json:"intent"`
	Outcome   string  `json:"outcome"`
	Answer    string  `json:"answer"`
	Value     *string `json:"value,omitempty"`
	Source    string  `json:"source"`
	CreatedAt string  `json:"created_at"`
}
