package dto

type TransactionResponse struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category"`
	Group    string `json:"group"`
}
