package dto

type WalletResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Formatted string `json:"formatted"`
	CreatedAt string `json:"created_at"`
}
