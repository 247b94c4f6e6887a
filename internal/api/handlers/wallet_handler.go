package handlers

import (
	"fin-assistant/internal/dto"
	"fin-assistant/internal/query"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WalletHandler struct {
	assistant Assistant
	logger    *zap.Logger
}

func NewWalletHandler(assistant Assistant, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// ListWallets godoc
// @Summary List the caller's wallets
// @Tags wallets
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.WalletResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/wallets [get]
func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	session, err := openSession(c, h.assistant, h.logger)
	if session == nil {
		return err
	}

	resp := make([]dto.WalletResponse, 0, len(session.Wallets))
	for _, w := range session.Wallets {
		resp = append(resp, dto.WalletResponse{
			ID:        w.ID.String(),
			Name:      w.Name,
			Balance:   w.Balance.String(),
			Formatted: query.FormatCurrency(w.Balance),
			CreatedAt: w.CreatedAt.Format(dateLayout),
		})
	}
	return c.JSON(resp)
}

// ListTransactions godoc
// @Summary List the caller's transactions across all wallets, newest first
// @Tags wallets
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/transactions [get]
func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	session, err := openSession(c, h.assistant, h.logger)
	if session == nil {
		return err
	}

	resp := make([]dto.TransactionResponse, 0, len(session.Transactions))
	for _, t := range session.Transactions {
		item := dto.TransactionResponse{
			ID:       t.ID,
			Amount:   t.Amount,
			Category: t.CategoryName,
			Group:    t.GroupName,
		}
		if !t.Date.IsZero() {
			item.Date = t.Date.Format(dateLayout)
		}
		resp = append(resp, item)
	}
	return c.JSON(resp)
}
