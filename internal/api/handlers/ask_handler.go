package handlers

import (
	"context"
	"errors"
	"time"

	"fin-assistant/internal/dto"
	"fin-assistant/internal/models"
	"fin-assistant/internal/query"
	"fin-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Assistant is the part of service.AssistantService the HTTP layer uses.
type Assistant interface {
	OpenSessionByUserID(ctx context.Context, userID uuid.UUID) (*service.Session, error)
	Ask(ctx context.Context, session *service.Session, question string) (*service.Reply, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuestionLog, error)
}

type AskHandler struct {
	assistant Assistant
	logger    *zap.Logger
}

func NewAskHandler(assistant Assistant, logger *zap.Logger) *AskHandler {
	return &AskHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// openSession loads the caller's data or writes the error response.
func openSession(c *fiber.Ctx, assistant Assistant, logger *zap.Logger) (*service.Session, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	session, err := assistant.OpenSessionByUserID(c.Context(), userID)
	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, service.ErrUserNotFound):
		return nil, errorJSON(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrNoWallets):
		return nil, errorJSON(c, fiber.StatusNotFound, "Không tìm thấy ví nào của người dùng")
	default:
		logger.Error("Failed to open session", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, errorJSON(c, fiber.StatusInternalServerError, "Failed to load user data")
	}
}

// Ask godoc
// @Summary Ask a question about your finances
// @Description Answers income, expense, category, comparison and balance questions from the caller's transactions. Other questions go to the chat model.
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question"
// @Security Bearer
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/ask [post]
func (h *AskHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := openSession(c, h.assistant, h.logger)
	if session == nil {
		return err
	}

	reply, err := h.assistant.Ask(c.Context(), session, req.Question)
	if err != nil {
		if errors.Is(err, service.ErrChatUnavailable) {
			return errorJSON(c, fiber.StatusServiceUnavailable, "Lỗi khi gọi LLM")
		}
		h.logger.Error("Ask failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to answer question")
	}
	if reply.Outcome == query.OutcomeInvalidInput {
		return errorJSON(c, fiber.StatusBadRequest, reply.Text)
	}

	resp := dto.AskResponse{
		Outcome: reply.Outcome.String(),
		Intent:  reply.Intent.String(),
		Answer:  reply.Text,
		Value:   decimalString(reply.Value),
		Source:  reply.Source,
	}
	if reply.Range != nil {
		start, end := formatDate(reply.Range)
		resp.Range = &dto.DateRangeResponse{Start: start, End: end}
	}
	return c.JSON(resp)
}

// History godoc
// @Summary List recent questions
// @Tags assistant
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Security Bearer
// @Success 200 {array} dto.QuestionLogResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/history [get]
func (h *AskHandler) History(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	logs, err := h.assistant.History(c.Context(), userID, c.QueryInt("limit", service.DefaultHistoryLimit))
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to list history")
	}

	resp := make([]dto.QuestionLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, dto.QuestionLogResponse{
			ID:        l.ID.String(),
			Question:  l.Question,
			Intent:    l.Intent,
			Outcome:   l.Outcome,
			Answer:    l.Answer,
			Value:     decimalString(l.Value),
			Source:    l.Source,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(resp)
}

// Help godoc
// @Summary Example questions
// @Tags assistant
// @Produce json
// @Success 200 {object} dto.HelpResponse
// @Router /api/v1/help [get]
func (h *AskHandler) Help(c *fiber.Ctx) error {
	return c.JSON(dto.HelpResponse{Text: query.HelpText})
}
