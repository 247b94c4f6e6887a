package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fin-assistant/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// LLMService answers questions the query engine does not recognise as
// financial. It never sees the user's transactions.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

const systemInstruction = `Bạn là trợ lý ảo thân thiện của ứng dụng quản lý tài chính cá nhân.

- Trả lời ngắn gọn, rõ ràng bằng ngôn ngữ của người dùng (mặc định là tiếng Việt).
- Bạn KHÔNG có quyền truy cập dữ liệu giao dịch của người dùng. Không bịa ra số tiền, số dư hay giao dịch.
- Nếu người dùng hỏi về số liệu chi tiêu, thu nhập hoặc số dư, hãy gợi ý họ hỏi lại theo dạng cụ thể, ví dụ: "Tôi đã chi bao nhiêu tháng này?" hoặc "Thu nhập tháng trước là bao nhiêu?".
- Với câu hỏi chung về tài chính cá nhân (tiết kiệm, lập ngân sách, quản lý nợ), hãy đưa ra lời khuyên thực tế, dễ làm theo.
- Với câu hỏi ngoài lề, hãy trả lời lịch sự và ngắn gọn.`

// ErrEmptyCompletion is returned when GigaChat produced no choices.
var ErrEmptyCompletion = errors.New("no response from LLM")

func NewLLMService(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GIGACHAT_API_KEY is not set")
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "GigaChat"
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.5

	logger.Info("GigaChat fallback ready", zap.String("model", modelName))

	return &LLMService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

// Chat sends a single user turn and returns the model's reply.
func (s *LLMService) Chat(ctx context.Context, question string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: question},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.logger.Debug("GigaChat reply received", zap.Int("text_length", len(text)))
	return text, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
