package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fin-assistant/internal/models"
	"fin-assistant/internal/query"
	"fin-assistant/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNoWallets       = errors.New("user has no wallets")
	ErrChatUnavailable = errors.New("chat model unavailable")
)

// DefaultHistoryLimit caps History when the caller passes no limit.
const DefaultHistoryLimit = 20

// Session is one user's loaded data. Transactions is the union over all
// wallets, newest first.
type Session struct {
	User         *models.User
	Wallets      []*models.Wallet
	Transactions []query.Transaction
}

// Reply is what the assistant says back to one question.
type Reply struct {
	Outcome query.Outcome
	Intent  query.IntentKind
	Text    string
	Value   *decimal.Decimal
	Source  string
	Range   *query.DateRange
}

type AssistantService struct {
	users        UserStore
	wallets      WalletStore
	transactions TransactionStore
	questions    QuestionLogStore
	chat         ChatFallback
	interpreter  *query.Interpreter
	logger       *zap.Logger
	now          func() time.Time
}

// NewAssistantService wires the assistant. chat and questions may be nil:
// without chat non-financial questions fail with ErrChatUnavailable, and
// without questions nothing is recorded.
func NewAssistantService(
	users UserStore,
	wallets WalletStore,
	transactions TransactionStore,
	questions QuestionLogStore,
	chat ChatFallback,
	interpreter *query.Interpreter,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		users:        users,
		wallets:      wallets,
		transactions: transactions,
		questions:    questions,
		chat:         chat,
		interpreter:  interpreter,
		logger:       logger,
		now:          time.Now,
	}
}

// OpenSession loads the user with the given email and all of their data.
func (s *AssistantService) OpenSession(ctx context.Context, email string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err)
	}
	return s.load(ctx, user)
}

func (s *AssistantService) OpenSessionByUserID(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err)
	}
	return s.load(ctx, user)
}

func lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to load user: %w", err)
}

func (s *AssistantService) load(ctx context.Context, user *models.User) (*Session, error) {
	wallets, err := s.wallets.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	if len(wallets) == 0 {
		return nil, ErrNoWallets
	}

	ids := make([]uuid.UUID, len(wallets))
	for i, w := range wallets {
		ids[i] = w.ID
	}
	txs, err := s.transactions.ListByWalletIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	s.logger.Info("Session opened",
		zap.String("user_id", user.ID.String()),
		zap.Int("wallets", len(wallets)),
		zap.Int("transactions", len(txs)),
	)
	return &Session{User: user, Wallets: wallets, Transactions: txs}, nil
}

// Ask answers question from the session's transactions, handing
// non-financial questions to the chat model.
func (s *AssistantService) Ask(ctx context.Context, session *Session, question string) (*Reply, error) {
	ans, err := s.interpreter.Answer(ctx, question, session.Transactions)
	if err != nil {
		return nil, err
	}

	reply := &Reply{
		Outcome: ans.Outcome,
		Intent:  ans.Intent.Kind,
		Text:    ans.Text,
		Value:   ans.Value,
		Source:  models.SourceQuery,
		Range:   ans.Range,
	}

	if ans.Outcome == query.OutcomeNonFinancial {
		if s.chat == nil {
			return nil, ErrChatUnavailable
		}
		text, err := s.chat.Chat(ctx, question)
		if err != nil {
			s.logger.Warn("Chat fallback failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrChatUnavailable, err)
		}
		reply.Text = text
		reply.Source = models.SourceLLM
	}

	if ans.Outcome != query.OutcomeInvalidInput {
		s.record(ctx, session.User.ID, question, reply)
	}
	return reply, nil
}

// record stores the reply in the question log. Failures are logged only.
func (s *AssistantService) record(ctx context.Context, userID uuid.UUID, question string, reply *Reply) {
	if s.questions == nil {
		return
	}
	entry := &models.QuestionLog{
		ID:        uuid.New(),
		UserID:    userID,
		Question:  strings.TrimSpace(sanitizeUTF8(question)),
		Intent:    reply.Intent.String(),
		Outcome:   reply.Outcome.String(),
		Answer:    sanitizeUTF8(reply.Text),
		Value:     reply.Value,
		Source:    reply.Source,
		CreatedAt: s.now(),
	}
	if err := s.questions.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to record question", zap.Error(err), zap.String("user_id", userID.String()))
	}
}

// History returns the user's latest questions, newest first.
func (s *AssistantService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuestionLog, error) {
	if s.questions == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	logs, err := s.questions.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return logs, nil
}
