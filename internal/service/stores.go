package service

import (
	"context"

	"fin-assistant/internal/models"
	"fin-assistant/internal/query"

	"github.com/google/uuid"
)

// Storage dependencies. The repository package satisfies all of them.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type WalletStore interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Wallet, error)
}

type TransactionStore interface {
	ListByWalletIDs(ctx context.Context, walletIDs []uuid.UUID) ([]query.Transaction, error)
}

type QuestionLogStore interface {
	Create(ctx context.Context, l *models.QuestionLog) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuestionLog, error)
}

// ChatFallback answers questions that carry no financial intent.
type ChatFallback interface {
	Chat(ctx context.Context, question string) (string, error)
}
