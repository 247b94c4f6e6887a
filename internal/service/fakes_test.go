package service

import (
	"context"
	"errors"
	"sync"

	"fin-assistant/internal/models"
	"fin-assistant/internal/query"
	"fin-assistant/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	users []*models.User
	err   error
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

type fakeWallets map[uuid.UUID][]*models.Wallet

func (f fakeWallets) ListByUserID(_ context.Context, userID uuid.UUID) ([]*models.Wallet, error) {
	return f[userID], nil
}

type fakeTransactions struct {
	byWallet map[uuid.UUID][]query.Transaction
	asked    []uuid.UUID
}

func (f *fakeTransactions) ListByWalletIDs(_ context.Context, ids []uuid.UUID) ([]query.Transaction, error) {
	f.asked = ids
	var out []query.Transaction
	for _, id := range ids {
		out = append(out, f.byWallet[id]...)
	}
	return out, nil
}

type fakeQuestions struct {
	logs []*models.QuestionLog
	err  error
}

func (f *fakeQuestions) Create(_ context.Context, l *models.QuestionLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeQuestions) ListByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*models.QuestionLog, error) {
	var out []*models.QuestionLog
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].UserID == userID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

type fakeChat struct {
	reply string
	err   error
	calls []string
}

func (f *fakeChat) Chat(_ context.Context, question string) (string, error) {
	f.calls = append(f.calls, question)
	return f.reply, f.err
}

var errStoreDown = errors.New("connection refused")
