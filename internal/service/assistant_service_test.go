package service

import (
	"context"
	"testing"
	"time"

	"fin-assistant/internal/models"
	"fin-assistant/internal/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var friday = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

type assistantFixture struct {
	svc       *AssistantService
	user      *models.User
	questions *fakeQuestions
	chat      *fakeChat
	txs       *fakeTransactions
}

func newAssistantFixture(t *testing.T) *assistantFixture {
	t.Helper()

	user := &models.User{ID: uuid.New(), Username: "an", Email: "an@example.com", FullName: "Nguyễn An"}
	cash := &models.Wallet{ID: uuid.New(), UserID: user.ID, Name: "Tiền mặt", Balance: decimal.NewFromInt(500000)}
	bank := &models.Wallet{ID: uuid.New(), UserID: user.ID, Name: "Ngân hàng", Balance: decimal.NewFromInt(12000000)}

	txs := &fakeTransactions{byWallet: map[uuid.UUID][]query.Transaction{
		cash.ID: {
			{ID: "1", Amount: "100000", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), CategoryName: "water", GroupName: "expense"},
		},
		bank.ID: {
			{ID: "2", Amount: "50000", Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), CategoryName: "food", GroupName: "expense"},
			{ID: "3", Amount: "20000000", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CategoryName: "salary", GroupName: "income"},
		},
	}}

	questions := &fakeQuestions{}
	chat := &fakeChat{reply: "Thủ đô của Pháp là Paris."}
	logger := zaptest.NewLogger(t)
	interp := query.NewInterpreter(logger,
		query.WithClock(func() time.Time { return friday }),
		query.WithLocation(time.UTC),
		query.WithGreetingPicker(func(int) int { return 0 }),
	)
	svc := NewAssistantService(
		&fakeUsers{users: []*models.User{user}},
		fakeWallets{user.ID: {cash, bank}},
		txs, questions, chat, interp, logger,
	)
	svc.now = func() time.Time { return friday }

	return &assistantFixture{svc: svc, user: user, questions: questions, chat: chat, txs: txs}
}

func TestOpenSessionLoadsAllWallets(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)

	session, err := f.svc.OpenSession(context.Background(), "  AN@example.com ")
	require.NoError(t, err)
	require.Equal(t, f.user, session.User)
	require.Len(t, session.Wallets, 2)
	require.Len(t, session.Transactions, 3)
	require.Equal(t, []uuid.UUID{session.Wallets[0].ID, session.Wallets[1].ID}, f.txs.asked)

	byID, err := f.svc.OpenSessionByUserID(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, byID.Transactions, 3)
}

func TestOpenSessionErrors(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenSession(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.OpenSession(ctx, "   ")
	require.ErrorIs(t, err, ErrUserNotFound)

	lonely := &models.User{ID: uuid.New(), Email: "lonely@example.com"}
	f.svc.users = &fakeUsers{users: []*models.User{lonely}}
	_, err = f.svc.OpenSession(ctx, "lonely@example.com")
	require.ErrorIs(t, err, ErrNoWallets)

	f.svc.users = &fakeUsers{err: errStoreDown}
	_, err = f.svc.OpenSessionByUserID(ctx, lonely.ID)
	require.ErrorIs(t, err, errStoreDown)
	require.NotErrorIs(t, err, ErrUserNotFound)
}

func TestAskAnswersFromTransactions(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()

	session, err := f.svc.OpenSession(ctx, "an@example.com")
	require.NoError(t, err)

	reply, err := f.svc.Ask(ctx, session, "tổng chi tiêu tháng 3/2024")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeOK, reply.Outcome)
	require.Equal(t, query.IntentExpense, reply.Intent)
	require.Equal(t, models.SourceQuery, reply.Source)
	require.NotNil(t, reply.Value)
	require.True(t, decimal.NewFromInt(150000).Equal(*reply.Value))
	require.Contains(t, reply.Text, "150,000 VND")
	require.Empty(t, f.chat.calls)

	require.Len(t, f.questions.logs, 1)
	logged := f.questions.logs[0]
	require.Equal(t, f.user.ID, logged.UserID)
	require.Equal(t, "expense", logged.Intent)
	require.Equal(t, "ok", logged.Outcome)
	require.Equal(t, models.SourceQuery, logged.Source)
	require.Equal(t, friday, logged.CreatedAt)
}

func TestAskFallsBackToChat(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()
	session, err := f.svc.OpenSession(ctx, "an@example.com")
	require.NoError(t, err)

	reply, err := f.svc.Ask(ctx, session, "what is the capital of france")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeNonFinancial, reply.Outcome)
	require.Equal(t, models.SourceLLM, reply.Source)
	require.Equal(t, "Thủ đô của Pháp là Paris.", reply.Text)
	require.Nil(t, reply.Value)
	require.Equal(t, []string{"what is the capital of france"}, f.chat.calls)
	require.Equal(t, models.SourceLLM, f.questions.logs[0].Source)
}

func TestAskChatFailures(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()
	session, err := f.svc.OpenSession(ctx, "an@example.com")
	require.NoError(t, err)

	f.chat.err = errStoreDown
	_, err = f.svc.Ask(ctx, session, "thời tiết hôm nay thế nào")
	require.ErrorIs(t, err, ErrChatUnavailable)
	require.ErrorIs(t, err, errStoreDown)

	f.svc.chat = nil
	_, err = f.svc.Ask(ctx, session, "thời tiết hôm nay thế nào")
	require.ErrorIs(t, err, ErrChatUnavailable)
	require.Empty(t, f.questions.logs)
}

func TestAskEdgeOutcomes(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()
	session, err := f.svc.OpenSession(ctx, "an@example.com")
	require.NoError(t, err)

	reply, err := f.svc.Ask(ctx, session, "   ")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeInvalidInput, reply.Outcome)
	require.Equal(t, query.InvalidQuestion, reply.Text)

	reply, err = f.svc.Ask(ctx, session, "tổng chi tiêu \xff")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeInvalidInput, reply.Outcome)
	require.Nil(t, reply.Value)

	reply, err = f.svc.Ask(ctx, session, "xin chào")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeGreeting, reply.Outcome)
	require.Equal(t, query.GreetingResponses[0], reply.Text)

	reply, err = f.svc.Ask(ctx, session, "tổng nợ/vay")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeNoMatch, reply.Outcome)
	require.Equal(t, query.InsufficientData, reply.Text)

	// invalid input is not recorded
	require.Len(t, f.questions.logs, 2)
}

func TestAskIgnoresLogFailures(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()
	session, err := f.svc.OpenSession(ctx, "an@example.com")
	require.NoError(t, err)

	f.questions.err = errStoreDown
	reply, err := f.svc.Ask(ctx, session, "số dư")
	require.NoError(t, err)
	require.Equal(t, query.OutcomeOK, reply.Outcome)
	require.True(t, decimal.NewFromInt(19850000).Equal(*reply.Value))
}

func TestHistory(t *testing.T) {
	t.Parallel()
	f := newAssistantFixture(t)
	ctx := context.Background()
	session, err := f.svc.OpenSession(ctx, "an@example.com")
	require.NoError(t, err)

	for _, q := range []string{"tổng chi tiêu", "tổng thu nhập", "số dư"} {
		_, err := f.svc.Ask(ctx, session, q)
		require.NoError(t, err)
	}

	logs, err := f.svc.History(ctx, f.user.ID, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "số dư", logs[0].Question)
	require.Equal(t, "tổng thu nhập", logs[1].Question)

	logs, err = f.svc.History(ctx, f.user.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
}
