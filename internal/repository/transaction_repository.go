package repository

import (
	"context"
	"fmt"
	"time"

	"fin-assistant/internal/models"
	"fin-assistant/internal/query"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{"id", "wallet_id", "category_id", "amount", "date", "note", "created_at"}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func insertTransactionsQuery(transactions []*models.Transaction) squirrel.InsertBuilder {
	builder := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, tx := range transactions {
		var date any
		if !tx.Date.IsZero() {
			date = tx.Date
		}
		builder = builder.Values(tx.ID, tx.WalletID, tx.CategoryID, tx.Amount, date, tx.Note, tx.CreatedAt)
	}
	return builder
}

// listByWalletIDsQuery joins each transaction with its category and group.
// Amounts are read as text and parsed by the query engine.
func listByWalletIDsQuery(walletIDs []uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(
		"t.id",
		"t.amount::text",
		"t.date",
		"COALESCE(c.category_name, '')",
		"COALESCE(g.group_name, '')",
	).
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category_id").
		LeftJoin("groups g ON g.id = c.group_id").
		Where(squirrel.Eq{"t.wallet_id": walletIDs}).
		OrderBy("t.date DESC NULLS LAST", "t.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.CreateBatch(ctx, []*models.Transaction{tx})
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	sql, args, err := insertTransactionsQuery(transactions).ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %d transactions: %w", len(transactions), err)
	}
	return nil
}

// ListByWalletIDs returns every transaction of the given wallets, newest
// first, in the shape the query engine consumes.
func (r *TransactionRepository) ListByWalletIDs(ctx context.Context, walletIDs []uuid.UUID) ([]query.Transaction, error) {
	if len(walletIDs) == 0 {
		return nil, nil
	}

	sql, args, err := listByWalletIDsQuery(walletIDs).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []query.Transaction
	for rows.Next() {
		var (
			id   uuid.UUID
			tx   query.Transaction
			date *time.Time
		)
		if err := rows.Scan(&id, &tx.Amount, &date, &tx.CategoryName, &tx.GroupName); err != nil {
			return nil, err
		}
		tx.ID = id.String()
		if date != nil {
			tx.Date = *date
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Transactions loaded",
		zap.Int("wallets", len(walletIDs)),
		zap.Int("transactions", len(transactions)),
	)
	return transactions, nil
}
