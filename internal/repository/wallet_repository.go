package repository

import (
	"context"
	"fmt"

	"fin-assistant/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WalletRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWalletRepository(db *pgxpool.Pool, logger *zap.Logger) *WalletRepository {
	return &WalletRepository{
		db:     db,
		logger: logger,
	}
}

func insertWalletQuery(w *models.Wallet) squirrel.InsertBuilder {
	return squirrel.Insert("wallets").
		Columns("id", "user_id", "name", "balance", "created_at").
		Values(w.ID, w.UserID, w.Name, w.Balance, w.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)
}

func listWalletsQuery(userID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select("id", "user_id", "name", "balance::text", "created_at").
		From("wallets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *WalletRepository) Create(ctx context.Context, w *models.Wallet) error {
	sql, args, err := insertWalletQuery(w).ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

func (r *WalletRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Wallet, error) {
	sql, args, err := listWalletsQuery(userID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*models.Wallet
	for rows.Next() {
		var (
			w       models.Wallet
			balance string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &balance, &w.CreatedAt); err != nil {
			return nil, err
		}
		if w.Balance, err = decimal.NewFromString(balance); err != nil {
			r.logger.Warn("Wallet balance is not a number", zap.String("wallet_id", w.ID.String()), zap.Error(err))
		}
		wallets = append(wallets, &w)
	}

	return wallets, rows.Err()
}
