package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID         uuid.UUID       `db:"id"`
	WalletID   uuid.UUID       `db:"wallet_id"`
	CategoryID *uuid.UUID      `db:"category_id"`
	Amount     decimal.Decimal `db:"amount"`
	Date       time.Time       `db:"date"`
	Note       string          `db:"note"`
	CreatedAt  time.Time       `db:"created_at"`
}
