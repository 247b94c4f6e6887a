package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Answer sources recorded in the question log.
const (
	SourceQuery = "query"
	SourceLLM   = "llm"
)

// QuestionLog records one question and the reply it got.
type QuestionLog struct {
	ID        uuid.UUID        `db:"id"`
	UserID    uuid.UUID        `db:"user_id"`
	Question  string           `db:"question"`
	Intent    string           `db:"intent"`
	Outcome   string           `db:"outcome"`
	Answer    string           `db:"answer"`
	Value     *decimal.Decimal `db:"value"`
	Source    string           `db:"source"` // SourceQuery or SourceLLM
	CreatedAt time.Time        `db:"created_at"`
}
