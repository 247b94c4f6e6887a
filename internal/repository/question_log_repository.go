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

var questionLogColumns = []string{"id", "user_id", "question", "intent", "outcome", "answer", "value", "source", "created_at"}

type QuestionLogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewQuestionLogRepository(db *pgxpool.Pool, logger *zap.Logger) *QuestionLogRepository {
	return &QuestionLogRepository{
		db:     db,
		logger: logger,
	}
}

func insertQuestionLogQuery(l *models.QuestionLog) squirrel.InsertBuilder {
	var value any
	if l.Value != nil {
		value = *l.Value
	}
	return squirrel.Insert("question_logs").
		Columns(questionLogColumns...).
		Values(l.ID, l.UserID, l.Question, l.Intent, l.Outcome, l.Answer, value, l.Source, l.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)
}

func listQuestionLogsQuery(userID uuid.UUID, limit uint64) squirrel.SelectBuilder {
	return squirrel.Select("id", "user_id", "question", "intent", "outcome", "answer", "value::text", "source", "created_at").
		From("question_logs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *QuestionLogRepository) Create(ctx context.Context, l *models.QuestionLog) error {
	sql, args, err := insertQuestionLogQuery(l).ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert question log: %w", err)
	}
	return nil
}

// ListByUserID returns the user's most recent questions, newest first.
func (r *QuestionLogRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuestionLog, error) {
	if limit <= 0 {
		return nil, nil
	}

	sql, args, err := listQuestionLogsQuery(userID, uint64(limit)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list question logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.QuestionLog
	for rows.Next() {
		var (
			l     models.QuestionLog
			value *string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Question, &l.Intent, &l.Outcome, &l.Answer, &value, &l.Source, &l.CreatedAt); err != nil {
			return nil, err
		}
		if value != nil {
			if d, err := decimal.NewFromString(*value); err == nil {
				l.Value = &d
			}
		}
		logs = append(logs, &l)
	}

	return logs, rows.Err()
}
