package repository

import (
	"context"
	"fmt"

	"fin-assistant/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// insertGroupQuery returns the id of the existing group when the name is
// already taken, so seeding can run repeatedly.
func insertGroupQuery(g *models.Group) squirrel.InsertBuilder {
	return squirrel.Insert("groups").
		Columns("id", "group_name").
		Values(g.ID, g.Name).
		Suffix("ON CONFLICT (group_name) DO UPDATE SET group_name = EXCLUDED.group_name RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}

func insertCategoryQuery(c *models.Category) squirrel.InsertBuilder {
	return squirrel.Insert("categories").
		Columns("id", "group_id", "category_name").
		Values(c.ID, c.GroupID, c.Name).
		Suffix("ON CONFLICT (group_id, category_name) DO UPDATE SET category_name = EXCLUDED.category_name RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}

// CreateGroup inserts g or, if a group with the same name exists, loads its
// id into g.
func (r *CategoryRepository) CreateGroup(ctx context.Context, g *models.Group) error {
	sql, args, err := insertGroupQuery(g).ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.ID); err != nil {
		return fmt.Errorf("insert group %q: %w", g.Name, err)
	}
	return nil
}

// CreateCategory inserts c or loads the id of the existing category with the
// same group and name.
func (r *CategoryRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	sql, args, err := insertCategoryQuery(c).ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert category %q: %w", c.Name, err)
	}
	return nil
}
