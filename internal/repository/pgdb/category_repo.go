package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/repository/pgdb/converter"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/pricebook/go-backend/pkg/tr"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает все категории в порядке отображения.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, sort_order, created_at
		FROM categories
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []converter.CategoryModel
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.SortOrder, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	categories := c.conv.ToArrEntity(models)
	if categories == nil {
		categories = make([]domain.Category, 0)
	}

	return categories, nil
}

// Create добавляет категорию в конец списка отображения.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (name, sort_order)
		VALUES ($1, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM categories))
		RETURNING id, name, sort_order, created_at
	`

	var model converter.CategoryModel
	if err := c.pool.QueryRow(ctx, query, category.Name).
		Scan(&model.ID, &model.Name, &model.SortOrder, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Update переименовывает категорию.
func (c *CategoryRepo) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	query := `
		UPDATE categories SET name = $2
		WHERE id = $1
		RETURNING id, name, sort_order, created_at
	`

	var model converter.CategoryModel
	if err := c.pool.QueryRow(ctx, query, id, name).
		Scan(&model.ID, &model.Name, &model.SortOrder, &model.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Delete удаляет категорию внутри транзакции из контекста.
// Снятие категории с товаров — забота вызывающего (см. ClearCategory).
func (c *CategoryRepo) Delete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
	}

	return nil
}
