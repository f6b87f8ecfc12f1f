package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/repository/pgdb/converter"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/pricebook/go-backend/pkg/tr"
)

// PriceHistoryRepo реализует журнал изменений цен поверх PostgreSQL.
// Записи только добавляются; обновлений и удалений нет.
type PriceHistoryRepo struct {
	pool *pgxpool.Pool
	conv converter.PriceHistoryConverter
}

func NewPriceHistoryRepo(pool *pgxpool.Pool, conv converter.PriceHistoryConverter) *PriceHistoryRepo {
	return &PriceHistoryRepo{pool: pool, conv: conv}
}

// Append добавляет запись истории внутри транзакции из контекста.
func (p *PriceHistoryRepo) Append(ctx context.Context, entry *domain.PriceHistory) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO price_history (product_id, old_price, new_price)
		VALUES ($1, $2, $3)
	`

	if _, err := tx.Exec(ctx, query, entry.ProductID, entry.OldPrice, entry.NewPrice); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ListByProduct возвращает историю цен товара, новые записи первыми.
func (p *PriceHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]domain.PriceHistory, error) {
	query := `
		SELECT id, product_id, old_price, new_price, changed_at
		FROM price_history
		WHERE product_id = $1
		ORDER BY changed_at DESC
	`

	rows, err := p.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []converter.PriceHistoryModel
	for rows.Next() {
		var model converter.PriceHistoryModel
		if err := rows.Scan(&model.ID, &model.ProductID, &model.OldPrice, &model.NewPrice, &model.ChangedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	history := p.conv.ToArrEntity(models)
	if history == nil {
		history = make([]domain.PriceHistory, 0)
	}

	return history, nil
}
