package usecase

import (
	"context"
	"strings"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/pkg/e"
)

// ListCategories возвращает категории в порядке sort_order.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// CreateCategory создаёт категорию с непустым именем.
func (c *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const op = "CatalogUseCase.CreateCategory"

	if strings.TrimSpace(name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(name))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// UpdateCategory переименовывает категорию.
func (c *CatalogUseCase) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	const op = "CatalogUseCase.UpdateCategory"

	if strings.TrimSpace(name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	category, err := c.categoryRepo.Update(ctx, id, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// DeleteCategory удаляет категорию, предварительно сняв её со всех товаров.
// Товары остаются в каталоге как «без категории»; обе записи меняются в одной
// транзакции. История цен не затрагивается.
func (c *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	const op = "CatalogUseCase.DeleteCategory"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = c.productRepo.ClearCategory(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = c.categoryRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
