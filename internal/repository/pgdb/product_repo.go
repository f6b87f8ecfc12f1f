package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/repository/pgdb/converter"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/pricebook/go-backend/pkg/tr"
)

const productColumns = "id, name, barcode, price, unit, category_id, image_url, note, created_at, updated_at"

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// searchQuery строит SQL страницы выдачи: подстрочный поиск по имени/штрихкоду
// без учёта регистра, точный фильтр по категории (оба условия через AND),
// полный порядок сортировки с добитием по id и оконный COUNT для hasMore.
func searchQuery(req *usecase.QueryProductsReq) (string, []any) {
	var (
		where []string
		args  []any
	)

	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(name ILIKE $"+n+" OR barcode ILIKE $"+n+")")
	}

	if req.CategoryID != nil {
		args = append(args, *req.CategoryID)
		where = append(where, "category_id = $"+strconv.Itoa(len(args)))
	}

	query := "SELECT " + productColumns + ", COUNT(*) OVER() AS total FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy(req.Sort)

	args = append(args, usecase.ProductPageSize, req.Page*usecase.ProductPageSize)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return query, args
}

func orderBy(sort usecase.SortOption) string {
	switch sort {
	case usecase.SortPriceAsc:
		return "price ASC, id ASC"
	case usecase.SortPriceDesc:
		return "price DESC, id DESC"
	default:
		return "updated_at DESC, id DESC"
	}
}

// Search возвращает страницу товаров и признак наличия следующей страницы.
// Пустая выдача — валидный результат, не ошибка.
func (p *ProductRepo) Search(ctx context.Context, req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
	query, args := searchQuery(req)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var (
		models []converter.ProductModel
		total  int64
	)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Barcode, &model.Price, &model.Unit,
			&model.CategoryID, &model.ImageURL, &model.Note, &model.CreatedAt, &model.UpdatedAt,
			&total,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items := p.conv.ToArrEntity(models)
	if items == nil {
		items = make([]domain.Product, 0)
	}

	return usecase.NewProductPage(items, req.Page, total), nil
}

// GetByID возвращает товар по идентификатору или (nil, nil), если записи нет.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	model, err := p.scanOne(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// FindByBarcode ищет товар по точному совпадению штрихкода.
// Уникальность штрихкода схемой не гарантируется, поэтому при двух и более
// совпадениях возвращается явная ошибка, а не первая попавшаяся запись.
func (p *ProductRepo) FindByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE barcode = $1 LIMIT 2"

	rows, err := p.pool.Query(ctx, query, code)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []converter.ProductModel
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Barcode, &model.Price, &model.Unit,
			&model.CategoryID, &model.ImageURL, &model.Note, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		return p.conv.ToEntity(&models[0]), nil
	default:
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrAmbiguousBarcode)
	}
}

// Create вставляет новый товар и возвращает сохранённую запись.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)

	query := `
		INSERT INTO products (name, barcode, price, unit, category_id, image_url, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns

	stored, err := p.scanOne(p.pool.QueryRow(ctx, query,
		model.Name, model.Barcode, model.Price, model.Unit,
		model.CategoryID, model.ImageURL, model.Note,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(stored), nil
}

// Update перезаписывает товар целиком внутри транзакции из контекста.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)

	query := `
		UPDATE products
		SET name = $2, barcode = $3, price = $4, unit = $5,
			category_id = $6, image_url = $7, note = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	stored, err := p.scanOne(tx.QueryRow(ctx, query,
		model.ID, model.Name, model.Barcode, model.Price, model.Unit,
		model.CategoryID, model.ImageURL, model.Note,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(stored), nil
}

// Delete удаляет товар внутри транзакции из контекста.
func (p *ProductRepo) Delete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// ClearCategory снимает категорию со всех её товаров (товары остаются в каталоге).
func (p *ProductRepo) ClearCategory(ctx context.Context, categoryID string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, "UPDATE products SET category_id = NULL WHERE category_id = $1", categoryID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) scanOne(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	if err := row.Scan(
		&model.ID, &model.Name, &model.Barcode, &model.Price, &model.Unit,
		&model.CategoryID, &model.ImageURL, &model.Note, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
