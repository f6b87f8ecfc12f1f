package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/pricebook/go-backend/pkg/logger"
	"github.com/pricebook/go-backend/pkg/price"
)

// CatalogUseCase реализует бизнес-логику каталога товаров:
// постраничное чтение, точечные выборки, запись с ведением истории цен.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	historyRepo  PriceHistoryRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	imagesInfra  ImagesInfra
	dbPool       transaction.Transactional
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	historyRepo PriceHistoryRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		historyRepo:  historyRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		imagesInfra:  imagesInfra,
		dbPool:       dbPool,
		logger:       logger,
	}
}

// QueryProducts возвращает страницу товаров по поиску, фильтру категории и сортировке.
// Пустая выдача — не ошибка: вернётся пустой список с hasMore=false.
func (c *CatalogUseCase) QueryProducts(ctx context.Context, req *QueryProductsReq) (*ProductPage, error) {
	const op = "CatalogUseCase.QueryProducts"

	if req.Page < 0 {
		return nil, e.Wrap(op, e.ErrInvalidPage)
	}

	sort, err := ParseSortOption(string(req.Sort))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Sort = sort

	page, err := c.productRepo.Search(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return page, nil
}

// GetProductByID возвращает товар или (nil, nil), если товара нет.
// Читает сквозь кэш; промахи дозаписываются в кэш в фоне.
func (c *CatalogUseCase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProductByID"

	if cached, err := c.cacheRepo.GetProduct(ctx, id); err != nil {
		c.logger.Warnf("Cache lookup failed: %v", e.Wrap(op, err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, nil
	}

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProduct(bgCtx, product); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// FindByBarcode ищет товар по точному совпадению штрихкода.
// Ноль совпадений — (nil, nil); больше одного — e.ErrAmbiguousBarcode,
// потому что уникальность штрихкода схемой не гарантируется.
func (c *CatalogUseCase) FindByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	const op = "CatalogUseCase.FindByBarcode"

	product, err := c.productRepo.FindByBarcode(ctx, code)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// CreateProduct создаёт товар из данных формы после валидации.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, form *ProductForm) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	newPrice, err := c.validateForm(form)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.productRepo.Create(ctx, buildProduct("", form, newPrice))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// UpdateProduct обновляет товар и ведёт историю цен.
// Запись истории появляется тогда и только тогда, когда новая цена отличается
// от старой больше чем на price.Epsilon. Вставка истории, обновление товара и
// событие outbox выполняются в одной транзакции: частичный коммит невозможен.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, id string, form *ProductForm, oldPrice float64) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	newPrice, err := c.validateForm(form)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	oldPrice = price.Round(oldPrice)
	changed := !price.Equal(newPrice, oldPrice)

	if changed {
		if err = c.historyRepo.Append(ctx, domain.NewPriceHistory(id, oldPrice, newPrice)); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	updated, err := c.productRepo.Update(ctx, buildProduct(id, form, newPrice))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if changed {
		if err = c.enqueuePriceChanged(ctx, id, oldPrice, newPrice); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := c.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		c.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return updated, nil
}

// DeleteProduct удаляет товар и ставит событие удаления в outbox.
// История цен не удаляется.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogUseCase.DeleteProduct"

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

	if err = c.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	payload, err := json.Marshal(map[string]any{"product_id": id})
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, err = c.outboxRepo.Create(ctx, NewOutboxEvent(EventProductDeleted, uuid.NewString(), id, payload)); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	if err := c.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		c.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return nil
}

// GetPriceHistory возвращает историю цен товара, новые записи первыми.
func (c *CatalogUseCase) GetPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error) {
	const op = "CatalogUseCase.GetPriceHistory"

	history, err := c.historyRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return history, nil
}

// UploadImage сохраняет изображение товара и возвращает публичный URL.
func (c *CatalogUseCase) UploadImage(ctx context.Context, req *UploadImageReq) (string, error) {
	const op = "CatalogUseCase.UploadImage"

	if len(req.Data) == 0 {
		return "", e.Wrap(op, e.ErrNoImage)
	}

	url, err := c.imagesInfra.UploadImage(ctx, req)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return url, nil
}

// enqueuePriceChanged ставит событие изменения цены в outbox (в текущей транзакции).
func (c *CatalogUseCase) enqueuePriceChanged(ctx context.Context, productID string, oldPrice, newPrice float64) error {
	payload, err := json.Marshal(map[string]any{
		"product_id": productID,
		"old_price":  oldPrice,
		"new_price":  newPrice,
	})
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, NewOutboxEvent(EventPriceChanged, uuid.NewString(), productID, payload))
	return err
}

// validateForm проверяет форму товара и возвращает нормализованную цену.
func (c *CatalogUseCase) validateForm(form *ProductForm) (float64, error) {
	if strings.TrimSpace(form.Name) == "" {
		return 0, e.ErrProductNameRequired
	}

	newPrice := price.Normalize(form.Price)
	if newPrice <= 0 {
		return 0, e.ErrPriceMustBePositive
	}

	return newPrice, nil
}

// buildProduct собирает доменную сущность из формы.
// Пустые опциональные поля формы становятся NULL в хранилище.
func buildProduct(id string, form *ProductForm, normalizedPrice float64) *domain.Product {
	product := domain.NewProduct(
		form.Name,
		optional(form.Barcode),
		normalizedPrice,
		domain.NormalizeUnit(form.Unit),
		optional(form.CategoryID),
		optional(form.ImageURL),
		optional(form.Note),
	)
	product.ID = id

	return product
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
