package usecase

import (
	"context"

	"github.com/pricebook/go-backend/internal/domain"
)

type ProductRepository interface {
	// Search возвращает страницу товаров по поиску/фильтру/сортировке.
	Search(ctx context.Context, req *QueryProductsReq) (*ProductPage, error)
	// GetByID возвращает (nil, nil), если товар не найден.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByBarcode возвращает (nil, nil) при нуле совпадений
	// и e.ErrAmbiguousBarcode, если штрихкод встречается более одного раза.
	FindByBarcode(ctx context.Context, code string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Update выполняется внутри транзакции из контекста.
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Delete выполняется внутри транзакции из контекста.
	Delete(ctx context.Context, id string) error
	// ClearCategory снимает категорию со всех её товаров (транзакция из контекста).
	ClearCategory(ctx context.Context, categoryID string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	// Delete выполняется внутри транзакции из контекста.
	Delete(ctx context.Context, id string) error
}

type PriceHistoryRepository interface {
	// Append добавляет неизменяемую запись истории (транзакция из контекста).
	Append(ctx context.Context, entry *domain.PriceHistory) error
	// ListByProduct возвращает историю по товару, новые записи первыми.
	ListByProduct(ctx context.Context, productID string) ([]domain.PriceHistory, error)
}

type OutboxRepository interface {
	// Create добавляет событие в outbox (транзакция из контекста).
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetProduct возвращает (nil, nil) при промахе кэша.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
