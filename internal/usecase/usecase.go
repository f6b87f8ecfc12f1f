package usecase

import (
	"context"

	"github.com/pricebook/go-backend/internal/domain"
)

type CatalogUC interface {
	ProductQuerier
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	FindByBarcode(ctx context.Context, code string) (*domain.Product, error)
	CreateProduct(ctx context.Context, form *ProductForm) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, form *ProductForm, oldPrice float64) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req *UploadImageReq) (string, error)
}

// ProductQuerier — контракт чтения страницы товаров; его же использует
// клиентский контроллер списка.
type ProductQuerier interface {
	QueryProducts(ctx context.Context, req *QueryProductsReq) (*ProductPage, error)
}
