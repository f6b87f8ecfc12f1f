package http

import (
	"time"

	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/usecase"
)

// ProductResponse — представление товара в API.
type ProductResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Barcode    *string   `json:"barcode"`
	Price      float64   `json:"price"`
	Unit       string    `json:"unit"`
	CategoryID *string   `json:"category_id"`
	ImageURL   *string   `json:"image_url"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProductPageResponse — страница выдачи со значением hasMore.
type ProductPageResponse struct {
	Data    []ProductResponse `json:"data"`
	HasMore bool              `json:"hasMore"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type PriceHistoryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	OldPrice  float64   `json:"old_price"`
	NewPrice  float64   `json:"new_price"`
	ChangedAt time.Time `json:"changed_at"`
}

// ProductFormRequest — тело запроса создания/обновления товара.
// Цены приходят строками и нормализуются на стороне сервера.
type ProductFormRequest struct {
	Name       string `json:"name"`
	Barcode    string `json:"barcode"`
	Price      string `json:"price"`
	Unit       string `json:"unit"`
	CategoryID string `json:"category_id"`
	Note       string `json:"note"`
	ImageURL   string `json:"image_url"`
	// OldPrice используется только при обновлении: текущая цена, от которой
	// считается запись истории.
	OldPrice float64 `json:"old_price"`
}

type CategoryFormRequest struct {
	Name string `json:"name"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

func (f *ProductFormRequest) toForm() *usecase.ProductForm {
	return &usecase.ProductForm{
		Name:       f.Name,
		Barcode:    f.Barcode,
		Price:      f.Price,
		Unit:       f.Unit,
		CategoryID: f.CategoryID,
		Note:       f.Note,
		ImageURL:   f.ImageURL,
	}
}

func toProductResponse(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	return &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Barcode:    p.Barcode,
		Price:      p.Price,
		Unit:       p.Unit,
		CategoryID: p.CategoryID,
		ImageURL:   p.ImageURL,
		Note:       p.Note,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toProductPageResponse(page *usecase.ProductPage) *ProductPageResponse {
	data := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, *toProductResponse(&page.Items[i]))
	}

	return &ProductPageResponse{Data: data, HasMore: page.HasMore}
}

func toCategoryResponse(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
	}
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *toCategoryResponse(&categories[i]))
	}
	return out
}

func toPriceHistoryResponses(entries []domain.PriceHistory) []PriceHistoryResponse {
	out := make([]PriceHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, PriceHistoryResponse{
			ID:        entry.ID,
			ProductID: entry.ProductID,
			OldPrice:  entry.OldPrice,
			NewPrice:  entry.NewPrice,
			ChangedAt: entry.ChangedAt,
		})
	}
	return out
}
