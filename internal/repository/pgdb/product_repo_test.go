package pgdb

import (
	"strconv"
	"testing"

	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func makeProducts(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{ID: strconv.Itoa(i), Name: "p" + strconv.Itoa(i)}
	}
	return products
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		req      *usecase.QueryProductsReq
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "no filters, recency",
			req:  &usecase.QueryProductsReq{Page: 0, Sort: usecase.SortRecency},
			wantSQL: "SELECT id, name, barcode, price, unit, category_id, image_url, note, created_at, updated_at, COUNT(*) OVER() AS total FROM products" +
				" ORDER BY updated_at DESC, id DESC LIMIT $1 OFFSET $2",
			wantArgs: []any{20, 0},
		},
		{
			name: "search matches name or barcode with one placeholder",
			req:  &usecase.QueryProductsReq{Search: "milk", Page: 0, Sort: usecase.SortRecency},
			wantSQL: "SELECT id, name, barcode, price, unit, category_id, image_url, note, created_at, updated_at, COUNT(*) OVER() AS total FROM products" +
				" WHERE (name ILIKE $1 OR barcode ILIKE $1) ORDER BY updated_at DESC, id DESC LIMIT $2 OFFSET $3",
			wantArgs: []any{"%milk%", 20, 0},
		},
		{
			name: "search and category combine with AND",
			req:  &usecase.QueryProductsReq{Search: "milk", CategoryID: strPtr("cat-1"), Page: 2, Sort: usecase.SortPriceAsc},
			wantSQL: "SELECT id, name, barcode, price, unit, category_id, image_url, note, created_at, updated_at, COUNT(*) OVER() AS total FROM products" +
				" WHERE (name ILIKE $1 OR barcode ILIKE $1) AND category_id = $2 ORDER BY price ASC, id ASC LIMIT $3 OFFSET $4",
			wantArgs: []any{"%milk%", "cat-1", 20, 40},
		},
		{
			name: "category only, price desc",
			req:  &usecase.QueryProductsReq{CategoryID: strPtr("cat-2"), Page: 1, Sort: usecase.SortPriceDesc},
			wantSQL: "SELECT id, name, barcode, price, unit, category_id, image_url, note, created_at, updated_at, COUNT(*) OVER() AS total FROM products" +
				" WHERE category_id = $1 ORDER BY price DESC, id DESC LIMIT $2 OFFSET $3",
			wantArgs: []any{"cat-2", 20, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := searchQuery(tt.req)

			assert.Equal(t, tt.wantSQL, sql)
			require.Len(t, args, len(tt.wantArgs))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

// Окно пагинации: 45 совпадений при размере страницы 20.
func TestNewProductPageHasMore(t *testing.T) {
	page0 := usecase.NewProductPage(makeProducts(20), 0, 45)
	assert.True(t, page0.HasMore)
	assert.Len(t, page0.Items, 20)

	page2 := usecase.NewProductPage(makeProducts(5), 2, 45)
	assert.False(t, page2.HasMore)
	assert.Len(t, page2.Items, 5)

	empty := usecase.NewProductPage(nil, 0, 0)
	assert.False(t, empty.HasMore)
}
