package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

// stubCatalog подменяет usecase per-test через поля-функции.
type stubCatalog struct {
	queryProducts  func(*usecase.QueryProductsReq) (*usecase.ProductPage, error)
	getProductByID func(string) (*domain.Product, error)
	findByBarcode  func(string) (*domain.Product, error)
	createProduct  func(*usecase.ProductForm) (*domain.Product, error)
	uploadImage    func(*usecase.UploadImageReq) (string, error)
}

func (s *stubCatalog) QueryProducts(_ context.Context, req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
	return s.queryProducts(req)
}

func (s *stubCatalog) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	return s.getProductByID(id)
}

func (s *stubCatalog) FindByBarcode(_ context.Context, code string) (*domain.Product, error) {
	return s.findByBarcode(code)
}

func (s *stubCatalog) CreateProduct(_ context.Context, form *usecase.ProductForm) (*domain.Product, error) {
	return s.createProduct(form)
}

func (s *stubCatalog) UpdateProduct(context.Context, string, *usecase.ProductForm, float64) (*domain.Product, error) {
	return nil, nil
}

func (s *stubCatalog) DeleteProduct(context.Context, string) error { return nil }

func (s *stubCatalog) GetPriceHistory(context.Context, string) ([]domain.PriceHistory, error) {
	return nil, nil
}

func (s *stubCatalog) ListCategories(context.Context) ([]domain.Category, error) { return nil, nil }

func (s *stubCatalog) CreateCategory(context.Context, string) (*domain.Category, error) {
	return nil, nil
}

func (s *stubCatalog) UpdateCategory(context.Context, string, string) (*domain.Category, error) {
	return nil, nil
}

func (s *stubCatalog) DeleteCategory(context.Context, string) error { return nil }

func (s *stubCatalog) UploadImage(_ context.Context, req *usecase.UploadImageReq) (string, error) {
	if s.uploadImage != nil {
		return s.uploadImage(req)
	}
	return "", nil
}

func newTestRouter(stub *stubCatalog) *chi.Mux {
	mux := chi.NewRouter()
	handler := NewProductHandler(stub, nopLogger{})
	mux.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, handler)
	})
	return mux
}

func TestListProducts(t *testing.T) {
	var captured *usecase.QueryProductsReq
	stub := &stubCatalog{
		queryProducts: func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
			captured = req
			return &usecase.ProductPage{
				Items:   []domain.Product{{ID: "p1", Name: "Milk", Price: 10.50}},
				HasMore: true,
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=milk&category_id=c1&page=2&sort=price_asc", nil)
	newTestRouter(stub).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, captured)
	assert.Equal(t, "milk", captured.Search)
	require.NotNil(t, captured.CategoryID)
	assert.Equal(t, "c1", *captured.CategoryID)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, usecase.SortPriceAsc, captured.Sort)

	var body ProductPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p1", body.Data[0].ID)
	assert.True(t, body.HasMore)
}

func TestListProductsRejectsBadSort(t *testing.T) {
	stub := &stubCatalog{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=bogus", nil)
	newTestRouter(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductNotFound(t *testing.T) {
	stub := &stubCatalog{
		getProductByID: func(string) (*domain.Product, error) { return nil, nil },
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/unknown-id", nil)
	newTestRouter(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindByBarcode(t *testing.T) {
	t.Run("zero matches returns null body", func(t *testing.T) {
		stub := &stubCatalog{
			findByBarcode: func(string) (*domain.Product, error) { return nil, nil },
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/barcode/000", nil)
		newTestRouter(stub).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("ambiguous barcode is a conflict", func(t *testing.T) {
		stub := &stubCatalog{
			findByBarcode: func(string) (*domain.Product, error) { return nil, e.ErrAmbiguousBarcode },
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/barcode/460", nil)
		newTestRouter(stub).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCreateProductValidationError(t *testing.T) {
	stub := &stubCatalog{
		createProduct: func(*usecase.ProductForm) (*domain.Product, error) {
			return nil, e.ErrPriceMustBePositive
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Milk","price":"-1"}`))
	newTestRouter(stub).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, e.ErrPriceMustBePositive.Error(), body.Message)
}

// Недоступность хранилища изображений — 502, а не общий 500.
func TestUploadImageStoreFailureMapsToBadGateway(t *testing.T) {
	stub := &stubCatalog{
		uploadImage: func(*usecase.UploadImageReq) (string, error) {
			return "", e.Wrap("CatalogUseCase.UploadImage", e.ErrUploadFailed)
		},
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestRouter(stub).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadGateway, body.Code)
	assert.Equal(t, e.ErrUploadFailed.Error(), body.Message)
}
