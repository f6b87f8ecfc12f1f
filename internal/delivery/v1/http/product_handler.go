package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/pricebook/go-backend/pkg/logger"
)

type ProductHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewProductHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, logger: logger}
}

// listProducts
//
//	@Summary		Страница товаров
//	@Description	Возвращает страницу товаров по поиску, категории и сортировке
//	@Tags			products
//	@Produce		json
//	@Param			search		query		string	false	"Подстрока поиска по имени или штрихкоду"
//	@Param			category_id	query		string	false	"Фильтр по категории"
//	@Param			page		query		integer	false	"Номер страницы (с нуля)"
//	@Param			sort		query		string	false	"recency | price_asc | price_desc"
//	@Success		200			{object}	ProductPageResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 0
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, e.ErrInvalidPage)
			return
		}
		page = parsed
	}

	var categoryID *string
	if raw := query.Get("category_id"); raw != "" {
		categoryID = &raw
	}

	sort, err := usecase.ParseSortOption(query.Get("sort"))
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := p.catalogUC.QueryProducts(r.Context(), usecase.NewQueryProductsReq(query.Get("search"), categoryID, page, sort))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductPageResponse(result))
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := p.catalogUC.GetProductByID(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	if product == nil {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// createProduct
//
//	@Summary	Создание товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		ProductFormRequest	true	"Данные товара"
//	@Success	201		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductFormRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.CreateProduct(r.Context(), req.toForm())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Обновляет товар; при изменении цены добавляется запись истории
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"ID товара"
//	@Param			product	body		ProductFormRequest	true	"Данные товара и старая цена"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductFormRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.UpdateProduct(r.Context(), id, req.toForm(), req.OldPrice)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := p.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// findByBarcode
//
//	@Summary		Поиск по штрихкоду
//	@Description	Точное совпадение. Ноль совпадений — 200 с null; дубликат штрихкода — 409
//	@Tags			products
//	@Produce		json
//	@Param			code	path		string	true	"Штрихкод"
//	@Success		200		{object}	ProductResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/products/barcode/{code} [get]
func (p *ProductHandler) findByBarcode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := p.catalogUC.FindByBarcode(r.Context(), code)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	// Отсутствие совпадений — штатный ответ, а не ошибка.
	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// priceHistory
//
//	@Summary	История цен товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path	string	true	"ID товара"
//	@Success	200	{array}	PriceHistoryResponse
//	@Router		/products/{id}/history [get]
func (p *ProductHandler) priceHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := p.catalogUC.GetPriceHistory(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPriceHistoryResponses(history))
}

// uploadImage
//
//	@Summary	Загрузка изображения товара
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		image	formData	file	true	"Файл изображения"
//	@Success	201		{object}	UploadImageResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/products/image [post]
func (p *ProductHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 32 << 20
		maxMemory           = 16 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	req, err := parseImage(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	url, err := p.catalogUC.UploadImage(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &UploadImageResponse{URL: url})
}
