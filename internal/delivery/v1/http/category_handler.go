package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/pricebook/go-backend/pkg/logger"
)

type CategoryHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCategoryHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{catalogUC: catalogUC, logger: logger}
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalogUC.ListCategories(r.Context())
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponses(categories))
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		CategoryFormRequest	true	"Имя категории"
//	@Success	201			{object}	CategoryResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryFormRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	category, err := c.catalogUC.CreateCategory(r.Context(), req.Name)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryResponse(category))
}

// updateCategory
//
//	@Summary	Переименование категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string				true	"ID категории"
//	@Param		category	body		CategoryFormRequest	true	"Новое имя"
//	@Success	200			{object}	CategoryResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/categories/{id} [put]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CategoryFormRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	category, err := c.catalogUC.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(category))
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Товары категории остаются в каталоге и становятся «без категории»
//	@Tags			categories
//	@Param			id	path	string	true	"ID категории"
//	@Success		204
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.catalogUC.DeleteCategory(r.Context(), id); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
