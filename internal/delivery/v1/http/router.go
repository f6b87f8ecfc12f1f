package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/pricebook/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/pricebook/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(catalogUC, r.logger)
		registerProductRoutes(v1, prHandler)

		catHandler := NewCategoryHandler(catalogUC, r.logger)
		registerCategoryRoutes(v1, catHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Post("/image", prHandler.uploadImage)
		pr.Get("/barcode/{code}", prHandler.findByBarcode)

		pr.Route("/{id}", func(one chi.Router) {
			one.Get("/", prHandler.getProduct)
			one.Put("/", prHandler.updateProduct)
			one.Delete("/", prHandler.deleteProduct)
			one.Get("/history", prHandler.priceHistory)
		})
	})
}

func registerCategoryRoutes(router chi.Router, catHandler *CategoryHandler) {
	router.Route("/categories", func(cat chi.Router) {
		cat.Get("/", catHandler.listCategories)
		cat.Post("/", catHandler.createCategory)
		cat.Put("/{id}", catHandler.updateCategory)
		cat.Delete("/{id}", catHandler.deleteCategory)
	})
}
