package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки каталога
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrAmbiguousBarcode = fmt.Errorf("barcode matches more than one product")

	// 400 Bad Request
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrCategoryNameRequired = fmt.Errorf("category name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrInvalidSortOption    = fmt.Errorf("invalid sort option")
	ErrInvalidPage          = fmt.Errorf("page must be non-negative")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrNoImage              = fmt.Errorf("no image provided")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки внешних хранилищ
	ErrUploadFailed = fmt.Errorf("image upload failed")

	// Прочие HTTP-ошибки
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
