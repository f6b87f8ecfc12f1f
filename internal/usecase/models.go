package usecase

import (
	"time"

	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/pkg/e"
)

// CATALOG USECASE

// ProductPageSize — фиксированный размер страницы выдачи товаров.
const ProductPageSize = 20

// SortOption — режим сортировки выдачи товаров.
type SortOption string

const (
	SortRecency   SortOption = "recency"    // по updated_at, новые сверху
	SortPriceAsc  SortOption = "price_asc"  // по возрастанию цены
	SortPriceDesc SortOption = "price_desc" // по убыванию цены
)

// ParseSortOption разбирает режим сортировки. Пустая строка означает SortRecency.
func ParseSortOption(s string) (SortOption, error) {
	switch SortOption(s) {
	case "":
		return SortRecency, nil
	case SortRecency, SortPriceAsc, SortPriceDesc:
		return SortOption(s), nil
	default:
		return "", e.ErrInvalidSortOption
	}
}

// Next возвращает следующий режим в цикле recency → price_asc → price_desc → recency.
func (s SortOption) Next() SortOption {
	switch s {
	case SortRecency:
		return SortPriceAsc
	case SortPriceAsc:
		return SortPriceDesc
	default:
		return SortRecency
	}
}

// QueryProductsReq — параметры запроса страницы товаров.
type QueryProductsReq struct {
	Search     string
	CategoryID *string
	Page       int // 0-based
	Sort       SortOption
}

// ProductPage — страница выдачи с признаком наличия следующей страницы.
type ProductPage struct {
	Items   []domain.Product
	HasMore bool
}

// ProductForm — данные формы добавления/редактирования товара.
// Пустые строки опциональных полей трактуются как отсутствие значения.
type ProductForm struct {
	Name       string
	Barcode    string
	Price      string
	Unit       string
	CategoryID string
	Note       string
	ImageURL   string
}

// INFRASTRUCTURE

// UploadImageReq — запрос на загрузку изображения товара.
type UploadImageReq struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// WriteRawMessageReq — готовое событие для отправки в брокер.
type WriteRawMessageReq struct {
	ProductID string
	Payload   []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventPriceChanged   OutboxEventType = "price_changed"
	EventProductDeleted OutboxEventType = "product_deleted"
)

// OutboxEvent — запись таблицы outbox, публикуемая воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	ProductID   string
	Payload     []byte // JSON
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

// NewProductPage собирает страницу и вычисляет hasMore из общего числа совпадений.
func NewProductPage(items []domain.Product, page int, total int64) *ProductPage {
	return &ProductPage{
		Items:   items,
		HasMore: int64(page*ProductPageSize+len(items)) < total,
	}
}

func NewQueryProductsReq(search string, categoryID *string, page int, sort SortOption) *QueryProductsReq {
	return &QueryProductsReq{
		Search:     search,
		CategoryID: categoryID,
		Page:       page,
		Sort:       sort,
	}
}

func NewUploadImageReq(data []byte, mimeType string, size int64, name string) *UploadImageReq {
	return &UploadImageReq{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewWriteRawMessageReq(productID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewOutboxEvent(eventType OutboxEventType, eventID, productID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}
