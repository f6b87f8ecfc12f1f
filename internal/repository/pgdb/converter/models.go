package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	Barcode    *string    `db:"barcode"`
	Price      float64    `db:"price"`
	Unit       string     `db:"unit"`
	CategoryID *string    `db:"category_id"`
	ImageURL   *string    `db:"image_url"`
	Note       *string    `db:"note"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	SortOrder int       `db:"sort_order"`
	CreatedAt time.Time `db:"created_at"`
}

// PriceHistoryModel представляет запись таблицы price_history в PostgreSQL.
type PriceHistoryModel struct {
	ID        string    `db:"id"`
	ProductID string    `db:"product_id"`
	OldPrice  float64   `db:"old_price"`
	NewPrice  float64   `db:"new_price"`
	ChangedAt time.Time `db:"changed_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   string     `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
