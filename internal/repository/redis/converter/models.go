package converter

import "time"

// ProductRedisModel — представление товара в кэше (JSON).
type ProductRedisModel struct {
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
