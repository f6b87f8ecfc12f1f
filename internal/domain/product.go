package domain

import "time"

// Product описывает товар каталога.
// Цена хранится с точностью до двух знаков после запятой.
type Product struct {
	ID         string // uuid
	Name       string
	Barcode    *string // уникальность штрихкода на уровне схемы не гарантируется
	Price      float64
	Unit       string
	CategoryID *string
	ImageURL   *string
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewProduct(name string, barcode *string, price float64, unit string, categoryID, imageURL, note *string) *Product {
	return &Product{
		Name:       name,
		Barcode:    barcode,
		Price:      price,
		Unit:       unit,
		CategoryID: categoryID,
		ImageURL:   imageURL,
		Note:       note,
	}
}
