package domain

import "time"

// PriceHistory — запись об изменении цены товара.
// Записи неизменяемы: создаются при обновлении цены и никогда не правятся.
type PriceHistory struct {
	ID        string // uuid
	ProductID string
	OldPrice  float64
	NewPrice  float64
	ChangedAt time.Time
}

func NewPriceHistory(productID string, oldPrice, newPrice float64) *PriceHistory {
	return &PriceHistory{
		ProductID: productID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
	}
}
