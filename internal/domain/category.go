package domain

import "time"

// Category описывает категорию товара
type Category struct {
	ID        string // uuid
	Name      string
	SortOrder int
	CreatedAt time.Time
}

func NewCategory(name string) *Category {
	return &Category{
		Name: name,
	}
}
