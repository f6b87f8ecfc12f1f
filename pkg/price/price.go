// Package price содержит нормализацию и сравнение цен.
// Цены хранятся с точностью до двух знаков (до фэней/копеек).
package price

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon — порог, ниже которого две цены считаются равными.
// Защищает от шума плавающей точки при сравнении старой и новой цены.
const Epsilon = 0.001

// Normalize разбирает строку цены и приводит её к канону: два знака после запятой.
// Пустые, некорректные и отрицательные значения приводятся к 0.
func Normalize(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	if d.LessThan(decimal.Zero) {
		return 0
	}

	// Округление в decimal-пространстве: float64 не хранит 10.555 точно,
	// и math.Round дал бы 10.55 вместо 10.56.
	return d.Round(2).InexactFloat64()
}

// Round округляет значение до двух знаков после запятой.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Equal сравнивает две цены с допуском Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
