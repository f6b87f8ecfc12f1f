package domain

// DefaultUnit — единица измерения по умолчанию («штука»).
const DefaultUnit = "件"

// units — фиксированный набор единиц измерения товара.
var units = map[string]struct{}{
	"件":  {},
	"斤":  {},
	"公斤": {},
	"克":  {},
	"升":  {},
	"毫升": {},
	"盒":  {},
	"袋":  {},
	"瓶":  {},
	"包":  {},
}

// NormalizeUnit возвращает единицу измерения из фиксированного набора.
// Пустые и неизвестные значения приводятся к DefaultUnit.
func NormalizeUnit(unit string) string {
	if _, ok := units[unit]; ok {
		return unit
	}
	return DefaultUnit
}
