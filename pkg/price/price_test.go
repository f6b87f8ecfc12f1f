package price

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "integer", in: "12", want: 12.00},
		{name: "one decimal", in: "10.5", want: 10.50},
		{name: "two decimals", in: "10.55", want: 10.55},
		{name: "three decimals rounds", in: "12.001", want: 12.00},
		{name: "rounds half up", in: "10.555", want: 10.56},
		{name: "negative clamps to zero", in: "-3.5", want: 0},
		{name: "unparsable clamps to zero", in: "abc", want: 0},
		{name: "empty clamps to zero", in: "", want: 0},
		{name: "whitespace around", in: " 7.3 ", want: 7.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

// Повторная нормализация уже нормализованного значения ничего не меняет.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"10.5", "12.001", "0.999", "-1", "x", "99999.99"}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(strconv.FormatFloat(once, 'f', -1, 64))
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want bool
	}{
		{name: "identical", a: 10.50, b: 10.50, want: true},
		{name: "below epsilon", a: 10.50, b: 10.5009, want: true},
		{name: "one cent apart", a: 10.50, b: 10.51, want: false},
		{name: "order independent", a: 10.51, b: 10.50, want: false},
		{name: "float noise", a: 0.1 + 0.2, b: 0.3, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}
