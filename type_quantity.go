package capgains

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a whole number of units of the asset.
type Quantity struct {
	value int64
}

// Q creates a Quantity.
func Q[T int | int32 | int64](value T) Quantity { return Quantity{value: int64(value)} }

func (q Quantity) Int64() int64                 { return q.value }
func (q Quantity) Equal(p Quantity) bool        { return q.value == p.value }
func (q Quantity) LessThan(p Quantity) bool     { return q.value < p.value }
func (q Quantity) GreaterThan(p Quantity) bool  { return q.value > p.value }
func (q Quantity) Add(p Quantity) Quantity      { return Quantity{value: q.value + p.value} }
func (q Quantity) Sub(p Quantity) Quantity      { return Quantity{value: q.value - p.value} }
func (q Quantity) IsNegative() bool             { return q.value < 0 }
func (q Quantity) IsPositive() bool             { return q.value > 0 }
func (q Quantity) IsZero() bool                 { return q.value == 0 }
func (q Quantity) String() string               { return strconv.FormatInt(q.value, 10) }
func (q Quantity) decimal() decimal.Decimal     { return decimal.NewFromInt(q.value) }
func (q Quantity) MarshalJSON() ([]byte, error) { return []byte(q.String()), nil }

// maxQuantityDigits is the number of digits of the largest int64.
const maxQuantityDigits = 19

// UnmarshalJSON reads an integer. Numbers with a fractional part are rejected,
// "10.0" is accepted as 10.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be an integer: %w", err)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("quantity must be an integer, got %s", data)
	}
	if d.IsZero() {
		q.value = 0
		return nil
	}
	// checked before the value is expanded.
	switch digits := intDigits(d); {
	case digits > maxQuantityDigits:
		return fmt.Errorf("quantity %s is out of range", n)
	case digits <= 0:
		return fmt.Errorf("quantity must be an integer, got %s", n)
	}
	if !d.IsInteger() {
		return fmt.Errorf("quantity must be an integer, got %s", n)
	}
	if !d.Equal(decimal.NewFromInt(d.IntPart())) {
		return fmt.Errorf("quantity %s is out of range", n)
	}
	q.value = d.IntPart()
	return nil
}

// checkedAdd returns q+p, and false if the sum overflows.
func (q Quantity) checkedAdd(p Quantity) (Quantity, bool) {
	s := q.value + p.value
	if (p.value > 0 && s < q.value) || (p.value < 0 && s > q.value) {
		return Quantity{}, false
	}
	return Quantity{value: s}, true
}

// checkedSub returns q-p, and false if the difference overflows.
func (q Quantity) checkedSub(p Quantity) (Quantity, bool) {
	d := q.value - p.value
	if (p.value > 0 && d > q.value) || (p.value < 0 && d < q.value) {
		return Quantity{}, false
	}
	return Quantity{value: d}, true
}
