package capgains

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// places is the number of decimal places of every amount crossing the JSON boundary.
const places = 2

// Money represents a monetary value in the (single) currency of the asset.
//
// Arithmetic on Money is exact: rounding only happens when decoding a unit cost
// or encoding a tax, see Round.
type Money struct {
	value decimal.Decimal
}

// M creates a Money from a number.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal string like "10.25" into an exact Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// Decimal returns the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.decimal())} }

// Div divides by a quantity. The division keeps decimal.DivisionPrecision
// fractional digits, it is never rounded to cents.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.decimal())} }

// MulRate applies a rate (like a tax percentage) to the amount.
func (m Money) MulRate(rate decimal.Decimal) Money { return Money{value: m.value.Mul(rate)} }

// Max returns the greatest of m and n.
func (m Money) Max(n Money) Money {
	if m.value.GreaterThanOrEqual(n.value) {
		return m
	}
	return n
}

// Round returns the amount rounded to cents, half away from zero.
func (m Money) Round() Money { return Money{value: m.value.Round(places)} }

// String returns the rounded amount without trailing zeros.
func (m Money) String() string { return m.value.Round(places).String() }

// MarshalJSON writes the amount as a JSON number rounded to cents, e.g. 0, 0.5 or 27800.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON reads a JSON number, or a string holding a number, and rounds it to cents.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("amount must be a number, got null")
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	d, err := parseAmount(n, maxAmountDigits)
	if err != nil {
		return err
	}
	m.value = roundAmount(d)
	return nil
}

// Bounds on the integer digits of decoded amounts.
const (
	maxAmountDigits   = 30
	maxUnitCostDigits = 8
)

// parseAmount parses n, rejecting amounts with more than maxDigits integer
// digits. The bound is checked on the coefficient and exponent, before the
// value is ever expanded.
func parseAmount(n json.Number, maxDigits int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount must be a number, got %s", n)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	if intDigits(d) > maxDigits {
		return decimal.Zero, fmt.Errorf("amount %s exceeds %d integer digits", n, maxDigits)
	}
	return d, nil
}

// intDigits returns the number of digits of d before the decimal point, zero
// or negative when |d| < 1.
func intDigits(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent())
}

// roundAmount rounds d to cents. Amounts below a tenth of a cent are zero.
func roundAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() || intDigits(d) < -places {
		return decimal.Zero
	}
	return d.Round(places)
}
