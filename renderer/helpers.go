package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/etnz/capgains"
	"github.com/shopspring/decimal"
)

// formatMoney formats an amount in the given currency, e.g. "R$1.000,50" for BRL.
// Amounts are rounded to the currency fraction. An empty or unknown currency
// formats the amount as a plain decimal with two places.
func formatMoney(m capgains.Money, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return m.Decimal().StringFixed(2)
	}
	minor := m.Decimal().Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// formatTax is formatMoney except for zero, rendered as "-".
func formatTax(m capgains.Money, code string) string {
	if m.Decimal().Round(2).Equal(decimal.Zero) {
		return "-"
	}
	return formatMoney(m, code)
}
