package capgains

import "github.com/shopspring/decimal"

var (
	// ExemptionThreshold is the sale value up to which a profitable sell is not taxed.
	ExemptionThreshold = M(20000)

	// TaxRate is the rate applied to the taxable profit of a sell.
	TaxRate = decimal.RequireFromString("0.2")
)

// rule applies one operation to the position and returns the tax owed.
type rule func(op Operation, pos *Position) Result

// buy adds the operation units to the position and updates the weighted
// average cost. Buying is never taxed.
func buy(op Operation, pos *Position) Result {
	total := pos.CostBasis().Add(op.Value())
	pos.Quantity = pos.Quantity.Add(op.Quantity)
	if pos.Quantity.IsZero() {
		// only reachable after an oversell brought the position below zero.
		pos.AverageCost = M(0)
		return NoTax
	}
	pos.AverageCost = total.Div(pos.Quantity)
	return NoTax
}

// sell removes the operation units from the position and computes the tax on
// the profit, if any.
//
// A loss is accumulated to offset later profits. A profit is not taxed when the
// total sale value does not exceed ExemptionThreshold, and in that case the
// accumulated loss is left untouched.
func sell(op Operation, pos *Position) Result {
	pos.Quantity = pos.Quantity.Sub(op.Quantity)

	sale := op.Value()
	cost := pos.AverageCost.Mul(op.Quantity)
	profit := sale.Sub(cost)

	if !profit.IsPositive() {
		pos.LossCarryForward = pos.LossCarryForward.Sub(profit)
		return NoTax
	}

	if sale.LessThanOrEqual(ExemptionThreshold) {
		return NoTax
	}

	taxable := profit.Sub(pos.LossCarryForward).Max(M(0))
	pos.LossCarryForward = pos.LossCarryForward.Sub(profit).Max(M(0))

	if !taxable.IsPositive() {
		return NoTax
	}
	return Result{Tax: taxable.MulRate(TaxRate)}
}
