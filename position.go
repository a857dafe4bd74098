package capgains

import (
	"encoding/json"
	"fmt"
)

// Position is the running state of a single asset while a batch is processed.
//
// A Position is owned by one Processor for the lifetime of one batch and is
// never shared across batches.
type Position struct {
	Quantity         Quantity // Quantity is the number of units currently held.
	AverageCost      Money    // AverageCost is the weighted average acquisition cost of one unit.
	LossCarryForward Money    // LossCarryForward is the loss available to offset future profits.
}

// NewPosition returns an empty position: nothing held, no cost, no loss.
func NewPosition() *Position {
	return &Position{}
}

// CostBasis returns the total acquisition cost of the units held.
func (p *Position) CostBasis() Money { return p.AverageCost.Mul(p.Quantity) }

// String returns a short human readable description.
func (p *Position) String() string {
	return fmt.Sprintf("%s @ %s (loss %s)", p.Quantity, p.AverageCost, p.LossCarryForward)
}

// MarshalJSON writes the position with full precision amounts.
func (p *Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quantity", p.Quantity)
	w.Append("average-cost", json.Number(p.AverageCost.Decimal().String()))
	w.Append("loss", json.Number(p.LossCarryForward.Decimal().String()))
	return w.MarshalJSON()
}
