package capgains

import (
	"errors"
	"fmt"
)

// ErrOversell is returned by Validate when a sell exceeds the quantity held.
var ErrOversell = errors.New("sell quantity exceeds quantity held")

// Validate checks a batch before processing.
//
// Every operation must be valid on its own, and no sell can exceed the quantity
// held at that point of the batch. Processors do not call Validate: selling more
// than held is allowed by the rules, and drives the held quantity negative.
func Validate(ops []Operation) error {
	var held Quantity
	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("operation #%d: %w", i+1, err)
		}
		switch op.Type {
		case Buy:
			var ok bool
			if held, ok = held.checkedAdd(op.Quantity); !ok {
				return fmt.Errorf("operation #%d: %w: quantity held overflows", i+1, ErrInvalidOperation)
			}
		case Sell:
			if op.Quantity.GreaterThan(held) {
				return fmt.Errorf("operation #%d: %w: selling %s, holding %s", i+1, ErrOversell, op.Quantity, held)
			}
			held = held.Sub(op.Quantity)
		}
	}
	return nil
}

// checkHeld reports an ErrInvalidOperation when the quantity held, starting
// from an empty position, would overflow while ops are processed.
func checkHeld(ops []Operation) error {
	var held Quantity
	for i, op := range ops {
		ok := true
		switch op.Type {
		case Buy:
			held, ok = held.checkedAdd(op.Quantity)
		case Sell:
			held, ok = held.checkedSub(op.Quantity)
		}
		if !ok {
			return fmt.Errorf("%w: operation #%d: quantity held overflows", ErrInvalidOperation, i+1)
		}
	}
	return nil
}
