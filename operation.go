package capgains

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidOperation is wrapped by every error raised while decoding an operation.
var ErrInvalidOperation = errors.New("invalid operation")

// OperationType is a typed string for identifying operations.
type OperationType string

// Operation types, as they appear in the "operation" property.
const (
	Buy  OperationType = "buy"
	Sell OperationType = "sell"
)

// ParseOperationType parses a string into an OperationType.
func ParseOperationType(s string) (OperationType, error) {
	switch t := OperationType(s); t {
	case Buy, Sell:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown operation type %q", ErrInvalidOperation, s)
	}
}

func (t OperationType) String() string { return string(t) }

// UnmarshalJSON only accepts the known operation types.
func (t *OperationType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: operation must be a string: %w", ErrInvalidOperation, err)
	}
	v, err := ParseOperationType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Operation is a single buy or sell of the asset.
type Operation struct {
	Type     OperationType // Type is either Buy or Sell.
	Quantity Quantity      // Quantity is the number of units traded, always positive.
	UnitCost Money         // UnitCost is the price of one unit, rounded to cents.
}

// NewBuy creates a buy operation. The unit cost is rounded to cents.
func NewBuy(quantity Quantity, unitCost Money) Operation {
	return Operation{Type: Buy, Quantity: quantity, UnitCost: unitCost.Round()}
}

// NewSell creates a sell operation. The unit cost is rounded to cents.
func NewSell(quantity Quantity, unitCost Money) Operation {
	return Operation{Type: Sell, Quantity: quantity, UnitCost: unitCost.Round()}
}

// Value returns the total value of the operation (quantity * unit cost).
func (o Operation) Value() Money { return o.UnitCost.Mul(o.Quantity) }

// Validate checks that the operation can be handed to a Processor.
func (o Operation) Validate() error {
	if _, err := ParseOperationType(string(o.Type)); err != nil {
		return err
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("%w: %s quantity must be positive, got %s", ErrInvalidOperation, o.Type, o.Quantity)
	}
	if o.UnitCost.IsNegative() {
		return fmt.Errorf("%w: %s unit-cost must not be negative, got %s", ErrInvalidOperation, o.Type, o.UnitCost)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Operation.
func (o Operation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("operation", o.Type)
	w.Append("quantity", o.Quantity)
	w.Append("unit-cost", o.UnitCost)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Operation.
//
// It is the decode boundary: missing properties, unknown operation types and
// out of range values are reported as ErrInvalidOperation. A unit-cost has at
// most 8 integer digits.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var temp struct {
		Type     *OperationType `json:"operation"`
		Quantity *Quantity      `json:"quantity"`
		UnitCost *json.Number   `json:"unit-cost"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		if errors.Is(err, ErrInvalidOperation) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}
	switch {
	case temp.Type == nil:
		return fmt.Errorf("%w: missing property %q", ErrInvalidOperation, "operation")
	case temp.Quantity == nil:
		return fmt.Errorf("%w: missing property %q", ErrInvalidOperation, "quantity")
	case temp.UnitCost == nil:
		return fmt.Errorf("%w: missing property %q", ErrInvalidOperation, "unit-cost")
	}

	// the sign is checked before rounding, -0.001 is not a zero cost.
	cost, err := parseAmount(*temp.UnitCost, maxUnitCostDigits)
	if err != nil {
		return fmt.Errorf("%w: unit-cost: %w", ErrInvalidOperation, err)
	}
	if cost.IsNegative() {
		return fmt.Errorf("%w: %s unit-cost must not be negative, got %s", ErrInvalidOperation, *temp.Type, *temp.UnitCost)
	}

	op := Operation{Type: *temp.Type, Quantity: *temp.Quantity, UnitCost: Money{value: roundAmount(cost)}}
	if err := op.Validate(); err != nil {
		return err
	}
	*o = op
	return nil
}
