package capgains

import "encoding/json"

// Result is the outcome of processing one operation.
type Result struct {
	Tax Money // Tax owed for that single operation, never negative.
}

// NoTax is the result of operations that do not owe anything.
var NoTax = Result{}

// MarshalJSON implements the json.Marshaler interface for Result.
func (r Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tax", r.Tax)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Result.
func (r *Result) UnmarshalJSON(data []byte) error {
	var temp struct {
		Tax Money `json:"tax"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	r.Tax = temp.Tax
	return nil
}
