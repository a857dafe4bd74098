package capgains

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains the JSON boundary of the calculator.
//
// A batch is a single line of text, holding a JSON array of operations:
//
//	[{"operation":"buy", "unit-cost":10.00, "quantity": 100}, ...]
//
// and its results are written as a single line, holding a JSON array of results:
//
//	[{"tax":0}, ...]

// Selector locates the array of operations inside a JSON document.
//
// The zero Selector means that the document is the array itself. Otherwise the
// array is found by a JSONPath expression, like "$.batch" for documents such as
// {"batch": [...]}.
type Selector struct {
	path string
	eval func(context.Context, any) (any, error)
}

// NewSelector compiles a JSONPath expression. An empty path returns the zero Selector.
func NewSelector(path string) (Selector, error) {
	if path == "" {
		return Selector{}, nil
	}
	eval, err := jsonpath.New(path)
	if err != nil {
		return Selector{}, fmt.Errorf("invalid selector %q: %w", path, err)
	}
	return Selector{path: path, eval: eval}, nil
}

// String returns the JSONPath expression, or "" for the zero Selector.
func (s Selector) String() string { return s.path }

// selectArray returns the raw JSON array designated by the selector.
func (s Selector) selectArray(data []byte) ([]byte, error) {
	if s.eval == nil {
		return data, nil
	}

	// numbers are kept as json.Number so that amounts are not turned into floats.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("%w: not a correct json: %w", ErrInvalidOperation, err)
	}

	jval, err := s.eval(context.Background(), jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: selector %q: %w", ErrInvalidOperation, s.path, err)
	}
	if _, ok := jval.([]any); !ok {
		return nil, fmt.Errorf("%w: selector %q does not designate an array", ErrInvalidOperation, s.path)
	}
	return json.Marshal(jval)
}

// DecodeBatch decodes a batch of operations from a single line.
func DecodeBatch(line []byte) ([]Operation, error) {
	return Selector{}.DecodeBatch(line)
}

// DecodeBatch decodes the batch of operations designated by the selector in line.
// The quantity held while the batch is processed must fit in a Quantity.
func (s Selector) DecodeBatch(line []byte) ([]Operation, error) {
	data, err := s.selectArray(line)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: a batch must be a JSON array of operations", ErrInvalidOperation)
	}

	var ops []Operation
	if err := json.Unmarshal(data, &ops); err != nil {
		if errors.Is(err, ErrInvalidOperation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: not a correct json: %w", ErrInvalidOperation, err)
	}
	if err := checkHeld(ops); err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []Operation{}
	}
	return ops, nil
}

// EncodeResults writes results as a JSON array followed by a new line.
func EncodeResults(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("cannot encode results: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("cannot write results: %w", err)
	}
	return nil
}
