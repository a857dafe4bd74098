package capgains

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// maxLineSize is the longest batch line accepted.
const maxLineSize = 64 * 1024 * 1024

// LineError reports a batch that could not be processed.
type LineError struct {
	Line int   // Line is the 1-based line number in the input.
	Err  error // Err is the cause.
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Batch is a line of input once processed.
type Batch struct {
	Line       int         // Line is the 1-based line number in the input.
	Operations []Operation // Operations as decoded from the line.
	Results    []Result    // Results, one per operation.
	Position   *Position   // Position after the last operation.
}

// TotalTax returns the sum of the taxes of the batch.
func (b *Batch) TotalTax() Money {
	var total Money
	for _, r := range b.Results {
		total = total.Add(r.Tax)
	}
	return total
}

// Stream processes a text stream, one independent batch per line.
//
// Its zero value reads bare JSON arrays, lets sells exceed the quantity held
// and processes one line at a time.
type Stream struct {
	Selector Selector // Selector locates the operations in each line.
	Strict   bool     // Strict rejects batches that sell more than held, see Validate.
	Workers  int      // Workers is the number of lines processed concurrently.

	// Logf, when set, receives a trace of every processed batch.
	Logf func(format string, args ...any)
}

// Evaluate decodes a single line and processes it against a fresh position.
func (s *Stream) Evaluate(n int, line []byte) (*Batch, error) {
	ops, err := s.Selector.DecodeBatch(line)
	if err != nil {
		return nil, &LineError{Line: n, Err: err}
	}
	if s.Strict {
		if err := Validate(ops); err != nil {
			return nil, &LineError{Line: n, Err: err}
		}
	}

	p := NewProcessor(NewPosition())
	batch := &Batch{
		Line:       n,
		Operations: ops,
		Results:    p.Process(ops),
		Position:   p.Position(),
	}
	if s.Logf != nil {
		s.Logf("line %d: %d operations, tax %s, final position %s", n, len(ops), batch.TotalTax(), batch.Position)
	}
	return batch, nil
}

// scan calls fn for every non blank line of r.
func scan(ctx context.Context, r io.Reader, fn func(n int, line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		// the scanner reuses its buffer, lines can be processed later.
		if err := fn(n, bytes.Clone(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	return nil
}

// Each processes every line of r in order, and calls fn with the processed batch.
func (s *Stream) Each(ctx context.Context, r io.Reader, fn func(*Batch) error) error {
	return scan(ctx, r, func(n int, line []byte) error {
		batch, err := s.Evaluate(n, line)
		if err != nil {
			return err
		}
		return fn(batch)
	})
}

// output is the outcome of one line, as handed from a worker to the writer.
type output struct {
	batch *Batch
	err   error
}

// Run processes every line of r and writes the results to w, one line per batch,
// in input order.
//
// Lines are independent, so up to Workers lines are processed concurrently. Run
// stops at the first line that cannot be processed and returns a *LineError.
func (s *Stream) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	workers := max(s.Workers, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers + 1) // one more for the writer.

	// pending holds the outputs in input order, it bounds the lines in flight.
	pending := make(chan chan output, workers)

	g.Go(func() error {
		for out := range pending {
			o := <-out
			if o.err != nil {
				return o.err
			}
			if err := EncodeResults(w, o.batch.Results); err != nil {
				return err
			}
		}
		return nil
	})

	err := scan(ctx, r, func(n int, line []byte) error {
		out := make(chan output, 1)
		select {
		case pending <- out:
		case <-ctx.Done():
			return ctx.Err()
		}
		g.Go(func() error {
			batch, err := s.Evaluate(n, line)
			out <- output{batch: batch, err: err}
			return nil
		})
		return nil
	})
	close(pending)

	if werr := g.Wait(); werr != nil {
		return werr
	}
	return err
}
