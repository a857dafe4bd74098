package capgains

import (
	"fmt"
	"iter"
	"slices"
)

// Processor applies a batch of operations to the position it owns.
//
// Operations are applied strictly in order: each one sees the position left by
// the previous one. A Processor is not safe for concurrent use, but distinct
// processors (each with its own Position) can run in parallel.
type Processor struct {
	position *Position
	rules    map[OperationType]rule
}

// NewProcessor creates a processor owning pos. Use NewPosition for a fresh batch.
func NewProcessor(pos *Position) *Processor {
	return &Processor{
		position: pos,
		rules: map[OperationType]rule{
			Buy:  buy,
			Sell: sell,
		},
	}
}

// Position returns the position owned by the processor.
func (p *Processor) Position() *Position { return p.position }

// Apply processes a single operation.
//
// It panics if the operation type has no rule: operations are expected to be
// validated when decoded. The held quantity is not checked for overflow, see
// DecodeBatch.
func (p *Processor) Apply(op Operation) Result {
	r, ok := p.rules[op.Type]
	if !ok {
		panic(fmt.Sprintf("no rule registered for operation type %q", op.Type))
	}
	return r(op, p.position)
}

// Results returns an iterator over the results of ops. Each operation is
// applied only when its result is pulled.
func (p *Processor) Results(ops []Operation) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, op := range ops {
			if !yield(p.Apply(op)) {
				return
			}
		}
	}
}

// Process applies all operations and returns one result per operation, in order.
func (p *Processor) Process(ops []Operation) []Result {
	results := make([]Result, 0, len(ops))
	return slices.AppendSeq(results, p.Results(ops))
}

// Calculate processes ops against a fresh position.
func Calculate(ops []Operation) []Result {
	return NewProcessor(NewPosition()).Process(ops)
}
