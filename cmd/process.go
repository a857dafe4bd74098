package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	input    string
	output   string
	selector string
	strict   bool
	workers  int
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "compute the tax of each operation, one batch per line" }
func (*processCmd) Usage() string {
	return `cgt process [-i <file>] [-o <file>] [-select <jsonpath>] [-strict] [-workers <n>]

  Reads batches of operations, one JSON array per line, and writes the tax of
  each operation, one JSON array per line. Every line is computed against a new
  position. This is the default command.

Usage Examples:
$ echo '[{"operation":"buy", "unit-cost":10.00, "quantity": 100}]' | cgt
[{"tax":0}]

$ cgt process -select '$.batch' -i batches.jsonl -o taxes.jsonl

`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file. Defaults to stdin.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
	f.StringVar(&c.selector, "select", envString(EnvSelect, ""), "JSONPath of the operations in each line (e.g. $.batch). Defaults to $"+EnvSelect+".")
	f.BoolVar(&c.strict, "strict", false, "Reject batches selling more than the quantity held.")
	f.IntVar(&c.workers, "workers", envInt(EnvWorkers, runtime.NumCPU()), "Number of lines processed concurrently. Defaults to $"+EnvWorkers+" or the number of CPUs.")
}

// newStream builds the capgains.Stream configured by the flags.
func newStream(selector string, strict bool, workers int) (*capgains.Stream, error) {
	sel, err := capgains.NewSelector(selector)
	if err != nil {
		return nil, err
	}
	return &capgains.Stream{
		Selector: sel,
		Strict:   strict,
		Workers:  workers,
		Logf:     verbosef,
	}, nil
}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.workers < 1 {
		fmt.Fprintf(os.Stderr, "Error: -workers must be positive, got %d\n", c.workers)
		return subcommands.ExitUsageError
	}
	stream, err := newStream(c.selector, c.strict, c.workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	in, err := openInput(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	out, err := createOutput(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	verbosef("processing %q with %d workers", c.input, c.workers)
	if err := stream.Run(ctx, in, out); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error processing operations: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
