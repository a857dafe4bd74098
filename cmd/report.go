package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	input    string
	selector string
	strict   bool
	currency string
	style    string
	summary  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a report of the tax of each batch" }
func (*reportCmd) Usage() string {
	return `cgt report [-i <file>] [-select <jsonpath>] [-strict] [-c <currency>] [-style <style>] [-summary]

  Reads batches of operations, one JSON array per line, and displays for each
  batch the tax of every operation, the total tax and the final position.

Usage Examples:
$ cgt report -i batches.jsonl -c EUR -summary

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file. Defaults to stdin.")
	f.StringVar(&c.selector, "select", envString(EnvSelect, ""), "JSONPath of the operations in each line (e.g. $.batch). Defaults to $"+EnvSelect+".")
	f.BoolVar(&c.strict, "strict", false, "Reject batches selling more than the quantity held.")
	f.StringVar(&c.currency, "c", envString(EnvCurrency, "BRL"), "Currency used to display amounts, empty for plain numbers. Defaults to $"+EnvCurrency+".")
	f.StringVar(&c.style, "style", "auto", "Rendering style (auto, dark, light, notty, plain). 'plain' prints raw markdown.")
	f.BoolVar(&c.summary, "summary", false, "Only display the total tax of each batch.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stream, err := newStream(c.selector, c.strict, 1)
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

	opts := renderer.Options{Currency: c.currency, Source: c.input}
	var batches []*capgains.Batch
	err = stream.Each(ctx, in, func(b *capgains.Batch) error {
		if c.summary {
			batches = append(batches, b)
			return nil
		}
		return printMarkdown(stdout, renderer.BatchMarkdown(b, opts), c.style)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing operations: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.summary {
		if err := printMarkdown(stdout, renderer.SummaryMarkdown(batches, opts), c.style); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or writes it as is for the "plain" style.
func printMarkdown(w io.Writer, md string, style string) error {
	if style == "plain" {
		_, err := io.WriteString(w, md+"\n")
		return err
	}

	styleOpt := glamour.WithStandardStyle(style)
	if style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("cannot create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("cannot render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
