// Package cmd implements the CLI application to compute capital gains tax.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"
)

// Name is the name of the binary, used in completion scripts.
var Name = "cgt"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables diagnostic logs on stderr.
var Verbose = flag.Bool("v", false, "Verbose output on stderr. Defaults to $"+EnvVerbose+".")

// stdin and stdout are swapped in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&processCmd{}, "taxes")
	c.Register(&reportCmd{}, "taxes")
	c.Register(&topicCmd{}, "")

	c.Register(&versionCmd{}, "")
	c.Register(&completionCmd{}, "")
}

// verbosef logs only in verbose mode.
func verbosef(format string, args ...any) {
	if *Verbose || envBool(EnvVerbose, false) {
		log.Printf(format, args...)
	}
}

// openInput opens the named file, or returns stdin if name is "" or "-".
func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %q: %w", name, err)
	}
	return f, nil
}

// nopWriteCloser does not close the wrapped writer.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput creates the named file, or returns stdout if name is "" or "-".
func createOutput(name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{stdout}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("cannot create output file %q: %w", name, err)
	}
	return f, nil
}
