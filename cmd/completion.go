package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
// The main package calls Completion().Complete(Name) before parsing flags.
func Completion() *complete.Command {
	files := predict.Files("*")
	selection := map[string]complete.Predictor{
		"i":      files,
		"select": predict.Set{"$.batch"},
		"strict": predict.Nothing,
	}
	process := &complete.Command{Flags: map[string]complete.Predictor{
		"o":       files,
		"workers": predict.Nothing,
	}}
	report := &complete.Command{Flags: map[string]complete.Predictor{
		"c":       predict.Set{"BRL", "EUR", "USD"},
		"style":   predict.Set{"auto", "dark", "light", "notty", "plain"},
		"summary": predict.Nothing,
	}}
	for name, p := range selection {
		process.Flags[name] = p
		report.Flags[name] = p
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{"v": predict.Nothing},
		Sub: map[string]*complete.Command{
			"process":    process,
			"report":     report,
			"topic":      {Args: predict.Set{"readme", "rules", "input", "commands", "*"}, Flags: map[string]complete.Predictor{"style": predict.Set{"auto", "dark", "light", "notty", "plain"}}},
			"version":    {},
			"completion": {Flags: map[string]complete.Predictor{"install": predict.Nothing, "uninstall": predict.Nothing, "y": predict.Nothing}},
			"help":       {},
			"flags":      {},
			"commands":   {},
		},
	}
}

type completionCmd struct {
	install   bool
	uninstall bool
	yes       bool
}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "install or uninstall shell completion" }
func (*completionCmd) Usage() string {
	return `cgt completion -install | -uninstall [-y]

  Installs (or uninstalls) the completion of cgt commands and flags in the
  current user's shell configuration (bash, zsh or fish).
`
}

func (c *completionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.install, "install", false, "Install shell completion.")
	f.BoolVar(&c.uninstall, "uninstall", false, "Uninstall shell completion.")
	f.BoolVar(&c.yes, "y", false, "Do not prompt for confirmation.")
}

func (c *completionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.install && c.uninstall:
		fmt.Fprintln(os.Stderr, "-install and -uninstall flags cannot be used together")
		return subcommands.ExitUsageError
	case c.install:
		os.Setenv("COMP_INSTALL", "1")
	case c.uninstall:
		os.Setenv("COMP_UNINSTALL", "1")
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.yes {
		os.Setenv("COMP_YES", "1")
	}
	// exits the process once installed.
	Completion().Complete(Name)
	return subcommands.ExitSuccess
}
