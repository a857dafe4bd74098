package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
)

func main() {
	log.SetFlags(0)
	if err := cmd.LoadEnv(); err != nil {
		log.Printf("warning, cannot load environment file: %v", err)
	}
	// exits when invoked by the shell for completion.
	cmd.Completion().Complete(cmd.Name)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	if flag.NArg() == 0 {
		// process is the default command.
		flag.CommandLine.Parse(append(os.Args[1:], "process"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
