package cmd

import (
	"context"
	"flag"
	"fmt"
	"runtime/debug"

	"github.com/google/subcommands"
)

// Version is set at link time with -ldflags "-X github.com/etnz/capgains/cmd.Version=...".
// When empty, the module version from the build info is used.
var Version = ""

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "show the version of the application and exit" }
func (*versionCmd) Usage() string            { return "cgt version\n" }
func (*versionCmd) SetFlags(f *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprintln(stdout, version())
	return subcommands.ExitSuccess
}

// version returns the application version, "(devel)" for local builds.
func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
