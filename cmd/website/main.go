package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdServe   = "serve"
	cmdFeed    = "feed"
	cmdBuildID = "build-id"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// Without a command name, serve runs with the given flags.
func runMain(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := cmdServe, args[1:]
	if len(rest) > 0 && isCommand(rest[0]) {
		cmd, rest = rest[0], rest[1:]
	}

	var err error
	switch cmd {
	case cmdServe:
		err = runServe(ctx, rest, env)
	case cmdFeed:
		err = runFeed(ctx, rest, env)
	case cmdBuildID:
		err = runBuildID(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "website %s\n", Version)
	case cmdHelp:
		runHelp(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

func isCommand(name string) bool {
	switch name {
	case cmdServe, cmdFeed, cmdBuildID, cmdVersion, cmdHelp:
		return true
	}
	return false
}
