package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrListen      = errors.New("failed to listen")
	ErrWriteOutput = errors.New("failed to write output")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	dev       bool
	postsDir  string
	assetPath string
	buildID   string
	export    bool
	logFormat string
}

// feedFlags holds flags for the feed command.
type feedFlags struct {
	common   commonFlags
	output   string
	postsDir string
}

// buildIDFlags holds flags for the build-id command.
type buildIDFlags struct {
	path  string
	quiet bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details")
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet(cmdServe, flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :3000)")
	fs.BoolVar(&f.dev, "dev", false, "development mode: keep request scheme in links")
	fs.StringVar(&f.postsDir, "posts", "", "markdown posts directory")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom templates/styles directory")
	fs.StringVar(&f.buildID, "build-id-file", "", "build id file (default .BUILD_ID)")
	fs.BoolVar(&f.export, "export", false, "enable PDF export of posts")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: json, text")
	addCommonFlags(fs, &f.common)

	fs.SetOutput(io.Discard)
	fs.Usage = func() { printServeUsage(usage) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseFeedFlags parses feed command flags and returns positional args.
func parseFeedFlags(args []string, usage io.Writer) (*feedFlags, []string, error) {
	fs := flag.NewFlagSet(cmdFeed, flag.ContinueOnError)
	f := &feedFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&f.postsDir, "posts", "", "markdown posts directory")
	addCommonFlags(fs, &f.common)

	fs.SetOutput(io.Discard)
	fs.Usage = func() { printFeedUsage(usage) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBuildIDFlags parses build-id command flags and returns positional args.
func parseBuildIDFlags(args []string, usage io.Writer) (*buildIDFlags, []string, error) {
	fs := flag.NewFlagSet(cmdBuildID, flag.ContinueOnError)
	f := &buildIDFlags{}

	fs.StringVarP(&f.path, "output", "o", "", "build id file (default .BUILD_ID)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the new id")

	fs.SetOutput(io.Discard)
	fs.Usage = func() { printBuildIDUsage(usage) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse runs fs.Parse, wrapping failures in ErrUsage. --help passes through
// as flag.ErrHelp after the usage text is printed.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// noArgs rejects positional arguments for commands that take none.
func noArgs(cmd string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, cmd, args)
	}
	return nil
}
