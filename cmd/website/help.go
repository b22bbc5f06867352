package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: website [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Serve the site over HTTP (default)")
	fmt.Fprintln(w, "  feed       Write the RSS feed")
	fmt.Fprintln(w, "  build-id   Write a new .BUILD_ID for cache busting")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'website help <command>' for details on a specific command.")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: website serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the blog, RSS feed and GitHub project endpoints.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :3000)")
	fmt.Fprintln(w, "      --dev                 Development mode")
	fmt.Fprintln(w, "      --export              Enable /blog/{id}/pdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --posts <dir>         Markdown posts directory")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/styles directory")
	fmt.Fprintln(w, "      --build-id-file <f>   Build id file (default .BUILD_ID)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-format <s>      json or text")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug details")
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printFeedUsage prints usage for the feed command.
func printFeedUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: website feed [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the RSS 2.0 feed of published posts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --posts <dir>         Markdown posts directory")
}

// printBuildIDUsage prints usage for the build-id command.
func printBuildIDUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: website build-id [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the current time in unix milliseconds to the build id file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Build id file (default .BUILD_ID)")
	fmt.Fprintln(w, "  -q, --quiet               Do not print the new id")
}

func printEnvUsage(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	for _, name := range envVarNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdServe:
		printServeUsage(env.Stdout)
	case cmdFeed:
		printFeedUsage(env.Stdout)
	case cmdBuildID:
		printBuildIDUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: website version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: website help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
