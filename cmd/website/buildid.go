package main

import (
	"fmt"
	"os"

	website "github.com/pilcrowonpaper/website"
)

// runBuildID writes a fresh build id and prints it.
func runBuildID(args []string, env *Environment) error {
	flags, rest, err := parseBuildIDFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := noArgs(cmdBuildID, rest); err != nil {
		return err
	}

	path := firstNonEmpty(flags.path, os.Getenv("WEBSITE_BUILD_ID_FILE"), website.BuildIDFile)
	id, err := website.WriteBuildID(path, env.Now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if !flags.quiet {
		fmt.Fprintln(env.Stdout, id)
	}
	return nil
}
