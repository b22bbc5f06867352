package main

import (
	"bytes"
	"context"
	"fmt"

	website "github.com/pilcrowonpaper/website"
	"github.com/pilcrowonpaper/website/internal/fileutil"
)

// feedFilePermissions is rw-r--r--: owner read+write, others read.
const feedFilePermissions = 0o644

// runFeed writes the RSS feed to stdout or to --output.
func runFeed(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseFeedFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := noArgs(cmdFeed, rest); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if flags.postsDir != "" {
		cfg.Content.PostsDir = flags.postsDir
	}

	opts := []website.Option{
		website.WithLogger(newLogger(cfg.Log, flags.common, env.Stderr)),
		website.WithNow(env.Now),
	}
	if env.AssetLoader != nil {
		opts = append(opts, website.WithAssetLoader(env.AssetLoader))
	}
	site, err := website.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer site.Close()

	var buf bytes.Buffer
	if err := site.WriteFeed(ctx, &buf); err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := buf.WriteTo(env.Stdout); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(flags.output, buf.Bytes(), feedFilePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "wrote %s\n", flags.output)
	}
	return nil
}
