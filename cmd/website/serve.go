package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"go.uber.org/automaxprocs/maxprocs"

	website "github.com/pilcrowonpaper/website"
	"github.com/pilcrowonpaper/website/internal/config"
	"github.com/pilcrowonpaper/website/internal/hints"
)

// runServe loads configuration, builds the site and serves it until ctx is done.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseServeFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := noArgs(cmdServe, rest); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)

	logger := newLogger(cfg.Log, flags.common, env.Stderr)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()

	buildID, err := website.ReadBuildID(firstNonEmpty(flags.buildID, envCfg.BuildIDFile, website.BuildIDFile))
	if err != nil {
		return err
	}

	opts := []website.Option{website.WithLogger(logger), website.WithBuildID(buildID)}
	if env.AssetLoader != nil {
		opts = append(opts, website.WithAssetLoader(env.AssetLoader))
	}
	site, err := website.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := site.Close(); err != nil {
			logger.Warn("closing site", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrListen, err, hints.ForListen(cfg.Server.Addr))
	}

	logger.Info("serving",
		"addr", ln.Addr().String(),
		"build_id", buildID,
		"dev", cfg.Server.Dev,
		"export", cfg.Export.Enabled,
		"version", Version,
	)
	return serve(ctx, ln, site.Handler(), cfg.Server, logger)
}

// mergeServeFlags applies CLI flags to config (CLI wins).
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.dev {
		cfg.Server.Dev = true
	}
	if flags.postsDir != "" {
		cfg.Content.PostsDir = flags.postsDir
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.export {
		cfg.Export.Enabled = true
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
}

// serve runs an http.Server on ln until ctx is done, then shuts it down
// within the configured shutdown timeout.
func serve(ctx context.Context, ln net.Listener, h http.Handler, sc config.ServerConfig, logger *slog.Logger) error {
	read, write, idle, shutdown := sc.Timeouts()
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: read,
		ReadTimeout:       read,
		WriteTimeout:      write,
		IdleTimeout:       idle,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
