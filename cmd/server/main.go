// Package main provides the web server entry point.
// The server only serves the board's static bundle; all interaction runs in
// the browser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zone.digit.blockboard/internal/config"
	"zone.digit.blockboard/internal/server"
	"zone.digit.blockboard/internal/static"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

type flags struct {
	configPath  string
	showVersion bool
}

func main() {
	f := parseFlags(os.Args[1:])
	if f.showVersion {
		fmt.Printf("blockboard %s\n", version)
		os.Exit(0)
	}
	os.Exit(run(f))
}

func parseFlags(args []string) flags {
	var f flags

	set := flag.NewFlagSet("blockboard", flag.ContinueOnError)
	set.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	set.BoolVar(&f.showVersion, "version", false, "Print version and exit")

	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	return f
}

func run(f flags) int {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cache *static.Cache
	if cfg.CacheAssets {
		cache = static.NewCache()
	}

	var bundle fs.FS = static.Bundle()
	source := "embedded"
	if cfg.Root != "" {
		bundle = os.DirFS(cfg.Root)
		source = cfg.Root
		if cache != nil {
			if _, err := static.Watch(ctx, cfg.Root, cache, logger); err != nil {
				logger.Warn("asset watcher disabled", "root", cfg.Root, "error", err)
			}
		}
	}

	assets := static.NewHandler(bundle,
		static.WithCompression(cfg.Compression),
		static.WithCache(cache),
		static.WithLogger(logger),
	)
	srv := server.New(cfg, server.NewRouter(ctx, cfg, assets, logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("blockboard server starting",
			"addr", fmt.Sprintf("http://localhost%s", cfg.Addr()),
			"assets", source,
			"compression", cfg.Compression,
			"rate_limit", cfg.RateLimit.RPS,
			"version", version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return 1
	}

	logger.Info("server stopped gracefully")
	return 0
}
