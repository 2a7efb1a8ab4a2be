// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command shoplite provisions the local shop database: it opens (or
// creates) the SQLite file, runs migrations, applies the idempotent seed,
// restores any persisted session, and reports the resulting state.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/olegiv/shoplite-go/internal/config"
	"github.com/olegiv/shoplite-go/internal/logging"
	"github.com/olegiv/shoplite-go/internal/shop"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "shoplite - local shop database provisioning\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPLITE_DB_PATH        SQLite database path (default: ./data/shoplite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPLITE_SESSION_PATH   Session marker path (default: ./data/session.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPLITE_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPLITE_LOG_LEVEL      Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPLITE_EVENT_LOG      Write WARN+ logs to the events table (default: true)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("shoplite %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	slog.Info("initializing database", "path", cfg.DBPath)
	sc, err := shop.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sc.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	if cfg.EventLog {
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
		slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, sc.DB)))
		slog.Info("event log integration enabled", "min_level", "warn")
	}

	sc.RestoreSession()

	categories, err := sc.Queries.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	products, err := sc.Queries.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	users, err := sc.Queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}

	slog.Info("shop database provisioned",
		"categories", categories,
		"products", products,
		"users", users,
		"env", cfg.Env,
	)
	return nil
}
