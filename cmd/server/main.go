// Package main implements the entry point for the promptchain server, which
// turns short ideas into photographic and video prompts through a chain of
// LLM providers and keeps a collection of favorite prompts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/phrazzld/promptchain/internal/platform/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	migrateCmd := flag.String("migrate", "", "run a database migration command (up|down|reset|status|version) and exit")
	flag.Parse()

	if err := run(*configPath, *migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "promptchain: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, migrateCmd string) error {
	cfg, err := initializeApp(configPath)
	if err != nil {
		return err
	}
	log := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(configPath string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	keys := cfg.KeyStatus()
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"favorites_backend", cfg.Favorites.Backend,
		"gemini_configured", keys.Gemini,
		"openrouter_configured", keys.OpenRouter,
		"openai_configured", keys.OpenAI)
	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url", postgres.MaskDatabaseURL(cfg.Database.URL))
	}
	return cfg, nil
}

// handleMigrations runs a goose command against the configured database.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url is required to run migrations")
	}
	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	log.Info("Executing migrations", "command", command)
	return postgres.Migrate(ctx, db, command, log)
}
