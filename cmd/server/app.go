package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/promptchain/internal/bootstrap"
	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	logger *slog.Logger

	// Service interfaces
	promptService   service.PromptService
	favoriteService service.FavoriteService
	styles          []string

	// components owns the worker pool and the database connection
	components *bootstrap.Components
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...bootstrap.Option) (*application, error) {
	components, err := bootstrap.New(ctx, cfg, logger, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:          cfg,
		logger:          logger,
		promptService:   components.Prompts,
		favoriteService: components.Favorites,
		styles:          components.Styles,
		components:      components,
	}, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.components != nil {
		app.components.Close()
	}
	app.logger.Info("Application shutdown completed")
}
