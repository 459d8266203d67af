package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/platform/csvstore"
	"github.com/phrazzld/promptchain/internal/platform/postgres"
	"github.com/phrazzld/promptchain/internal/service"
	"github.com/phrazzld/promptchain/internal/store"
	"github.com/phrazzld/promptchain/internal/task"
)

// Components are the assembled services of one process.
type Components struct {
	Prompts   service.PromptService
	Favorites service.FavoriteService
	// Styles lists the styles the local template generator knows.
	Styles []string

	pool   *task.WorkerPool
	db     *sql.DB
	logger *slog.Logger
}

// Option customizes New.
type Option func(*options)

type options struct {
	httpClient *http.Client
	favorites  store.FavoriteStore
}

// WithHTTPClient sets the HTTP client used by every provider.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithFavoriteStore replaces the configured favorites backend.
func WithFavoriteStore(s store.FavoriteStore) Option {
	return func(o *options) { o.favorites = s }
}

// New builds every component from cfg. The returned Components own a running
// worker pool and possibly a database connection; call Close to release them.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*Components, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	c := &Components{logger: log}

	queue := task.NewTaskQueue(cfg.Workers.QueueSize, log)
	c.pool = task.NewWorkerPool(queue, task.WorkerPoolConfig{WorkerCount: cfg.Workers.PoolSize}, log)
	c.pool.Start()

	p, err := newProviders(ctx, cfg.LLM, o.httpClient, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	ch, err := newChain(cfg.LLM, characterCatalog(cfg.Characters), p, c.pool, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Styles = ch.styles
	if c.Prompts, err = service.NewPromptService(ch.deps, log); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create prompt service: %w", err)
	}

	favorites := o.favorites
	if favorites == nil {
		if favorites, err = c.openFavoriteStore(ctx, cfg, log); err != nil {
			c.Close()
			return nil, err
		}
	}
	if c.Favorites, err = service.NewFavoriteService(favorites, log); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create favorite service: %w", err)
	}

	log.Info("components initialized",
		slog.String("favorites_backend", cfg.Favorites.Backend),
		slog.Int("worker_count", cfg.Workers.PoolSize))
	return c, nil
}

func (c *Components) openFavoriteStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.FavoriteStore, error) {
	switch cfg.Favorites.Backend {
	case config.FavoritesBackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		c.db = db
		log.Info("favorites stored in postgres", slog.String("url", postgres.MaskDatabaseURL(cfg.Database.URL)))
		return postgres.NewFavoriteStore(db, log), nil
	case config.FavoritesBackendCSV, "":
		s, err := csvstore.NewFavoriteStore(cfg.Favorites.CSVPath, log)
		if err != nil {
			return nil, err
		}
		log.Info("favorites stored in csv file", slog.String("path", s.Path()))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.Favorites.Backend)
	}
}

// Close stops the worker pool and closes the database connection.
func (c *Components) Close() {
	if c.pool != nil {
		c.pool.Stop()
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Error closing database connection", "error", err)
		}
	}
}
