package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/phrazzld/promptchain/internal/store"
)

const favoriteColumns = `id, title, character_key, prompt_primary, prompt_secondary, prompt_video, created_at`

// FavoriteStore implements store.FavoriteStore on PostgreSQL.
type FavoriteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.FavoriteStore = (*FavoriteStore)(nil)

// NewFavoriteStore creates a store over an open database handle.
// If logger is nil, a default logger will be used.
func NewFavoriteStore(db *sql.DB, logger *slog.Logger) *FavoriteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteStore{
		db:     db,
		logger: logger.With(slog.String("component", "favorites_postgres")),
	}
}

// Create implements store.FavoriteStore.Create.
func (s *FavoriteStore) Create(ctx context.Context, f *domain.Favorite) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := f.Validate(); err != nil {
		log.Warn("favorite validation failed during create",
			slog.String("error", err.Error()),
			slog.String("favorite_id", f.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO favorites (` + favoriteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		f.ID,
		f.Title,
		f.Character,
		f.PromptPrimary,
		f.PromptSecondary,
		f.PromptVideo,
		f.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create favorite",
			slog.String("error", err.Error()),
			slog.String("favorite_id", f.ID.String()))
		return MapError(err)
	}

	log.Info("favorite saved", slog.String("favorite_id", f.ID.String()))
	return nil
}

// GetByID implements store.FavoriteStore.GetByID.
func (s *FavoriteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	f, err := selectFavorite(ctx, s.db, id, false)
	if err != nil {
		return nil, s.lookupError(ctx, id, err)
	}
	return f, nil
}

// List implements store.FavoriteStore.List.
func (s *FavoriteStore) List(ctx context.Context) ([]*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites ORDER BY created_at ASC, id ASC`)
	if err != nil {
		log.Error("failed to list favorites", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*domain.Favorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, MapError(err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return out, nil
}

// Update implements store.FavoriteStore.Update. The row is locked for the
// duration of the transaction so concurrent updates apply one after another.
func (s *FavoriteStore) Update(ctx context.Context, id uuid.UUID, fn store.FavoriteMutator) (*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Favorite
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := selectFavorite(ctx, tx, id, true)
		if err != nil {
			return s.lookupError(ctx, id, err)
		}

		if err := fn(current); err != nil {
			return err
		}
		current.ID = id
		if err := current.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE favorites
			SET title = $1, character_key = $2, prompt_primary = $3,
			    prompt_secondary = $4, prompt_video = $5
			WHERE id = $6
		`,
			current.Title,
			current.Character,
			current.PromptPrimary,
			current.PromptSecondary,
			current.PromptVideo,
			id,
		)
		if err != nil {
			return MapError(err)
		}
		if err := CheckRowsAffected(result, store.ErrFavoriteNotFound); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("favorite updated", slog.String("favorite_id", id.String()))
	return updated, nil
}

// Delete implements store.FavoriteStore.Delete.
func (s *FavoriteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete favorite",
			slog.String("error", err.Error()),
			slog.String("favorite_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrFavoriteNotFound); err != nil {
		return err
	}

	log.Info("favorite deleted", slog.String("favorite_id", id.String()))
	return nil
}

func (s *FavoriteStore) lookupError(ctx context.Context, id uuid.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("favorite not found",
			slog.String("favorite_id", id.String()))
		return store.ErrFavoriteNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("failed to get favorite",
		slog.String("error", err.Error()),
		slog.String("favorite_id", id.String()))
	return MapError(err)
}

// selectFavorite reads one row through q, which may be the pool or a
// transaction. forUpdate locks the row until the transaction ends.
func selectFavorite(ctx context.Context, q store.DBTX, id uuid.UUID, forUpdate bool) (*domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanFavorite(q.QueryRowContext(ctx, query, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row rowScanner) (*domain.Favorite, error) {
	var f domain.Favorite
	if err := row.Scan(
		&f.ID,
		&f.Title,
		&f.Character,
		&f.PromptPrimary,
		&f.PromptSecondary,
		&f.PromptVideo,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return &f, nil
}
