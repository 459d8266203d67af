package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/phrazzld/promptchain/internal/store"
)

// NewFavoriteInput carries the fields of a favorite to save.
type NewFavoriteInput struct {
	Title           string
	Character       string
	PromptPrimary   string
	PromptSecondary string
	PromptVideo     string
}

// FavoriteService provides favorites operations.
type FavoriteService interface {
	// Add validates and stores a new favorite.
	Add(ctx context.Context, in NewFavoriteInput) (*domain.Favorite, error)

	// List returns every favorite, oldest first.
	List(ctx context.Context) ([]*domain.Favorite, error)

	// Search returns favorites with query in any text field, case-insensitively.
	Search(ctx context.Context, query string) ([]*domain.Favorite, error)

	// Get retrieves one favorite.
	Get(ctx context.Context, id uuid.UUID) (*domain.Favorite, error)

	// Update replaces the non-empty fields of update on the stored favorite.
	Update(ctx context.Context, id uuid.UUID, update domain.FavoriteUpdate) (*domain.Favorite, error)

	// Delete removes a favorite.
	Delete(ctx context.Context, id uuid.UUID) error

	// Export renders every favorite as an indented JSON array.
	Export(ctx context.Context) ([]byte, error)

	// Stats summarizes the collection.
	Stats(ctx context.Context) (domain.FavoriteStats, error)
}

// Common sentinel errors for FavoriteService
var (
	// ErrFavoriteNotFound indicates that the favorite does not exist.
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrEmptyUpdate indicates an update that carries no field to change.
	ErrEmptyUpdate = errors.New("update contains no fields")

	// ErrEmptyQuery indicates a search without a query.
	ErrEmptyQuery = errors.New("search query cannot be empty")
)

// FavoriteServiceError wraps errors from the favorite service with context.
type FavoriteServiceError struct {
	// Operation is the operation that failed (e.g., "add_favorite")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for FavoriteServiceError.
func (e *FavoriteServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("favorite service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("favorite service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FavoriteServiceError) Unwrap() error {
	return e.Err
}

// NewFavoriteServiceError creates a new FavoriteServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewFavoriteServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFavoriteNotFound) || errors.Is(err, store.ErrNotFound) {
		return ErrFavoriteNotFound
	}
	return &FavoriteServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

type favoriteServiceImpl struct {
	store  store.FavoriteStore
	logger *slog.Logger
}

// NewFavoriteService creates a FavoriteService over favorites.
// It returns an error if any of the required dependencies are nil.
func NewFavoriteService(favorites store.FavoriteStore, logger *slog.Logger) (FavoriteService, error) {
	if favorites == nil {
		return nil, fmt.Errorf("%w: favorite store cannot be nil", ErrMissingDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrMissingDependency)
	}
	return &favoriteServiceImpl{
		store:  favorites,
		logger: logger.With(slog.String("component", "favorites")),
	}, nil
}

func (s *favoriteServiceImpl) Add(ctx context.Context, in NewFavoriteInput) (*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	f, err := domain.NewFavorite(in.Title, in.Character, in.PromptPrimary, in.PromptSecondary, in.PromptVideo)
	if err != nil {
		log.Warn("rejected favorite", slog.String("error", err.Error()))
		return nil, NewFavoriteServiceError("add_favorite", "invalid favorite", fmt.Errorf("%w: %w", domain.ErrValidation, err))
	}
	if err := s.store.Create(ctx, f); err != nil {
		log.Error("failed to save favorite", slog.String("error", err.Error()))
		return nil, NewFavoriteServiceError("add_favorite", "failed to save favorite", err)
	}

	log.Info("favorite added",
		slog.String("favorite_id", f.ID.String()),
		slog.String("character", f.Character))
	return f, nil
}

func (s *favoriteServiceImpl) List(ctx context.Context) ([]*domain.Favorite, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, NewFavoriteServiceError("list_favorites", "failed to list favorites", err)
	}
	if all == nil {
		all = []*domain.Favorite{}
	}
	return all, nil
}

func (s *favoriteServiceImpl) Search(ctx context.Context, query string) ([]*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewFavoriteServiceError("search_favorites", "invalid query", fmt.Errorf("%w: %w", domain.ErrValidation, ErrEmptyQuery))
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, NewFavoriteServiceError("search_favorites", "failed to list favorites", err)
	}
	matches := make([]*domain.Favorite, 0, len(all))
	for _, f := range all {
		if f.Matches(query) {
			matches = append(matches, f)
		}
	}

	log.Debug("searched favorites",
		slog.String("query", query),
		slog.Int("results", len(matches)))
	return matches, nil
}

func (s *favoriteServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewFavoriteServiceError("get_favorite", "failed to get favorite", err)
	}
	return f, nil
}

func (s *favoriteServiceImpl) Update(ctx context.Context, id uuid.UUID, update domain.FavoriteUpdate) (*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsEmpty() {
		return nil, NewFavoriteServiceError("update_favorite", "invalid update", fmt.Errorf("%w: %w", domain.ErrValidation, ErrEmptyUpdate))
	}

	f, err := s.store.Update(ctx, id, func(stored *domain.Favorite) error {
		update.Apply(stored)
		return nil
	})
	if err != nil {
		log.Warn("failed to update favorite",
			slog.String("favorite_id", id.String()),
			slog.String("error", err.Error()))
		return nil, NewFavoriteServiceError("update_favorite", "failed to update favorite", err)
	}

	log.Info("favorite updated", slog.String("favorite_id", id.String()))
	return f, nil
}

func (s *favoriteServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return NewFavoriteServiceError("delete_favorite", "failed to delete favorite", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("favorite deleted", slog.String("favorite_id", id.String()))
	return nil
}

func (s *favoriteServiceImpl) Export(ctx context.Context) ([]byte, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return nil, NewFavoriteServiceError("export_favorites", "failed to encode favorites", err)
	}
	return data, nil
}

func (s *favoriteServiceImpl) Stats(ctx context.Context) (domain.FavoriteStats, error) {
	all, err := s.List(ctx)
	if err != nil {
		return domain.FavoriteStats{}, err
	}
	return domain.ComputeFavoriteStats(all), nil
}
