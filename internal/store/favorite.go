package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
)

// FavoriteMutator edits a favorite in place during an atomic update.
// Returning an error aborts the update and leaves the stored record untouched.
type FavoriteMutator func(f *domain.Favorite) error

// FavoriteStore defines the interface for favorites persistence.
type FavoriteStore interface {
	// Create saves a new favorite.
	// Returns ErrInvalidEntity if the favorite fails validation and
	// ErrDuplicate if its ID is already stored.
	Create(ctx context.Context, f *domain.Favorite) error

	// GetByID retrieves a favorite by its unique ID.
	// Returns ErrFavoriteNotFound if the favorite does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Favorite, error)

	// List returns every favorite ordered by creation time, oldest first.
	// Returns an empty slice if the store is empty.
	List(ctx context.Context) ([]*domain.Favorite, error)

	// Update loads the favorite, applies fn and persists the result as one
	// atomic step. Returns ErrFavoriteNotFound if the favorite does not exist.
	Update(ctx context.Context, id uuid.UUID, fn FavoriteMutator) (*domain.Favorite, error)

	// Delete removes a favorite.
	// Returns ErrFavoriteNotFound if the favorite does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
