package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockFavoriteStore is a mock of store.FavoriteStore for use with testify/mock.
type TestifyMockFavoriteStore struct {
	mock.Mock
}

var _ store.FavoriteStore = (*TestifyMockFavoriteStore)(nil)

// Create is a mock implementation of store.FavoriteStore.Create
func (m *TestifyMockFavoriteStore) Create(ctx context.Context, f *domain.Favorite) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

// GetByID is a mock implementation of store.FavoriteStore.GetByID
func (m *TestifyMockFavoriteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*domain.Favorite); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.FavoriteStore.List
func (m *TestifyMockFavoriteStore) List(ctx context.Context) ([]*domain.Favorite, error) {
	args := m.Called(ctx)
	if all, ok := args.Get(0).([]*domain.Favorite); ok {
		return all, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.FavoriteStore.Update. When the
// expectation returns a *domain.Favorite, fn is applied to a copy of it so
// tests observe the mutation the service requested.
func (m *TestifyMockFavoriteStore) Update(ctx context.Context, id uuid.UUID, fn store.FavoriteMutator) (*domain.Favorite, error) {
	args := m.Called(ctx, id, fn)
	f, ok := args.Get(0).(*domain.Favorite)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *f
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete is a mock implementation of store.FavoriteStore.Delete
func (m *TestifyMockFavoriteStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
