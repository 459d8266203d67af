package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/service"
)

// MockFavoriteService implements service.FavoriteService with function fields.
type MockFavoriteService struct {
	AddFn    func(ctx context.Context, in service.NewFavoriteInput) (*domain.Favorite, error)
	ListFn   func(ctx context.Context) ([]*domain.Favorite, error)
	SearchFn func(ctx context.Context, query string) ([]*domain.Favorite, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Favorite, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, update domain.FavoriteUpdate) (*domain.Favorite, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
	ExportFn func(ctx context.Context) ([]byte, error)
	StatsFn  func(ctx context.Context) (domain.FavoriteStats, error)
}

var _ service.FavoriteService = (*MockFavoriteService)(nil)

// Add implements service.FavoriteService.
func (m *MockFavoriteService) Add(ctx context.Context, in service.NewFavoriteInput) (*domain.Favorite, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, in)
	}
	return domain.NewFavorite(in.Title, in.Character, in.PromptPrimary, in.PromptSecondary, in.PromptVideo)
}

// List implements service.FavoriteService.
func (m *MockFavoriteService) List(ctx context.Context) ([]*domain.Favorite, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Favorite{}, nil
}

// Search implements service.FavoriteService.
func (m *MockFavoriteService) Search(ctx context.Context, query string) ([]*domain.Favorite, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	return []*domain.Favorite{}, nil
}

// Get implements service.FavoriteService.
func (m *MockFavoriteService) Get(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, service.ErrFavoriteNotFound
}

// Update implements service.FavoriteService.
func (m *MockFavoriteService) Update(ctx context.Context, id uuid.UUID, update domain.FavoriteUpdate) (*domain.Favorite, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return nil, service.ErrFavoriteNotFound
}

// Delete implements service.FavoriteService.
func (m *MockFavoriteService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// Export implements service.FavoriteService.
func (m *MockFavoriteService) Export(ctx context.Context) ([]byte, error) {
	if m.ExportFn != nil {
		return m.ExportFn(ctx)
	}
	return []byte("[]"), nil
}

// Stats implements service.FavoriteService.
func (m *MockFavoriteService) Stats(ctx context.Context) (domain.FavoriteStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return domain.FavoriteStats{ByCharacter: map[string]int{}}, nil
}
