//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/platform/postgres"
	"github.com/phrazzld/promptchain/internal/store"
	"github.com/phrazzld/promptchain/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.ResetFavorites(t, db)
	s := postgres.NewFavoriteStore(db, nil)
	ctx := context.Background()

	f, err := domain.NewFavorite("Beach", "andy", "primary", "secondary", "video")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, f))
	assert.ErrorIs(t, s.Create(ctx, f), store.ErrDuplicate)

	got, err := s.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Title, got.Title)
	assert.WithinDuration(t, f.CreatedAt, got.CreatedAt, time.Millisecond)

	updated, err := s.Update(ctx, f.ID, func(stored *domain.Favorite) error {
		domain.FavoriteUpdate{PromptVideo: "pan left"}.Apply(stored)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "pan left", updated.PromptVideo)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.Delete(ctx, f.ID))
	_, err = s.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, store.ErrFavoriteNotFound)
	assert.ErrorIs(t, s.Delete(ctx, uuid.New()), store.ErrFavoriteNotFound)
}
