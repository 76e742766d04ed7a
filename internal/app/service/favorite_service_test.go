package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
)

// failingFavoriteStore simulates a broken backing store.
type failingFavoriteStore struct{}

func (failingFavoriteStore) Load(_ context.Context, _ string) ([]uint, error) {
	return nil, errors.New("store down")
}
func (failingFavoriteStore) Save(_ context.Context, _ string, _ []uint) error {
	return errors.New("store down")
}
func (failingFavoriteStore) Clear(_ context.Context, _ string) error {
	return errors.New("store down")
}

func setupFavoriteServiceTest() FavoriteService {
	return NewFavoriteService(repository.NewMemoryFavoriteStore())
}

func TestFavoriteService_AddAndGet(t *testing.T) {
	svc := setupFavoriteServiceTest()
	ctx := context.Background()

	ids := svc.AddToFavorites(ctx, "1", 42)
	assert.Equal(t, []uint{42}, ids)

	got, err := svc.GetFavorites(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, []uint{42}, got)
}

func TestFavoriteService_AddIsIdempotent(t *testing.T) {
	svc := setupFavoriteServiceTest()
	ctx := context.Background()

	svc.AddToFavorites(ctx, "1", 42)
	ids := svc.AddToFavorites(ctx, "1", 42)
	assert.Equal(t, []uint{42}, ids)

	count, _ := svc.Count(ctx, "1")
	assert.Equal(t, 1, count)
}

func TestFavoriteService_RemoveIsIdempotent(t *testing.T) {
	svc := setupFavoriteServiceTest()
	ctx := context.Background()

	svc.AddToFavorites(ctx, "1", 42)
	svc.RemoveFromFavorites(ctx, "1", 42)
	ids := svc.RemoveFromFavorites(ctx, "1", 42)
	assert.Empty(t, ids)
}

func TestFavoriteService_ToggleIsItsOwnInverse(t *testing.T) {
	svc := setupFavoriteServiceTest()
	ctx := context.Background()

	favorited := svc.ToggleFavorite(ctx, "1", 7)
	assert.True(t, favorited)
	assert.True(t, svc.IsFavorite(ctx, "1", 7))

	favorited = svc.ToggleFavorite(ctx, "1", 7)
	assert.False(t, favorited)
	assert.False(t, svc.IsFavorite(ctx, "1", 7))

	// Two toggles always restore the starting state
	svc.ToggleFavorite(ctx, "1", 7)
	svc.ToggleFavorite(ctx, "1", 7)
	count, _ := svc.Count(ctx, "1")
	assert.Equal(t, 0, count)
}

func TestFavoriteService_ScopesAreIsolated(t *testing.T) {
	svc := setupFavoriteServiceTest()
	ctx := context.Background()

	svc.AddToFavorites(ctx, "1", 10)
	svc.AddToFavorites(ctx, GuestScope, 20)

	userIDs, _ := svc.GetFavorites(ctx, "1")
	guestIDs, _ := svc.GetFavorites(ctx, GuestScope)

	assert.Equal(t, []uint{10}, userIDs)
	assert.Equal(t, []uint{20}, guestIDs)
}

func TestFavoriteService_ClearFavorites(t *testing.T) {
	svc := setupFavoriteServiceTest()
	ctx := context.Background()

	svc.AddToFavorites(ctx, "1", 1)
	svc.AddToFavorites(ctx, "1", 2)
	svc.ClearFavorites(ctx, "1")

	count, _ := svc.Count(ctx, "1")
	assert.Equal(t, 0, count)
}

func TestFavoriteService_ToggleNeverFailsOnBrokenStore(t *testing.T) {
	svc := NewFavoriteService(failingFavoriteStore{})
	ctx := context.Background()

	// A dead store must not panic or surface errors through toggle;
	// the set reads as empty, so toggling reports "now favorited"
	favorited := svc.ToggleFavorite(ctx, "1", 5)
	assert.True(t, favorited)

	ids := svc.AddToFavorites(ctx, "1", 6)
	assert.Equal(t, []uint{6}, ids)
}
