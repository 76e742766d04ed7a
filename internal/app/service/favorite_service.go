package service

import (
	"context"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
)

// GuestScope is the shared bucket for anonymous visitors. An authenticated
// user's scope is their user id; the two sets are never merged automatically,
// logging in simply switches which set is read.
const GuestScope = "guest"

// FavoriteService tracks favorited product ids per scope. Membership
// operations are idempotent and Toggle is its own inverse: after any even
// number of toggles for an id, membership is back where it started.
//
// Persistence failures are logged and the computed state is still returned;
// the next Load re-reads store truth. A toggle therefore never fails from the
// caller's point of view.
type FavoriteService interface {
	GetFavorites(ctx context.Context, scope string) ([]uint, error)
	Count(ctx context.Context, scope string) (int, error)
	IsFavorite(ctx context.Context, scope string, productID uint) bool
	AddToFavorites(ctx context.Context, scope string, productID uint) []uint
	RemoveFromFavorites(ctx context.Context, scope string, productID uint) []uint
	// ToggleFavorite flips membership and returns the resulting state:
	// true = now favorited, false = now removed.
	ToggleFavorite(ctx context.Context, scope string, productID uint) bool
	ClearFavorites(ctx context.Context, scope string)
}

type favoriteService struct {
	store repository.FavoriteStore
}

func NewFavoriteService(store repository.FavoriteStore) FavoriteService {
	return &favoriteService{store: store}
}

// load reads the current set, treating a store fault as an empty set so that
// favorites never block a page.
func (s *favoriteService) load(ctx context.Context, scope string) []uint {
	ids, err := s.store.Load(ctx, scope)
	if err != nil {
		logger.Warn("Favorites load failed, treating as empty", map[string]interface{}{
			"scope": scope,
			"error": err.Error(),
		})
		return []uint{}
	}
	return ids
}

// persist writes the set back; failure is logged, not propagated.
func (s *favoriteService) persist(ctx context.Context, scope string, ids []uint) {
	if err := s.store.Save(ctx, scope, ids); err != nil {
		logger.Warn("Favorites persist failed", map[string]interface{}{
			"scope": scope,
			"count": len(ids),
			"error": err.Error(),
		})
	}
}

func (s *favoriteService) GetFavorites(ctx context.Context, scope string) ([]uint, error) {
	return s.store.Load(ctx, scope)
}

func (s *favoriteService) Count(ctx context.Context, scope string) (int, error) {
	ids, err := s.store.Load(ctx, scope)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, scope string, productID uint) bool {
	return contains(s.load(ctx, scope), productID)
}

func (s *favoriteService) AddToFavorites(ctx context.Context, scope string, productID uint) []uint {
	ids := s.load(ctx, scope)
	if contains(ids, productID) {
		// idempotent: zaten favorilerde
		return ids
	}

	ids = append(ids, productID)
	s.persist(ctx, scope, ids)

	logger.Debug("Product added to favorites", map[string]interface{}{
		"scope":      scope,
		"product_id": productID,
		"count":      len(ids),
	})
	return ids
}

func (s *favoriteService) RemoveFromFavorites(ctx context.Context, scope string, productID uint) []uint {
	ids := s.load(ctx, scope)
	filtered := ids[:0]
	for _, id := range ids {
		if id != productID {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == len(ids) {
		// idempotent: zaten favorilerde değil
		return ids
	}

	s.persist(ctx, scope, filtered)

	logger.Debug("Product removed from favorites", map[string]interface{}{
		"scope":      scope,
		"product_id": productID,
		"count":      len(filtered),
	})
	return filtered
}

func (s *favoriteService) ToggleFavorite(ctx context.Context, scope string, productID uint) bool {
	ids := s.load(ctx, scope)
	if contains(ids, productID) {
		s.RemoveFromFavorites(ctx, scope, productID)
		return false
	}
	s.AddToFavorites(ctx, scope, productID)
	return true
}

func (s *favoriteService) ClearFavorites(ctx context.Context, scope string) {
	if err := s.store.Clear(ctx, scope); err != nil {
		logger.Warn("Favorites clear failed", map[string]interface{}{
			"scope": scope,
			"error": err.Error(),
		})
	}
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
