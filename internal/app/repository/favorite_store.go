package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// FavoriteStore is the persistence capability behind the favorites state: a
// product-id set stored under a scope key ("favorites:<scope>"). The scope is
// either an authenticated user id or the shared guest bucket. Injected as an
// interface so tests can swap in the in-memory implementation.
type FavoriteStore interface {
	Load(ctx context.Context, scope string) ([]uint, error)
	Save(ctx context.Context, scope string, productIDs []uint) error
	Clear(ctx context.Context, scope string) error
}

type redisFavoriteStore struct {
	client *redis.Client
}

func NewRedisFavoriteStore(client *redis.Client) FavoriteStore {
	return &redisFavoriteStore{client: client}
}

func favoriteKey(scope string) string {
	return fmt.Sprintf("favorites:%s", scope)
}

func (s *redisFavoriteStore) Load(ctx context.Context, scope string) ([]uint, error) {
	val, err := s.client.Get(ctx, favoriteKey(scope)).Result()
	if err == redis.Nil {
		// No set persisted yet - empty favorites, not an error
		return []uint{}, nil
	}
	if err != nil {
		logger.Error("Failed to load favorites from store", err, map[string]interface{}{
			"scope": scope,
		})
		return nil, err
	}

	var ids []uint
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		logger.Error("Failed to decode persisted favorites", err, map[string]interface{}{
			"scope": scope,
		})
		return nil, err
	}

	return ids, nil
}

func (s *redisFavoriteStore) Save(ctx context.Context, scope string, productIDs []uint) error {
	payload, err := json.Marshal(productIDs)
	if err != nil {
		return err
	}

	// 0 TTL: favori seti süresiz saklanır
	if err := s.client.Set(ctx, favoriteKey(scope), payload, 0).Err(); err != nil {
		logger.Error("Failed to persist favorites to store", err, map[string]interface{}{
			"scope": scope,
			"count": len(productIDs),
		})
		return err
	}

	return nil
}

func (s *redisFavoriteStore) Clear(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, favoriteKey(scope)).Err(); err != nil {
		logger.Error("Failed to clear favorites in store", err, map[string]interface{}{
			"scope": scope,
		})
		return err
	}
	return nil
}

// MemoryFavoriteStore is the in-memory FavoriteStore used in tests and as a
// fallback when Redis is not configured.
type MemoryFavoriteStore struct {
	mu   sync.RWMutex
	sets map[string][]uint
}

func NewMemoryFavoriteStore() *MemoryFavoriteStore {
	return &MemoryFavoriteStore{sets: make(map[string][]uint)}
}

func (s *MemoryFavoriteStore) Load(_ context.Context, scope string) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.sets[scope]
	if !ok {
		return []uint{}, nil
	}
	out := make([]uint, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *MemoryFavoriteStore) Save(_ context.Context, scope string, productIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, len(productIDs))
	copy(ids, productIDs)
	s.sets[scope] = ids
	return nil
}

func (s *MemoryFavoriteStore) Clear(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets, scope)
	return nil
}
