package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"eventpro-backend/repository"
	"eventpro-backend/utils"
)

const homeCacheKey = "home:snapshot"

// HomeService serves the public landing snapshot, through Redis when a cache
// is configured.
type HomeService struct {
	store *repository.Store
	cache utils.RedisClient
	ttl   time.Duration
}

func NewHomeService(store *repository.Store, cache utils.RedisClient, ttl time.Duration) *HomeService {
	return &HomeService{store: store, cache: cache, ttl: ttl}
}

func (s *HomeService) Get(ctx context.Context) (*repository.Home, error) {
	if s.cache != nil {
		raw, err := s.cache.GetFromCache(ctx, homeCacheKey)
		switch {
		case err == nil:
			var home repository.Home
			if err := json.Unmarshal([]byte(raw), &home); err == nil {
				return &home, nil
			}
			slog.Warn("discarding unreadable home snapshot")
		case !errors.Is(err, utils.ErrCacheMiss):
			slog.Warn("home cache read failed", "error", err)
		}
	}

	home, err := s.store.Home(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(home); err == nil {
			if err := s.cache.SetToCache(ctx, homeCacheKey, string(raw), s.ttl); err != nil {
				slog.Warn("home cache write failed", "error", err)
			}
		}
	}
	return home, nil
}

// Invalidate drops the cached snapshot.
func (s *HomeService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteFromCache(ctx, homeCacheKey)
}
