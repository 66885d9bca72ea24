package usecase

import (
	"context"
	"time"

	"ayunova/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

func ProfileCacheKey(id uuid.UUID) string {
	return "profile:" + id.String()
}

// CachedProfiles is a read-through cache in front of a profile.Repository.
// Missing profiles are not cached, and cache failures fall through to the
// repository. Profiles are never updated here, so entries only expire.
type CachedProfiles struct {
	next  profile.Repository
	cache ProfileCache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedProfiles(next profile.Repository, cache ProfileCache, ttl time.Duration, logger *zap.Logger) *CachedProfiles {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProfiles{next: next, cache: cache, ttl: ttl, log: logger}
}

func (c *CachedProfiles) FindByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	key := ProfileCacheKey(id)

	if c.cache != nil {
		var cached profile.Profile
		hit, err := c.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			c.log.Debug("profile cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit && err == nil {
			return cached, nil
		}
	}

	p, err := c.next.FindByID(ctx, id)
	if err != nil {
		return profile.Profile{}, err
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, key, p, c.ttl); err != nil {
			c.log.Debug("profile cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return p, nil
}
