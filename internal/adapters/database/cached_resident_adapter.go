package database

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/providers"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
)

// CachedResidentAdapter wraps a ResidentRepository with a short-lived
// cache on the active listing. Mutations invalidate the listing so the
// dashboard never shows a deactivated resident past the TTL.
type CachedResidentAdapter struct {
	adapter repositories.ResidentRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedResidentAdapter creates a new cached resident adapter.
// metrics may be nil.
func NewCachedResidentAdapter(adapter repositories.ResidentRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.ResidentRepository {
	return &CachedResidentAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

const (
	activeListCacheKey = "dwellers:active"
	activeListTTL      = 60 // seconds
)

// ListActive retrieves the active listing, serving from cache when
// possible.
func (a *CachedResidentAdapter) ListActive(ctx context.Context) ([]*entities.Resident, error) {
	if cached, err := a.cache.Get(ctx, activeListCacheKey); err == nil {
		var residents []*entities.Resident
		if err := json.Unmarshal(cached, &residents); err == nil {
			if a.metrics != nil {
				observability.RecordCacheHit(ctx, a.metrics, activeListCacheKey)
			}
			return residents, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached dweller listing")
	}

	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, activeListCacheKey)
	}

	residents, err := a.adapter.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(residents); err == nil {
			if err := a.cache.Set(bgCtx, activeListCacheKey, data, activeListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache dweller listing")
			}
		}
	}()

	return residents, nil
}

// GetByID passes through to the underlying adapter.
func (a *CachedResidentAdapter) GetByID(ctx context.Context, id string) (*entities.Resident, error) {
	return a.adapter.GetByID(ctx, id)
}

// Create inserts a resident and invalidates the listing.
func (a *CachedResidentAdapter) Create(ctx context.Context, resident *entities.Resident) (*entities.Resident, error) {
	created, err := a.adapter.Create(ctx, resident)
	if err != nil {
		return nil, err
	}
	a.invalidateListing()
	return created, nil
}

// Update overwrites a resident and invalidates the listing.
func (a *CachedResidentAdapter) Update(ctx context.Context, id string, resident *entities.Resident) error {
	if err := a.adapter.Update(ctx, id, resident); err != nil {
		return err
	}
	a.invalidateListing()
	return nil
}

// Deactivate soft-deletes a resident and invalidates the listing.
func (a *CachedResidentAdapter) Deactivate(ctx context.Context, id string) error {
	if err := a.adapter.Deactivate(ctx, id); err != nil {
		return err
	}
	a.invalidateListing()
	return nil
}

func (a *CachedResidentAdapter) invalidateListing() {
	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, activeListCacheKey); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate dweller listing cache")
		}
	}()
}
