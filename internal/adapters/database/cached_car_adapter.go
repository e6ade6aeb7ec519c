package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
)

// CachedCarAdapter wraps CarAdapter with read-through caching. Cars are
// immutable once created, so cached entries only ever go stale on eviction.
type CachedCarAdapter struct {
	adapter repositories.CarRepository
	cache   providers.CacheProvider
}

// NewCachedCarAdapter creates a new cached car adapter
func NewCachedCarAdapter(adapter repositories.CarRepository, cache providers.CacheProvider) repositories.CarRepository {
	return &CachedCarAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	carByIDTTL  = 300
	carsListTTL = 60
)

func carCacheKey(id string) string {
	return fmt.Sprintf("car:%s", id)
}

const carsListCacheKey = "cars:list"

// Create persists the car and invalidates the list cache
func (a *CachedCarAdapter) Create(ctx context.Context, car *entities.Car) error {
	if err := a.adapter.Create(ctx, car); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, carsListCacheKey); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate cars list cache")
	}
	return nil
}

// GetByID retrieves a car by ID with caching
func (a *CachedCarAdapter) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	cacheKey := carCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var car entities.Car
		if err := json.Unmarshal(cached, &car); err == nil {
			return &car, nil
		}
		log.Warn().Str("car_id", id).Err(err).Msg("Failed to unmarshal cached car")
	}

	car, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(car); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, carByIDTTL); err != nil {
				log.Warn().Str("car_id", id).Err(err).Msg("Failed to cache car")
			}
		}
	}()

	return car, nil
}

// List retrieves all cars with caching
func (a *CachedCarAdapter) List(ctx context.Context) ([]*entities.Car, error) {
	if cached, err := a.cache.Get(ctx, carsListCacheKey); err == nil {
		var cars []*entities.Car
		if err := json.Unmarshal(cached, &cars); err == nil {
			return cars, nil
		}
	}

	cars, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(cars); err == nil {
			if err := a.cache.Set(bgCtx, carsListCacheKey, data, carsListTTL); err != nil {
				log.Warn().Err(err).Msg("Failed to cache cars list")
			}
		}
	}()

	return cars, nil
}
