package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
)

const missingStation = "N/A"

// CachedStore puts a Redis cache in front of station lookups of the wrapped
// Store. Lines are never cached.
type CachedStore struct {
	Store

	Cache *cache.Cache[string]
}

func NewCachedStore(client *redis.Client, backing Store) *CachedStore {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(90*time.Minute))

	return &CachedStore{
		Store: backing,
		Cache: cache.New[string](redisStore),
	}
}

func stationCacheKey(stationRef string) string {
	return fmt.Sprintf("station:%s", stationRef)
}

func (c *CachedStore) GetStation(ctx context.Context, stationRef string) (*ctdf.Station, error) {
	cacheKey := stationCacheKey(stationRef)

	cachedValue, err := c.Cache.Get(ctx, cacheKey)
	if err == nil {
		if cachedValue == missingStation {
			return nil, fmt.Errorf("%w: %s", ctdf.ErrStationNotFound, stationRef)
		}

		var station *ctdf.Station
		if err := json.Unmarshal([]byte(cachedValue), &station); err == nil {
			return station, nil
		}
	}

	station, err := c.Store.GetStation(ctx, stationRef)
	if err != nil {
		if errors.Is(err, ctdf.ErrStationNotFound) {
			c.set(ctx, cacheKey, missingStation)
		}
		return nil, err
	}

	stationJSON, _ := json.Marshal(station)
	c.set(ctx, cacheKey, string(stationJSON))

	return station, nil
}

func (c *CachedStore) SaveStation(ctx context.Context, station *ctdf.Station) error {
	if err := c.Store.SaveStation(ctx, station); err != nil {
		return err
	}

	if err := c.Cache.Delete(ctx, stationCacheKey(station.PrimaryIdentifier)); err != nil {
		log.Debug().Err(err).Str("station", station.PrimaryIdentifier).Msg("Failed to clear station cache")
	}

	return nil
}

func (c *CachedStore) set(ctx context.Context, key string, value string) {
	if err := c.Cache.Set(ctx, key, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to cache station")
	}
}
