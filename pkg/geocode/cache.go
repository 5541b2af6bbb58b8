package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const notAvailable = "N/A"

// CachedReverseGeocoder remembers reverse geocoding results in Redis, including
// points that have no address, so repeated routes do not hit the geocoder again
type CachedReverseGeocoder struct {
	Geocoder ReverseGeocoder

	cache *cache.Cache[string]
}

func NewCachedReverseGeocoder(geocoder ReverseGeocoder, client *redis.Client, expiration time.Duration) *CachedReverseGeocoder {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &CachedReverseGeocoder{
		Geocoder: geocoder,
		cache:    cache.New[string](redisStore),
	}
}

func (c *CachedReverseGeocoder) Reverse(ctx context.Context, lat float64, lon float64) (*Address, error) {
	cacheKey := fmt.Sprintf("geocode:%.4f,%.4f", lat, lon)

	cachedValue, err := c.cache.Get(ctx, cacheKey)
	if err == nil {
		if cachedValue == notAvailable {
			return nil, nil
		}

		var address *Address
		if err := json.Unmarshal([]byte(cachedValue), &address); err == nil {
			return address, nil
		}
		log.Error().Str("key", cacheKey).Msg("Ignoring undecodable cached address")
	}

	address, err := c.Geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if address == nil {
		err = c.cache.Set(ctx, cacheKey, notAvailable)
	} else {
		addressJSON, _ := json.Marshal(address)
		err = c.cache.Set(ctx, cacheKey, string(addressJSON))
	}
	if err != nil {
		log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache address")
	}

	return address, nil
}
