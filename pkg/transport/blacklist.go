package transport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/gocarina/gocsv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const blacklistKeyPrefix = "blacklist:"
const blacklistTimeFormat = "2006-01-02 15:04:05"

type Service interface {
	SearchLocations(ctx context.Context, q LocationQuery) ([]Location, error)
	GetConnections(ctx context.Context, q ConnectionQuery) ([]Connection, error)
}

type BlacklistEntry struct {
	Start     string `csv:"start"`
	Dest      string `csv:"dest"`
	LastCheck string `csv:"last_check"`
}

// BlacklistCache remembers start/destination pairs the transport API had no
// connections for so repeated searches skip them. Entries are keyed by the
// pair only, so filtered queries bypass the blacklist entirely.
type BlacklistCache struct {
	Transport Service

	client *redis.Client
	cache  *cache.Cache[string]
	now    func() time.Time
}

func NewBlacklistCache(transport Service, client *redis.Client, expiration time.Duration) *BlacklistCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &BlacklistCache{
		Transport: transport,
		client:    client,
		cache:     cache.New[string](redisStore),
		now:       time.Now,
	}
}

func (b *BlacklistCache) SearchLocations(ctx context.Context, q LocationQuery) ([]Location, error) {
	return b.Transport.SearchLocations(ctx, q)
}

func (b *BlacklistCache) GetConnections(ctx context.Context, q ConnectionQuery) ([]Connection, error) {
	if q.Filtered() {
		return b.Transport.GetConnections(ctx, q)
	}

	if b.CheckBlacklist(ctx, q.From, q.To) {
		log.Debug().Str("from", q.From).Str("to", q.To).Msg("Skipping blacklisted connection")
		return []Connection{}, nil
	}

	connections, err := b.Transport.GetConnections(ctx, q)
	if err != nil {
		return nil, err
	}

	if len(connections) == 0 {
		if err := b.AppendBlacklist(ctx, q.From, q.To); err != nil {
			log.Error().Err(err).Str("from", q.From).Str("to", q.To).Msg("Failed to blacklist connection")
		}
	}

	return connections, nil
}

func (b *BlacklistCache) CheckBlacklist(ctx context.Context, start string, dest string) bool {
	_, err := b.cache.Get(ctx, blacklistKey(start, dest))

	return err == nil
}

func (b *BlacklistCache) AppendBlacklist(ctx context.Context, start string, dest string) error {
	return b.cache.Set(ctx, blacklistKey(start, dest), b.now().Format(blacklistTimeFormat))
}

func (b *BlacklistCache) RemoveBlacklist(ctx context.Context, start string, dest string) error {
	return b.cache.Delete(ctx, blacklistKey(start, dest))
}

func (b *BlacklistCache) Entries(ctx context.Context) ([]BlacklistEntry, error) {
	entries := []BlacklistEntry{}

	iter := b.client.Scan(ctx, 0, blacklistKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		start, dest, err := parseBlacklistKey(iter.Val())
		if err != nil {
			log.Error().Err(err).Str("key", iter.Val()).Msg("Ignoring malformed blacklist key")
			continue
		}

		lastCheck, err := b.cache.Get(ctx, iter.Val())
		if err != nil {
			// expired between the scan and the lookup
			continue
		}

		entries = append(entries, BlacklistEntry{
			Start:     start,
			Dest:      dest,
			LastCheck: lastCheck,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (b *BlacklistCache) ExportCSV(ctx context.Context, writer io.Writer) error {
	entries, err := b.Entries(ctx)
	if err != nil {
		return err
	}

	return gocsv.Marshal(&entries, writer)
}

func blacklistKey(start string, dest string) string {
	return fmt.Sprintf("%s%s:%s", blacklistKeyPrefix, url.QueryEscape(start), url.QueryEscape(dest))
}

func parseBlacklistKey(key string) (string, string, error) {
	start, dest, found := strings.Cut(strings.TrimPrefix(key, blacklistKeyPrefix), ":")
	if !found {
		return "", "", fmt.Errorf("missing separator in %q", key)
	}

	start, err := url.QueryUnescape(start)
	if err != nil {
		return "", "", err
	}
	dest, err = url.QueryUnescape(dest)
	if err != nil {
		return "", "", err
	}

	return start, dest, nil
}
