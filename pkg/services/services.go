// Package services builds the routing engine and the adapters behind it from
// the configuration
package services

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/config"
	"github.com/travigo/transitrouter/pkg/geocode"
	"github.com/travigo/transitrouter/pkg/providers"
	"github.com/travigo/transitrouter/pkg/redis_client"
	"github.com/travigo/transitrouter/pkg/routing"
	"github.com/travigo/transitrouter/pkg/transport"
	"github.com/urfave/cli/v2"
)

type Services struct {
	Config *config.Config

	// Transport is the blacklist cache when Redis is configured and the plain
	// API client otherwise
	Transport    transport.Service
	Blacklist    *transport.BlacklistCache
	Autocomplete *transport.Autocomplete

	Countries routing.CountryResolver
	Providers *providers.Registry

	Engine *routing.Engine
}

func Setup(cfg *config.Config) (*Services, error) {
	services := &Services{Config: cfg}

	if cfg.Redis.Enabled() {
		err := redis_client.Connect(redis_client.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
	}

	client := transport.NewClient(cfg.Transport.URL)
	client.MaxRetries = cfg.Transport.MaxRetries
	services.Transport = client

	if cfg.Redis.Enabled() {
		services.Blacklist = transport.NewBlacklistCache(client, redis_client.Client, cfg.Transport.BlacklistTTL)
		services.Transport = services.Blacklist
	}

	services.Autocomplete = transport.NewAutocomplete(cfg.Transport.AutocompleteURL)

	var geocoder geocode.ReverseGeocoder
	nominatim := geocode.NewNominatim(cfg.Geocoder.URL, cfg.Geocoder.UserAgent)
	nominatim.MaxRetries = cfg.Transport.MaxRetries
	geocoder = nominatim

	if cfg.Redis.Enabled() {
		geocoder = geocode.NewCachedReverseGeocoder(nominatim, redis_client.Client, cfg.Geocoder.CacheTTL)
	}
	services.Countries = geocode.CountryResolver{Geocoder: geocoder}

	registry, err := providers.LoadFromFile(cfg.ForeignProviders)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", cfg.ForeignProviders).Msg("Foreign providers file not found, every foreign provider will be unknown")
		registry = providers.NewRegistry(nil)
	} else if err != nil {
		return nil, fmt.Errorf("load foreign providers: %w", err)
	}
	services.Providers = registry

	services.Engine = routing.NewEngine(services.Transport, services.Countries, services.Providers, routing.Options{
		Steps:    cfg.Router.Steps,
		Nearness: cfg.Router.Nearness,
		StopAt:   cfg.Router.StopAt,
		Home:     cfg.HomeProvider,
	})

	log.Debug().
		Bool("redis", cfg.Redis.Enabled()).
		Str("transport", cfg.Transport.URL).
		Int("providers", len(registry.All())).
		Msg("Services set up")

	return services, nil
}

func SetupFromFile(path string) (*Services, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return Setup(cfg)
}

func ConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Value:   "config.yml",
		Usage:   "path to the YAML configuration, defaults are used when it does not exist",
		EnvVars: []string{"TRANSITROUTER_CONFIG"},
	}
}
