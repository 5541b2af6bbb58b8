// Package config loads the transitrouter configuration. Values come from an
// optional YAML file and are then overridden by TRANSITROUTER_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/transitrouter/pkg/geocode"
	"github.com/travigo/transitrouter/pkg/routing"
	"github.com/travigo/transitrouter/pkg/transport"
	"github.com/travigo/transitrouter/pkg/util"
	"gopkg.in/yaml.v3"
)

const environmentPrefix = "TRANSITROUTER_"

type Config struct {
	Transport        TransportConfig      `yaml:"transport"`
	Geocoder         GeocoderConfig       `yaml:"geocoder"`
	Router           RouterConfig         `yaml:"router"`
	HomeProvider     routing.HomeProvider `yaml:"home_provider"`
	ForeignProviders string               `yaml:"foreign_providers"`
	KeyStations      KeyStationsConfig    `yaml:"key_stations"`
	RouteJobs        RouteJobsConfig      `yaml:"route_jobs"`
	Redis            RedisConfig          `yaml:"redis"`
	Web              WebConfig            `yaml:"web"`
}

type TransportConfig struct {
	URL             string        `yaml:"url" validate:"required,url"`
	AutocompleteURL string        `yaml:"autocomplete_url" validate:"required,url"`
	MaxRetries      uint64        `yaml:"max_retries"`
	BlacklistTTL    time.Duration `yaml:"blacklist_ttl" validate:"gte=0"`
}

type GeocoderConfig struct {
	URL       string        `yaml:"url" validate:"required,url"`
	UserAgent string        `yaml:"user_agent" validate:"required"`
	CacheTTL  time.Duration `yaml:"cache_ttl" validate:"gte=0"`
}

type RouterConfig struct {
	Steps    int `yaml:"steps" validate:"gte=1"`
	Nearness int `yaml:"nearness" validate:"gte=1"`
	StopAt   int `yaml:"stop_at" validate:"gte=1"`
}

type KeyStationsConfig struct {
	StationsPath string `yaml:"stations"`
	TrackingPath string `yaml:"tracking"`
	HomeStation  string `yaml:"home_station"`
	Concurrency  int    `yaml:"concurrency" validate:"gte=1"`
}

type RouteJobsConfig struct {
	TTL       time.Duration `yaml:"ttl" validate:"gt=0"`
	Consumers int           `yaml:"consumers" validate:"gte=1"`
	BatchSize int           `yaml:"batch_size" validate:"gte=1"`
}

// RedisConfig is optional for routing. Without an address the blacklist and
// geocode caches are disabled and route jobs are unavailable.
type RedisConfig struct {
	Address  string `yaml:"address" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type WebConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

func Default() Config {
	return Config{
		Transport: TransportConfig{
			URL:             transport.DefaultURL,
			AutocompleteURL: transport.DefaultAutocompleteURL,
			MaxRetries:      3,
			BlacklistTTL:    7 * 24 * time.Hour,
		},
		Geocoder: GeocoderConfig{
			URL:       geocode.DefaultNominatimURL,
			UserAgent: "transitrouter",
			CacheTTL:  30 * 24 * time.Hour,
		},
		Router: RouterConfig{
			Steps:    routing.DefaultSteps,
			Nearness: routing.DefaultNearness,
			StopAt:   routing.DefaultStopAt,
		},
		HomeProvider:     routing.DefaultHomeProvider,
		ForeignProviders: "data/foreign_providers.csv",
		KeyStations: KeyStationsConfig{
			StationsPath: "data/key_stations.txt",
			TrackingPath: "data/key_stations_tracking.csv",
			HomeStation:  "Bern",
			Concurrency:  4,
		},
		RouteJobs: RouteJobsConfig{
			TTL:       24 * time.Hour,
			Consumers: 2,
			BatchSize: 1,
		},
		Web: WebConfig{
			Listen: ":8080",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path or a
// missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	v := validator.New()

	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	values := map[string]*string{
		"TRANSPORT_URL":         &c.Transport.URL,
		"AUTOCOMPLETE_URL":      &c.Transport.AutocompleteURL,
		"NOMINATIM_URL":         &c.Geocoder.URL,
		"NOMINATIM_USER_AGENT":  &c.Geocoder.UserAgent,
		"FOREIGN_PROVIDERS":     &c.ForeignProviders,
		"KEY_STATIONS":          &c.KeyStations.StationsPath,
		"KEY_STATIONS_TRACKING": &c.KeyStations.TrackingPath,
		"HOME_STATION":          &c.KeyStations.HomeStation,
		"HOME_PROVIDER_NAME":    &c.HomeProvider.Name,
		"HOME_PROVIDER_URL":     &c.HomeProvider.URL,
		"HOME_PROVIDER_COUNTRY": &c.HomeProvider.Country,
		"HOME_PROVIDER_CODE":    &c.HomeProvider.CountryCode,
		"REDIS_ADDRESS":         &c.Redis.Address,
		"REDIS_PASSWORD":        &c.Redis.Password,
		"LISTEN":                &c.Web.Listen,
	}
	for key, target := range values {
		if value, ok := env[environmentPrefix+key]; ok && value != "" {
			*target = value
		}
	}

	ints := map[string]*int{
		"STEPS":                    &c.Router.Steps,
		"NEARNESS":                 &c.Router.Nearness,
		"STOP_AT":                  &c.Router.StopAt,
		"KEY_STATIONS_CONCURRENCY": &c.KeyStations.Concurrency,
		"ROUTE_JOB_CONSUMERS":      &c.RouteJobs.Consumers,
		"REDIS_DATABASE":           &c.Redis.Database,
	}
	for key, target := range ints {
		value, ok := env[environmentPrefix+key]
		if !ok || value == "" {
			continue
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s%s must be an integer: %w", environmentPrefix, key, err)
		}
		*target = parsed
	}

	durations := map[string]*time.Duration{
		"BLACKLIST_TTL": &c.Transport.BlacklistTTL,
		"GEOCODE_TTL":   &c.Geocoder.CacheTTL,
		"ROUTE_JOB_TTL": &c.RouteJobs.TTL,
	}
	for key, target := range durations {
		value, ok := env[environmentPrefix+key]
		if !ok || value == "" {
			continue
		}

		parsed, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("%s%s must be a duration: %w", environmentPrefix, key, err)
		}
		*target = parsed
	}

	return nil
}

// parseDuration accepts Go durations (36h) as well as ISO 8601 ones (P7D)
func parseDuration(value string) (time.Duration, error) {
	if strings.HasPrefix(value, "P") {
		isoDuration, err := iso8601.ParseISO8601(value)
		if err != nil {
			return 0, err
		}

		reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		return isoDuration.Shift(reference).Sub(reference), nil
	}

	return time.ParseDuration(value)
}
