package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://transport.opendata.ch/v1", cfg.Transport.URL)
	assert.Equal(t, 25, cfg.Router.Steps)
	assert.Equal(t, 1000, cfg.Router.Nearness)
	assert.Equal(t, 10, cfg.Router.StopAt)
	assert.Equal(t, "SBB", cfg.HomeProvider.Name)
	assert.Equal(t, "CH", cfg.HomeProvider.CountryCode)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, Default().Router, cfg.Router)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
transport:
  url: http://localhost:9000/v1
  blacklist_ttl: 12h
router:
  steps: 10
  nearness: 500
home_provider:
  name: ÖBB
  url: https://www.oebb.at
  country: Österreich
  country_code: AT
redis:
  address: localhost:6379
  database: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/v1", cfg.Transport.URL)
	assert.Equal(t, 12*time.Hour, cfg.Transport.BlacklistTTL)
	assert.Equal(t, transportAutocompleteDefault(), cfg.Transport.AutocompleteURL)
	assert.Equal(t, 10, cfg.Router.Steps)
	assert.Equal(t, 500, cfg.Router.Nearness)
	assert.Equal(t, 10, cfg.Router.StopAt)
	assert.Equal(t, "AT", cfg.HomeProvider.CountryCode)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.Database)
}

func transportAutocompleteDefault() string {
	return Default().Transport.AutocompleteURL
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "router:\n  steps: 10\n")

	t.Setenv("TRANSITROUTER_STEPS", "40")
	t.Setenv("TRANSITROUTER_REDIS_ADDRESS", "redis:6379")
	t.Setenv("TRANSITROUTER_GEOCODE_TTL", "1h")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Router.Steps)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, time.Hour, cfg.Geocoder.CacheTTL)
}

func TestApplyEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "strings",
			env: map[string]string{
				"TRANSITROUTER_HOME_STATION": "Zürich HB",
				"TRANSITROUTER_LISTEN":       ":9090",
				"UNRELATED":                  "value",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "Zürich HB", cfg.KeyStations.HomeStation)
				assert.Equal(t, ":9090", cfg.Web.Listen)
			},
		},
		{
			name: "empty values are ignored",
			env:  map[string]string{"TRANSITROUTER_TRANSPORT_URL": "", "TRANSITROUTER_NEARNESS": ""},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default().Transport.URL, cfg.Transport.URL)
				assert.Equal(t, 1000, cfg.Router.Nearness)
			},
		},
		{
			name: "iso 8601 duration",
			env:  map[string]string{"TRANSITROUTER_BLACKLIST_TTL": "P7D", "TRANSITROUTER_ROUTE_JOB_TTL": "PT90M"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 7*24*time.Hour, cfg.Transport.BlacklistTTL)
				assert.Equal(t, 90*time.Minute, cfg.RouteJobs.TTL)
			},
		},
		{
			name:    "invalid integer",
			env:     map[string]string{"TRANSITROUTER_STOP_AT": "ten"},
			wantErr: true,
		},
		{
			name:    "invalid duration",
			env:     map[string]string{"TRANSITROUTER_BLACKLIST_TTL": "forever"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.applyEnvironment(tt.env)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero steps", content: "router:\n  steps: 0\n"},
		{name: "bad transport url", content: "transport:\n  url: not a url\n"},
		{name: "missing home provider code", content: "home_provider:\n  name: SBB\n  country_code: \"\"\n"},
		{name: "bad redis address", content: "redis:\n  address: nope\n"},
		{name: "malformed yaml", content: "router: [steps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
