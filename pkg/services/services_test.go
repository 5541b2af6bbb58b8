package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitrouter/pkg/config"
	"github.com/travigo/transitrouter/pkg/redis_client"
	"github.com/travigo/transitrouter/pkg/transport"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Router.Steps = 12
	cfg.ForeignProviders = filepath.Join(t.TempDir(), "foreign_providers.csv")

	return &cfg
}

func TestSetupWithoutRedis(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.ForeignProviders, []byte("country,code,name,url\nDeutschland,DE,DB,https://www.bahn.de\n"), 0o644))

	services, err := Setup(cfg)
	require.NoError(t, err)

	assert.Nil(t, services.Blacklist)
	assert.IsType(t, &transport.Client{}, services.Transport)
	assert.NotNil(t, services.Autocomplete)
	assert.Equal(t, "DB", services.Providers.Get("de").Name)
	assert.Equal(t, 12, services.Engine.Options().Steps)
	assert.Equal(t, "SBB", services.Engine.Options().Home.Name)
}

func TestSetupMissingProviders(t *testing.T) {
	services, err := Setup(testConfig(t))
	require.NoError(t, err)

	assert.Empty(t, services.Providers.All())
}

func TestSetupWithRedis(t *testing.T) {
	server := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Redis.Address = server.Addr()

	services, err := Setup(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		<-redis_client.QueueConnection.StopAllConsuming()
		redis_client.Client.Close()
	})

	require.NotNil(t, services.Blacklist)
	assert.Same(t, services.Blacklist, services.Transport)
}

func TestSetupRedisUnavailable(t *testing.T) {
	server := miniredis.RunT(t)
	address := server.Addr()
	server.Close()

	cfg := testConfig(t)
	cfg.Redis.Address = address

	_, err := Setup(cfg)
	assert.Error(t, err)
}
