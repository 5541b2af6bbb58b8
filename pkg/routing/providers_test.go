package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/transitrouter/pkg/providers"
)

func TestBuildProviders(t *testing.T) {
	lookup := fakeLookup{
		"DE": {Country: "Deutschland", CountryCode: "DE", Name: "DB", URL: "https://www.bahn.de"},
	}

	t.Run("known foreign provider", func(t *testing.T) {
		result := BuildProviders(DefaultHomeProvider, 0.75, stringPtr("DE"), lookup)

		assert.Equal(t, []RouteConnectionProvider{
			{Name: "SBB", URL: "https://www.sbb.ch", Country: "Schweiz", CountryCode: "CH", Coverage: 0.75},
			{Name: "DB", URL: "https://www.bahn.de", Country: "Deutschland", CountryCode: "DE", Coverage: 0.25},
		}, result)
	})

	t.Run("unknown country", func(t *testing.T) {
		result := BuildProviders(DefaultHomeProvider, 0.4, stringPtr("AT"), lookup)

		assert.Len(t, result, 2)
		assert.Equal(t, "Unknown", result[1].Name)
		assert.Equal(t, "AT", result[1].CountryCode)
		assert.Empty(t, result[1].URL)
		assert.InDelta(t, 0.6, result[1].Coverage, 1e-9)
	})

	t.Run("missing country", func(t *testing.T) {
		result := BuildProviders(DefaultHomeProvider, 1, nil, fakeLookup{})

		assert.Equal(t, "Unknown", result[1].Name)
		assert.Equal(t, "", result[1].CountryCode)
		assert.Equal(t, float64(0), result[1].Coverage)
	})

	t.Run("custom home provider", func(t *testing.T) {
		home := HomeProvider{Name: "ÖBB", URL: "https://www.oebb.at", Country: "Österreich", CountryCode: "AT"}

		result := BuildProviders(home, 0.5, stringPtr("DE"), lookup)

		assert.Equal(t, "ÖBB", result[0].Name)
		assert.Equal(t, "DB", result[1].Name)
	})

	t.Run("registry as lookup", func(t *testing.T) {
		registry := providers.NewRegistry([]*providers.ForeignProvider{
			{Country: "Italia", CountryCode: "IT", Name: "Trenitalia", URL: "https://www.trenitalia.com"},
		})

		result := BuildProviders(DefaultHomeProvider, 0.9, stringPtr("IT"), registry)

		assert.Equal(t, "Trenitalia", result[1].Name)
	})
}
