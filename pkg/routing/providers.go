package routing

import (
	"github.com/travigo/transitrouter/pkg/providers"
)

const unknownProviderName = "Unknown"

type ForeignProviderLookup interface {
	Get(countryCode string) *providers.ForeignProvider
}

// BuildProviders splits an alternative connection between the home carrier,
// which covers the given share, and the carrier of the country the
// connection ends in, which is left with the rest
func BuildProviders(home HomeProvider, coverage float64, country *string, lookup ForeignProviderLookup) []RouteConnectionProvider {
	result := []RouteConnectionProvider{
		{
			Name:        home.Name,
			URL:         home.URL,
			Country:     home.Country,
			CountryCode: home.CountryCode,
			Coverage:    coverage,
		},
	}

	var foreignProvider *providers.ForeignProvider
	countryCode := ""
	if country != nil {
		countryCode = *country
		foreignProvider = lookup.Get(countryCode)
	}

	if foreignProvider != nil {
		result = append(result, RouteConnectionProvider{
			Name:        foreignProvider.Name,
			URL:         foreignProvider.URL,
			Country:     foreignProvider.Country,
			CountryCode: foreignProvider.CountryCode,
			Coverage:    1 - coverage,
		})
	} else {
		result = append(result, RouteConnectionProvider{
			Name:        unknownProviderName,
			URL:         "",
			Country:     "",
			CountryCode: countryCode,
			Coverage:    1 - coverage,
		})
	}

	return result
}
