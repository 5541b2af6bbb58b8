// Package providers keeps the list of rail operators that serve the part of a
// journey outside the home carrier's network
package providers

import (
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/util"
)

type ForeignProvider struct {
	Country     string `csv:"country" json:"country"`
	CountryCode string `csv:"code" json:"country_code"`
	Name        string `csv:"name" json:"name"`
	URL         string `csv:"url" json:"url"`
}

type Registry struct {
	providers []*ForeignProvider
}

func NewRegistry(providers []*ForeignProvider) *Registry {
	return &Registry{providers: providers}
}

func LoadFromFile(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	registry, err := Load(file)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Int("count", len(registry.providers)).Msg("Loaded foreign providers")

	return registry, nil
}

func Load(reader io.Reader) (*Registry, error) {
	providers := []*ForeignProvider{}
	if err := gocsv.Unmarshal(reader, &providers); err != nil {
		return nil, err
	}

	// rows without a code can never be looked up
	util.InPlaceFilter(&providers, func(provider *ForeignProvider) bool {
		return strings.TrimSpace(provider.CountryCode) != ""
	})

	return NewRegistry(providers), nil
}

// Get returns the first provider registered for the country code or nil
func (r *Registry) Get(countryCode string) *ForeignProvider {
	for _, provider := range r.providers {
		if strings.EqualFold(provider.CountryCode, countryCode) {
			return provider
		}
	}

	return nil
}

func (r *Registry) All() []*ForeignProvider {
	return r.providers
}
