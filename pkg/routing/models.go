package routing

import (
	"github.com/travigo/transitrouter/pkg/transport"
)

// RouteLocation is a connecting station found while sampling the line between
// start and destination, labelled with the country it sits in
type RouteLocation struct {
	transport.Location `groups:"basic"`

	Country *string `json:"country" groups:"basic"`
}

type RouteConnectionProvider struct {
	Name        string  `json:"name" groups:"basic"`
	URL         string  `json:"url" groups:"basic"`
	Country     string  `json:"country" groups:"basic"`
	CountryCode string  `json:"country_code" groups:"basic"`
	Coverage    float64 `json:"coverage" groups:"basic"`
}

// RouteConnection is a connection returned by the transport API together with
// how much of the requested journey it covers. Direct connections always
// cover all of it.
type RouteConnection struct {
	transport.Connection `groups:"basic"`

	DirectConnection  bool                      `json:"direct_connection" groups:"basic"`
	Coverage          float64                   `json:"coverage" groups:"basic"`
	ServiceEndCountry *string                   `json:"service_end_country" groups:"basic"`
	Providers         []RouteConnectionProvider `json:"providers" groups:"basic"`
}

type Route struct {
	Start       transport.Location `json:"start" groups:"basic"`
	Destination transport.Location `json:"destination" groups:"basic"`

	FoundConnection  bool              `json:"found_connection" groups:"basic"`
	OnlyDirectRoutes *bool             `json:"only_direct_routes" groups:"basic"`
	Connections      []RouteConnection `json:"connections" groups:"basic"`

	ConnectingStations []RouteLocation `json:"connecting_stations" groups:"detailed"`

	BestCoverage          *float64                  `json:"best_coverage" groups:"basic"`
	BestCoverageStation   *string                   `json:"best_coverage_station" groups:"basic"`
	BestCoverageProviders []RouteConnectionProvider `json:"best_coverage_providers" groups:"basic"`

	ServiceEndCountries []string `json:"service_end_countries" groups:"basic"`
}

// Parameters describe a single routing request. Steps and Nearness fall back
// to the engine defaults when nil or zero.
type Parameters struct {
	Start       string `json:"start" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Steps       *int   `json:"steps,omitempty" validate:"omitempty,gte=0"`
	Nearness    *int   `json:"nearness,omitempty" validate:"omitempty,gte=0"`
}

type ConnectingStationsParams struct {
	Start       transport.Location
	Destination transport.Location
	Steps       int
	Nearness    int
	StopAt      int
	OnlyNearest bool
}

// HomeProvider is the carrier the transport API belongs to. It is credited
// with the share of the journey covered by the alternative connection.
type HomeProvider struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	URL         string `yaml:"url" json:"url"`
	Country     string `yaml:"country" json:"country"`
	CountryCode string `yaml:"country_code" json:"country_code" validate:"required"`
}

var DefaultHomeProvider = HomeProvider{
	Name:        "SBB",
	URL:         "https://www.sbb.ch",
	Country:     "Schweiz",
	CountryCode: "CH",
}
