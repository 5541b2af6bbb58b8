package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/geomath"
	"github.com/travigo/transitrouter/pkg/transport"
	"github.com/travigo/transitrouter/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	DefaultSteps    = 25
	DefaultNearness = 1000
	DefaultStopAt   = 10
)

var ErrNoLocationFound = errors.New("no suitable location found")

type TransportService interface {
	SearchLocations(ctx context.Context, q transport.LocationQuery) ([]transport.Location, error)
	GetConnections(ctx context.Context, q transport.ConnectionQuery) ([]transport.Connection, error)
}

type CountryResolver interface {
	CountryOf(ctx context.Context, coordinate transport.Coordinate) (*string, error)
}

type Options struct {
	Steps    int
	Nearness int
	StopAt   int
	Home     HomeProvider
}

func DefaultOptions() Options {
	return Options{
		Steps:    DefaultSteps,
		Nearness: DefaultNearness,
		StopAt:   DefaultStopAt,
		Home:     DefaultHomeProvider,
	}
}

// Engine finds a connection between two named places. When the transport API
// has no direct connection it looks for stations along the way that can be
// reached and ranks them by how much of the journey they cover.
type Engine struct {
	transport        TransportService
	countries        CountryResolver
	foreignProviders ForeignProviderLookup

	options Options
}

func NewEngine(transportService TransportService, countries CountryResolver, foreignProviders ForeignProviderLookup, options Options) *Engine {
	defaults := DefaultOptions()

	if options.Steps <= 0 {
		options.Steps = defaults.Steps
	}
	if options.Nearness <= 0 {
		options.Nearness = defaults.Nearness
	}
	if options.StopAt <= 0 {
		options.StopAt = defaults.StopAt
	}
	if options.Home.Name == "" {
		options.Home = defaults.Home
	}

	return &Engine{
		transport:        transportService,
		countries:        countries,
		foreignProviders: foreignProviders,
		options:          options,
	}
}

func (e *Engine) Options() Options {
	return e.options
}

func (e *Engine) Route(ctx context.Context, params Parameters, onProgress ProgressFunc) (*Route, error) {
	report := func(progress Progress) {
		if onProgress != nil {
			onProgress(progress)
		}
	}

	report(RoutingDirectly{})
	log.Debug().Str("start", params.Start).Str("destination", params.Destination).Msg("Routing directly")

	startLocation, err := e.resolveLocation(ctx, params.Start)
	if err != nil {
		return nil, err
	}
	destinationLocation, err := e.resolveLocation(ctx, params.Destination)
	if err != nil {
		return nil, err
	}

	directConnections, err := e.transport.GetConnections(ctx, transport.ConnectionQuery{
		From: params.Start,
		To:   params.Destination,
	})
	if err != nil {
		return nil, fmt.Errorf("direct connections: %w", err)
	}

	if len(directConnections) > 0 {
		connections := make([]RouteConnection, 0, len(directConnections))
		for _, connection := range directConnections {
			connections = append(connections, RouteConnection{
				Connection:       connection,
				DirectConnection: true,
				Coverage:         1,
			})
		}

		onlyDirectRoutes := true
		log.Debug().Int("connections", len(connections)).Msg("Found direct connections")

		return &Route{
			Start:            startLocation,
			Destination:      destinationLocation,
			FoundConnection:  true,
			OnlyDirectRoutes: &onlyDirectRoutes,
			Connections:      connections,
		}, nil
	}

	steps := e.options.Steps
	if params.Steps != nil && *params.Steps > 0 {
		steps = *params.Steps
	}
	nearness := e.options.Nearness
	if params.Nearness != nil && *params.Nearness > 0 {
		nearness = *params.Nearness
	}

	report(FindingConnectingStations{Total: steps})
	log.Debug().Int("steps", steps).Int("nearness", nearness).Msg("Finding connecting stations")

	connectingStations, err := e.FindConnectingStations(ctx, ConnectingStationsParams{
		Start:       startLocation,
		Destination: destinationLocation,
		Steps:       steps,
		Nearness:    nearness,
		StopAt:      e.options.StopAt,
		OnlyNearest: true,
	}, func(total int, completed int) {
		report(FindingConnectingStations{Total: total, Completed: completed})
	})
	if err != nil {
		return nil, err
	}

	if len(connectingStations) == 0 {
		log.Debug().Msg("No connecting stations found")

		return &Route{
			Start:           startLocation,
			Destination:     destinationLocation,
			FoundConnection: false,
		}, nil
	}

	report(RoutingIndirectly{Total: len(connectingStations)})
	log.Debug().Int("stations", len(connectingStations)).Msg("Routing indirectly")

	startPoint := toLatLon(startLocation.Coordinate)
	destinationPoint := toLatLon(destinationLocation.Coordinate)

	var alternatives []RouteConnection
	var bestCoverage *float64
	var bestCoverageStation *string
	var bestCoverageProviders []RouteConnectionProvider
	var countries []string

	for i, station := range connectingStations {
		connections, err := e.transport.GetConnections(ctx, transport.ConnectionQuery{
			From: params.Start,
			To:   station.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("connections to %s: %w", station.Name, err)
		}

		report(RoutingIndirectly{Total: len(connectingStations), Completed: i + 1})

		if len(connections) == 0 {
			continue
		}

		if station.Country != nil {
			countries = append(countries, *station.Country)
		}

		for _, connection := range connections {
			coverage, err := geomath.CoveragePercentage(startPoint, destinationPoint, toLatLon(connection.To.Station.Coordinate))
			if err != nil {
				return nil, err
			}

			providers := BuildProviders(e.options.Home, coverage, station.Country, e.foreignProviders)

			if bestCoverage == nil || coverage > *bestCoverage {
				best := coverage
				stationName := connection.To.Station.Name

				bestCoverage = &best
				bestCoverageStation = &stationName
				bestCoverageProviders = providers
			}

			alternatives = append(alternatives, RouteConnection{
				Connection:        connection,
				DirectConnection:  false,
				Coverage:          coverage,
				ServiceEndCountry: station.Country,
				Providers:         providers,
			})
		}
	}

	if len(alternatives) == 0 {
		log.Debug().Int("stations", len(connectingStations)).Msg("No connecting station is reachable")

		return &Route{
			Start:           startLocation,
			Destination:     destinationLocation,
			FoundConnection: false,
		}, nil
	}

	serviceEndCountries := util.RemoveDuplicateStrings(countries, nil)
	slices.Sort(serviceEndCountries)

	onlyDirectRoutes := false

	log.Debug().
		Int("alternatives", len(alternatives)).
		Strs("countries", serviceEndCountries).
		Msg("Finished routing indirectly")

	return &Route{
		Start:                 startLocation,
		Destination:           destinationLocation,
		FoundConnection:       true,
		OnlyDirectRoutes:      &onlyDirectRoutes,
		Connections:           alternatives,
		ConnectingStations:    connectingStations,
		BestCoverage:          bestCoverage,
		BestCoverageStation:   bestCoverageStation,
		BestCoverageProviders: bestCoverageProviders,
		ServiceEndCountries:   serviceEndCountries,
	}, nil
}

func (e *Engine) resolveLocation(ctx context.Context, name string) (transport.Location, error) {
	locations, err := e.transport.SearchLocations(ctx, transport.LocationQuery{
		Query: name,
		Type:  transport.LocationTypeStation,
	})
	if err != nil {
		return transport.Location{}, fmt.Errorf("search location %s: %w", name, err)
	}

	suitable := FilterSuitableLocations(locations, true, nil)
	if len(suitable) == 0 {
		return transport.Location{}, fmt.Errorf("%w: %q", ErrNoLocationFound, name)
	}

	return suitable[0], nil
}

func toLatLon(coordinate transport.Coordinate) geomath.LatLon {
	return geomath.LatLon{Lat: coordinate.X, Lon: coordinate.Y}
}
