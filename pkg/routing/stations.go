package routing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/geomath"
	"github.com/travigo/transitrouter/pkg/transport"
)

// FindConnectingStations walks the great circle chord from the destination
// back to the start and collects the stations found around each sample point.
// The country is looked up once per point from the first station kept there.
// Collection stops as soon as more than StopAt stations were found.
func (e *Engine) FindConnectingStations(ctx context.Context, params ConnectingStationsParams, onProgress func(total int, completed int)) ([]RouteLocation, error) {
	report := func(completed int) {
		if onProgress != nil {
			onProgress(params.Steps, completed)
		}
	}

	points := geomath.IntermediateCoordinates(toLatLon(params.Destination.Coordinate), toLatLon(params.Start.Coordinate), params.Steps)
	stations := []RouteLocation{}

	for i, point := range points {
		lat, lon := point.Lat, point.Lon

		found, err := e.transport.SearchLocations(ctx, transport.LocationQuery{
			X:    &lat,
			Y:    &lon,
			Type: transport.LocationTypeStation,
		})
		if err != nil {
			return nil, fmt.Errorf("search stations near %f,%f: %w", lat, lon, err)
		}

		nearness := params.Nearness
		locations := FilterSuitableLocations(found, true, &nearness)

		report(i + 1)

		if len(locations) == 0 {
			continue
		}

		if params.OnlyNearest {
			locations = locations[:1]
		}

		country, err := e.countries.CountryOf(ctx, locations[0].Coordinate)
		if err != nil {
			return nil, fmt.Errorf("country of %s: %w", locations[0].Name, err)
		}

		for _, location := range locations {
			stations = append(stations, RouteLocation{
				Location: location,
				Country:  country,
			})

			if len(stations) > params.StopAt {
				log.Debug().Int("stations", len(stations)).Int("point", i+1).Msg("Enough connecting stations found")

				report(params.Steps)
				return stations, nil
			}
		}
	}

	return stations, nil
}
