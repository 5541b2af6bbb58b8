package routing

import (
	"context"
	"fmt"

	"github.com/travigo/transitrouter/pkg/providers"
	"github.com/travigo/transitrouter/pkg/transport"
)

type fakeTransport struct {
	named       map[string][]transport.Location
	nearby      func(lat float64, lon float64) []transport.Location
	connections map[string][]transport.Connection

	searchErr      error
	connectionsErr error

	searchQueries     []transport.LocationQuery
	connectionQueries []transport.ConnectionQuery
}

func (f *fakeTransport) SearchLocations(ctx context.Context, q transport.LocationQuery) ([]transport.Location, error) {
	f.searchQueries = append(f.searchQueries, q)

	if f.searchErr != nil {
		return nil, f.searchErr
	}

	if q.X != nil && q.Y != nil {
		if f.nearby == nil {
			return []transport.Location{}, nil
		}
		return f.nearby(*q.X, *q.Y), nil
	}

	return f.named[q.Query], nil
}

func (f *fakeTransport) GetConnections(ctx context.Context, q transport.ConnectionQuery) ([]transport.Connection, error) {
	f.connectionQueries = append(f.connectionQueries, q)

	if f.connectionsErr != nil {
		return nil, f.connectionsErr
	}

	return f.connections[connectionKey(q.From, q.To)], nil
}

func connectionKey(from string, to string) string {
	return fmt.Sprintf("%s->%s", from, to)
}

type fakeCountries struct {
	sequence []*string
	country  *string
	err      error
	calls    int
}

func (f *fakeCountries) CountryOf(ctx context.Context, coordinate transport.Coordinate) (*string, error) {
	defer func() { f.calls++ }()

	if f.err != nil {
		return nil, f.err
	}
	if f.calls < len(f.sequence) {
		return f.sequence[f.calls], nil
	}
	return f.country, nil
}

type fakeLookup map[string]*providers.ForeignProvider

func (f fakeLookup) Get(countryCode string) *providers.ForeignProvider {
	return f[countryCode]
}

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func station(id string, name string, lat float64, lon float64, distance *float64) transport.Location {
	return transport.Location{
		ID:   stringPtr(id),
		Type: "station",
		Name: name,
		Coordinate: transport.Coordinate{
			Type: "WGS84",
			X:    lat,
			Y:    lon,
		},
		Distance: distance,
	}
}

func connectionTo(location transport.Location) transport.Connection {
	return transport.Connection{
		To:       transport.Stop{Station: location},
		Duration: "00d01:00:00",
	}
}
