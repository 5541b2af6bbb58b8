package planner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitrouter/pkg/routing"
	"github.com/travigo/transitrouter/pkg/transport"
)

func stringPtr(s string) *string {
	return &s
}

func connection(from string, to string, departure string, arrival string, duration string) transport.Connection {
	return transport.Connection{
		From:      transport.Stop{Station: transport.Location{Name: from}, Departure: stringPtr(departure)},
		To:        transport.Stop{Station: transport.Location{Name: to}, Arrival: stringPtr(arrival)},
		Duration:  duration,
		Transfers: 1,
	}
}

func TestPrintRouteNotFound(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, PrintRoute(&buffer, &routing.Route{
		Start:       transport.Location{Name: "Bern"},
		Destination: transport.Location{Name: "Reykjavik"},
	}, false))

	assert.Equal(t, "Weren't able to connect Bern and Reykjavik\n", buffer.String())
}

func TestPrintRouteDirect(t *testing.T) {
	var buffer bytes.Buffer
	direct := true

	require.NoError(t, PrintRoute(&buffer, &routing.Route{
		Start:            transport.Location{Name: "Bern"},
		Destination:      transport.Location{Name: "Zürich HB"},
		FoundConnection:  true,
		OnlyDirectRoutes: &direct,
		Connections: []routing.RouteConnection{
			{
				Connection:       connection("Bern", "Zürich HB", "2023-05-01T08:02:00+0200", "2023-05-01T08:58:00+0200", "00d00:56:00"),
				DirectConnection: true,
				Coverage:         1,
			},
		},
	}, false))

	output := buffer.String()
	assert.Contains(t, output, "Bern -> Zürich HB\nDirect connection\n")
	assert.Contains(t, output, "Available connections: 1")
	assert.Contains(t, output, "2023-05-01 08:02")
	assert.Contains(t, output, "56min")
	assert.NotContains(t, output, "Coverage")
}

func TestPrintRouteAlternative(t *testing.T) {
	var buffer bytes.Buffer
	direct := false
	coverage := 0.75
	country := "IT"

	providers := []routing.RouteConnectionProvider{
		{Name: "SBB", Coverage: 0.75},
		{Name: "Trenitalia", Coverage: 0.25},
	}

	require.NoError(t, PrintRoute(&buffer, &routing.Route{
		Start:            transport.Location{Name: "Bern"},
		Destination:      transport.Location{Name: "Roma Termini"},
		FoundConnection:  true,
		OnlyDirectRoutes: &direct,
		Connections: []routing.RouteConnection{
			{
				Connection:        connection("Bern", "Milano Centrale", "2023-05-01T07:34:00+0200", "2023-05-01T10:50:00+0200", "00d03:16:00"),
				Coverage:          coverage,
				ServiceEndCountry: &country,
				Providers:         providers,
			},
		},
		ConnectingStations: []routing.RouteLocation{
			{Location: transport.Location{Name: "Milano Centrale", Coordinate: transport.Coordinate{X: 45.486347, Y: 9.204528}}, Country: &country},
		},
		BestCoverage:          &coverage,
		BestCoverageStation:   stringPtr("Milano Centrale"),
		BestCoverageProviders: providers,
		ServiceEndCountries:   []string{"IT"},
	}, true))

	output := buffer.String()
	assert.Contains(t, output, "Alternative connection\n")
	assert.Contains(t, output, "Coverage: 75% SBB 25% Trenitalia (via Milano Centrale)\n")
	assert.Contains(t, output, "Service ends in: IT\n")
	assert.Contains(t, output, "Alternative destination")
	assert.Contains(t, output, "3h 16min")
	assert.Contains(t, output, "Connecting stations: 1")
	assert.Contains(t, output, "45.486347")
}

func TestPrintLocations(t *testing.T) {
	var buffer bytes.Buffer
	distance := 412.4

	require.NoError(t, PrintLocations(&buffer, []transport.Location{
		{ID: stringPtr("8507000"), Name: "Bern", Type: "station", Distance: &distance},
		{Name: "Placeholder"},
	}))

	output := buffer.String()
	assert.Contains(t, output, "8507000")
	assert.Contains(t, output, "412m")
	assert.Contains(t, output, "Placeholder")
}
