package planner

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/travigo/transitrouter/pkg/routing"
	"github.com/travigo/transitrouter/pkg/transport"
	"github.com/travigo/transitrouter/pkg/util"
)

const maxStationNameLength = 32

func PrintRoute(w io.Writer, route *routing.Route, detailed bool) error {
	if !route.FoundConnection {
		_, err := fmt.Fprintf(w, "Weren't able to connect %s and %s\n", route.Start.Name, route.Destination.Name)
		if err == nil && detailed {
			err = printConnectingStations(w, route.ConnectingStations)
		}
		return err
	}

	direct := route.OnlyDirectRoutes != nil && *route.OnlyDirectRoutes

	fmt.Fprintf(w, "%s -> %s\n", route.Start.Name, route.Destination.Name)
	if direct {
		fmt.Fprintln(w, "Direct connection")
	} else {
		fmt.Fprintln(w, "Alternative connection")
	}
	if len(route.BestCoverageProviders) > 0 {
		fmt.Fprintf(w, "Coverage: %s", formatProviders(route.BestCoverageProviders))
		if route.BestCoverageStation != nil {
			fmt.Fprintf(w, " (via %s)", *route.BestCoverageStation)
		}
		fmt.Fprintln(w)
	}
	if len(route.ServiceEndCountries) > 0 {
		fmt.Fprintf(w, "Service ends in: %s\n", strings.Join(route.ServiceEndCountries, ", "))
	}
	fmt.Fprintf(w, "Available connections: %d\n\n", len(route.Connections))

	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	columns := []string{"Start", "Destination", "Departure", "Arrival", "Duration", "Transfers"}
	if !direct {
		columns[1] = "Alternative destination"
		columns = append(columns, "Coverage", "Ends in")
	}
	fmt.Fprintln(table, strings.Join(columns, "\t"))

	for _, connection := range route.Connections {
		row := []string{
			util.TrimString(connection.From.Station.Name, maxStationNameLength),
			util.TrimString(connection.To.Station.Name, maxStationNameLength),
			formatTime(connection.From.Departure),
			formatTime(connection.To.Arrival),
			formatDuration(connection.Duration),
			fmt.Sprint(connection.Transfers),
		}

		if !direct {
			endsIn := "-"
			if connection.ServiceEndCountry != nil {
				endsIn = *connection.ServiceEndCountry
			}
			row = append(row, formatProviders(connection.Providers), endsIn)
		}

		fmt.Fprintln(table, strings.Join(row, "\t"))
	}

	if err := table.Flush(); err != nil {
		return err
	}

	if detailed {
		return printConnectingStations(w, route.ConnectingStations)
	}

	return nil
}

func printConnectingStations(w io.Writer, stations []routing.RouteLocation) error {
	if len(stations) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\nConnecting stations: %d\n", len(stations))

	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "Station\tCountry\tLatitude\tLongitude\tDistance")

	for _, station := range stations {
		country := "-"
		if station.Country != nil {
			country = *station.Country
		}
		distance := "-"
		if station.Distance != nil {
			distance = fmt.Sprintf("%.0fm", *station.Distance)
		}

		fmt.Fprintf(table, "%s\t%s\t%.6f\t%.6f\t%s\n", station.Name, country, station.Coordinate.X, station.Coordinate.Y, distance)
	}

	return table.Flush()
}

func PrintLocations(w io.Writer, locations []transport.Location) error {
	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tName\tType\tLatitude\tLongitude\tDistance")

	for _, location := range locations {
		id := "-"
		if location.ID != nil {
			id = *location.ID
		}
		distance := "-"
		if location.Distance != nil {
			distance = fmt.Sprintf("%.0fm", *location.Distance)
		}

		fmt.Fprintf(table, "%s\t%s\t%s\t%.6f\t%.6f\t%s\n", id, location.Name, location.Type, location.Coordinate.X, location.Coordinate.Y, distance)
	}

	return table.Flush()
}

func formatProviders(providers []routing.RouteConnectionProvider) string {
	formatted := make([]string, 0, len(providers))
	for _, provider := range providers {
		formatted = append(formatted, fmt.Sprintf("%s %s", util.FormatPercent(provider.Coverage), provider.Name))
	}

	return strings.Join(formatted, " ")
}

func formatTime(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}

	formatted, err := util.FormatDate(*value)
	if err != nil {
		return *value
	}

	return formatted
}

func formatDuration(value string) string {
	formatted, err := util.FormatDuration(value)
	if err != nil || formatted == "" {
		return value
	}

	return formatted
}
