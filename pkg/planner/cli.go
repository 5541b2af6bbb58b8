package planner

import (
	"errors"
	"fmt"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/routing"
	"github.com/travigo/transitrouter/pkg/services"
	"github.com/travigo/transitrouter/pkg/transport"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Plan routes and query the transport API from the terminal",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "find a direct or alternative connection between two places",
				Flags: []cli.Flag{
					services.ConfigFlag(),
					&cli.StringFlag{
						Name:     "from",
						Usage:    "start location name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "destination location name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "steps",
						Usage: "number of points sampled between start and destination, 0 uses the configuration",
					},
					&cli.IntFlag{
						Name:  "nearness",
						Usage: "minimum distance in metres between a sample point and a connecting station, 0 uses the configuration",
					},
					&cli.BoolFlag{
						Name:  "detailed",
						Usage: "also print the connecting stations",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "pretty print the whole route structure instead of the summary",
					},
				},
				Action: func(c *cli.Context) error {
					svc, err := services.SetupFromFile(c.String("config"))
					if err != nil {
						return err
					}

					params := routing.Parameters{
						Start:       c.String("from"),
						Destination: c.String("to"),
					}
					if c.Int("steps") > 0 {
						steps := c.Int("steps")
						params.Steps = &steps
					}
					if c.Int("nearness") > 0 {
						nearness := c.Int("nearness")
						params.Nearness = &nearness
					}

					route, err := svc.Engine.Route(c.Context, params, func(progress routing.Progress) {
						total, completed := routing.Counts(progress)
						log.Info().Str("phase", progress.Phase().String()).Int("total", total).Int("completed", completed).Msg("Routing")
					})
					if err != nil {
						return err
					}

					if c.Bool("dump") {
						pretty.Println(route)
						return nil
					}

					return PrintRoute(c.App.Writer, route, c.Bool("detailed"))
				},
			},
			{
				Name:  "locations",
				Usage: "search locations by name or around a coordinate",
				Flags: []cli.Flag{
					services.ConfigFlag(),
					&cli.StringFlag{
						Name:  "query",
						Usage: "location name",
					},
					&cli.Float64Flag{
						Name:  "x",
						Usage: "latitude to search around",
					},
					&cli.Float64Flag{
						Name:  "y",
						Usage: "longitude to search around",
					},
					&cli.StringFlag{
						Name:  "type",
						Value: string(transport.LocationTypeAll),
						Usage: "all, station, poi or address",
					},
				},
				Action: func(c *cli.Context) error {
					svc, err := services.SetupFromFile(c.String("config"))
					if err != nil {
						return err
					}

					query := transport.LocationQuery{
						Query: c.String("query"),
						Type:  transport.LocationType(c.String("type")),
					}
					if c.IsSet("x") || c.IsSet("y") {
						x, y := c.Float64("x"), c.Float64("y")
						query.X = &x
						query.Y = &y
					}
					if query.Query == "" && query.X == nil {
						return errors.New("either --query or --x and --y must be given")
					}

					locations, err := svc.Transport.SearchLocations(c.Context, query)
					if err != nil {
						return err
					}

					return PrintLocations(c.App.Writer, locations)
				},
			},
			{
				Name:  "complete",
				Usage: "suggest location names for a partial input",
				Flags: []cli.Flag{
					services.ConfigFlag(),
					&cli.StringFlag{
						Name:     "term",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					svc, err := services.SetupFromFile(c.String("config"))
					if err != nil {
						return err
					}

					completions, err := svc.Autocomplete.SearchCompletion(c.Context, c.String("term"))
					if err != nil {
						return err
					}

					for _, completion := range completions {
						fmt.Fprintln(c.App.Writer, completion.Label)
					}

					return nil
				},
			},
			{
				Name:  "blacklist",
				Usage: "inspect the start and destination pairs without connections",
				Subcommands: []*cli.Command{
					{
						Name:  "export",
						Usage: "write all blacklist entries as CSV to stdout",
						Flags: []cli.Flag{services.ConfigFlag()},
						Action: func(c *cli.Context) error {
							blacklist, err := setupBlacklist(c)
							if err != nil {
								return err
							}

							return blacklist.ExportCSV(c.Context, c.App.Writer)
						},
					},
					{
						Name:  "remove",
						Usage: "remove a start and destination pair from the blacklist",
						Flags: []cli.Flag{
							services.ConfigFlag(),
							&cli.StringFlag{Name: "from", Required: true},
							&cli.StringFlag{Name: "to", Required: true},
						},
						Action: func(c *cli.Context) error {
							blacklist, err := setupBlacklist(c)
							if err != nil {
								return err
							}

							return blacklist.RemoveBlacklist(c.Context, c.String("from"), c.String("to"))
						},
					},
				},
			},
		},
	}
}

func setupBlacklist(c *cli.Context) (*transport.BlacklistCache, error) {
	svc, err := services.SetupFromFile(c.String("config"))
	if err != nil {
		return nil, err
	}

	if svc.Blacklist == nil {
		return nil, errors.New("the blacklist needs redis, set TRANSITROUTER_REDIS_ADDRESS")
	}

	return svc.Blacklist, nil
}
