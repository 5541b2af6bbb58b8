package keystations

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/services"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "key-stations",
		Usage: "Track which key stations are reachable from the home station",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "print the last tracking results",
				Flags:  []cli.Flag{services.ConfigFlag()},
				Action: func(c *cli.Context) error { return run(c, false) },
			},
			{
				Name:   "refetch",
				Usage:  "check every key station again and update the tracking file",
				Flags:  []cli.Flag{services.ConfigFlag()},
				Action: func(c *cli.Context) error { return run(c, true) },
			},
		},
	}
}

func run(c *cli.Context, refetch bool) error {
	svc, err := services.SetupFromFile(c.String("config"))
	if err != nil {
		return err
	}

	cfg := svc.Config.KeyStations
	tracker := NewTracker(svc.Transport, cfg.HomeStation, cfg.StationsPath, cfg.TrackingPath, cfg.Concurrency)
	if err := tracker.Load(); err != nil {
		return err
	}

	tracking := tracker.Tracking()
	if refetch {
		tracking, err = tracker.Refetch(c.Context, func(total int, completed int) {
			log.Info().Int("total", total).Int("completed", completed).Msg("Checking key stations")
		})
		if err != nil {
			return err
		}
	}

	table := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "Start\tStation\tReachable")
	for _, entry := range tracking {
		reachable := "No"
		if entry.Reachable {
			reachable = "Yes"
		}
		fmt.Fprintf(table, "%s\t%s\t%s\n", entry.Start, entry.Station, reachable)
	}

	return table.Flush()
}
