package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/keystations"
	"github.com/travigo/transitrouter/pkg/redis_client"
	"github.com/travigo/transitrouter/pkg/routejobs"
	"github.com/travigo/transitrouter/pkg/services"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the routing web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					services.ConfigFlag(),
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the configuration",
					},
				},
				Action: func(c *cli.Context) error {
					svc, err := services.SetupFromFile(c.String("config"))
					if err != nil {
						return err
					}

					var jobs *routejobs.Queue
					if svc.Config.Redis.Enabled() {
						jobs, err = routejobs.OpenQueue(redis_client.QueueConnection, routejobs.NewStore(redis_client.Client, svc.Config.RouteJobs.TTL))
						if err != nil {
							return err
						}
					} else {
						log.Warn().Msg("Redis is not configured, route jobs and the blacklist are disabled")
					}

					tracker := keystations.NewTracker(
						svc.Transport,
						svc.Config.KeyStations.HomeStation,
						svc.Config.KeyStations.StationsPath,
						svc.Config.KeyStations.TrackingPath,
						svc.Config.KeyStations.Concurrency,
					)
					if err := tracker.Load(); err != nil {
						return err
					}

					listen := svc.Config.Web.Listen
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					return SetupServer(listen, svc, jobs, tracker)
				},
			},
		},
	}
}
