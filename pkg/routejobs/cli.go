package routejobs

import (
	"errors"
	"time"

	"github.com/travigo/transitrouter/pkg/consumer"
	"github.com/travigo/transitrouter/pkg/redis_client"
	"github.com/travigo/transitrouter/pkg/services"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "route-jobs",
		Usage: "Runs routing requests queued through the web API",
		Subcommands: []*cli.Command{
			{
				Name:  "worker",
				Usage: "consume queued route jobs",
				Flags: []cli.Flag{
					services.ConfigFlag(),
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the queue stats and health server",
					},
				},
				Action: func(c *cli.Context) error {
					svc, err := services.SetupFromFile(c.String("config"))
					if err != nil {
						return err
					}

					if !svc.Config.Redis.Enabled() {
						return errors.New("route jobs need redis, set TRANSITROUTER_REDIS_ADDRESS")
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: svc.Config.RouteJobs.Consumers,
						BatchSize:       svc.Config.RouteJobs.BatchSize,
						Timeout:         1 * time.Second,
						Consumer: &Worker{
							Router: svc.Engine,
							Store:  NewStore(redis_client.Client, svc.Config.RouteJobs.TTL),
						},
						StatsListen: c.String("stats-listen"),
					}

					return redisConsumer.Setup()
				},
			},
		},
	}
}
