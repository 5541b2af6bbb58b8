package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/api"
	"github.com/travigo/transitrouter/pkg/keystations"
	"github.com/travigo/transitrouter/pkg/planner"
	"github.com/travigo/transitrouter/pkg/routejobs"
	"github.com/urfave/cli/v2"
)

func main() {
	// stdout is reserved for command output
	if os.Getenv("TRANSITROUTER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	if os.Getenv("TRANSITROUTER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "transitrouter",
		Description: "Finds direct or alternative public transport connections across borders",

		Commands: []*cli.Command{
			planner.RegisterCLI(),
			api.RegisterCLI(),
			routejobs.RegisterCLI(),
			keystations.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
