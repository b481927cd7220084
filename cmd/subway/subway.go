package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/api"
	"github.com/travigo/subway/pkg/elastic_client"
	"github.com/travigo/subway/pkg/networkcli"
	"github.com/travigo/subway/pkg/sections"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("SUBWAY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("SUBWAY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "subway",
		Description: "Subway network line management, path finding and fares",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			networkcli.RegisterCLI(),
			sections.RegisterCLI(),
		},

		After: func(c *cli.Context) error {
			elastic_client.WaitUntilQueueEmpty()
			return nil
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
