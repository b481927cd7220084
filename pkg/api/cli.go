package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/database"
	"github.com/travigo/subway/pkg/elastic_client"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(); err != nil {
						return err
					}

					store := network.NewCachedStore(redis_client.Client, network.MongoStore{})

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"), store)
				},
			},
		},
	}
}
