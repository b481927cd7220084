package sections

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/consumer"
	"github.com/travigo/subway/pkg/database"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "sections",
		Usage: "Queued section changes",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the section change consumers",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "consumers",
						Value: 5,
						Usage: "number of batch consumers",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen address of the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					store := network.NewCachedStore(redis_client.Client, network.MongoStore{})

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: c.Int("consumers"),
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(store),
						StatsListen:     c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals
					go func() {
						<-signals // hard exit on second signal
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming()

					return nil
				},
			},
			{
				Name:  "enqueue",
				Usage: "queue a single section change",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "action",
						Usage:    "add or delete",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "line",
						Required: true,
					},
					&cli.StringFlag{
						Name: "up",
					},
					&cli.StringFlag{
						Name: "down",
					},
					&cli.IntFlag{
						Name: "distance",
					},
					&cli.IntFlag{
						Name: "duration",
					},
					&cli.StringFlag{
						Name:  "station",
						Usage: "station to remove for a delete",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
					if err != nil {
						return err
					}

					change := Change{
						Action:         Action(c.String("action")),
						LineRef:        c.String("line"),
						UpStationRef:   c.String("up"),
						DownStationRef: c.String("down"),
						Distance:       c.Int("distance"),
						Duration:       c.Int("duration"),
						StationRef:     c.String("station"),
					}
					if err := Publish(queue, change); err != nil {
						return err
					}

					log.Info().Str("line", change.LineRef).Str("action", string(change.Action)).Msg("Queued section change")

					return nil
				},
			},
		},
	}
}
