package networkcli

import (
	"context"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/database"
	"github.com/travigo/subway/pkg/elastic_client"
	"github.com/travigo/subway/pkg/fare"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/networkgraph"
	"github.com/travigo/subway/pkg/pathfinder"
	"github.com/travigo/subway/pkg/planner"
	"github.com/travigo/subway/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "network",
		Usage: "Import, query and export the subway network",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import a directory of YAML network definitions into MongoDB",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "directory",
						Usage:    "directory containing the network YAML files",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					documents, err := network.LoadSeedDirectory(c.String("directory"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					// Stations go through the cache so earlier misses are cleared
					store := network.NewCachedStore(redis_client.Client, network.MongoStore{})

					return network.Import(c.Context, store, documents)
				},
			},
			{
				Name:  "path",
				Usage: "Find a path and its fare",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "directory",
						Usage: "plan against YAML network definitions instead of MongoDB",
					},
					&cli.StringFlag{
						Name:     "source",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "target",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Value: string(pathfinder.CriterionDistance),
						Usage: "DISTANCE or DURATION",
					},
					&cli.IntFlag{
						Name:  "age",
						Value: 19,
						Usage: "age of the rider",
					},
				},
				Action: func(c *cli.Context) error {
					criterion, err := pathfinder.ParseCriterion(c.String("type"))
					if err != nil {
						return err
					}

					store, err := openStore(c.Context, c.String("directory"))
					if err != nil {
						return err
					}

					plan, err := planner.FindPath(c.Context, store, planner.Query{
						SourceRef: c.String("source"),
						TargetRef: c.String("target"),
						Criterion: criterion,
						Rider:     fare.RiderCategoryForAge(c.Int("age")),
					})
					if err != nil {
						return err
					}

					pretty.Println(plan)

					return nil
				},
			},
			{
				Name:  "export-graph",
				Usage: "Replace the Neo4j graph with the current network",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "directory",
						Usage: "export YAML network definitions instead of MongoDB",
					},
				},
				Action: func(c *cli.Context) error {
					store, err := openStore(c.Context, c.String("directory"))
					if err != nil {
						return err
					}

					stations, err := store.ListStations(c.Context)
					if err != nil {
						return err
					}
					lines, err := store.ListLines(c.Context)
					if err != nil {
						return err
					}

					driver, err := networkgraph.Connect(c.Context)
					if err != nil {
						return err
					}
					defer driver.Close(c.Context)

					return networkgraph.Export(c.Context, driver, stations, lines)
				},
			},
		},
	}
}

// openStore loads a directory into memory, or falls back to MongoDB when no
// directory is given.
func openStore(ctx context.Context, directory string) (network.Store, error) {
	if directory == "" {
		if err := database.Connect(); err != nil {
			return nil, err
		}
		if err := elastic_client.Connect(); err != nil {
			return nil, err
		}

		return network.MongoStore{}, nil
	}

	documents, err := network.LoadSeedDirectory(directory)
	if err != nil {
		return nil, err
	}

	store := network.NewMemoryStore()
	if err := network.Import(ctx, store, documents); err != nil {
		return nil, err
	}

	log.Debug().Str("directory", directory).Msg("Loaded network into memory")

	return store, nil
}
