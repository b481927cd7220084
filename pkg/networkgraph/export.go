package networkgraph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/util"
)

const (
	defaultAddress  = "neo4j://localhost"
	defaultUsername = "neo4j"
	defaultDatabase = "neo4j"
)

func Connect(ctx context.Context) (neo4j.DriverWithContext, error) {
	address := defaultAddress
	username := defaultUsername

	env := util.GetEnvironmentVariables()
	if env["SUBWAY_NEO4J_ADDRESS"] != "" {
		address = env["SUBWAY_NEO4J_ADDRESS"]
	}
	if env["SUBWAY_NEO4J_USERNAME"] != "" {
		username = env["SUBWAY_NEO4J_USERNAME"]
	}

	driver, err := neo4j.NewDriverWithContext(address, neo4j.BasicAuth(username, env["SUBWAY_NEO4J_PASSWORD"], ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}

func stationParameters(station *ctdf.Station) map[string]any {
	return map[string]any{
		"primaryidentifier": station.PrimaryIdentifier,
		"primaryname":       station.PrimaryName,
	}
}

// sectionParameters flattens every section of the lines into relationship rows.
func sectionParameters(lines []*ctdf.Line) []map[string]any {
	var rows []map[string]any

	for _, line := range lines {
		for _, section := range line.Sections {
			rows = append(rows, map[string]any{
				"up":          section.UpStationRef,
				"down":        section.DownStationRef,
				"line":        line.PrimaryIdentifier,
				"distance":    section.Distance,
				"duration":    section.Duration,
				"extracharge": line.ExtraCharge,
			})
		}
	}

	return rows
}

// Export replaces the graph database contents with the given network.
func Export(ctx context.Context, driver neo4j.DriverWithContext, stations []*ctdf.Station, lines []*ctdf.Line) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: defaultDatabase})
	defer session.Close(ctx)

	stationRows := make([]map[string]any, 0, len(stations))
	for _, station := range stations {
		stationRows = append(stationRows, stationParameters(station))
	}
	sectionRows := sectionParameters(lines)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (s:Station) DETACH DELETE s", nil); err != nil {
			return nil, err
		}

		if _, err := tx.Run(ctx,
			"UNWIND $stations AS station CREATE (:Station {primaryidentifier: station.primaryidentifier, primaryname: station.primaryname})",
			map[string]any{"stations": stationRows},
		); err != nil {
			return nil, err
		}

		_, err := tx.Run(ctx,
			`
			UNWIND $sections AS section
			MATCH (u:Station {primaryidentifier: section.up})
			MATCH (d:Station {primaryidentifier: section.down})
			CREATE (u)-[:SECTION {line: section.line, distance: section.distance, duration: section.duration, extracharge: section.extracharge}]->(d)
			`,
			map[string]any{"sections": sectionRows},
		)
		return nil, err
	})
	if err != nil {
		return err
	}

	log.Info().Int("stations", len(stationRows)).Int("sections", len(sectionRows)).Msg("Exported network graph")

	return nil
}
