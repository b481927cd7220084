package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/elastic_client"
	"github.com/travigo/subway/pkg/fare"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/pathfinder"
)

const pathQueriesIndex = "path-queries"

type Query struct {
	SourceRef string
	TargetRef string
	Criterion pathfinder.Criterion
	Rider     fare.RiderCategory
}

// FindPath plans a route over a snapshot of every line currently in the store.
func FindPath(ctx context.Context, store network.Store, query Query) (*ctdf.PathPlan, error) {
	if err := network.EnsureStations(ctx, store, query.SourceRef, query.TargetRef); err != nil {
		return nil, err
	}

	lines, err := store.ListLines(ctx)
	if err != nil {
		return nil, err
	}

	return Plan(ctx, store, lines, query)
}

// Plan routes over the given lines and prices the result. The base fare always
// comes from the shortest possible distance, the surcharge from the lines on
// the route that was asked for.
func Plan(ctx context.Context, stations network.StationLookup, lines []*ctdf.Line, query Query) (*ctdf.PathPlan, error) {
	graph := pathfinder.BuildGraph(lines)

	requested, err := pathfinder.FindPath(ctx, graph, query.SourceRef, query.TargetRef, query.Criterion)
	if err != nil {
		return nil, err
	}

	shortest := requested
	if query.Criterion != pathfinder.CriterionDistance {
		shortest, err = pathfinder.FindPath(ctx, graph, query.SourceRef, query.TargetRef, pathfinder.CriterionDistance)
		if err != nil {
			return nil, err
		}
	}

	resolvedStations, err := network.ResolveStations(ctx, stations, requested.StationRefs)
	if err != nil {
		return nil, err
	}

	plan := &ctdf.PathPlan{
		Stations: resolvedStations,
		Distance: requested.Distance,
		Duration: requested.Duration,
		Fare:     fare.Calculate(shortest.Distance, requested, query.Rider),
		Lines:    requested.Lines,
	}

	log.Debug().
		Str("source", query.SourceRef).
		Str("target", query.TargetRef).
		Str("criterion", string(query.Criterion)).
		Str("rider", query.Rider.String()).
		Int("stations", len(plan.Stations)).
		Int("fare", plan.Fare).
		Msg("Planned path")

	recordQuery(query, plan)

	return plan, nil
}

type pathQueryDocument struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Criterion string `json:"criterion"`
	Rider     string `json:"rider"`

	Distance int `json:"distance"`
	Duration int `json:"duration"`
	Fare     int `json:"fare"`

	Timestamp time.Time `json:"timestamp"`
}

func recordQuery(query Query, plan *ctdf.PathPlan) {
	document, err := json.Marshal(pathQueryDocument{
		Source:    query.SourceRef,
		Target:    query.TargetRef,
		Criterion: string(query.Criterion),
		Rider:     query.Rider.String(),
		Distance:  plan.Distance,
		Duration:  plan.Duration,
		Fare:      plan.Fare,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal path query document")
		return
	}

	elastic_client.IndexRequest(pathQueriesIndex, bytes.NewReader(document))
}
