package pathfinder

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/travigo/subway/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// FindPath runs Dijkstra over the graph minimising the criterion weight.
// Ties between equally weighted routes are broken arbitrarily.
func FindPath(ctx context.Context, graph *Graph, sourceRef string, targetRef string, criterion Criterion) (*ctdf.PathResult, error) {
	if !criterion.Valid() {
		return nil, fmt.Errorf("%w: %q", ctdf.ErrInvalidCriterion, criterion)
	}
	if sourceRef == targetRef {
		return nil, fmt.Errorf("%w: %s", ctdf.ErrSameStation, sourceRef)
	}
	for _, stationRef := range []string{sourceRef, targetRef} {
		if !graph.HasStation(stationRef) {
			return nil, fmt.Errorf("%w: %s is not on any line", ctdf.ErrStationNotFound, stationRef)
		}
	}

	best := map[string]int{sourceRef: 0}
	via := map[string]*Edge{}
	visited := map[string]bool{}

	queue := &priorityQueue{}
	heap.Push(queue, &queueItem{stationRef: sourceRef})

	for queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := heap.Pop(queue).(*queueItem)
		if visited[item.stationRef] {
			continue
		}
		visited[item.stationRef] = true

		if item.stationRef == targetRef {
			break
		}

		for _, edge := range graph.EdgesOf(item.stationRef) {
			next := edge.other(item.stationRef)
			if visited[next] {
				continue
			}

			weight := item.weight + criterion.weight(edge)
			if current, seen := best[next]; seen && current <= weight {
				continue
			}

			best[next] = weight
			via[next] = edge
			heap.Push(queue, &queueItem{stationRef: next, weight: weight})
		}
	}

	if !visited[targetRef] {
		return nil, fmt.Errorf("%w: %s -> %s", ctdf.ErrNoRoute, sourceRef, targetRef)
	}

	return buildResult(sourceRef, targetRef, via), nil
}

func buildResult(sourceRef string, targetRef string, via map[string]*Edge) *ctdf.PathResult {
	var edges []*Edge
	for stationRef := targetRef; stationRef != sourceRef; {
		edge := via[stationRef]
		edges = append(edges, edge)
		stationRef = edge.other(stationRef)
	}
	slices.Reverse(edges)

	result := &ctdf.PathResult{
		StationRefs: []string{sourceRef},
	}

	stationRef := sourceRef
	for _, edge := range edges {
		stationRef = edge.other(stationRef)

		result.StationRefs = append(result.StationRefs, stationRef)
		result.Distance += edge.Distance
		result.Duration += edge.Duration
		result.AddLine(ctdf.PathLine{
			PrimaryIdentifier: edge.LineRef,
			ExtraCharge:       edge.ExtraCharge,
		})
	}

	return result
}
