package pathfinder

import (
	"github.com/travigo/subway/pkg/ctdf"
)

// Edge is one section of one line. Edges are undirected, a rider can travel
// either way along a section.
type Edge struct {
	StationA string
	StationB string

	Distance int
	Duration int

	LineRef     string
	ExtraCharge int
}

func (e *Edge) other(stationRef string) string {
	if e.StationA == stationRef {
		return e.StationB
	}
	return e.StationA
}

// Graph is the multigraph of every line's sections. Two lines connecting the
// same pair of stations produce two edges.
type Graph struct {
	Edges []*Edge

	adjacency map[string][]*Edge
}

// BuildGraph assembles a graph from the current chains of all the given lines.
func BuildGraph(lines []*ctdf.Line) *Graph {
	graph := &Graph{
		adjacency: map[string][]*Edge{},
	}

	for _, line := range lines {
		for _, section := range line.Sections {
			graph.addEdge(&Edge{
				StationA:    section.UpStationRef,
				StationB:    section.DownStationRef,
				Distance:    section.Distance,
				Duration:    section.Duration,
				LineRef:     line.PrimaryIdentifier,
				ExtraCharge: line.ExtraCharge,
			})
		}
	}

	return graph
}

func (g *Graph) addEdge(edge *Edge) {
	g.Edges = append(g.Edges, edge)

	g.adjacency[edge.StationA] = append(g.adjacency[edge.StationA], edge)
	g.adjacency[edge.StationB] = append(g.adjacency[edge.StationB], edge)
}

func (g *Graph) HasStation(stationRef string) bool {
	_, exists := g.adjacency[stationRef]
	return exists
}

func (g *Graph) EdgesOf(stationRef string) []*Edge {
	return g.adjacency[stationRef]
}

func (g *Graph) StationCount() int {
	return len(g.adjacency)
}
